package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cleanarch/agentsync/internal/validate"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check Clean Architecture layer boundaries in a Go tree",
		UsageText: "agentsync validate <src-dir> [--strict]",
		Description: `Walk a source tree, assign each Go file to its architectural layer
   from its path, and report imports that break the dependency direction
   (domain <- application <- infrastructure <- presentation) or pull
   frameworks into inner layers.

   Examples:
     agentsync validate ./internal
     agentsync validate ./internal --strict`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Exit non-zero when violations are found",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return errors.New("validate requires exactly 1 argument: <src-dir>")
			}

			srcDir := args.Get(0)
			if _, err := os.Stat(srcDir); err != nil {
				return fmt.Errorf("source directory %q not found", srcDir)
			}

			violations, err := validate.Validate(srcDir)
			if err != nil {
				return err
			}

			validate.Report(os.Stdout, violations)

			if len(violations) > 0 && cmd.Bool("strict") {
				return fmt.Errorf("%d architectural violation(s)", len(violations))
			}
			return nil
		},
	}
}
