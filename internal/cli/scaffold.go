package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/cleanarch/agentsync/internal/scaffold"
	"github.com/cleanarch/agentsync/internal/ui"
)

func scaffoldCommand() *cli.Command {
	return &cli.Command{
		Name:      "scaffold",
		Usage:     "Create a Clean Architecture project skeleton",
		UsageText: "agentsync scaffold <name> [options]",
		Description: `Create the directory layout and seed files of a Clean Architecture
   project: domain, application, infrastructure, and presentation layers
   with dependencies pointing inward.

   Examples:
     agentsync scaffold billing
     agentsync scaffold billing --module example.com/billing -o ./services
     agentsync scaffold billing --manifest ./layout.yaml --dry-run`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   ".",
				Usage:   "Directory the project is created under",
			},
			&cli.StringFlag{
				Name:  "module",
				Usage: "Go module path (defaults to the project name)",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "Custom layout manifest (YAML or TOML)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Preview generated paths without creating files",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return errors.New("scaffold requires exactly 1 argument: <name>")
			}

			layout := scaffold.DefaultLayout()
			if manifest := cmd.String("manifest"); manifest != "" {
				var err error
				layout, err = scaffold.LoadLayout(manifest)
				if err != nil {
					return err
				}
			}

			data := scaffold.NewData(args.Get(0), cmd.String("module"))
			dryRun := cmd.Bool("dry-run")

			result, err := scaffold.NewGenerator(layout).Generate(cmd.String("output"), data, dryRun)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Println("Dry run - no files created")
			}
			fmt.Printf("Creating %s...\n", data.Name)
			for _, path := range result.Files {
				fmt.Printf("  %s %s\n", ui.Success(ui.SymbolSuccess), path)
			}
			if !dryRun {
				fmt.Println(ui.StatusSuccess(fmt.Sprintf("Project %q created", data.Name)))
			}
			return nil
		},
	}
}
