package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cleanarch/agentsync/internal/config"
	"github.com/cleanarch/agentsync/internal/discover"
	"github.com/cleanarch/agentsync/internal/scope"
	"github.com/cleanarch/agentsync/internal/sync"
	"github.com/cleanarch/agentsync/internal/ui"
	"github.com/cleanarch/agentsync/internal/ui/tui"
	"github.com/cleanarch/agentsync/internal/util"
)

// SyncOptions is the immutable flag state of one sync invocation.
type SyncOptions struct {
	// Mirror deletes destination files absent from the source.
	Mirror bool
	// DryRun previews the plan without touching the filesystem.
	DryRun bool
	// AutoConfirm skips the confirmation prompt.
	AutoConfirm bool
	// ForcedScope bypasses the interactive scope selection when non-empty.
	ForcedScope scope.Scope
	// BaseDir is the directory whose children are offered as sources.
	BaseDir string
	// Exclude lists extra directory names hidden from discovery.
	Exclude []string
	// UseTUI selects the full-screen picker instead of numbered menus.
	UseTUI bool
	// Subdir overrides the destination path under the scope root.
	Subdir string
}

// syncDeps carries the injectable collaborators of the sync flow, so tests
// can script the interaction.
type syncDeps struct {
	prompter *ui.Prompter
	resolver *scope.Resolver
	picker   func([]discover.Candidate) (tui.PickerResult, error)
	out      io.Writer
}

func defaultSyncDeps() syncDeps {
	return syncDeps{
		prompter: ui.NewStdPrompter(),
		resolver: scope.NewResolver(),
		picker:   tui.RunPicker,
		out:      os.Stdout,
	}
}

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Copy an agent directory into the project or home scope",
		UsageText: "agentsync sync [options]",
		Description: `Pick one of the agent directories under the base directory and copy it
   into the destination the agent runtime reads.

   By default extra destination files are preserved (merge). With --delete
   the destination is mirrored: files absent from the source are removed.

   Examples:
     agentsync sync
     agentsync sync --delete --project
     agentsync sync --dry-run --home`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "delete",
				Usage: "Mirror mode: delete destination files absent from the source",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Preview changes without modifying files",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
			&cli.BoolFlag{
				Name:  "home",
				Usage: "Sync into the home scope without asking",
			},
			&cli.BoolFlag{
				Name:  "project",
				Usage: "Sync into the current git repository without asking",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Base directory containing candidate agent directories",
			},
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "Use the full-screen picker (requires a terminal)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := syncOptionsFromFlags(cmd)
			if err != nil {
				return err
			}
			return runSync(ctx, opts, defaultSyncDeps())
		},
	}
}

// syncOptionsFromFlags merges config file defaults and flags into one options
// struct. Flags always win.
func syncOptionsFromFlags(cmd *cli.Command) (SyncOptions, error) {
	if cmd.Bool("home") && cmd.Bool("project") {
		return SyncOptions{}, errors.New("--home and --project are mutually exclusive")
	}

	cfg, err := config.Load()
	if err != nil {
		return SyncOptions{}, fmt.Errorf("failed to load config: %w", err)
	}

	opts := SyncOptions{
		Mirror:      cmd.Bool("delete") || cfg.MirrorByDefault(),
		DryRun:      cmd.Bool("dry-run"),
		AutoConfirm: cmd.Bool("yes"),
		BaseDir:     cfg.Discover.BaseDir,
		Exclude:     cfg.Discover.Exclude,
		UseTUI:      cmd.Bool("tui"),
		Subdir:      cfg.Sync.Subdir,
	}

	if dir := cmd.String("dir"); dir != "" {
		opts.BaseDir = dir
	}
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}
	opts.BaseDir = util.ExpandHome(opts.BaseDir)

	switch {
	case cmd.Bool("home"):
		opts.ForcedScope = scope.ScopeHome
	case cmd.Bool("project"):
		opts.ForcedScope = scope.ScopeProject
	}

	return opts, nil
}

// runSync drives the full sync flow: discover, select, resolve, confirm,
// execute. A declined confirmation is not an error.
func runSync(ctx context.Context, opts SyncOptions, deps syncDeps) error {
	candidates, err := discover.ListExcluding(opts.BaseDir, opts.Exclude)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no agent directories found under %q; create one next to this tool first", opts.BaseDir)
	}

	source, chosenScope, aborted, err := selectSourceAndScope(opts, deps, candidates)
	if err != nil {
		return err
	}
	if aborted {
		fmt.Fprintln(deps.out, "Aborted.")
		return nil
	}

	if opts.Subdir != "" {
		deps.resolver.Subdir = opts.Subdir
	}
	dest, err := deps.resolver.Resolve(ctx, chosenScope)
	if err != nil {
		if chosenScope == scope.ScopeProject {
			return fmt.Errorf("%w\nRun agentsync from inside a git repository, or choose --home", err)
		}
		return err
	}

	engine := sync.New(sync.Options{Mirror: opts.Mirror, DryRun: opts.DryRun})
	plan, err := engine.Plan(source.Path, dest.Path)
	if err != nil {
		return err
	}

	printHeader(deps.out, source, dest, engine.Options())
	plan.Render(deps.out)

	if !opts.DryRun && !opts.AutoConfirm {
		ok, err := deps.prompter.Confirm("\nProceed?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(deps.out, "Aborted.")
			return nil
		}
	}

	result, err := engine.Execute(ctx, plan)
	if err != nil {
		return err
	}

	fmt.Fprint(deps.out, "\n"+result.Summary())
	if !result.DryRun {
		fmt.Fprintln(deps.out, ui.StatusSuccess("Sync complete"))
	}
	return nil
}

// selectSourceAndScope picks the source candidate and destination scope via
// the configured interaction style. aborted is true when the user backed out
// of the TUI picker.
func selectSourceAndScope(opts SyncOptions, deps syncDeps, candidates []discover.Candidate) (discover.Candidate, scope.Scope, bool, error) {
	if opts.UseTUI {
		result, err := deps.picker(candidates)
		if err != nil {
			return discover.Candidate{}, "", false, err
		}
		if result.Action != tui.PickerActionSelect {
			return discover.Candidate{}, "", true, nil
		}
		chosenScope := result.Scope
		if opts.ForcedScope != "" {
			chosenScope = opts.ForcedScope
		}
		return result.Source, chosenScope, false, nil
	}

	idx, err := deps.prompter.Select("Select source directory:", discover.Names(candidates))
	if err != nil {
		return discover.Candidate{}, "", false, err
	}
	source := candidates[idx]

	if opts.ForcedScope != "" {
		return source, opts.ForcedScope, false, nil
	}

	scopes := scope.AllScopes()
	labels := make([]string, len(scopes))
	for i, s := range scopes {
		labels[i] = fmt.Sprintf("%s - %s", s, s.Description())
	}
	idx, err = deps.prompter.Select("Select destination scope:", labels)
	if err != nil {
		return discover.Candidate{}, "", false, err
	}

	return source, scopes[idx], false, nil
}

// printHeader shows what is about to happen before any mutation.
func printHeader(w io.Writer, source discover.Candidate, dest scope.Destination, opts sync.Options) {
	fmt.Fprintf(w, "\n%s\n", ui.Bold("Sync plan"))
	fmt.Fprintf(w, "  Source:      %s\n", source.Path)
	fmt.Fprintf(w, "  Destination: %s (%s)\n", dest.Path, dest.Label)
	fmt.Fprintf(w, "  Mode:        %s\n", opts.Mode())
	fmt.Fprintf(w, "  Dry run:     %v\n\n", opts.DryRun)
}
