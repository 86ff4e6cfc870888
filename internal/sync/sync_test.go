package sync

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// snapshot returns relative path -> content for every regular file under root.
// A missing root yields an empty snapshot.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	rels, err := relativeFiles(root)
	if err != nil {
		if os.IsNotExist(err) {
			return files
		}
		t.Fatalf("failed to snapshot %s: %v", root, err)
	}
	for _, rel := range rels {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatalf("failed to read %s: %v", rel, err)
		}
		files[rel] = string(data)
	}
	return files
}

func TestPlan_MergeCopiesEverySourceFile(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeFile(t, source, "a.md", "alpha")
	writeFile(t, source, "sub/b.md", "beta")

	engine := New(Options{})
	plan, err := engine.Plan(source, dest)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	wantCopies := []string{"a.md", "sub/b.md"}
	if !reflect.DeepEqual(plan.Copies(), wantCopies) {
		t.Errorf("expected copies %v, got %v", wantCopies, plan.Copies())
	}
	if len(plan.Deletes()) != 0 {
		t.Errorf("merge plan must have empty delete set, got %v", plan.Deletes())
	}
}

func TestPlan_MirrorComputesStaleSet(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeFile(t, source, "a.md", "alpha")
	writeFile(t, dest, "a.md", "old alpha")
	writeFile(t, dest, "stale.md", "stale")

	engine := New(Options{Mirror: true})
	plan, err := engine.Plan(source, dest)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if !reflect.DeepEqual(plan.Deletes(), []string{"stale.md"}) {
		t.Errorf("expected delete set [stale.md], got %v", plan.Deletes())
	}
	if !reflect.DeepEqual(plan.Copies(), []string{"a.md"}) {
		t.Errorf("expected copy set [a.md], got %v", plan.Copies())
	}

	// Deletions are ordered before copies for mirror safety.
	if plan.Operations[0].Action != ActionDelete {
		t.Errorf("expected first operation to be a delete, got %v", plan.Operations[0])
	}
}

func TestPlan_MirrorMissingDestination(t *testing.T) {
	source := t.TempDir()
	writeFile(t, source, "a.md", "alpha")
	dest := filepath.Join(t.TempDir(), "not-yet")

	engine := New(Options{Mirror: true})
	plan, err := engine.Plan(source, dest)
	if err != nil {
		t.Fatalf("Plan failed for missing destination: %v", err)
	}
	if len(plan.Deletes()) != 0 {
		t.Errorf("expected no deletes, got %v", plan.Deletes())
	}
}

func TestPlan_MissingSource(t *testing.T) {
	engine := New(Options{})
	if _, err := engine.Plan(filepath.Join(t.TempDir(), "gone"), t.TempDir()); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestExecute_MergeIntoEmptyDestination(t *testing.T) {
	source := t.TempDir()
	dest := filepath.Join(t.TempDir(), "agents")
	writeFile(t, source, "a.md", "alpha")
	writeFile(t, source, "sub/b.md", "beta")

	engine := New(Options{})
	plan, err := engine.Plan(source, dest)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	result, err := engine.Execute(context.Background(), plan)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Copied != 2 || result.Deleted != 0 {
		t.Errorf("expected 2 copied / 0 deleted, got %d / %d", result.Copied, result.Deleted)
	}

	want := map[string]string{"a.md": "alpha", "sub/b.md": "beta"}
	if got := snapshot(t, dest); !reflect.DeepEqual(got, want) {
		t.Errorf("expected destination %v, got %v", want, got)
	}
}

func TestExecute_MergePreservesExtraDestinationFiles(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeFile(t, source, "a.md", "new alpha")
	writeFile(t, dest, "a.md", "old alpha")
	writeFile(t, dest, "keep.md", "keep me")

	engine := New(Options{})
	plan, err := engine.Plan(source, dest)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if _, err := engine.Execute(context.Background(), plan); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := map[string]string{"a.md": "new alpha", "keep.md": "keep me"}
	if got := snapshot(t, dest); !reflect.DeepEqual(got, want) {
		t.Errorf("expected destination %v, got %v", want, got)
	}
}

func TestExecute_MirrorRemovesStaleFiles(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeFile(t, source, "a.md", "alpha")
	writeFile(t, dest, "a.md", "old")
	writeFile(t, dest, "stale.md", "stale")
	writeFile(t, dest, "old/nested.md", "nested")

	engine := New(Options{Mirror: true})
	plan, err := engine.Plan(source, dest)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	result, err := engine.Execute(context.Background(), plan)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Copied != 1 || result.Deleted != 2 {
		t.Errorf("expected 1 copied / 2 deleted, got %d / %d", result.Copied, result.Deleted)
	}

	want := map[string]string{"a.md": "alpha"}
	if got := snapshot(t, dest); !reflect.DeepEqual(got, want) {
		t.Errorf("expected destination %v, got %v", want, got)
	}

	// The emptied directory is pruned.
	if _, err := os.Stat(filepath.Join(dest, "old")); !os.IsNotExist(err) {
		t.Errorf("expected emptied directory to be pruned, stat err: %v", err)
	}
}

func TestExecute_DryRunNeverMutates(t *testing.T) {
	for _, mirror := range []bool{false, true} {
		name := "merge"
		if mirror {
			name = "mirror"
		}
		t.Run(name, func(t *testing.T) {
			source := t.TempDir()
			dest := t.TempDir()
			writeFile(t, source, "a.md", "alpha")
			writeFile(t, dest, "stale.md", "stale")

			before := snapshot(t, dest)

			engine := New(Options{Mirror: mirror, DryRun: true})
			plan, err := engine.Plan(source, dest)
			if err != nil {
				t.Fatalf("Plan failed: %v", err)
			}
			result, err := engine.Execute(context.Background(), plan)
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}

			if !result.DryRun {
				t.Error("result should be flagged as dry-run")
			}
			if result.Copied != 1 {
				t.Errorf("expected 1 planned copy, got %d", result.Copied)
			}

			after := snapshot(t, dest)
			if !reflect.DeepEqual(before, after) {
				t.Errorf("dry run mutated destination: before %v, after %v", before, after)
			}
		})
	}
}

func TestExecute_DryRunDoesNotCreateDestination(t *testing.T) {
	source := t.TempDir()
	writeFile(t, source, "a.md", "alpha")
	dest := filepath.Join(t.TempDir(), "agents")

	engine := New(Options{DryRun: true})
	plan, err := engine.Plan(source, dest)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if _, err := engine.Execute(context.Background(), plan); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("dry run created destination, stat err: %v", err)
	}
}

func TestExecute_MergeIsIdempotent(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeFile(t, source, "a.md", "alpha")
	writeFile(t, source, "sub/b.md", "beta")

	engine := New(Options{})

	run := func() map[string]string {
		plan, err := engine.Plan(source, dest)
		if err != nil {
			t.Fatalf("Plan failed: %v", err)
		}
		if _, err := engine.Execute(context.Background(), plan); err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		return snapshot(t, dest)
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("merge sync not idempotent: first %v, second %v", first, second)
	}
}

func TestExecute_PreservesFileMode(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	writeFile(t, source, "run.sh", "#!/bin/sh\n")
	if err := os.Chmod(filepath.Join(source, "run.sh"), 0o755); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}

	engine := New(Options{})
	plan, err := engine.Plan(source, dest)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if _, err := engine.Execute(context.Background(), plan); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dest, "run.sh"))
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("expected mode 0755, got %v", info.Mode().Perm())
	}
}

func TestPlanRender(t *testing.T) {
	plan := &Plan{
		Operations: []Operation{
			{Path: "stale.md", Action: ActionDelete},
			{Path: "a.md", Action: ActionCopy},
		},
	}

	var buf bytes.Buffer
	plan.Render(&buf)

	want := "  delete stale.md\n  copy   a.md\n"
	if buf.String() != want {
		t.Errorf("expected render %q, got %q", want, buf.String())
	}
}

func TestResultSummary(t *testing.T) {
	r := &Result{Copied: 2, Deleted: 1, Mirror: true, DryRun: true}
	summary := r.Summary()

	for _, want := range []string{"Dry run", "mirror mode", "Copied:  2", "Deleted: 1"} {
		if !bytes.Contains([]byte(summary), []byte(want)) {
			t.Errorf("summary missing %q: %s", want, summary)
		}
	}
}

func TestOptionsMode(t *testing.T) {
	if (Options{}).Mode() != "merge" {
		t.Error("default mode should be merge")
	}
	if (Options{Mirror: true}).Mode() != "mirror" {
		t.Error("mirror option should report mirror mode")
	}
}
