package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScaffoldCommandCreatesProject(t *testing.T) {
	out := t.TempDir()

	cmd := scaffoldCommand()
	if err := cmd.Run(context.Background(), []string{"scaffold", "demo-svc", "-o", out}); err != nil {
		t.Fatalf("scaffold failed: %v", err)
	}

	for _, rel := range []string{
		"go.mod",
		filepath.Join("cmd", "demo-svc", "main.go"),
		filepath.Join("internal", "domain", "errors.go"),
		filepath.Join("internal", "presentation", "cli", "cli.go"),
	} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("expected %s to exist: %v", rel, err)
		}
	}
}

func TestScaffoldCommandDryRun(t *testing.T) {
	out := t.TempDir()

	cmd := scaffoldCommand()
	if err := cmd.Run(context.Background(), []string{"scaffold", "demo", "-o", out, "--dry-run"}); err != nil {
		t.Fatalf("scaffold dry run failed: %v", err)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("failed to read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run must not create files, found %d entries", len(entries))
	}
}

func TestScaffoldCommandRequiresName(t *testing.T) {
	cmd := scaffoldCommand()
	err := cmd.Run(context.Background(), []string{"scaffold"})
	if err == nil || !strings.Contains(err.Error(), "exactly 1 argument") {
		t.Errorf("expected argument error, got: %v", err)
	}
}

func TestValidateCommandOnScaffoldedProject(t *testing.T) {
	out := t.TempDir()

	if err := scaffoldCommand().Run(context.Background(), []string{"scaffold", "demo", "-o", out}); err != nil {
		t.Fatalf("scaffold failed: %v", err)
	}

	cmd := validateCommand()
	if err := cmd.Run(context.Background(), []string{"validate", filepath.Join(out, "internal"), "--strict"}); err != nil {
		t.Errorf("a fresh scaffold should pass strict validation: %v", err)
	}
}

func TestValidateCommandStrictFailsOnViolation(t *testing.T) {
	src := t.TempDir()
	dir := filepath.Join(src, "domain")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	bad := "package domain\n\nimport \"net/http\"\n\nvar _ = http.DefaultClient\n"
	if err := os.WriteFile(filepath.Join(dir, "entity.go"), []byte(bad), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	cmd := validateCommand()
	err := cmd.Run(context.Background(), []string{"validate", src, "--strict"})
	if err == nil {
		t.Fatal("expected strict validation to fail")
	}
	if !strings.Contains(err.Error(), "violation") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateCommandMissingDir(t *testing.T) {
	cmd := validateCommand()
	err := cmd.Run(context.Background(), []string{"validate", filepath.Join(t.TempDir(), "nope")})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected missing-directory error, got: %v", err)
	}
}

func TestRunVersion(t *testing.T) {
	if err := Run(context.Background(), []string{"agentsync", "version"}); err != nil {
		t.Errorf("version command failed: %v", err)
	}
}
