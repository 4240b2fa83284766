package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRootCommandMetadata(t *testing.T) {
	if rootCmd.Use != "cpitd [paths...]" {
		t.Errorf("expected Use='cpitd [paths...]', got %q", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("root command should have a short description")
	}
	if rootCmd.Version == "" {
		t.Error("root command should have a version set")
	}
}

func TestVerboseFlag(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("verbose")
	if f == nil {
		t.Fatal("verbose flag not registered")
	}
	if f.Shorthand != "v" {
		t.Errorf("verbose shorthand should be 'v', got %q", f.Shorthand)
	}
	if f.DefValue != "false" {
		t.Errorf("verbose default should be 'false', got %q", f.DefValue)
	}
}

func TestExpectedFlagsRegistered(t *testing.T) {
	for _, name := range []string{"min-tokens", "normalize", "format", "ignore", "languages", "suppress", "config"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %q not registered", name)
		}
	}
}

func TestSilenceErrors(t *testing.T) {
	if !rootCmd.SilenceErrors {
		t.Error("root command should have SilenceErrors=true")
	}
}

func TestExecute_HelpDoesNotPanic(t *testing.T) {
	rootCmd.SetArgs([]string{"--help"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	_ = rootCmd.Execute()
}

func TestRunScan_NoCloneExitsZero(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\nfunc F() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetArgs([]string{dir})
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("expected nil error for no-clone scan, got %v", err)
	}
}

func TestRunScan_InvalidFormatIsConfigError(t *testing.T) {
	dir := t.TempDir()

	rootCmd.SetArgs([]string{"--format", "xml", dir})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected an error for an invalid --format value")
	}
}
