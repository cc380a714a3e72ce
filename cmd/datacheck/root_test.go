package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewRootCmd tests command wiring.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	if cmd.Use != "datacheck" {
		t.Errorf("got use %q, want datacheck", cmd.Use)
	}
	if !cmd.SilenceUsage || !cmd.SilenceErrors {
		t.Error("root command should silence cobra's usage and error output")
	}

	want := []string{"analyze", "history", "compare", "init", "version"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	if cmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("verbose persistent flag not registered")
	}
}

// TestVersionCmd tests version output.
func TestVersionCmd(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	cmd := NewVersionCmd()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "datacheck version") {
		t.Errorf("output missing version line:\n%s", out)
	}
	if !strings.Contains(out, "commit:") || !strings.Contains(out, "built:") {
		t.Errorf("output missing build metadata:\n%s", out)
	}
}

// TestGetVersion tests the version fallback chain.
func TestGetVersion(t *testing.T) {
	t.Parallel()

	if got := getVersion(); got == "" {
		t.Error("version should never be empty")
	}
	if got := getCommit(); got == "" {
		t.Error("commit should never be empty")
	}
	if got := getDate(); got == "" {
		t.Error("date should never be empty")
	}
}
