package main

import (
	"testing"
)

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("command has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "psrscan" {
			t.Errorf("expected Use to be 'psrscan', got %q", cmd.Use)
		}
	})

	t.Run("has all subcommands", func(t *testing.T) {
		t.Parallel()

		want := map[string]bool{
			"scrape":  false,
			"export":  false,
			"init":    false,
			"version": false,
		}

		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Name()]; ok {
				want[sub.Name()] = true
			}
		}

		for name, found := range want {
			if !found {
				t.Errorf("expected subcommand %q to be registered", name)
			}
		}
	})

	t.Run("has persistent verbose flag", func(t *testing.T) {
		t.Parallel()

		if cmd.PersistentFlags().Lookup("verbose") == nil {
			t.Error("expected persistent flag 'verbose'")
		}
		if cmd.PersistentFlags().Lookup("log-json") == nil {
			t.Error("expected persistent flag 'log-json'")
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()

		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

func TestNewScrapeCmdFlags(t *testing.T) {
	t.Parallel()

	cmd := NewScrapeCmd()

	flags := []string{
		"out", "summary", "cache-dir", "no-cache", "base-url",
		"timeout", "retries", "retry-backoff", "delay", "user-agent",
		"ignore-robots", "no-db", "db-dir", "config",
	}
	for _, name := range flags {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag %q to be registered", name)
		}
	}
}

func TestNewExportCmdFlags(t *testing.T) {
	t.Parallel()

	cmd := NewExportCmd()

	for _, name := range []string{"json", "pretty", "output", "db-dir"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag %q to be registered", name)
		}
	}
}
