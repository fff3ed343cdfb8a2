package config

import (
	"errors"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected
// default values. This serves as living documentation of the defaults: the
// test fails if a default changes unintentionally.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default BaseURL is the 1999 archive", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseURL != "https://www.nrc.gov/reading-rm/doc-collections/event-status/reactor-status/1999" {
			t.Errorf("unexpected BaseURL: %s", cfg.BaseURL)
		}
	})

	t.Run("default OutputFile is the published dataset path", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputFile != "output/nrc_reactor_status_1999.psv" {
			t.Errorf("unexpected OutputFile: %s", cfg.OutputFile)
		}
	})

	t.Run("default CacheDir is under the working directory", func(t *testing.T) {
		t.Parallel()
		if cfg.CacheDir != ".cache/nrc_1999_html" {
			t.Errorf("unexpected CacheDir: %s", cfg.CacheDir)
		}
	})

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default Retries is 5", func(t *testing.T) {
		t.Parallel()
		if cfg.Retries != 5 {
			t.Errorf("expected Retries to be 5, got %d", cfg.Retries)
		}
	})

	t.Run("default RetryBackoff is 1.25 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.RetryBackoff != 1250*time.Millisecond {
			t.Errorf("expected RetryBackoff to be 1.25s, got %v", cfg.RetryBackoff)
		}
	})

	t.Run("default FetchDelay is 500 milliseconds", func(t *testing.T) {
		t.Parallel()
		if cfg.FetchDelay != 500*time.Millisecond {
			t.Errorf("expected FetchDelay to be 500ms, got %v", cfg.FetchDelay)
		}
	})

	t.Run("default SaveToDB is true", func(t *testing.T) {
		t.Parallel()
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to be true")
		}
	})

	t.Run("default NoCache is false", func(t *testing.T) {
		t.Parallel()
		if cfg.NoCache {
			t.Error("expected NoCache to be false")
		}
	})

	t.Run("default DBDir is set", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir == "" {
			t.Error("expected DBDir to be non-empty")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("default config is valid", func(t *testing.T) {
		t.Parallel()
		if err := NewConfig().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("empty base URL returns ErrInvalidBaseURL", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.BaseURL = ""

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidBaseURL) {
			t.Errorf("expected ErrInvalidBaseURL, got %v", err)
		}
	})

	t.Run("relative base URL returns ErrInvalidBaseURL", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.BaseURL = "/reading-rm/1999"

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidBaseURL) {
			t.Errorf("expected ErrInvalidBaseURL, got %v", err)
		}
	})

	t.Run("non-http scheme returns ErrInvalidBaseURL", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.BaseURL = "ftp://www.nrc.gov/1999"

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidBaseURL) {
			t.Errorf("expected ErrInvalidBaseURL, got %v", err)
		}
	})

	t.Run("empty output file returns ErrNoOutputFile", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.OutputFile = ""

		if err := cfg.Validate(); !errors.Is(err, ErrNoOutputFile) {
			t.Errorf("expected ErrNoOutputFile, got %v", err)
		}
	})

	t.Run("zero timeout returns ErrInvalidTimeout", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Timeout = 0

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("zero retries returns ErrInvalidRetries", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Retries = 0

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidRetries) {
			t.Errorf("expected ErrInvalidRetries, got %v", err)
		}
	})

	t.Run("negative backoff returns ErrInvalidRetryBackoff", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.RetryBackoff = -time.Second

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidRetryBackoff) {
			t.Errorf("expected ErrInvalidRetryBackoff, got %v", err)
		}
	})

	t.Run("zero backoff is valid", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.RetryBackoff = 0

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("negative fetch delay returns ErrInvalidFetchDelay", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.FetchDelay = -time.Second

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidFetchDelay) {
			t.Errorf("expected ErrInvalidFetchDelay, got %v", err)
		}
	})

	t.Run("negative max body size returns ErrInvalidMaxBodySize", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.MaxBodySize = -1

		if err := cfg.Validate(); !errors.Is(err, ErrInvalidMaxBodySize) {
			t.Errorf("expected ErrInvalidMaxBodySize, got %v", err)
		}
	})
}

func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if XDGDataDir() == "" {
		t.Error("expected XDGDataDir to be non-empty")
	}
	if XDGConfigDir() == "" {
		t.Error("expected XDGConfigDir to be non-empty")
	}
	if XDGCacheDir() == "" {
		t.Error("expected XDGCacheDir to be non-empty")
	}
}
