// Package config provides configuration structures and utilities for psrscan.
// It defines the main configuration options for fetching the NRC 1999 daily
// status pages, caching, extraction, and output generation.
package config
