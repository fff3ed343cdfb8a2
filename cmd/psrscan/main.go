// Package main provides the entry point for the psrscan CLI.
//
// psrscan extracts daily power reactor status records from the NRC's 1999
// Power Reactor Status Report archive into a pipe-delimited dataset.
//
// Usage:
//
//	psrscan scrape
//	psrscan export --json
//
// See --help for all available options.
package main

// main is the entry point for psrscan.
func main() {
	Execute()
}
