// Package report provides output writers for extracted records and run
// summaries.
//
// This package contains writers for different output formats:
//   - PSVWriter: The pipe-delimited record output (the primary artifact)
//   - JSONWriter: Structured JSON output for tool integration
//   - SummaryWriter: Markdown run summary for humans
//
// Design decision: We separate writing from the data structures (which
// are in the model package) so new output formats can be added without
// touching the core types. Record writers implement the Writer interface,
// allowing them to be composed with MultiWriter for multi-destination
// output.
package report
