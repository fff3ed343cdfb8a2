// Package fetch retrieves the daily report pages over HTTP with an
// on-disk cache in front of the network.
//
// The Fetcher resolves a report date to its archive URL, serves the page
// from the cache when present, and otherwise fetches it with bounded
// retries and a politeness delay, persisting the body for future runs.
//
// Design decision: The cache is a directory of plain HTML files keyed by
// date rather than a database because:
//  1. The cache contract is "safe to delete at any time"; a directory of
//     files makes that obvious and foolproof
//  2. Individual pages stay inspectable with ordinary tools
//  3. The extracted records, which benefit from queryability, live in
//     SQLite separately (see the database package)
package fetch
