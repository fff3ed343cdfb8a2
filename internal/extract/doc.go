// Package extract turns one day's report page HTML into unit status records.
//
// The daily pages carry a table whose header row names a "Unit" column, a
// "Power" column, and a "Reason or Comment" column. The extractor locates
// that table, maps the columns by header text, and yields one record per
// well-formed data row. Rows that don't match the expected shape produce
// nothing; a page with no matching table is a normal zero-record day.
//
// Design decision: We parse with goquery rather than regular expressions
// or a hand-rolled tokenizer because:
//  1. The 1999-era pages are hand-authored HTML with unclosed tags that
//     only a real HTML parser handles predictably
//  2. Selector-based traversal keeps the table-location logic declarative
//  3. goquery builds on x/net/html, which tolerates malformed markup
package extract
