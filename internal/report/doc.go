// Package report renders login results for people and tools.
//
// Writers take the reports of one run (a single login or a batch) and
// render them as plain text, JSON or Markdown. Session tokens are masked
// unless a writer is created with WithShowTokens(true).
package report
