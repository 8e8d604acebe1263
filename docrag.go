// Package docrag answers questions about a software product using its
// online documentation. It fetches documentation pages, splits them into
// overlapping chunks, indexes the chunks for semantic search, and grounds
// a language model's answer in the chunks retrieved for each question.
//
// This package contains domain types, interfaces, and pure helpers following
// Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, openai/).
package docrag

// Version is the release version reported in the HTTP User-Agent.
// It is overridden at build time with -ldflags.
var Version = "dev"
