// Package tickerlens answers natural-language questions about companies and
// markets. It combines three evidence sources — a locally indexed article
// store, live structured financial data, and crawled web pages — into a
// bounded evidence bundle consumed by a generative model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, finnhub/,
// gemini/).
package tickerlens
