package main

import (
	"context"
	"io"

	"github.com/tickerlens/tickerlens"
	"github.com/tickerlens/tickerlens/crawl"
	"github.com/tickerlens/tickerlens/evidence"
	"github.com/tickerlens/tickerlens/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	DB         *sqlite.DB
	Documents  tickerlens.DocumentService
	Policy     *tickerlens.DomainPolicy
	Crawler    *crawl.Crawler
	Resolver   tickerlens.EntityResolver
	Aggregator *evidence.Aggregator
	Answerer   tickerlens.Answerer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Add   AddCmd   `cmd:"" help:"Crawl a news URL and store its articles"`
	Ask   AskCmd   `cmd:"" help:"Answer a stock question from stored articles and live market data"`
	Chat  ChatCmd  `cmd:"" help:"Interactive question answering session"`
	Docs  DocsCmd  `cmd:"" help:"Search stored articles and show their ranking"`
	Count CountCmd `cmd:"" help:"Show the number of stored articles"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	URL         string  `arg:"" help:"Seed article or section URL"`
	Depth       int     `short:"d" default:"1" help:"How many link levels to follow from the seed"`
	AllowDupes  bool    `help:"Store articles even when the URL already exists"`
	Concurrency int     `short:"c" default:"10" help:"Concurrent fetch limit per level"`
	RateLimit   float64 `default:"1.0" help:"Requests per second per domain"`
	Render      bool    `help:"Render pages in a headless browser before extraction"`
	Extractor   string  `default:"dom" enum:"dom,article" help:"Body extraction strategy (dom or article)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question      string  `arg:"" help:"Question about a company or its stock"`
	Limit         int     `short:"n" default:"10" help:"Maximum articles to retrieve"`
	TimebiasAlpha float64 `default:"1.0" help:"Weight of article freshness against relevance"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	Limit         int     `short:"n" default:"10" help:"Maximum articles to retrieve per question"`
	TimebiasAlpha float64 `default:"1.0" help:"Weight of article freshness against relevance"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Query         string  `arg:"" help:"Full-text search terms"`
	Limit         int     `short:"n" default:"10" help:"Maximum articles to show"`
	TimebiasAlpha float64 `default:"1.0" help:"Weight of article freshness against relevance"`
	Full          bool    `help:"Show article body text"`
}

// CountCmd is the "count" subcommand.
type CountCmd struct{}
