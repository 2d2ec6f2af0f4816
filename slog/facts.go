package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/tickerlens/tickerlens"
)

// Ensure LoggingFactsService implements tickerlens.FactsService.
var _ tickerlens.FactsService = (*LoggingFactsService)(nil)

// LoggingFactsService wraps a FactsService with per-call logging.
type LoggingFactsService struct {
	next   tickerlens.FactsService
	logger *slog.Logger
}

// NewLoggingFactsService creates a new LoggingFactsService.
func NewLoggingFactsService(next tickerlens.FactsService, logger *slog.Logger) *LoggingFactsService {
	return &LoggingFactsService{next: next, logger: logger}
}

// FetchFacts delegates to the wrapped service and logs the operation.
func (s *LoggingFactsService) FetchFacts(ctx context.Context, symbol string) (facts *tickerlens.StructuredFacts, err error) {
	defer func(begin time.Time) {
		trends := 0
		if facts != nil {
			trends = len(facts.Trends)
		}
		s.logger.Info("facts fetch",
			"symbol", symbol,
			"trends", trends,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchFacts(ctx, symbol)
}

// Ensure LoggingSymbolLookup implements tickerlens.SymbolLookup.
var _ tickerlens.SymbolLookup = (*LoggingSymbolLookup)(nil)

// LoggingSymbolLookup wraps a SymbolLookup with per-call logging.
type LoggingSymbolLookup struct {
	next   tickerlens.SymbolLookup
	logger *slog.Logger
}

// NewLoggingSymbolLookup creates a new LoggingSymbolLookup.
func NewLoggingSymbolLookup(next tickerlens.SymbolLookup, logger *slog.Logger) *LoggingSymbolLookup {
	return &LoggingSymbolLookup{next: next, logger: logger}
}

// LookupSymbol delegates to the wrapped lookup and logs the operation.
func (l *LoggingSymbolLookup) LookupSymbol(ctx context.Context, name string) (result *tickerlens.LookupResult, err error) {
	defer func(begin time.Time) {
		count := 0
		if result != nil {
			count = result.Count
		}
		l.logger.Info("symbol lookup",
			"name", name,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.LookupSymbol(ctx, name)
}
