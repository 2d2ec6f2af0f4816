package main

import (
	"fmt"

	"github.com/tickerlens/tickerlens"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := answer(deps, c.Question, c.Limit, c.TimebiasAlpha)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tickerlens.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}

// answer runs the full retrieval pipeline for one question: entity
// resolution, article ranking, evidence aggregation, answer generation.
func answer(deps *Dependencies, question string, limit int, timebiasAlpha float64) (string, error) {
	entities, err := deps.Resolver.Resolve(deps.Ctx, question)
	if err != nil {
		return "", err
	}

	candidates, err := deps.Documents.Query(deps.Ctx, question, tickerlens.SearchOptions{
		Limit:         limit,
		TimebiasAlpha: &timebiasAlpha,
		Policy:        deps.Policy,
	})
	if err != nil {
		return "", err
	}

	bundle, err := deps.Aggregator.Aggregate(deps.Ctx, question, entities, candidates)
	if err != nil {
		return "", err
	}

	return deps.Answerer.Answer(deps.Ctx, question, bundle)
}
