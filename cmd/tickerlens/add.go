package main

import (
	"fmt"

	"github.com/tickerlens/tickerlens"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	result, err := deps.Crawler.Crawl(deps.Ctx, c.URL, c.Depth)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tickerlens.ErrorMessage(err))
		return err
	}

	for _, outcome := range result.Outcomes {
		if outcome.Err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", outcome.URL, outcome.Err)
		}
	}

	fmt.Fprintf(deps.Stdout, "Saved %d articles (%d duplicates, %d rejected, %d failed)\n",
		result.Saved, result.Duplicates, result.Rejected, result.Failed)
	return nil
}
