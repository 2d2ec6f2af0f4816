package main

import (
	"fmt"

	"github.com/tickerlens/tickerlens"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	candidates, err := deps.Documents.Query(deps.Ctx, c.Query, tickerlens.SearchOptions{
		Limit:         c.Limit,
		TimebiasAlpha: &c.TimebiasAlpha,
		Policy:        deps.Policy,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tickerlens.ErrorMessage(err))
		return err
	}

	if len(candidates) == 0 {
		fmt.Fprintln(deps.Stdout, "No matching articles.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Articles matching %q (%d shown):\n\n", c.Query, len(candidates))
	for i, candidate := range candidates {
		doc := candidate.Document
		published := "unknown date"
		if doc.PublishedAt != nil {
			published = doc.PublishedAt.Format("2006-01-02")
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s (%s, score %.3f)\n     %s\n",
			i+1, doc.Title, published, candidate.Score(c.TimebiasAlpha), doc.URL)
		if c.Full {
			fmt.Fprintf(deps.Stdout, "     %s\n", doc.BodyText)
		}
	}

	return nil
}
