package main

import (
	"fmt"

	"github.com/tickerlens/tickerlens"
)

// Run executes the count command.
func (c *CountCmd) Run(deps *Dependencies) error {
	count, err := deps.Documents.Count(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tickerlens.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%d articles stored\n", count)
	return nil
}
