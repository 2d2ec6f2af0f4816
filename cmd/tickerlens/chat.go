package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/tickerlens/tickerlens"
)

// Run executes the chat command: a read-answer loop over stdin.
func (c *ChatCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Please include the name of the company or its ticker and your question in complete sentences.")
	fmt.Fprintln(deps.Stdout, "Enter 'exit' or 'quit' to end the conversation.")

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "tickerlens> ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if q := strings.ToLower(question); q == "exit" || q == "quit" {
			fmt.Fprintln(deps.Stdout, "Goodbye!")
			return nil
		}

		out, err := answer(deps, question, c.Limit, c.TimebiasAlpha)
		if err != nil {
			// One failed question should not end the session.
			fmt.Fprintf(deps.Stderr, "error: %s\n", tickerlens.ErrorMessage(err))
			continue
		}
		fmt.Fprintln(deps.Stdout, out)
	}

	return scanner.Err()
}
