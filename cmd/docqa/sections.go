package main

import (
	"fmt"

	"github.com/fwojciec/docqa"
)

// Run executes the sections command.
func (c *SectionsCmd) Run(deps *Dependencies) error {
	refs, err := deps.Answerer.ListSections(deps.Ctx, c.Collection)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps, refs)
	}

	if len(refs) == 0 {
		fmt.Fprintf(deps.Stdout, "No sections found for %s.\n", c.Collection)
		return nil
	}

	fmt.Fprintln(deps.Stdout, docqa.FormatSections(refs))
	return nil
}
