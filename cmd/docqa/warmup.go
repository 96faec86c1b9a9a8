package main

import (
	"fmt"

	"github.com/fwojciec/docqa"
)

// Run executes the warmup command.
func (c *WarmupCmd) Run(deps *Dependencies) error {
	if err := deps.Manager.Warmup(deps.Ctx, c.Force); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	stats, err := deps.Manager.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	for _, s := range stats {
		fmt.Fprintf(deps.Stdout, "%-20s %4d documents  %5d sections\n", s.Key, s.Documents, s.Sections)
	}
	return nil
}
