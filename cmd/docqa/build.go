package main

import (
	"fmt"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/crawl"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	if !c.Force {
		idx, err := deps.Manager.EnsureIndex(deps.Ctx, c.Collection, false)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Index for %s ready: %d sections\n", c.Collection, idx.Len())
		return nil
	}

	res, err := deps.Manager.BuildCollection(deps.Ctx, c.Collection, func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %s\n", e)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  %s\n", e)
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Built %s: %d sections from %d documents (%d skipped), %s\n",
		c.Collection,
		res.Index.Len(),
		len(res.Crawl.Documents),
		res.Crawl.Failed,
		crawl.FormatBytes(res.Bytes),
	)
	return nil
}
