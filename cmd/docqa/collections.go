package main

import "fmt"

// Run executes the collections command.
func (c *CollectionsCmd) Run(deps *Dependencies) error {
	collections := deps.Collections.Collections()
	if len(collections) == 0 {
		fmt.Fprintln(deps.Stdout, "No collections configured. Set DOCQA_COLLECTIONS to a YAML file.")
		return nil
	}

	for _, col := range collections {
		fmt.Fprintf(deps.Stdout, "%s  %d documents\n", col.Key, len(col.DocumentIDs))
	}
	return nil
}
