package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docqa"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	if strings.TrimSpace(c.Question) == "" {
		err := docqa.Errorf(docqa.EINVALID, "question must not be empty")
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	answer, err := deps.Answerer.AnswerQuestion(deps.Ctx, c.Question, c.Collection, c.TopK)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docqa.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps, answer)
	}

	fmt.Fprintln(deps.Stdout, docqa.FormatAnswer(answer))
	return nil
}

func writeJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
