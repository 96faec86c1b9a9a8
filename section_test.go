package docqa_test

import (
	"testing"

	"github.com/fwojciec/docqa"
	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: " \n\t ", want: ""},
		{name: "collapses runs", input: "Back  up\n\nyour\tdata", want: "Back up your data"},
		{name: "trims ends", input: "  Upgrade Steps  ", want: "Upgrade Steps"},
		{name: "non-breaking spaces", input: "ten\u00a0\u00a0minutes", want: "ten minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, docqa.CleanText(tt.input))
		})
	}
}

func TestSection_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts heading and content", func(t *testing.T) {
		t.Parallel()

		s := &docqa.Section{Heading: "Upgrade Steps", Content: "Run the installer."}
		assert.NoError(t, s.Validate())
	})

	t.Run("rejects blank heading", func(t *testing.T) {
		t.Parallel()

		s := &docqa.Section{Heading: "  ", Content: "Run the installer."}
		assert.Equal(t, docqa.EINVALID, docqa.ErrorCode(s.Validate()))
	})

	t.Run("rejects whitespace-only content", func(t *testing.T) {
		t.Parallel()

		s := &docqa.Section{Heading: "Upgrade Steps", Content: "\n\t "}
		assert.Equal(t, docqa.EINVALID, docqa.ErrorCode(s.Validate()))
	})
}
