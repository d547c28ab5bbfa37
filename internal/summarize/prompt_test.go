package summarize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pateldev/github-contributions/internal/domain"
)

func TestBuildPrompt(t *testing.T) {
	prs := []domain.PullRequest{
		{Title: "Fix bug", Body: "Fixes #1"},
		{Title: "Add feature"},
	}

	prompt := BuildPrompt(prs, maxPromptTokens)

	assert.True(t, strings.HasPrefix(prompt, "Please summarize the following contributions for a software developer:"))
	assert.Contains(t, prompt, "Title: Fix bug\nDescription: Fixes #1\n")
	assert.Contains(t, prompt, "Title: Add feature\nDescription: "+domain.NoDescription+"\n")
	assert.True(t, strings.HasSuffix(prompt, "Summary:"))
}

func TestBuildPrompt_TruncatesLongInput(t *testing.T) {
	prs := []domain.PullRequest{
		{Title: "huge", Body: strings.Repeat("change description ", 5000)},
	}

	budget := 50
	prompt := BuildPrompt(prs, budget)

	// Regardless of whether the tokenizer or the character fallback applied,
	// the prompt must come out well under the unbounded size.
	assert.Less(t, len(prompt), budget*8)
	assert.True(t, strings.HasPrefix(prompt, "Please summarize"))
}
