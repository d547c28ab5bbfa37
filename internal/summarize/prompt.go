package summarize

import (
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/pateldev/github-contributions/internal/domain"
)

// maxPromptTokens bounds the prompt size so a large report cannot blow the
// model's context window.
const maxPromptTokens = 3000

const promptEncoding = "cl100k_base"

// BuildPrompt assembles the summarization prompt from the pull request
// titles and descriptions, truncated to the given token budget.
func BuildPrompt(prs []domain.PullRequest, tokenBudget int) string {
	var b strings.Builder
	b.WriteString("Please summarize the following contributions for a software developer:\n\n")
	b.WriteString("PR Details:\n")
	for _, pr := range prs {
		body := pr.Body
		if body == "" {
			body = domain.NoDescription
		}
		fmt.Fprintf(&b, "Title: %s\n", pr.Title)
		fmt.Fprintf(&b, "Description: %s\n", body)
	}
	b.WriteString("Summary:")
	return truncateToTokens(b.String(), tokenBudget)
}

// truncateToTokens cuts text down to at most budget tokens. When the encoding
// is unavailable (tiktoken resolves encodings lazily and may need network
// access), a rough four-characters-per-token cap is applied instead.
func truncateToTokens(text string, budget int) string {
	enc, err := tiktoken.GetEncoding(promptEncoding)
	if err != nil {
		if limit := budget * 4; len(text) > limit {
			return text[:limit]
		}
		return text
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= budget {
		return text
	}
	return enc.Decode(tokens[:budget])
}
