package outreach

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/wildcast/wildcast/internal/model"
)

// Completer produces one text completion for a prompt. Satisfied by the
// Anthropic-backed implementation below; tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AnthropicCompleter calls the Anthropic Messages API.
type AnthropicCompleter struct {
	client anthropic.Client
	model  string
}

// NewAnthropicCompleter creates a Completer backed by the Anthropic API.
func NewAnthropicCompleter(apiKey, model string) *AnthropicCompleter {
	return &AnthropicCompleter{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Complete sends a single user message and returns the concatenated text.
func (c *AnthropicCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "outreach: anthropic completion")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// AIDrafter rewrites a deterministic draft into a personalized one using the
// match reasons as grounding. Optional: the deterministic drafts remain the
// product default and the fallback on any error.
type AIDrafter struct {
	completer Completer
}

// NewAIDrafter creates an AIDrafter over the given completer.
func NewAIDrafter(completer Completer) *AIDrafter {
	return &AIDrafter{completer: completer}
}

// Polish rewrites the given draft for one match. On completion failure the
// original draft is returned unchanged so outreach never blocks on the API.
func (d *AIDrafter) Polish(ctx context.Context, draft EmailDraft, match model.ContactMatch, info model.PodcastInfo) EmailDraft {
	prompt := fmt.Sprintf(`Rewrite the following podcast sponsorship outreach email. Keep it under 180 words, keep the sender placeholder [Your Name], and keep the listen link. Personalize it using these facts about the recipient:
- Name: %s %s, %s at %s
- Why they matched: %s

Email to rewrite:
%s`,
		match.FirstName, match.LastName, match.Title, match.Company,
		strings.Join(match.MatchReasons, "; "), draft.Content)

	text, err := d.completer.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		zap.L().Warn("outreach: ai polish failed, using deterministic draft",
			zap.String("draft", draft.ID),
			zap.Error(err),
		)
		return draft
	}

	return EmailDraft{
		ID:      draft.ID + "-ai",
		Name:    draft.Name + " (AI)",
		Content: strings.TrimSpace(text),
	}
}
