// File: services/ai/phraser.go
package ai

import (
	"context"
	"fmt"
	"strings"

	"farewise/utils"

	"go.uber.org/zap"
)

const phrasePrompt = `Rewrite this travel-assistant message so it sounds natural and friendly.
Keep it to one short sentence and keep every fact exactly as given.
Reply with only the rewritten sentence.

Message: %q`

// ReplyPhraser optionally rewords a templated reply before it goes out.
type ReplyPhraser interface {
	Phrase(ctx context.Context, reply string) string
}

// PlainPhraser returns replies untouched. Used when no model is configured
// and in tests.
type PlainPhraser struct{}

func (PlainPhraser) Phrase(_ context.Context, reply string) string { return reply }

// GeminiPhraser rewords replies through the model, falling back to the
// template on any failure so a model outage never breaks the dialogue.
type GeminiPhraser struct {
	Gen TextGenerator
}

func (g *GeminiPhraser) Phrase(ctx context.Context, reply string) string {
	out, err := g.Gen.GenerateContent(ctx, fmt.Sprintf(phrasePrompt, reply))
	if err != nil {
		utils.GetLogger().Warn("reply phrasing failed", zap.Error(err))
		return reply
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return reply
	}
	return out
}
