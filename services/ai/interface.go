// File: services/ai/interface.go
package ai

import "context"

// TextGenerator is the one capability the dialogue needs from a model
// backend. GeminiClient satisfies it; tests substitute a canned generator.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
