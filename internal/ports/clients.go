package ports

import "context"

// CompletionClient is the outbound port to the text-completion model used by
// the AiItemSuggestions context. Implemented by the AI adapter; called by
// the suggestions application service.
type CompletionClient interface {
	// Complete sends a prompt to the model and returns the response split
	// into non-empty lines. Returns domain.ErrUnavailable (wrapped) when
	// the downstream model cannot be reached.
	Complete(ctx context.Context, prompt string) ([]string, error)
}
