// Package suggestions provides the application service of the
// AiItemSuggestions bounded context. It fetches a list snapshot from the
// ToDoLists context through the bus (never importing its domain), builds a
// completion prompt, calls the model client, and filters the raw output
// into usable item titles. Suggestions are returned to the caller, never
// written to the list.
package suggestions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskfolio/taskfolio/internal/bus"
	"github.com/taskfolio/taskfolio/internal/contracts"
	"github.com/taskfolio/taskfolio/internal/domain/suggestion"
	"github.com/taskfolio/taskfolio/internal/ports"
)

// SuggestItems asks the model for new item titles for one list. Count 0
// selects the default.
type SuggestItems struct {
	OwnerID string
	ListID  string
	Count   int
}

// Suggestions is the reply: proposed item titles, deduplicated against the
// list's existing items. May hold fewer titles than requested, or none,
// when the model output is thin.
type Suggestions struct {
	ListID string
	Titles []string
}

// Service implements the AiItemSuggestions use case.
type Service struct {
	completions ports.CompletionClient
	bus         ports.Bus
	logger      *slog.Logger
}

// NewService creates the suggestions application service. A nil logger
// discards all output.
func NewService(completions ports.CompletionClient, b ports.Bus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		completions: completions,
		bus:         b,
		logger:      logger,
	}
}

// SuggestItems returns up to Count new item titles for the list. Ownership
// and existence checks ride on the snapshot query answered by the ToDoLists
// context.
func (s *Service) SuggestItems(ctx context.Context, cmd SuggestItems) (Suggestions, error) {
	count, err := suggestion.ValidateCount(cmd.Count)
	if err != nil {
		return Suggestions{}, err
	}

	snapshot, err := bus.Invoke[contracts.ListSnapshotQuery, contracts.ListSnapshot](ctx, s.bus,
		contracts.ListSnapshotQuery{ListID: cmd.ListID, OwnerID: cmd.OwnerID})
	if err != nil {
		return Suggestions{}, err
	}

	prompt := suggestion.BuildPrompt(snapshot.Title, snapshot.ItemTitles, count)

	lines, err := s.completions.Complete(ctx, prompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "completion request failed",
			slog.String("operation", "SuggestItems"),
			slog.String("list_id", cmd.ListID),
			slog.Any("error", err),
		)
		return Suggestions{}, fmt.Errorf("requesting completion: %w", err)
	}

	titles := suggestion.FilterCandidates(lines, snapshot.ItemTitles, count)
	s.logger.InfoContext(ctx, "suggestions generated",
		slog.String("list_id", cmd.ListID),
		slog.Int("requested", count),
		slog.Int("returned", len(titles)),
	)
	return Suggestions{ListID: snapshot.ListID, Titles: titles}, nil
}

// Register wires the service's handler onto the bus.
func Register(b *bus.Bus, s *Service) {
	bus.Handle(b, s.SuggestItems)
}
