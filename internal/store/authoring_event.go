package store

import "context"

func (s *MemoryStore) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return s.append(ctx, Event{Kind: KindLLMRequest, LLMRequest: &data})
}

func (s *MemoryStore) AppendDraftOutcome(ctx context.Context, data DraftEventData) error {
	return s.append(ctx, Event{Kind: KindDraft, Draft: &data})
}
