package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alevelmaths/alevel/internal/store"
)

func TestJournal_RecordsTaggedRequest(t *testing.T) {
	repo := store.NewMemoryStore(0)
	f := NewFake(Reply{
		Content: json.RawMessage(`{"problems":[]}`),
		Usage:   Usage{InputTokens: 120, OutputTokens: 40},
	})
	p := WithJournal(f, ProviderMock, repo)

	ctx := WithTag(context.Background(), Tag{Purpose: PurposeDraft, TopicID: "further-polar-coordinates", Requested: 4})
	_, err := p.Generate(ctx, Request{Prompt: "Topic: Polar Coordinates"})
	require.NoError(t, err)

	events, err := repo.Query(context.Background(), store.QueryOpts{Kind: store.KindLLMRequest})
	require.NoError(t, err)
	require.Len(t, events, 1)
	ev := events[0].LLMRequest
	assert.Equal(t, ProviderMock, ev.Provider)
	assert.Equal(t, PurposeDraft, ev.Purpose)
	assert.Equal(t, "further-polar-coordinates", ev.TopicID)
	assert.Equal(t, 4, ev.Requested)
	assert.Equal(t, 120, ev.InputTokens)
	assert.Equal(t, 40, ev.OutputTokens)
	assert.True(t, ev.Success)
	assert.Equal(t, "Topic: Polar Coordinates", ev.Prompt)
	assert.JSONEq(t, `{"problems":[]}`, ev.Reply)
}

func TestJournal_RecordsFailure(t *testing.T) {
	repo := store.NewMemoryStore(0)
	p := WithJournal(NewFake(), ProviderMock, repo)

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	events, _ := repo.Query(context.Background(), store.QueryOpts{Kind: store.KindLLMRequest})
	require.Len(t, events, 1)
	assert.False(t, events[0].LLMRequest.Success)
	assert.Equal(t, "untagged", events[0].LLMRequest.Purpose)
	assert.Contains(t, events[0].LLMRequest.ErrorMessage, "no scripted reply")
}

func TestJournal_WritesAfterCancel(t *testing.T) {
	repo := store.NewMemoryStore(0)
	var warn bytes.Buffer
	p := &journaled{inner: NewFake(okReply), provider: ProviderMock, repo: repo, warn: &warn}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// The fake ignores cancellation; the journal is written with a
	// detached context, so nothing is lost.
	_, err := p.Generate(ctx, Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Len())
	assert.Empty(t, warn.String())
}

func TestFake_ValidatesAgainstSchema(t *testing.T) {
	f := NewFake(Reply{Content: json.RawMessage(`{"answer": 4}`)})
	_, err := f.Generate(context.Background(), Request{Schema: testReplySchema})
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindMalformed, perr.Kind)
}
