package llm

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alevelmaths/alevel/internal/store"
)

type journaled struct {
	inner    Provider
	provider string
	repo     store.EventRepo
	warn     io.Writer
}

// WithJournal records every request sent through p as an LLM request
// event, tagged with the Tag on the request context.
func WithJournal(p Provider, providerName string, repo store.EventRepo) Provider {
	return &journaled{inner: p, provider: providerName, repo: repo, warn: os.Stderr}
}

func (j *journaled) ModelID() string { return j.inner.ModelID() }

func (j *journaled) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := j.inner.Generate(ctx, req)

	tag := TagFrom(ctx)
	ev := store.LLMRequestEventData{
		Provider:  j.provider,
		Model:     j.inner.ModelID(),
		Purpose:   tag.Purpose,
		TopicID:   tag.TopicID,
		Requested: tag.Requested,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		Prompt:    req.Prompt,
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.Reply = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	// A lost journal entry only affects the usage report, not the draft.
	if jerr := j.repo.AppendLLMRequest(context.WithoutCancel(ctx), ev); jerr != nil {
		fmt.Fprintf(j.warn, "warning: journal LLM request: %v\n", jerr)
	}
	return resp, err
}
