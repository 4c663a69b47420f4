// Package authoring drafts candidate problems for a topic with an LLM.
// Drafts are for human review before they are added to a question bank;
// nothing here runs while a quiz is being taken.
package authoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/llm"
	"github.com/alevelmaths/alevel/internal/store"
)

// ErrNothingAccepted is returned when every drafted problem was rejected.
var ErrNothingAccepted = errors.New("no drafted problem passed validation")

// DraftInput describes the topic to draft problems for.
type DraftInput struct {
	Level    catalog.Level
	Topic    catalog.Topic
	Existing []catalog.Problem
}

// Rejection records a drafted problem that was dropped and why.
type Rejection struct {
	Problem catalog.Problem
	Reason  string
}

// DraftResult is the outcome of one drafting request.
type DraftResult struct {
	Level    catalog.Level
	Topic    catalog.Topic
	Accepted []catalog.Problem
	Rejected []Rejection
	Model    string
	Usage    llm.Usage
}

// Fragment returns the accepted problems as a bank topic entry, ready to
// be merged into a question bank file.
func (r *DraftResult) Fragment() catalog.TopicData {
	return catalog.TopicData{
		ID:          r.Topic.ID,
		Name:        r.Topic.Name,
		Description: r.Topic.Description,
		Problems:    r.Accepted,
	}
}

// Drafter asks an LLM for candidate problems.
type Drafter struct {
	provider llm.Provider
	config   Config
	journal  store.EventRepo
}

// Option configures a Drafter.
type Option func(*Drafter)

// WithJournal records each draft's accepted and rejected counts in repo.
func WithJournal(repo store.EventRepo) Option {
	return func(d *Drafter) { d.journal = repo }
}

// New creates a Drafter with the given provider and config.
func New(provider llm.Provider, cfg Config, opts ...Option) *Drafter {
	if cfg.Count <= 0 {
		cfg.Count = DefaultConfig().Count
	}
	d := &Drafter{provider: provider, config: cfg}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// draftOutput is the raw LLM response before validation.
type draftOutput struct {
	Problems []struct {
		Question string   `json:"question"`
		LaTeX    string   `json:"latex"`
		Hint     string   `json:"hint"`
		Answer   string   `json:"answer"`
		Solution []string `json:"solution"`
	} `json:"problems"`
}

// Draft requests problems for input.Topic, validates each one and drops
// duplicates of existing or earlier drafted questions.
func (d *Drafter) Draft(ctx context.Context, input DraftInput) (*DraftResult, error) {
	topicID := catalog.NewTopicID(input.Level, input.Topic.ID)
	ctx = llm.WithTag(ctx, llm.Tag{
		Purpose:   llm.PurposeDraft,
		TopicID:   topicID.String(),
		Requested: d.config.Count,
	})

	req := llm.Request{
		System:      systemPrompt,
		Prompt:      buildUserMessage(input, d.config),
		Schema:      DraftSchema,
		MaxTokens:   d.config.MaxTokens,
		Temperature: d.config.Temperature,
	}

	resp, err := d.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM drafting failed: %w", err)
	}

	var raw draftOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	result := &DraftResult{
		Level: input.Level,
		Topic: input.Topic,
		Model: resp.Model,
		Usage: resp.Usage,
	}

	seen := make(map[string]bool, len(input.Existing)+len(raw.Problems))
	for _, p := range input.Existing {
		seen[questionKey(p.Question)] = true
	}

	for _, o := range raw.Problems {
		p := catalog.Problem{
			Question: strings.TrimSpace(o.Question),
			LaTeX:    strings.TrimSpace(o.LaTeX),
			Hint:     strings.TrimSpace(o.Hint),
			Answer:   strings.TrimSpace(o.Answer),
			Solution: trimSteps(o.Solution),
		}
		if reason := d.check(p); reason != "" {
			result.Rejected = append(result.Rejected, Rejection{Problem: p, Reason: reason})
			continue
		}
		key := questionKey(p.Question)
		if seen[key] {
			result.Rejected = append(result.Rejected, Rejection{Problem: p, Reason: "duplicate question"})
			continue
		}
		seen[key] = true
		result.Accepted = append(result.Accepted, p)
	}

	d.record(ctx, topicID, result)
	if len(result.Accepted) == 0 {
		return result, ErrNothingAccepted
	}
	return result, nil
}

func (d *Drafter) record(ctx context.Context, id catalog.TopicID, r *DraftResult) {
	if d.journal == nil {
		return
	}
	// The draft itself is on stdout; a lost journal entry only costs the
	// usage summary a line.
	_ = d.journal.AppendDraftOutcome(ctx, store.DraftEventData{
		TopicID:   string(id),
		Model:     r.Model,
		Requested: d.config.Count,
		Accepted:  len(r.Accepted),
		Rejected:  len(r.Rejected),
	})
}

// check runs the validator chain and returns the first failure message.
func (d *Drafter) check(p catalog.Problem) string {
	for _, v := range d.config.Validators {
		if verr := v.Validate(p); verr != nil {
			return verr.Error()
		}
	}
	return ""
}

func trimSteps(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
