// Package llm sends single-turn, schema-constrained prompts to a hosted
// language model. The draft command uses it to propose new problems for
// a topic; quizzes never call it.
package llm

import (
	"context"
	"encoding/json"

	"github.com/alevelmaths/alevel/internal/schema"
)

// Provider generates one structured reply per request.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the concrete model requests are sent to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, is passed to the provider's structured output
	// mode and the reply is validated against it before it is returned.
	Schema *schema.Document

	MaxTokens   int
	Temperature float64
}

// Stop reasons reported in Response.Stop.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is a provider reply.
type Response struct {
	// Content is the reply JSON. Without a schema it is whatever text the
	// model produced.
	Content json.RawMessage
	Usage   Usage
	Model   string
	Stop    string
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// checkReply validates content against the request schema and turns a
// truncated reply into an error, since half a JSON document is useless.
func checkReply(provider string, req Request, content json.RawMessage, stop string) error {
	if stop == StopMaxTokens {
		return &Error{Kind: KindTruncated, Provider: provider}
	}
	if req.Schema == nil {
		return nil
	}
	if err := req.Schema.Validate(content); err != nil {
		return &Error{Kind: KindMalformed, Provider: provider, Err: err}
	}
	return nil
}
