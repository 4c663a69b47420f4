package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// Reply is one scripted Fake response. A non-nil Err is returned instead
// of the content.
type Reply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// Fake replays scripted replies in order and records every request. It
// validates content against the request schema like the real providers.
// Selecting the "mock" provider returns a Fake with no replies.
type Fake struct {
	mu       sync.Mutex
	replies  []Reply
	requests []Request
}

// NewFake returns a Fake that will answer with replies in order.
func NewFake(replies ...Reply) *Fake {
	return &Fake{replies: replies}
}

func (f *Fake) ModelID() string { return ProviderMock }

func (f *Fake) Generate(_ context.Context, req Request) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if len(f.replies) == 0 {
		return nil, &Error{Kind: KindUnavailable, Provider: ProviderMock, Err: errors.New("no scripted reply left")}
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	if err := checkReply(ProviderMock, req, r.Content, StopEnd); err != nil {
		return nil, err
	}
	return &Response{Content: r.Content, Usage: r.Usage, Model: ProviderMock, Stop: StopEnd}, nil
}

// Requests returns a copy of the requests seen so far.
func (f *Fake) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}
