package llm

import "context"

// PurposeDraft labels requests that draft problems for a topic.
const PurposeDraft = "problem-draft"

// Tag describes what a request is for. The journal records it with the
// request so usage can be traced back to a topic.
type Tag struct {
	Purpose   string
	TopicID   string
	Requested int
}

type tagKey struct{}

// WithTag attaches t to ctx.
func WithTag(ctx context.Context, t Tag) context.Context {
	return context.WithValue(ctx, tagKey{}, t)
}

// TagFrom returns the tag attached to ctx. Untagged requests report the
// purpose "untagged".
func TagFrom(ctx context.Context) Tag {
	if t, ok := ctx.Value(tagKey{}).(Tag); ok {
		return t
	}
	return Tag{Purpose: "untagged"}
}
