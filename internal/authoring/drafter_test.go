package authoring

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/llm"
	"github.com/alevelmaths/alevel/internal/store"
)

func testInput() DraftInput {
	return DraftInput{
		Level: catalog.LevelFurther,
		Topic: catalog.Topic{ID: "polar-coordinates", Name: "Polar Coordinates", Description: "Polar curves"},
		Existing: []catalog.Problem{
			{Question: "Convert the polar point (2, 0) to Cartesian x.", Answer: "2", Solution: []string{"x = r cos θ = 2"}},
		},
	}
}

func draftJSON() json.RawMessage {
	return json.RawMessage(`{"problems": [
		{"question": "Find r when x = 3 and y = 4.", "latex": "r = \\sqrt{x^{2} + y^{2}}", "hint": "", "answer": "5", "solution": ["r = sqrt(9 + 16)", "r = 5"]},
		{"question": "Convert the polar point (2, 0) to Cartesian x!", "latex": "", "hint": "", "answer": "2", "solution": ["x = 2"]},
		{"question": "State the curve r = 2.", "latex": "", "hint": "", "answer": "a circle of radius 2 centred at the origin", "solution": ["constant r"]},
		{"question": "Find the gradient of r = θ at θ = 0.", "latex": "\\badmacro{r}", "hint": "", "answer": "0", "solution": ["dy/dx = 0"]},
		{"question": "What is θ for the point (0, 1)? Give it as a fraction of pi.", "latex": "", "hint": "Sketch it.", "answer": " pi/2 ", "solution": [" θ = π/2 ", ""]},
		{"question": "Find r when x = 3 and y = 4", "latex": "", "hint": "", "answer": "5", "solution": ["5"]}
	]}`)
}

func TestDraft_FiltersAndDedups(t *testing.T) {
	mock := llm.NewFake(llm.Reply{
		Content: draftJSON(),
		Usage:   llm.Usage{InputTokens: 300, OutputTokens: 200},
	})
	d := New(mock, DefaultConfig())

	res, err := d.Draft(context.Background(), testInput())
	require.NoError(t, err)

	require.Len(t, res.Accepted, 2)
	assert.Equal(t, "5", res.Accepted[0].Answer)
	assert.Equal(t, "pi/2", res.Accepted[1].Answer)
	assert.Equal(t, []string{"θ = π/2"}, res.Accepted[1].Solution)

	require.Len(t, res.Rejected, 4)
	reasons := make([]string, len(res.Rejected))
	for i, r := range res.Rejected {
		reasons[i] = r.Reason
	}
	assert.Equal(t, "duplicate question", reasons[0])
	assert.Contains(t, reasons[1], "answer-form")
	assert.Contains(t, reasons[2], "notation")
	assert.Equal(t, "duplicate question", reasons[3])

	assert.Equal(t, 300, res.Usage.InputTokens)
	assert.Equal(t, "mock", res.Model)

	frag := res.Fragment()
	assert.Equal(t, "polar-coordinates", frag.ID)
	assert.Len(t, frag.Problems, 2)
}

func TestDraft_SendsSchemaAndPrompt(t *testing.T) {
	mock := llm.NewFake(llm.Reply{Content: draftJSON()})
	cfg := DefaultConfig()
	cfg.Count = 5
	d := New(mock, cfg)

	_, err := d.Draft(context.Background(), testInput())
	require.NoError(t, err)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	req := reqs[0]
	assert.Equal(t, DraftSchema, req.Schema)
	assert.Equal(t, systemPrompt, req.System)
	msg := req.Prompt
	assert.Contains(t, msg, "Level: Further Mathematics")
	assert.Contains(t, msg, "Topic: Polar Coordinates")
	assert.Contains(t, msg, "Number of problems: 5")
	assert.Contains(t, msg, "1. Convert the polar point (2, 0) to Cartesian x.")
}

func TestDraft_NothingAccepted(t *testing.T) {
	mock := llm.NewFake(llm.Reply{
		Content: json.RawMessage(`{"problems": [{"question": "", "latex": "", "hint": "", "answer": "1", "solution": ["x"]}]}`),
	})
	res, err := New(mock, DefaultConfig()).Draft(context.Background(), testInput())
	assert.ErrorIs(t, err, ErrNothingAccepted)
	require.NotNil(t, res)
	assert.Len(t, res.Rejected, 1)
}

func TestDraft_ProviderError(t *testing.T) {
	mock := llm.NewFake(llm.Reply{Err: errors.New("offline")})
	_, err := New(mock, DefaultConfig()).Draft(context.Background(), testInput())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "offline"))
}

func TestDraft_JournalsTopicAndCounts(t *testing.T) {
	journal := store.NewMemoryStore(0)
	provider := llm.WithJournal(llm.NewFake(llm.Reply{Content: draftJSON()}), llm.ProviderMock, journal)
	cfg := DefaultConfig()
	cfg.Count = 6

	_, err := New(provider, cfg, WithJournal(journal)).Draft(context.Background(), testInput())
	require.NoError(t, err)

	ctx := context.Background()
	reqs, err := journal.Query(ctx, store.QueryOpts{Kind: store.KindLLMRequest})
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, llm.PurposeDraft, reqs[0].LLMRequest.Purpose)
	assert.Equal(t, "further-polar-coordinates", reqs[0].LLMRequest.TopicID)
	assert.Equal(t, 6, reqs[0].LLMRequest.Requested)

	drafts, err := journal.Query(ctx, store.QueryOpts{Kind: store.KindDraft})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, store.DraftEventData{
		TopicID:   "further-polar-coordinates",
		Model:     "mock",
		Requested: 6,
		Accepted:  2,
		Rejected:  4,
	}, *drafts[0].Draft)
}

func TestDraft_JournalsWhenNothingAccepted(t *testing.T) {
	journal := store.NewMemoryStore(0)
	mock := llm.NewFake(llm.Reply{
		Content: json.RawMessage(`{"problems": [{"question": "", "latex": "", "hint": "", "answer": "1", "solution": ["x"]}]}`),
	})
	_, err := New(mock, DefaultConfig(), WithJournal(journal)).Draft(context.Background(), testInput())
	require.ErrorIs(t, err, ErrNothingAccepted)

	drafts, _ := journal.Query(context.Background(), store.QueryOpts{Kind: store.KindDraft})
	require.Len(t, drafts, 1)
	assert.Equal(t, 0, drafts[0].Draft.Accepted)
	assert.Equal(t, 1, drafts[0].Draft.Rejected)
}

func TestBuildDedup(t *testing.T) {
	assert.Equal(t, "None", buildDedup(nil, 5))
	assert.Equal(t, "1. b\n2. c", buildDedup([]string{"a", "b", "c"}, 2))
}

func TestQuestionKey(t *testing.T) {
	assert.Equal(t, questionKey("Find r when x = 3."), questionKey("find R when x=3"))
	assert.NotEqual(t, questionKey("x = 3"), questionKey("x = 4"))
}

func TestAnswerFormValidator(t *testing.T) {
	v := &AnswerFormValidator{}
	ok := catalog.Problem{Answer: "3x^2"}
	assert.Nil(t, v.Validate(ok))
	for _, a := range []string{"x = 3", "\\frac{1}{2}", "1\n2", strings.Repeat("9", 30)} {
		assert.NotNil(t, v.Validate(catalog.Problem{Answer: a}), "answer %q", a)
	}
}
