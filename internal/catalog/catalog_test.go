package catalog

import (
	"strings"
	"testing"
)

func TestDefault_Loads(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("embedded bank failed to load: %v", err)
	}
	if got := c.Levels(); len(got) != 2 || got[0] != LevelALevel || got[1] != LevelFurther {
		t.Errorf("Levels() = %v, want [alevel further]", got)
	}
	want := len(c.Topics(LevelALevel)) + len(c.Topics(LevelFurther))
	if c.TotalTopics() != want {
		t.Errorf("TotalTopics() = %d, want %d", c.TotalTopics(), want)
	}
}

func TestDefault_HasEmptyTopic(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Topic(LevelALevel, "proof"); !ok {
		t.Fatal("expected alevel/proof topic")
	}
	if n := c.ProblemCount(LevelALevel, "proof"); n != 0 {
		t.Errorf("proof has %d problems, want 0", n)
	}
}

func TestProblems_UnknownTopicIsEmpty(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if p := c.Problems(LevelALevel, "nonexistent"); len(p) != 0 {
		t.Errorf("got %d problems for unknown topic, want 0", len(p))
	}
	if p := c.Problems(Level("gcse"), "algebra"); len(p) != 0 {
		t.Errorf("got %d problems for unknown level, want 0", len(p))
	}
}

func TestProblems_ReturnsCopy(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	p := c.Problems(LevelALevel, "algebra")
	if len(p) == 0 {
		t.Fatal("expected algebra problems")
	}
	p[0].Answer = "changed"
	if c.Problems(LevelALevel, "algebra")[0].Answer == "changed" {
		t.Error("mutating returned slice changed the catalog")
	}
}

func TestTopicName(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		id     TopicID
		want   string
		wantOK bool
	}{
		{"alevel-algebra", "Algebra & Functions", true},
		{"further-complex-numbers", "Complex Numbers", true},
		{"alevel-exponentials-logarithms", "Exponentials & Logarithms", true},
		{"further-algebra", "", false},
		{"gcse-algebra", "", false},
		{"algebra", "", false},
	}
	for _, tt := range tests {
		got, ok := c.TopicName(tt.id)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("TopicName(%q) = (%q, %v), want (%q, %v)", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTopicID_Split(t *testing.T) {
	tests := []struct {
		id        TopicID
		wantLevel Level
		wantTopic string
		wantOK    bool
	}{
		{"alevel-algebra", LevelALevel, "algebra", true},
		{"further-proof-by-induction", LevelFurther, "proof-by-induction", true},
		{"alevel-", "", "", false},
		{"noseparator", "", "", false},
		{"unknown-topic", "", "", false},
	}
	for _, tt := range tests {
		l, topic, ok := tt.id.Split()
		if l != tt.wantLevel || topic != tt.wantTopic || ok != tt.wantOK {
			t.Errorf("%q.Split() = (%q, %q, %v), want (%q, %q, %v)",
				tt.id, l, topic, ok, tt.wantLevel, tt.wantTopic, tt.wantOK)
		}
	}
}

func TestNewTopicID_RoundTrip(t *testing.T) {
	id := NewTopicID(LevelFurther, "complex-numbers")
	if id != "further-complex-numbers" {
		t.Fatalf("NewTopicID = %q", id)
	}
	l, topic, ok := id.Split()
	if !ok || l != LevelFurther || topic != "complex-numbers" {
		t.Errorf("round trip gave (%q, %q, %v)", l, topic, ok)
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("further"); err != nil || l != LevelFurther {
		t.Errorf("ParseLevel(further) = (%q, %v)", l, err)
	}
	if _, err := ParseLevel("gcse"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestParse_RejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"no levels", `{"version": 1}`},
		{"unknown level", `{"levels":[{"id":"gcse","topics":[]}]}`},
		{"bad topic id", `{"levels":[{"id":"alevel","topics":[{"id":"Bad_ID","name":"x","problems":[]}]}]}`},
		{"extra field", `{"levels":[{"id":"alevel","topics":[],"colour":"red"}]}`},
		{"missing answer", `{"levels":[{"id":"alevel","topics":[{"id":"a","name":"A","problems":[{"question":"q","solution":["s"]}]}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParse_Minimal(t *testing.T) {
	raw := `{"levels":[{"id":"alevel","topics":[{"id":"a","name":"A","description":"d","problems":[
		{"question":"1+1?","answer":"2","solution":["1+1=2"]}
	]}]}]}`
	c, err := Load(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.LevelName(LevelALevel) != "A-Level Mathematics" {
		t.Errorf("LevelName fallback = %q", c.LevelName(LevelALevel))
	}
	if len(c.Levels()) != 1 {
		t.Errorf("Levels() = %v, want one level", c.Levels())
	}
	if c.ProblemCount(LevelALevel, "a") != 1 {
		t.Errorf("ProblemCount = %d, want 1", c.ProblemCount(LevelALevel, "a"))
	}
}
