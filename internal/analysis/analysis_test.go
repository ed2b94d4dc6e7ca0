package analysis

import (
	"fmt"
	"strings"
	"testing"

	"tutorbot/internal/kb"
	"tutorbot/internal/session"
	"tutorbot/internal/tokens"
)

// fakeTagger returns canned token streams so tests do not depend on the
// statistical tagger's exact output.
type fakeTagger struct {
	tags      map[string][]tokens.Token
	sentences map[string]int
}

func (f *fakeTagger) Tag(text string) ([]tokens.Token, error) {
	if toks, ok := f.tags[text]; ok {
		return toks, nil
	}
	return nil, fmt.Errorf("no canned tokens for %q", text)
}

func (f *fakeTagger) Sentences(text string) ([]string, error) {
	n, ok := f.sentences[text]
	if !ok {
		n = 1
	}
	out := make([]string, n)
	for i := range out {
		out[i] = text
	}
	return out, nil
}

func tok(text string, tag tokens.POS) tokens.Token {
	return tokens.Token{Text: text, Tag: tag}
}

func newTestSession(t *testing.T, tagger *fakeTagger) (*Session, *kb.MemStore) {
	t.Helper()
	store := kb.NewMemStore()
	kb.SeedDemo(store)
	s := NewSession(Config{
		Store:  store,
		Tagger: tagger,
		UserID: "student-1",
	})
	return s, store
}

func TestEmptyInputProducesNothing(t *testing.T) {
	s, _ := newTestSession(t, &fakeTagger{})
	if msgs := s.WriteMessageToBot("   "); msgs != nil {
		t.Errorf("expected no reply, got %v", msgs)
	}
	if s.Log().Len() != 0 {
		t.Error("empty input should not be logged")
	}
}

func TestMultipleSentencesRejected(t *testing.T) {
	input := "First thing. Second thing."
	s, _ := newTestSession(t, &fakeTagger{
		sentences: map[string]int{input: 2},
	})
	msgs := s.WriteMessageToBot(input)
	if len(msgs) != 1 || msgs[0].Text != MsgOneSentence {
		t.Errorf("got %v", msgs)
	}
}

func TestDirectArithmetic(t *testing.T) {
	s, _ := newTestSession(t, &fakeTagger{})
	msgs := s.WriteMessageToBot("=5+3")
	if len(msgs) != 1 || msgs[0].Text != "8" {
		t.Errorf("got %v, want 8", msgs)
	}

	msgs = s.WriteMessageToBot("11")
	if len(msgs) != 1 || msgs[0].Text != "19" {
		t.Errorf("accumulation got %v, want 19", msgs)
	}

	msgs = s.WriteMessageToBot("clear result")
	if len(msgs) != 1 || !strings.Contains(msgs[0].Text, "cleared") {
		t.Errorf("clear result got %v", msgs)
	}
}

func TestPhrasedArithmetic(t *testing.T) {
	input := "What is 5 plus 3?"
	s, _ := newTestSession(t, &fakeTagger{
		tags: map[string][]tokens.Token{
			input: {
				tok("What", tokens.TagWP),
				tok("is", tokens.TagVBZ),
				tok("5", tokens.TagCD),
				tok("plus", tokens.TagCC),
				tok("3", tokens.TagCD),
				tok("?", tokens.TagPeriod),
			},
		},
	})
	msgs := s.WriteMessageToBot(input)
	if len(msgs) != 1 || msgs[0].Text != "8" {
		t.Errorf("got %v, want 8", msgs)
	}
	// The answer becomes the running total.
	next := s.WriteMessageToBot("=value*2")
	if len(next) != 1 || next[0].Text != "16" {
		t.Errorf("follow-up got %v, want 16", next)
	}
}

func TestTermLookup(t *testing.T) {
	input := "What is an acute triangle?"
	s, _ := newTestSession(t, &fakeTagger{
		tags: map[string][]tokens.Token{
			input: {
				tok("What", tokens.TagWP),
				tok("is", tokens.TagVBZ),
				tok("an", tokens.TagDT),
				tok("acute", tokens.TagJJ),
				tok("triangle", tokens.TagNN),
				tok("?", tokens.TagPeriod),
			},
		},
	})
	msgs := s.WriteMessageToBot(input)
	if len(msgs) != 2 {
		t.Fatalf("expected header plus material, got %v", msgs)
	}
	if !strings.Contains(msgs[0].Text, "Acute Triangle") {
		t.Errorf("header %q", msgs[0].Text)
	}
	if !strings.Contains(msgs[1].Text, "interior angles") {
		t.Errorf("material %q", msgs[1].Text)
	}
	// The material message becomes the current context.
	cur := s.Context().Current(nil)
	if cur == nil || !cur.Ref.IsTermDefinition() {
		t.Error("expected a term definition as current context")
	}
}

func TestTopicLookup(t *testing.T) {
	input := "Tell me about geometry."
	s, _ := newTestSession(t, &fakeTagger{
		tags: map[string][]tokens.Token{
			input: {
				tok("Tell", tokens.TagVB),
				tok("me", tokens.TagPRP),
				tok("about", tokens.TagIN),
				tok("geometry", tokens.TagNN),
				tok(".", tokens.TagPeriod),
			},
		},
	})
	msgs := s.WriteMessageToBot(input)
	if len(msgs) != 2 {
		t.Fatalf("expected header plus material, got %v", msgs)
	}
	if !strings.Contains(msgs[1].Text, "shapes") {
		t.Errorf("material %q", msgs[1].Text)
	}
}

func TestUnknownNoun(t *testing.T) {
	input := "What is a zebra?"
	s, _ := newTestSession(t, &fakeTagger{
		tags: map[string][]tokens.Token{
			input: {
				tok("What", tokens.TagWP),
				tok("is", tokens.TagVBZ),
				tok("a", tokens.TagDT),
				tok("zebra", tokens.TagNN),
				tok("?", tokens.TagPeriod),
			},
		},
	})
	msgs := s.WriteMessageToBot(input)
	if len(msgs) != 1 {
		t.Fatalf("got %v", msgs)
	}
	if !strings.Contains(msgs[0].Text, "that noun") {
		t.Errorf("reply %q should name the unknown noun singular", msgs[0].Text)
	}
	if !strings.Contains(msgs[0].Text, "Geometry") {
		t.Errorf("reply %q should list topics", msgs[0].Text)
	}
	// A failed lookup leaves the context untouched.
	if s.Context().Current(nil) != nil {
		t.Error("unknown noun should not set context")
	}
}

func TestNoNouns(t *testing.T) {
	input := "Run quickly."
	s, _ := newTestSession(t, &fakeTagger{
		tags: map[string][]tokens.Token{
			input: {
				tok("Run", tokens.TagVB),
				tok("quickly", tokens.TagRB),
				tok(".", tokens.TagPeriod),
			},
		},
	})
	msgs := s.WriteMessageToBot(input)
	if len(msgs) != 1 || msgs[0].Text != MsgNoNouns {
		t.Errorf("got %v, want %q", msgs, MsgNoNouns)
	}
}

func TestCommandPhraseRoutesThroughAnalysis(t *testing.T) {
	input := "see topics"
	s, _ := newTestSession(t, &fakeTagger{
		tags: map[string][]tokens.Token{
			input: {
				tok("see", tokens.TagVB),
				tok("topics", tokens.TagNNS),
			},
		},
	})
	msgs := s.WriteMessageToBot(input)
	if len(msgs) != 1 {
		t.Fatalf("got %v", msgs)
	}
	if !strings.Contains(msgs[0].Text, "Geometry") || !strings.Contains(msgs[0].Text, "Arithmetic") {
		t.Errorf("topic list %q", msgs[0].Text)
	}
}

func TestAmbiguousNameAsksForSelection(t *testing.T) {
	store := kb.NewMemStore()
	topicID := store.AddTopic("Algebra")
	store.AddMaterial(kb.Material{TopicID: topicID, OrderIndex: 1, Content: "Algebra the topic."})
	termID := store.AddTerm(topicID, "Algebra")
	store.AddMaterial(kb.Material{TermID: termID, TopicID: topicID, OrderIndex: 1, Content: "Algebra the term."})

	input := "What is algebra?"
	s := NewSession(Config{
		Store: store,
		Tagger: &fakeTagger{
			tags: map[string][]tokens.Token{
				input: {
					tok("What", tokens.TagWP),
					tok("is", tokens.TagVBZ),
					tok("algebra", tokens.TagNN),
					tok("?", tokens.TagPeriod),
				},
			},
		},
		UserID: "student-1",
	})

	msgs := s.WriteMessageToBot(input)
	if len(msgs) != 1 {
		t.Fatalf("got %v", msgs)
	}
	if !strings.Contains(msgs[0].Text, "both a topic and a term") {
		t.Errorf("selection reply %q", msgs[0].Text)
	}
	if !msgs[0].Ref.IsSelection() {
		t.Error("selection message should carry a selection ref")
	}

	// "terms" resolves the selection to the term side.
	termMsgs, ok := s.RunCommand("terms", nil)
	if !ok {
		t.Fatal("terms should dispatch")
	}
	joined := joinTexts(termMsgs)
	if !strings.Contains(joined, "Algebra the term.") {
		t.Errorf("terms resolution %q", joined)
	}
}

func TestRunCommandWithOverride(t *testing.T) {
	s, store := newTestSession(t, &fakeTagger{})
	term, _, _ := store.FindTermOrTopic("acute triangle")
	mats, _ := store.MaterialsOfTerm(term.ID)
	override := session.NewBotMessage(mats[0].Content, session.Ref{
		Kind:       session.RefTerm,
		TermID:     term.ID,
		TopicID:    term.TopicID,
		MaterialID: mats[0].ID,
	})

	msgs, ok := s.RunCommand("see example", &override)
	if !ok {
		t.Fatal("see example should dispatch")
	}
	if len(msgs) != 3 {
		t.Errorf("expected header plus 2 examples, got %d", len(msgs))
	}
}

func joinTexts(msgs []session.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, "\n")
}
