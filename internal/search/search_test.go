package search

import (
	"errors"
	"reflect"
	"testing"

	"tutorbot/internal/tokens"
)

func noun(text string) tokens.Token  { return tokens.Token{Text: text, Tag: tokens.TagNN} }
func adj(text string) tokens.Token   { return tokens.Token{Text: text, Tag: tokens.TagJJ} }
func comma() tokens.Token            { return tokens.Token{Text: ",", Tag: tokens.TagComma} }
func and() tokens.Token              { return tokens.Token{Text: "and", Tag: tokens.TagCC} }
func word(text string, tag tokens.POS) tokens.Token {
	return tokens.Token{Text: text, Tag: tag}
}

func TestGenerateSingleNoun(t *testing.T) {
	got, err := Generate([]tokens.Token{noun("triangle")}, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []string{"triangle"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGenerateAdjectiveNoun(t *testing.T) {
	got, err := Generate([]tokens.Token{
		word("what", tokens.TagWP),
		word("is", tokens.TagVBZ),
		word("an", tokens.TagDT),
		adj("acute"),
		noun("triangle"),
		word("?", tokens.TagPeriod),
	}, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []string{"acute triangle"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGenerateList(t *testing.T) {
	// "cat, dog, cow, goat and acute triangle"
	got, err := Generate([]tokens.Token{
		noun("cat"), comma(),
		noun("dog"), comma(),
		noun("cow"), comma(),
		noun("goat"), and(),
		adj("acute"), noun("triangle"),
	}, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// Descending length; equal lengths keep discovery order.
	want := []string{
		"cat, dog, cow, goat and acute triangle",
		"acute triangle",
		"goat",
		"cat",
		"dog",
		"cow",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGenerateNoTrailingAnd(t *testing.T) {
	// "cat, dog" has separators but no final "and": no whole-span candidate.
	got, err := Generate([]tokens.Token{noun("cat"), comma(), noun("dog")}, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []string{"cat", "dog"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGenerateAdjacentCommas(t *testing.T) {
	// "cat, , dog and cow": adjacent commas kill the whole-span candidate,
	// the items survive.
	got, err := Generate([]tokens.Token{
		noun("cat"), comma(), comma(), noun("dog"), and(), noun("cow"),
	}, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, c := range got {
		if c == "cat, , dog and cow" {
			t.Errorf("whole span should be disqualified, got %v", got)
		}
	}
	if !contains(got, "cat") || !contains(got, "dog") || !contains(got, "cow") {
		t.Errorf("items missing from %v", got)
	}
}

func TestGenerateMultiNounSuffixes(t *testing.T) {
	// "fire truck engine" yields the run plus each noun-bearing suffix.
	got, err := Generate([]tokens.Token{noun("fire"), noun("truck"), noun("engine")}, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []string{"fire truck engine", "truck engine", "engine"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGenerateNoNouns(t *testing.T) {
	_, err := Generate([]tokens.Token{
		word("run", tokens.TagVB),
		word("quickly", tokens.TagRB),
	}, nil)
	if !errors.Is(err, ErrNoNouns) {
		t.Errorf("expected ErrNoNouns, got %v", err)
	}
}

func TestGenerateImproperSentence(t *testing.T) {
	// Adjective with nothing after it in the span.
	_, err := Generate([]tokens.Token{
		noun("triangle"),
		word("is", tokens.TagVBZ),
		adj("acute"),
	}, nil)
	if !errors.Is(err, ErrImproperSentence) {
		t.Errorf("expected ErrImproperSentence, got %v", err)
	}
}

func TestGenerateCommandPreempts(t *testing.T) {
	isCommand := func(s string) bool { return s == "see terms" }
	got, err := Generate([]tokens.Token{
		word("see", tokens.TagVB),
		noun("terms"),
	}, isCommand)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []string{"see terms"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGenerateDeduplicates(t *testing.T) {
	got, err := Generate([]tokens.Token{
		noun("cat"), and(), noun("cat"),
	}, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	seen := map[string]int{}
	for _, c := range got {
		seen[c]++
		if seen[c] > 1 {
			t.Errorf("duplicate candidate %q in %v", c, got)
		}
	}
}

func TestGenerateRankedLongestFirst(t *testing.T) {
	got, err := Generate([]tokens.Token{
		noun("cat"), and(), adj("acute"), noun("triangle"),
	}, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if len(got[i]) > len(got[i-1]) {
			t.Errorf("candidates not sorted by descending length: %v", got)
		}
	}
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
