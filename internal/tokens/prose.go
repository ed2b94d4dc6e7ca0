package tokens

import (
	"fmt"

	"github.com/tsawler/prose/v3"
)

// Tagger is the part-of-speech tagging collaborator. Implementations must be
// deterministic for a fixed input.
type Tagger interface {
	Tag(text string) ([]Token, error)
	Sentences(text string) ([]string, error)
}

// ProseTagger tags text with the prose NLP library.
type ProseTagger struct{}

// NewProseTagger creates a prose-backed tagger.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag runs the prose pipeline over text and returns the tagged tokens.
func (p *ProseTagger) Tag(text string) ([]Token, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	var toks []Token
	for _, tok := range doc.Tokens() {
		toks = append(toks, Token{
			Text: tok.Text,
			Tag:  NormalizeTag(tok.Tag),
		})
	}
	return toks, nil
}

// Sentences splits text into sentences. Only the count matters to the
// analysis core, but the full sentence texts are returned for callers that
// want them.
func (p *ProseTagger) Sentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("failed to split sentences: %w", err)
	}

	var out []string
	for _, s := range doc.Sentences() {
		out = append(out, s.Text)
	}
	return out, nil
}
