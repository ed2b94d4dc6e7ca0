package tokens

import "testing"

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		raw  string
		want POS
	}{
		{"NN", TagNN},
		{"NNS", TagNNS},
		{"JJ", TagJJ},
		{"VBG", TagVBG},
		{"WP$", TagWPS},
		{",", TagComma},
		{"XYZ", TagNone},
		{"", TagNone},
	}
	for _, tt := range tests {
		if got := NormalizeTag(tt.raw); got != tt.want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	tests := []struct {
		tag  POS
		noun bool
		adj  bool
		verb bool
		wh   bool
	}{
		{TagNN, true, false, false, false},
		{TagNNPS, true, false, false, false},
		{TagJJ, false, true, false, false},
		{TagJJS, false, true, false, false},
		{TagVBG, false, true, true, false}, // gerunds count as adjectives too
		{TagVBD, false, false, true, false},
		{TagWP, false, false, false, true},
		{TagWRB, false, false, false, true},
		{TagDT, false, false, false, false},
	}
	for _, tt := range tests {
		tok := Token{Text: "x", Tag: tt.tag}
		if tok.IsNoun() != tt.noun {
			t.Errorf("%s: IsNoun = %v, want %v", tt.tag, tok.IsNoun(), tt.noun)
		}
		if tok.IsAdjective() != tt.adj {
			t.Errorf("%s: IsAdjective = %v, want %v", tt.tag, tok.IsAdjective(), tt.adj)
		}
		if tok.IsVerb() != tt.verb {
			t.Errorf("%s: IsVerb = %v, want %v", tt.tag, tok.IsVerb(), tt.verb)
		}
		if tok.IsWHWord() != tt.wh {
			t.Errorf("%s: IsWHWord = %v, want %v", tt.tag, tok.IsWHWord(), tt.wh)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, text := range []string{".", "?", "!"} {
		if !(Token{Text: text, Tag: TagPeriod}).IsTerminal() {
			t.Errorf("%q should be terminal", text)
		}
	}
	if (Token{Text: ",", Tag: TagComma}).IsTerminal() {
		t.Error(", should not be terminal")
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		toks []Token
		want string
	}{
		{
			name: "plain words",
			toks: []Token{{Text: "acute"}, {Text: "triangle"}},
			want: "acute triangle",
		},
		{
			name: "comma attaches left",
			toks: []Token{{Text: "cat"}, {Text: ","}, {Text: "dog"}},
			want: "cat, dog",
		},
		{
			name: "terminal attaches left",
			toks: []Token{{Text: "triangle"}, {Text: "?"}},
			want: "triangle?",
		},
		{
			name: "contractions attach left",
			toks: []Token{{Text: "what"}, {Text: "'s"}, {Text: "that"}},
			want: "what's that",
		},
		{
			name: "empty",
			toks: nil,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.toks); got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProseTagger(t *testing.T) {
	tagger := NewProseTagger()

	toks, err := tagger.Tag("What is an acute triangle?")
	if err != nil {
		t.Fatalf("Tag failed: %v", err)
	}
	if len(toks) == 0 {
		t.Fatal("expected tokens")
	}
	foundNoun := false
	for _, tok := range toks {
		if tok.IsNoun() {
			foundNoun = true
		}
	}
	if !foundNoun {
		t.Errorf("expected a noun in %v", toks)
	}

	sents, err := tagger.Sentences("First sentence. Second sentence.")
	if err != nil {
		t.Fatalf("Sentences failed: %v", err)
	}
	if len(sents) != 2 {
		t.Errorf("expected 2 sentences, got %d: %v", len(sents), sents)
	}
}
