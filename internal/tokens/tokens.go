// Package tokens holds the tagged-token model the analysis pipeline works on.
// Tokens are built per utterance from the tagger output and discarded after
// the turn is analyzed.
package tokens

import "strings"

// POS is a part-of-speech tag from the Penn Treebank set, plus TagNone for
// anything the tagger could not classify.
type POS string

const (
	TagNone POS = ""

	// Nouns
	TagNN   POS = "NN"
	TagNNS  POS = "NNS"
	TagNNP  POS = "NNP"
	TagNNPS POS = "NNPS"

	// Adjectives
	TagJJ  POS = "JJ"
	TagJJR POS = "JJR"
	TagJJS POS = "JJS"

	// Verbs
	TagVB  POS = "VB"
	TagVBD POS = "VBD"
	TagVBG POS = "VBG"
	TagVBN POS = "VBN"
	TagVBP POS = "VBP"
	TagVBZ POS = "VBZ"

	// WH-words
	TagWDT POS = "WDT"
	TagWP  POS = "WP"
	TagWPS POS = "WP$"
	TagWRB POS = "WRB"

	// Everything else we keep around for rendering and list-shape checks
	TagCC     POS = "CC"
	TagCD     POS = "CD"
	TagDT     POS = "DT"
	TagEX     POS = "EX"
	TagFW     POS = "FW"
	TagIN     POS = "IN"
	TagLS     POS = "LS"
	TagMD     POS = "MD"
	TagPDT    POS = "PDT"
	TagPOSs   POS = "POS"
	TagPRP    POS = "PRP"
	TagPRPS   POS = "PRP$"
	TagRB     POS = "RB"
	TagRBR    POS = "RBR"
	TagRBS    POS = "RBS"
	TagRP     POS = "RP"
	TagSYM    POS = "SYM"
	TagTO     POS = "TO"
	TagUH     POS = "UH"
	TagComma  POS = ","
	TagPeriod POS = "."
	TagColon  POS = ":"
	TagLRB    POS = "("
	TagRRB    POS = ")"
)

var knownTags = map[POS]bool{
	TagNN: true, TagNNS: true, TagNNP: true, TagNNPS: true,
	TagJJ: true, TagJJR: true, TagJJS: true,
	TagVB: true, TagVBD: true, TagVBG: true, TagVBN: true, TagVBP: true, TagVBZ: true,
	TagWDT: true, TagWP: true, TagWPS: true, TagWRB: true,
	TagCC: true, TagCD: true, TagDT: true, TagEX: true, TagFW: true, TagIN: true,
	TagLS: true, TagMD: true, TagPDT: true, TagPOSs: true, TagPRP: true, TagPRPS: true,
	TagRB: true, TagRBR: true, TagRBS: true, TagRP: true, TagSYM: true, TagTO: true,
	TagUH: true, TagComma: true, TagPeriod: true, TagColon: true, TagLRB: true, TagRRB: true,
}

// NormalizeTag maps a raw tagger tag into the closed POS set. Unknown tags
// become TagNone so downstream code never sees a tag outside the enumeration.
func NormalizeTag(raw string) POS {
	tag := POS(raw)
	if knownTags[tag] {
		return tag
	}
	return TagNone
}

// Token is one tagged word of an utterance.
type Token struct {
	Text string
	Tag  POS
}

// IsNoun reports whether the token is any noun form.
func (t Token) IsNoun() bool {
	switch t.Tag {
	case TagNN, TagNNS, TagNNP, TagNNPS:
		return true
	}
	return false
}

// IsAdjective reports whether the token is an adjective. Gerund-form verbs
// ("running water") count as adjectives for search purposes.
func (t Token) IsAdjective() bool {
	switch t.Tag {
	case TagJJ, TagJJR, TagJJS, TagVBG:
		return true
	}
	return false
}

// IsVerb reports whether the token is any verb form.
func (t Token) IsVerb() bool {
	switch t.Tag {
	case TagVB, TagVBD, TagVBG, TagVBN, TagVBP, TagVBZ:
		return true
	}
	return false
}

// IsWHWord reports whether the token is a wh-word (what, which, where, ...).
func (t Token) IsWHWord() bool {
	switch t.Tag {
	case TagWDT, TagWP, TagWPS, TagWRB:
		return true
	}
	return false
}

// IsTerminal reports whether the token is sentence-terminal punctuation.
func (t Token) IsTerminal() bool {
	switch t.Text {
	case ".", "?", "!":
		return true
	}
	return false
}

// noSpaceBefore lists token texts that attach to the preceding word when
// rendering, so "a , b" comes out as "a, b".
func noSpaceBefore(text string) bool {
	switch text {
	case ",", ".", "?", "!", ";", ":", ")", "'s", "n't", "'re", "'ve", "'ll", "'d", "'m":
		return true
	}
	return false
}

// Render joins tokens back into text with natural inter-token whitespace.
func Render(toks []Token) string {
	var sb strings.Builder
	for i, t := range toks {
		if i > 0 && !noSpaceBefore(t.Text) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}
