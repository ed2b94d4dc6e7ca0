// Package analysis is the bot's front door. It takes one student message
// and decides whether it is arithmetic, a command, or a knowledge lookup,
// then produces the reply messages.
package analysis

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	"tutorbot/internal/calc"
	"tutorbot/internal/commands"
	"tutorbot/internal/kb"
	"tutorbot/internal/search"
	"tutorbot/internal/session"
	"tutorbot/internal/tokens"
)

const (
	MsgOneSentence = "I can only process one sentence at a time."
	MsgNoNouns     = "Please include a noun so I know what to look up."
	MsgImproper    = "Please phrase that as a proper sentence."
)

// Config carries the dependencies a session needs.
type Config struct {
	Store   kb.Store
	Tagger  tokens.Tagger
	Catalog *commands.Catalog
	UserID  string

	// Evaluator overrides the default expression evaluator. Tests use it.
	Evaluator calc.Evaluator
}

// Session is one student's conversation state and the analysis pipeline
// that drives it. It is not safe for concurrent use; callers serialize
// per student.
type Session struct {
	store    kb.Store
	tagger   tokens.Tagger
	calc     *calc.Interpreter
	registry *commands.Registry
	ctx      *session.Context
	log      *session.Log
	welcome  string
}

// NewSession builds a session from its dependencies.
func NewSession(cfg Config) *Session {
	cat := cfg.Catalog
	if cat == nil {
		cat = commands.DefaultCatalog()
	}
	ctx := &session.Context{}
	lg := &session.Log{}
	env := &commands.Env{
		Store:  cfg.Store,
		Ctx:    ctx,
		Log:    lg,
		UserID: cfg.UserID,
	}
	reg := commands.NewRegistry(env, cat)
	return &Session{
		store:    cfg.Store,
		tagger:   cfg.Tagger,
		calc:     calc.New(cfg.Evaluator),
		registry: reg,
		ctx:      ctx,
		log:      lg,
		welcome:  cat.Welcome,
	}
}

// Welcome is the greeting configured in the catalog.
func (s *Session) Welcome() string { return s.welcome }

// Log exposes the conversation history.
func (s *Session) Log() *session.Log { return s.log }

// Context exposes the conversation context.
func (s *Session) Context() *session.Context { return s.ctx }

// Calculator exposes the session's calculator.
func (s *Session) Calculator() *calc.Interpreter { return s.calc }

// Reset clears the history, the context and the calculator.
func (s *Session) Reset() {
	s.log.Clear()
	s.ctx.Reset()
	s.calc = calc.New(nil)
}

// WriteMessageToBot records the student's message and analyzes it.
// Empty input produces no reply at all.
func (s *Session) WriteMessageToBot(text string) []session.Message {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	s.log.Append(session.NewUserMessage(text))
	return s.AnalyzeText(text)
}

// RunCommand dispatches a command directly, optionally against a
// caller-supplied current message.
func (s *Session) RunCommand(text string, selected *session.Message) ([]session.Message, bool) {
	return s.registry.Dispatch(text, selected)
}

// AnalyzeText runs the full pipeline on one student message.
func (s *Session) AnalyzeText(raw string) []session.Message {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if s.sentenceCount(raw) > 1 {
		return s.emit(MsgOneSentence)
	}

	lower := strings.ToLower(raw)

	// Arithmetic first. A reply from the calculator is only final when
	// the input clearly addressed it; otherwise a phrased question like
	// "what is 5 plus 3?" gets a second pass with the question words
	// stripped, and anything else falls through to the lookup path.
	if out, ok := s.calc.UseCalculator(lower); ok {
		if isCalcPhrase(lower) || hasLeadingDigitCue(lower) {
			return s.emit(out)
		}
	}
	if msgs, done := s.retryCalculator(raw); done {
		return msgs
	}

	toks, err := s.tagger.Tag(raw)
	if err != nil {
		log.Printf("[analysis] tagging failed: %v", err)
		return s.emit(err.Error())
	}

	candidates, err := search.Generate(toks, s.registry.IsTrigger)
	switch {
	case errors.Is(err, search.ErrNoNouns):
		return s.emit(MsgNoNouns)
	case errors.Is(err, search.ErrImproperSentence):
		return s.emit(MsgImproper)
	case err != nil:
		return s.emit(err.Error())
	}

	return s.resolve(candidates)
}

// resolve tries each candidate in rank order: a command wins outright,
// then a term or topic by name. When a name is both, the student is
// asked to choose.
func (s *Session) resolve(candidates []string) []session.Message {
	for _, cand := range candidates {
		if msgs, ok := s.registry.Dispatch(cand, nil); ok {
			return msgs
		}
		term, topic, err := s.store.FindTermOrTopic(cand)
		if err != nil {
			return s.emit(err.Error())
		}
		switch {
		case term != nil && topic != nil:
			msg := session.NewBotMessage(
				fmt.Sprintf("%q is both a topic and a term. Say 'topics' for the topic, or 'terms' for the term.", cand),
				session.Ref{Kind: session.RefSelection, TermID: term.ID, TopicID: topic.ID},
			)
			return s.emitMsgs(msg)
		case term != nil:
			return s.emitMsgs(commands.DescribeTerm(s.store, term)...)
		case topic != nil:
			return s.emitMsgs(commands.DescribeTopic(s.store, topic)...)
		}
	}
	return s.emit(s.unknownNounReply(len(candidates)))
}

func (s *Session) unknownNounReply(n int) string {
	noun := "that noun"
	if n > 1 {
		noun = "those nouns"
	}
	reply := fmt.Sprintf("I do not know anything about %s.", noun)
	names, err := s.store.TopicNames()
	if err != nil || len(names) == 0 {
		return reply
	}
	return reply + " " + commands.MsgTopicsKnown + "\n" + strings.Join(names, "\n")
}

// retryCalculator handles questions like "what is 5 plus 3?". The
// leading question word or verb is stripped, and a question form gets
// an "=" prefix so it evaluates standalone instead of accumulating.
func (s *Session) retryCalculator(raw string) ([]session.Message, bool) {
	toks, err := s.tagger.Tag(raw)
	if err != nil || len(toks) == 0 {
		return nil, false
	}
	if !toks[0].IsWHWord() && !toks[0].IsVerb() {
		return nil, false
	}
	wasWH := toks[0].IsWHWord()
	for len(toks) > 0 && (toks[0].IsWHWord() || toks[0].IsVerb()) {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].IsTerminal() {
		toks = toks[:len(toks)-1]
	}
	if len(toks) == 0 {
		return nil, false
	}
	expr := strings.ToLower(tokens.Render(toks))
	if wasWH {
		expr = "=" + expr
	}
	if out, ok := s.calc.UseCalculator(expr); ok {
		return s.emit(out), true
	}
	return nil, false
}

func (s *Session) sentenceCount(raw string) int {
	sents, err := s.tagger.Sentences(raw)
	if err != nil {
		return 1
	}
	return len(sents)
}

func (s *Session) emit(text string) []session.Message {
	return s.emitMsgs(session.NewBotMessage(text, session.Ref{}))
}

func (s *Session) emitMsgs(msgs ...session.Message) []session.Message {
	s.log.Append(msgs...)
	s.ctx.NoteProduced(msgs)
	return msgs
}

// isCalcPhrase reports whether the input is a calculator control phrase.
func isCalcPhrase(lower string) bool {
	return strings.TrimSpace(lower) == "clear result"
}

// hasLeadingDigitCue reports whether the input starts like arithmetic.
func hasLeadingDigitCue(lower string) bool {
	for _, r := range lower {
		if unicode.IsSpace(r) {
			continue
		}
		return unicode.IsDigit(r) || strings.ContainsRune("=+-*/(.", r)
	}
	return false
}
