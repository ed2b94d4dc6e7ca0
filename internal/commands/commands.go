// Package commands implements the bot's explicit commands: fixed phrases
// like "see terms" or "next" that act on whatever the bot last presented.
package commands

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"tutorbot/internal/diag"
	"tutorbot/internal/kb"
	"tutorbot/internal/session"
)

// Env is everything a command needs to run.
type Env struct {
	Store   kb.Store
	Ctx     *session.Context
	Log     *session.Log
	UserID  string
	Welcome string
}

// Action runs one command against the current message.
type Action func(env *Env, cur *session.Message) []session.Message

// Command is a named action with its trigger phrases.
type Command struct {
	Name     string
	Triggers []string
	Run      Action
}

// Registry maps normalized trigger phrases to commands.
type Registry struct {
	env       *Env
	byTrigger map[string]*Command
}

// Normalize lowercases a phrase and strips question marks and
// surrounding whitespace so "See Terms?" matches "see terms".
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "?", "")
	return strings.TrimSpace(text)
}

// NewRegistry wires the catalog's phrases to the built-in actions and
// registers the canned replies.
func NewRegistry(env *Env, cat *Catalog) *Registry {
	env.Welcome = cat.Welcome
	r := &Registry{env: env, byTrigger: map[string]*Command{}}

	for name, phrases := range cat.Triggers {
		action, ok := builtins[name]
		if !ok {
			log.Printf("[commands] catalog names unknown command %q", name)
			continue
		}
		r.register(&Command{Name: name, Triggers: phrases, Run: action})
	}
	for _, c := range cat.Canned {
		reply := c.Reply
		r.register(&Command{
			Name:     c.Name,
			Triggers: c.Triggers,
			Run: func(env *Env, cur *session.Message) []session.Message {
				return replies(reply)
			},
		})
	}
	return r
}

func (r *Registry) register(c *Command) {
	for _, t := range c.Triggers {
		r.byTrigger[Normalize(t)] = c
	}
}

// IsTrigger reports whether the phrase names a command.
func (r *Registry) IsTrigger(text string) bool {
	_, ok := r.byTrigger[Normalize(text)]
	return ok
}

// Dispatch runs the command the text names, if any. The override, when
// given, stands in for the remembered current message for this one call.
func (r *Registry) Dispatch(text string, override *session.Message) ([]session.Message, bool) {
	c, ok := r.byTrigger[Normalize(text)]
	if !ok {
		return nil, false
	}
	cur := r.env.Ctx.Current(override)
	msgs := c.Run(r.env, cur)
	r.env.Log.Append(msgs...)
	r.env.Ctx.NoteProduced(msgs)
	return msgs, true
}

func replies(texts ...string) []session.Message {
	out := make([]session.Message, 0, len(texts))
	for _, t := range texts {
		out = append(out, session.NewBotMessage(t, session.Ref{}))
	}
	return out
}

var builtins = map[string]Action{
	"see_terms":       seeTerms,
	"see_example":     seeExample,
	"see_definition":  seeDefinition,
	"see_definitions": seeDefinitions,
	"topics":          topicsCmd,
	"terms":           termsCmd,
	"clear":           clearCmd,
	"current":         currentCmd,
	"next":            nextCmd,
	"previous":        previousCmd,
	"see_assignments": seeAssignments,
	"see_answers":     seeAnswers,
	"help_request":    helpRequest,
	"status":          statusCmd,
}

// DescribeTerm presents a term's materials. The analysis layer uses it
// for name lookups as well, so it lives here as an exported helper.
func DescribeTerm(store kb.Store, term *kb.Term) []session.Message {
	mats, err := store.MaterialsOfTerm(term.ID)
	if err != nil {
		return replies(err.Error())
	}
	if len(mats) == 0 {
		return replies(MsgNoMaterials)
	}
	out := []session.Message{session.NewBotMessage(
		fmt.Sprintf("This is what I found about %s:", term.Name),
		session.Ref{Kind: session.RefTerm, TermID: term.ID, TopicID: term.TopicID},
	)}
	for _, m := range mats {
		out = append(out, session.NewBotMessage(m.Content, session.Ref{
			Kind:       session.RefTerm,
			TermID:     term.ID,
			TopicID:    term.TopicID,
			MaterialID: m.ID,
		}))
	}
	return out
}

// DescribeTopic presents a topic's materials.
func DescribeTopic(store kb.Store, topic *kb.Topic) []session.Message {
	mats, err := store.MaterialsOfTopic(topic.ID)
	if err != nil {
		return replies(err.Error())
	}
	if len(mats) == 0 {
		return replies(MsgNoMaterials)
	}
	out := []session.Message{session.NewBotMessage(
		fmt.Sprintf("This is what I found about %s:", topic.Name),
		session.Ref{Kind: session.RefTopic, TopicID: topic.ID},
	)}
	for _, m := range mats {
		out = append(out, session.NewBotMessage(m.Content, session.Ref{
			Kind:       session.RefTopic,
			TopicID:    topic.ID,
			MaterialID: m.ID,
		}))
	}
	return out
}

func seeTerms(env *Env, cur *session.Message) []session.Message {
	if cur == nil || !cur.Ref.IsTopicDefinition() {
		return replies(MsgSeeTermsNeedsTopic)
	}
	terms, err := env.Store.TermsOfTopic(cur.Ref.TopicID)
	if err != nil {
		return replies(err.Error())
	}
	if len(terms) == 0 {
		return replies(MsgNoTermsUnderTopic)
	}
	names := make([]string, 0, len(terms))
	for _, t := range terms {
		names = append(names, t.Name)
	}
	return []session.Message{session.NewBotMessage(
		strings.Join(names, "\n"),
		session.Ref{Kind: session.RefTopic, TopicID: cur.Ref.TopicID},
	)}
}

func seeExample(env *Env, cur *session.Message) []session.Message {
	if cur == nil || !cur.Ref.IsTermDefinition() {
		return replies(MsgExampleNeedsTerm)
	}
	examples, err := env.Store.ExamplesOf(cur.Ref.MaterialID)
	if err != nil {
		return replies(err.Error())
	}
	if len(examples) == 0 {
		return replies(MsgNoExamples)
	}
	out := []session.Message{session.NewBotMessage(MsgExamplesHeader, session.Ref{})}
	for _, ex := range examples {
		out = append(out, session.NewBotMessage(ex.Content, session.Ref{
			Kind:       session.RefExample,
			TermID:     cur.Ref.TermID,
			TopicID:    cur.Ref.TopicID,
			MaterialID: cur.Ref.MaterialID,
			ExampleID:  ex.ID,
		}))
	}
	return out
}

func seeDefinition(env *Env, cur *session.Message) []session.Message {
	if cur == nil || !cur.Ref.IsExample() {
		return replies(MsgDefinitionNeedsExample)
	}
	mat, err := env.Store.MaterialByID(cur.Ref.MaterialID)
	if err != nil {
		return replies(err.Error())
	}
	if mat == nil {
		return replies(MsgNoMaterials)
	}
	ref := session.Ref{MaterialID: mat.ID}
	if mat.TermID != 0 {
		ref.Kind = session.RefTerm
		ref.TermID = mat.TermID
		ref.TopicID = mat.TopicID
	} else {
		ref.Kind = session.RefTopic
		ref.TopicID = mat.TopicID
	}
	return []session.Message{session.NewBotMessage(mat.Content, ref)}
}

func seeDefinitions(env *Env, cur *session.Message) []session.Message {
	if cur == nil || !cur.Ref.IsSelection() {
		return replies(MsgSelectionNeeded)
	}
	term, err := env.Store.TermByID(cur.Ref.TermID)
	if err != nil {
		return replies(err.Error())
	}
	if term == nil {
		return replies(MsgNoMaterials)
	}
	return DescribeTerm(env.Store, term)
}

func topicsCmd(env *Env, cur *session.Message) []session.Message {
	if cur != nil && cur.Ref.IsSelection() {
		topic, err := env.Store.TopicByID(cur.Ref.TopicID)
		if err != nil {
			return replies(err.Error())
		}
		if topic != nil {
			return DescribeTopic(env.Store, topic)
		}
	}
	names, err := env.Store.TopicNames()
	if err != nil {
		return replies(err.Error())
	}
	return replies(MsgTopicsKnown + "\n" + strings.Join(names, "\n"))
}

func termsCmd(env *Env, cur *session.Message) []session.Message {
	if cur != nil && cur.Ref.IsSelection() {
		return seeDefinitions(env, cur)
	}
	return seeTerms(env, cur)
}

func clearCmd(env *Env, cur *session.Message) []session.Message {
	env.Log.Clear()
	env.Ctx.Reset()
	return replies(env.Welcome)
}

func assignmentMessage(a kb.Assignment, index, total int) session.Message {
	return session.NewBotMessage(
		fmt.Sprintf("Assignment %d of %d:\n%s", index+1, total, a.Content),
		session.Ref{
			Kind:         session.RefAssignment,
			TermID:       a.TermID,
			TopicID:      a.TopicID,
			AssignmentID: a.ID,
		},
	)
}

func currentCmd(env *Env, cur *session.Message) []session.Message {
	c := env.Ctx.Cursor
	if c == nil || len(c.Assignments) == 0 {
		return replies(MsgNoAssignmentStarted)
	}
	return []session.Message{assignmentMessage(c.Assignments[c.Index], c.Index, len(c.Assignments))}
}

func nextCmd(env *Env, cur *session.Message) []session.Message {
	c := env.Ctx.Cursor
	if c == nil || len(c.Assignments) == 0 {
		return replies(MsgNoAssignmentStarted)
	}
	if c.Index == len(c.Assignments)-1 {
		return replies(MsgNoMoreAssignments)
	}
	c.Index++
	return currentCmd(env, cur)
}

func previousCmd(env *Env, cur *session.Message) []session.Message {
	c := env.Ctx.Cursor
	if c == nil || len(c.Assignments) == 0 {
		return replies(MsgNoAssignmentStarted)
	}
	if c.Index == 0 {
		return replies(MsgNoPreviousAssignments)
	}
	c.Index--
	return currentCmd(env, cur)
}

func seeAssignments(env *Env, cur *session.Message) []session.Message {
	if cur == nil {
		return replies(MsgAssignmentsNeedContext)
	}
	var (
		list []kb.Assignment
		err  error
	)
	switch cur.Ref.Kind {
	case session.RefTerm, session.RefExample:
		if cur.Ref.TermID != 0 {
			list, err = env.Store.AssignmentsOfTerm(cur.Ref.TermID)
		} else {
			list, err = env.Store.AssignmentsOfTopic(cur.Ref.TopicID)
		}
	case session.RefTopic:
		list, err = env.Store.AssignmentsOfTopic(cur.Ref.TopicID)
	default:
		return replies(MsgAssignmentsNeedContext)
	}
	if err != nil {
		return replies(err.Error())
	}
	if len(list) == 0 {
		return replies(MsgNoAssignments)
	}
	env.Ctx.Cursor = &session.AssignmentCursor{Assignments: list}
	header := fmt.Sprintf("There are %d assignments.", len(list))
	if len(list) == 1 {
		header = "There is 1 assignment."
	}
	return []session.Message{
		session.NewBotMessage(header, session.Ref{}),
		assignmentMessage(list[0], 0, len(list)),
	}
}

func seeAnswers(env *Env, cur *session.Message) []session.Message {
	if cur == nil || !cur.Ref.IsAssignment() {
		return replies(MsgAnswersNeedAssignment)
	}
	a, err := env.Store.AssignmentByID(cur.Ref.AssignmentID)
	if err != nil {
		return replies(err.Error())
	}
	if a == nil {
		return replies(MsgNoAnswers)
	}
	var lines []string
	for i, ans := range a.Answers {
		if ans == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%c) %s", kb.AnswerLetter(i), ans))
	}
	ref := session.Ref{
		Kind:         session.RefAssignment,
		TermID:       a.TermID,
		TopicID:      a.TopicID,
		AssignmentID: a.ID,
	}
	switch len(lines) {
	case 0:
		return replies(MsgNoAnswers)
	case 1:
		// A lone answer reads better without its letter.
		for _, ans := range a.Answers {
			if ans != "" {
				return []session.Message{session.NewBotMessage(ans, ref)}
			}
		}
	}
	return []session.Message{session.NewBotMessage(strings.Join(lines, "\n"), ref)}
}

func helpRequest(env *Env, cur *session.Message) []session.Message {
	if cur == nil || cur.Ref.TermID == 0 {
		return replies(MsgHelpNeedsContext)
	}
	req := kb.HelpRequest{
		ID:           uuid.NewString(),
		UserID:       env.UserID,
		TermID:       cur.Ref.TermID,
		MaterialID:   cur.Ref.MaterialID,
		ExampleID:    cur.Ref.ExampleID,
		AssignmentID: cur.Ref.AssignmentID,
	}
	if err := env.Store.SubmitHelpRequest(req); err != nil {
		return replies(err.Error())
	}
	return replies(MsgHelpRequestSent)
}

func statusCmd(env *Env, cur *session.Message) []session.Message {
	snap, err := diag.Take()
	if err != nil {
		return replies(err.Error())
	}
	return replies("Tutor bot is running: " + snap.String())
}
