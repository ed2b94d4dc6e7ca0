// Package session tracks one student's conversation: the message log,
// what the bot last talked about, and where the student is in a run of
// assignments.
package session

import (
	"time"

	"github.com/google/uuid"

	"tutorbot/internal/kb"
)

// RefKind says what kind of knowledge item a message refers to.
type RefKind int

const (
	RefNone RefKind = iota
	RefTerm
	RefTopic
	RefSelection
	RefExample
	RefAssignment
)

// Ref ties a bot message to the knowledge items it presented. A zero Ref
// means the message carries no context worth returning to.
type Ref struct {
	Kind         RefKind
	TermID       int64
	TopicID      int64
	MaterialID   int64
	ExampleID    int64
	AssignmentID int64
}

// IsTermDefinition reports whether the message showed a term's material.
func (r Ref) IsTermDefinition() bool { return r.Kind == RefTerm && r.MaterialID != 0 }

// IsTopicDefinition reports whether the message showed a topic's material.
func (r Ref) IsTopicDefinition() bool { return r.Kind == RefTopic && r.MaterialID != 0 }

// IsSelection reports whether the message asked the student to choose
// between a term and a topic with the same name.
func (r Ref) IsSelection() bool { return r.Kind == RefSelection }

// IsExample reports whether the message showed an example.
func (r Ref) IsExample() bool { return r.Kind == RefExample }

// IsAssignment reports whether the message showed an assignment.
func (r Ref) IsAssignment() bool { return r.Kind == RefAssignment }

// Message is one entry in the conversation log.
type Message struct {
	ID     string
	Author string
	Text   string
	Ref    Ref
	At     time.Time
}

// NewBotMessage builds a tutor message carrying a knowledge reference.
func NewBotMessage(text string, ref Ref) Message {
	return Message{
		ID:     uuid.NewString(),
		Author: "tutor",
		Text:   text,
		Ref:    ref,
		At:     time.Now(),
	}
}

// NewUserMessage builds a student message.
func NewUserMessage(text string) Message {
	return Message{
		ID:     uuid.NewString(),
		Author: "student",
		Text:   text,
		At:     time.Now(),
	}
}

// Log holds the conversation history in order.
type Log struct {
	msgs []Message
}

// Append adds messages to the log.
func (l *Log) Append(msgs ...Message) {
	l.msgs = append(l.msgs, msgs...)
}

// Clear discards the history.
func (l *Log) Clear() {
	l.msgs = nil
}

// Messages returns a copy of the history.
func (l *Log) Messages() []Message {
	out := make([]Message, len(l.msgs))
	copy(out, l.msgs)
	return out
}

// Len reports how many messages the log holds.
func (l *Log) Len() int { return len(l.msgs) }

// AssignmentCursor tracks the student's position in a run of assignments.
type AssignmentCursor struct {
	Assignments []kb.Assignment
	Index       int
}

// Context is the bot's short-term memory for one student.
type Context struct {
	LastProduced *Message
	Cursor       *AssignmentCursor
}

// Current returns the message commands should act on. An override, when
// present, wins over the remembered one without replacing it.
func (c *Context) Current(override *Message) *Message {
	if override != nil {
		return override
	}
	return c.LastProduced
}

// NoteProduced records the most recent bot message that carries a
// knowledge reference. Messages with no reference never clobber the
// remembered one, so a failed lookup leaves the context intact.
func (c *Context) NoteProduced(msgs []Message) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Ref.Kind != RefNone {
			m := msgs[i]
			c.LastProduced = &m
			return
		}
	}
}

// Reset forgets the remembered message and the assignment cursor.
func (c *Context) Reset() {
	c.LastProduced = nil
	c.Cursor = nil
}
