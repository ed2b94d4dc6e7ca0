// Package kb is the tutor's knowledge base: topics, the terms under them,
// the materials (definitions) attached to either, worked examples, and
// assignments with lettered answers. The analysis core only reads it;
// writes happen through the importer and help requests.
package kb

import (
	"errors"
	"time"
)

// Topic is a broad subject area ("Geometry").
type Topic struct {
	ID   int64
	Name string
}

// Term is a named concept under a topic ("Acute Triangle").
type Term struct {
	ID      int64
	TopicID int64
	Name    string
}

// Material is one definition text. Term materials carry both TermID and
// TopicID; topic materials carry only TopicID. Zero means unset.
type Material struct {
	ID         int64
	TermID     int64
	TopicID    int64
	OrderIndex int
	Content    string
}

// Example is a worked example attached to a material.
type Example struct {
	ID         int64
	MaterialID int64
	OrderIndex int
	Content    string
}

// AnswerSlots is the number of lettered answer slots (a through g) an
// assignment carries.
const AnswerSlots = 7

// Assignment is an exercise owned by a term or topic. Answers is a fixed
// array indexed by letter; empty slots are unanswered.
type Assignment struct {
	ID         int64
	TermID     int64
	TopicID    int64
	OrderIndex int
	Content    string
	Answers    [AnswerSlots]string
}

// AnswerLetter returns the letter for an answer slot index.
func AnswerLetter(i int) byte {
	return byte('a' + i)
}

// HelpRequest is an escalation to the teacher about a specific item.
type HelpRequest struct {
	ID           string
	UserID       string
	TermID       int64
	MaterialID   int64
	ExampleID    int64
	AssignmentID int64
	CreatedAt    time.Time
}

// ErrDuplicateHelpRequest is returned when the same student already has a
// pending request for the same item.
var ErrDuplicateHelpRequest = errors.New("a help request for this item has already been sent to your teacher")

// Store is the read contract the analysis core consumes. All list results
// are ordered by their order index. Name lookups are exact and
// case-insensitive.
type Store interface {
	FindTermOrTopic(name string) (*Term, *Topic, error)
	TermByID(id int64) (*Term, error)
	TopicByID(id int64) (*Topic, error)
	TermsOfTopic(topicID int64) ([]Term, error)
	MaterialsOfTerm(termID int64) ([]Material, error)
	MaterialsOfTopic(topicID int64) ([]Material, error)
	MaterialByID(id int64) (*Material, error)
	ExamplesOf(materialID int64) ([]Example, error)
	AssignmentsOfTerm(termID int64) ([]Assignment, error)
	AssignmentsOfTopic(topicID int64) ([]Assignment, error)
	AssignmentByID(id int64) (*Assignment, error)
	TopicNames() ([]string, error)
	SubmitHelpRequest(req HelpRequest) error
}
