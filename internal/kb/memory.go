package kb

import (
	"sort"
	"strings"
	"time"
)

// MemStore is an in-memory Store. It backs tests and the demo course the
// REPL falls back to when no database is configured.
type MemStore struct {
	topics      []Topic
	terms       []Term
	materials   []Material
	examples    []Example
	assignments []Assignment
	requests    []HelpRequest
	nextID      int64
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{nextID: 1}
}

func (s *MemStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// AddTopic inserts a topic and returns its id.
func (s *MemStore) AddTopic(name string) int64 {
	t := Topic{ID: s.id(), Name: name}
	s.topics = append(s.topics, t)
	return t.ID
}

// AddTerm inserts a term under a topic and returns its id.
func (s *MemStore) AddTerm(topicID int64, name string) int64 {
	t := Term{ID: s.id(), TopicID: topicID, Name: name}
	s.terms = append(s.terms, t)
	return t.ID
}

// AddMaterial inserts a material and returns its id.
func (s *MemStore) AddMaterial(m Material) int64 {
	m.ID = s.id()
	s.materials = append(s.materials, m)
	return m.ID
}

// AddExample inserts an example and returns its id.
func (s *MemStore) AddExample(e Example) int64 {
	e.ID = s.id()
	s.examples = append(s.examples, e)
	return e.ID
}

// AddAssignment inserts an assignment and returns its id.
func (s *MemStore) AddAssignment(a Assignment) int64 {
	a.ID = s.id()
	s.assignments = append(s.assignments, a)
	return a.ID
}

// FindTermOrTopic looks the name up as a term and as a topic.
func (s *MemStore) FindTermOrTopic(name string) (*Term, *Topic, error) {
	var term *Term
	for i := range s.terms {
		if strings.EqualFold(s.terms[i].Name, name) {
			t := s.terms[i]
			term = &t
			break
		}
	}
	var topic *Topic
	for i := range s.topics {
		if strings.EqualFold(s.topics[i].Name, name) {
			t := s.topics[i]
			topic = &t
			break
		}
	}
	return term, topic, nil
}

// TermByID fetches one term.
func (s *MemStore) TermByID(id int64) (*Term, error) {
	for i := range s.terms {
		if s.terms[i].ID == id {
			t := s.terms[i]
			return &t, nil
		}
	}
	return nil, nil
}

// TopicByID fetches one topic.
func (s *MemStore) TopicByID(id int64) (*Topic, error) {
	for i := range s.topics {
		if s.topics[i].ID == id {
			t := s.topics[i]
			return &t, nil
		}
	}
	return nil, nil
}

// TermsOfTopic lists the terms under a topic ordered by name.
func (s *MemStore) TermsOfTopic(topicID int64) ([]Term, error) {
	var out []Term
	for _, t := range s.terms {
		if t.TopicID == topicID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MaterialsOfTerm lists a term's materials ordered by index.
func (s *MemStore) MaterialsOfTerm(termID int64) ([]Material, error) {
	var out []Material
	for _, m := range s.materials {
		if m.TermID == termID {
			out = append(out, m)
		}
	}
	sortMaterials(out)
	return out, nil
}

// MaterialsOfTopic lists a topic's own materials ordered by index. A
// term's materials belong to the term even though they carry the topic id.
func (s *MemStore) MaterialsOfTopic(topicID int64) ([]Material, error) {
	var out []Material
	for _, m := range s.materials {
		if m.TopicID == topicID && m.TermID == 0 {
			out = append(out, m)
		}
	}
	sortMaterials(out)
	return out, nil
}

func sortMaterials(ms []Material) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].OrderIndex != ms[j].OrderIndex {
			return ms[i].OrderIndex < ms[j].OrderIndex
		}
		return ms[i].ID < ms[j].ID
	})
}

// MaterialByID fetches one material.
func (s *MemStore) MaterialByID(id int64) (*Material, error) {
	for i := range s.materials {
		if s.materials[i].ID == id {
			m := s.materials[i]
			return &m, nil
		}
	}
	return nil, nil
}

// ExamplesOf lists a material's examples ordered by index.
func (s *MemStore) ExamplesOf(materialID int64) ([]Example, error) {
	var out []Example
	for _, e := range s.examples {
		if e.MaterialID == materialID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// AssignmentsOfTerm lists a term's assignments ordered by index.
func (s *MemStore) AssignmentsOfTerm(termID int64) ([]Assignment, error) {
	return s.assignmentsWhere(func(a Assignment) bool { return a.TermID == termID }), nil
}

// AssignmentsOfTopic lists a topic's own assignments ordered by index.
func (s *MemStore) AssignmentsOfTopic(topicID int64) ([]Assignment, error) {
	return s.assignmentsWhere(func(a Assignment) bool {
		return a.TopicID == topicID && a.TermID == 0
	}), nil
}

func (s *MemStore) assignmentsWhere(match func(Assignment) bool) []Assignment {
	var out []Assignment
	for _, a := range s.assignments {
		if match(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AssignmentByID fetches one assignment.
func (s *MemStore) AssignmentByID(id int64) (*Assignment, error) {
	for i := range s.assignments {
		if s.assignments[i].ID == id {
			a := s.assignments[i]
			return &a, nil
		}
	}
	return nil, nil
}

// TopicNames lists all topic names alphabetically.
func (s *MemStore) TopicNames() ([]string, error) {
	var out []string
	for _, t := range s.topics {
		out = append(out, t.Name)
	}
	sort.Strings(out)
	return out, nil
}

// SubmitHelpRequest records an escalation, rejecting duplicates from the
// same student for the same item.
func (s *MemStore) SubmitHelpRequest(req HelpRequest) error {
	for _, r := range s.requests {
		if r.UserID == req.UserID && r.TermID == req.TermID &&
			r.MaterialID == req.MaterialID && r.ExampleID == req.ExampleID &&
			r.AssignmentID == req.AssignmentID {
			return ErrDuplicateHelpRequest
		}
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	s.requests = append(s.requests, req)
	return nil
}

// HelpRequests returns the recorded escalations.
func (s *MemStore) HelpRequests() []HelpRequest {
	out := make([]HelpRequest, len(s.requests))
	copy(out, s.requests)
	return out
}
