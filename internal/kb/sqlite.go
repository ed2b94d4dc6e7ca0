package kb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB is the SQLite-backed Store.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens or creates the knowledge base database.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &DB{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *DB) Close() error {
	return s.db.Close()
}

func (s *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS topics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL COLLATE NOCASE UNIQUE
	);

	CREATE TABLE IF NOT EXISTS terms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		topic_id INTEGER NOT NULL,
		name TEXT NOT NULL COLLATE NOCASE,
		FOREIGN KEY (topic_id) REFERENCES topics(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_terms_topic ON terms(topic_id);
	CREATE INDEX IF NOT EXISTS idx_terms_name ON terms(name);

	CREATE TABLE IF NOT EXISTS materials (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		term_id INTEGER,
		topic_id INTEGER,
		order_index INTEGER NOT NULL DEFAULT 0,
		content TEXT NOT NULL,
		FOREIGN KEY (term_id) REFERENCES terms(id) ON DELETE CASCADE,
		FOREIGN KEY (topic_id) REFERENCES topics(id) ON DELETE CASCADE,
		CHECK (term_id IS NOT NULL OR topic_id IS NOT NULL)
	);

	CREATE INDEX IF NOT EXISTS idx_materials_term ON materials(term_id);
	CREATE INDEX IF NOT EXISTS idx_materials_topic ON materials(topic_id);

	CREATE TABLE IF NOT EXISTS examples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		material_id INTEGER NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		content TEXT NOT NULL,
		FOREIGN KEY (material_id) REFERENCES materials(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_examples_material ON examples(material_id);

	CREATE TABLE IF NOT EXISTS assignments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		term_id INTEGER,
		topic_id INTEGER,
		order_index INTEGER NOT NULL DEFAULT 0,
		content TEXT NOT NULL,
		answer_a TEXT NOT NULL DEFAULT '',
		answer_b TEXT NOT NULL DEFAULT '',
		answer_c TEXT NOT NULL DEFAULT '',
		answer_d TEXT NOT NULL DEFAULT '',
		answer_e TEXT NOT NULL DEFAULT '',
		answer_f TEXT NOT NULL DEFAULT '',
		answer_g TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (term_id) REFERENCES terms(id) ON DELETE CASCADE,
		FOREIGN KEY (topic_id) REFERENCES topics(id) ON DELETE CASCADE,
		CHECK (term_id IS NOT NULL OR topic_id IS NOT NULL)
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_term ON assignments(term_id);
	CREATE INDEX IF NOT EXISTS idx_assignments_topic ON assignments(topic_id);

	CREATE TABLE IF NOT EXISTS help_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		term_id INTEGER NOT NULL,
		material_id INTEGER,
		example_id INTEGER,
		assignment_id INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_help_requests_user ON help_requests(user_id);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// FindTermOrTopic looks up a name as a term and as a topic. Either, both, or
// neither may be non-nil.
func (s *DB) FindTermOrTopic(name string) (*Term, *Topic, error) {
	var term *Term
	var t Term
	err := s.db.QueryRow(
		`SELECT id, topic_id, name FROM terms WHERE name = ? COLLATE NOCASE LIMIT 1`, name,
	).Scan(&t.ID, &t.TopicID, &t.Name)
	switch err {
	case nil:
		term = &t
	case sql.ErrNoRows:
	default:
		return nil, nil, fmt.Errorf("term lookup failed: %w", err)
	}

	var topic *Topic
	var tp Topic
	err = s.db.QueryRow(
		`SELECT id, name FROM topics WHERE name = ? COLLATE NOCASE LIMIT 1`, name,
	).Scan(&tp.ID, &tp.Name)
	switch err {
	case nil:
		topic = &tp
	case sql.ErrNoRows:
	default:
		return nil, nil, fmt.Errorf("topic lookup failed: %w", err)
	}

	return term, topic, nil
}

// TermByID fetches one term.
func (s *DB) TermByID(id int64) (*Term, error) {
	var t Term
	err := s.db.QueryRow(`SELECT id, topic_id, name FROM terms WHERE id = ?`, id).
		Scan(&t.ID, &t.TopicID, &t.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("term lookup failed: %w", err)
	}
	return &t, nil
}

// TopicByID fetches one topic.
func (s *DB) TopicByID(id int64) (*Topic, error) {
	var t Topic
	err := s.db.QueryRow(`SELECT id, name FROM topics WHERE id = ?`, id).
		Scan(&t.ID, &t.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("topic lookup failed: %w", err)
	}
	return &t, nil
}

// TermsOfTopic lists the terms under a topic, ordered by name.
func (s *DB) TermsOfTopic(topicID int64) ([]Term, error) {
	rows, err := s.db.Query(
		`SELECT id, topic_id, name FROM terms WHERE topic_id = ? ORDER BY name`, topicID)
	if err != nil {
		return nil, fmt.Errorf("terms lookup failed: %w", err)
	}
	defer rows.Close()

	var out []Term
	for rows.Next() {
		var t Term
		if err := rows.Scan(&t.ID, &t.TopicID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *DB) materialsWhere(cond string, owner int64) ([]Material, error) {
	rows, err := s.db.Query(
		`SELECT id, COALESCE(term_id, 0), COALESCE(topic_id, 0), order_index, content
		 FROM materials WHERE `+cond+` ORDER BY order_index, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("materials lookup failed: %w", err)
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.TermID, &m.TopicID, &m.OrderIndex, &m.Content); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MaterialsOfTerm lists a term's materials ordered by index.
func (s *DB) MaterialsOfTerm(termID int64) ([]Material, error) {
	return s.materialsWhere("term_id = ?", termID)
}

// MaterialsOfTopic lists a topic's own materials ordered by index. A
// term's materials belong to the term even though they carry the topic id.
func (s *DB) MaterialsOfTopic(topicID int64) ([]Material, error) {
	return s.materialsWhere("topic_id = ? AND term_id IS NULL", topicID)
}

// MaterialByID fetches one material.
func (s *DB) MaterialByID(id int64) (*Material, error) {
	var m Material
	err := s.db.QueryRow(
		`SELECT id, COALESCE(term_id, 0), COALESCE(topic_id, 0), order_index, content
		 FROM materials WHERE id = ?`, id).
		Scan(&m.ID, &m.TermID, &m.TopicID, &m.OrderIndex, &m.Content)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("material lookup failed: %w", err)
	}
	return &m, nil
}

// ExamplesOf lists a material's examples ordered by index.
func (s *DB) ExamplesOf(materialID int64) ([]Example, error) {
	rows, err := s.db.Query(
		`SELECT id, material_id, order_index, content
		 FROM examples WHERE material_id = ? ORDER BY order_index, id`, materialID)
	if err != nil {
		return nil, fmt.Errorf("examples lookup failed: %w", err)
	}
	defer rows.Close()

	var out []Example
	for rows.Next() {
		var e Example
		if err := rows.Scan(&e.ID, &e.MaterialID, &e.OrderIndex, &e.Content); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *DB) assignmentsWhere(cond string, owner int64) ([]Assignment, error) {
	rows, err := s.db.Query(
		`SELECT id, COALESCE(term_id, 0), COALESCE(topic_id, 0), order_index, content,
		        answer_a, answer_b, answer_c, answer_d, answer_e, answer_f, answer_g
		 FROM assignments WHERE `+cond+` ORDER BY order_index, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("assignments lookup failed: %w", err)
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		a, err := scanAssignment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanAssignment(scan func(...any) error) (*Assignment, error) {
	var a Assignment
	dest := []any{&a.ID, &a.TermID, &a.TopicID, &a.OrderIndex, &a.Content}
	for i := 0; i < AnswerSlots; i++ {
		dest = append(dest, &a.Answers[i])
	}
	if err := scan(dest...); err != nil {
		return nil, err
	}
	return &a, nil
}

// AssignmentsOfTerm lists a term's assignments ordered by index.
func (s *DB) AssignmentsOfTerm(termID int64) ([]Assignment, error) {
	return s.assignmentsWhere("term_id = ?", termID)
}

// AssignmentsOfTopic lists a topic's own assignments ordered by index.
func (s *DB) AssignmentsOfTopic(topicID int64) ([]Assignment, error) {
	return s.assignmentsWhere("topic_id = ? AND term_id IS NULL", topicID)
}

// AssignmentByID fetches one assignment.
func (s *DB) AssignmentByID(id int64) (*Assignment, error) {
	row := s.db.QueryRow(
		`SELECT id, COALESCE(term_id, 0), COALESCE(topic_id, 0), order_index, content,
		        answer_a, answer_b, answer_c, answer_d, answer_e, answer_f, answer_g
		 FROM assignments WHERE id = ?`, id)
	a, err := scanAssignment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("assignment lookup failed: %w", err)
	}
	return a, nil
}

// TopicNames lists all topic names alphabetically.
func (s *DB) TopicNames() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM topics ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("topics lookup failed: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// SubmitHelpRequest records an escalation, rejecting an exact duplicate from
// the same student.
func (s *DB) SubmitHelpRequest(req HelpRequest) error {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM help_requests
		 WHERE user_id = ? AND term_id = ?
		   AND COALESCE(material_id, 0) = ? AND COALESCE(example_id, 0) = ?
		   AND COALESCE(assignment_id, 0) = ?`,
		req.UserID, req.TermID, req.MaterialID, req.ExampleID, req.AssignmentID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("help request lookup failed: %w", err)
	}
	if count > 0 {
		return ErrDuplicateHelpRequest
	}

	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	_, err = s.db.Exec(
		`INSERT INTO help_requests (id, user_id, term_id, material_id, example_id, assignment_id, created_at)
		 VALUES (?, ?, ?, NULLIF(?, 0), NULLIF(?, 0), NULLIF(?, 0), ?)`,
		req.ID, req.UserID, req.TermID, req.MaterialID, req.ExampleID, req.AssignmentID, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("help request insert failed: %w", err)
	}
	return nil
}

// Write methods used by the importer.

// AddTopic inserts a topic and returns its id.
func (s *DB) AddTopic(name string) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO topics (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("topic insert failed: %w", err)
	}
	return res.LastInsertId()
}

// AddTerm inserts a term under a topic and returns its id.
func (s *DB) AddTerm(topicID int64, name string) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO terms (topic_id, name) VALUES (?, ?)`, topicID, name)
	if err != nil {
		return 0, fmt.Errorf("term insert failed: %w", err)
	}
	return res.LastInsertId()
}

// AddMaterial inserts a material owned by a term or topic (one of the ids
// must be zero) and returns its id.
func (s *DB) AddMaterial(m Material) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO materials (term_id, topic_id, order_index, content)
		 VALUES (NULLIF(?, 0), NULLIF(?, 0), ?, ?)`,
		m.TermID, m.TopicID, m.OrderIndex, m.Content)
	if err != nil {
		return 0, fmt.Errorf("material insert failed: %w", err)
	}
	return res.LastInsertId()
}

// AddExample inserts an example and returns its id.
func (s *DB) AddExample(e Example) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO examples (material_id, order_index, content) VALUES (?, ?, ?)`,
		e.MaterialID, e.OrderIndex, e.Content)
	if err != nil {
		return 0, fmt.Errorf("example insert failed: %w", err)
	}
	return res.LastInsertId()
}

// AddAssignment inserts an assignment and returns its id.
func (s *DB) AddAssignment(a Assignment) (int64, error) {
	args := []any{a.TermID, a.TopicID, a.OrderIndex, a.Content}
	for i := 0; i < AnswerSlots; i++ {
		args = append(args, a.Answers[i])
	}
	res, err := s.db.Exec(
		`INSERT INTO assignments (term_id, topic_id, order_index, content,
		        answer_a, answer_b, answer_c, answer_d, answer_e, answer_f, answer_g)
		 VALUES (NULLIF(?, 0), NULLIF(?, 0), ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return 0, fmt.Errorf("assignment insert failed: %w", err)
	}
	return res.LastInsertId()
}

// Stats returns row counts per table.
func (s *DB) Stats() (map[string]int, error) {
	stats := make(map[string]int)
	for _, table := range []string{"topics", "terms", "materials", "examples", "assignments", "help_requests"} {
		var count int
		if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			return nil, err
		}
		stats[table] = count
	}
	return stats, nil
}
