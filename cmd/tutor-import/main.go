// tutor-import loads a YAML course file into the tutorbot knowledge base.
//
// Usage: go run ./cmd/tutor-import [--dry-run] -course course.yaml -db kb.db
package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tutorbot/internal/kb"
)

// Course file types. Each topic holds its materials, terms, and the
// terms' examples and assignments.
type Course struct {
	Topics []CourseTopic `yaml:"topics"`
}

type CourseTopic struct {
	Name      string             `yaml:"name"`
	Materials []string           `yaml:"materials"`
	Terms     []CourseTerm       `yaml:"terms"`
	Tasks     []CourseAssignment `yaml:"assignments"`
}

type CourseTerm struct {
	Name      string             `yaml:"name"`
	Materials []CourseMaterial   `yaml:"materials"`
	Tasks     []CourseAssignment `yaml:"assignments"`
}

type CourseMaterial struct {
	Content  string   `yaml:"content"`
	Examples []string `yaml:"examples"`
}

type CourseAssignment struct {
	Content string   `yaml:"content"`
	Answers []string `yaml:"answers"`
}

func main() {
	dryRun := flag.Bool("dry-run", false, "Print what would be imported without writing")
	coursePath := flag.String("course", "", "Path to the course YAML file")
	dbPath := flag.String("db", "kb.db", "Path to the knowledge base")
	flag.Parse()

	if *coursePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: tutor-import [--dry-run] -course course.yaml -db kb.db")
		os.Exit(1)
	}

	data, err := os.ReadFile(*coursePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading course: %v\n", err)
		os.Exit(1)
	}
	var course Course
	if err := yaml.Unmarshal(data, &course); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing course: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		report(&course)
		return
	}

	db, err := kb.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening knowledge base: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	counts, err := importCourse(db, &course)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing course: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d topics, %d terms, %d materials, %d examples, %d assignments\n",
		counts.topics, counts.terms, counts.materials, counts.examples, counts.assignments)
}

type importCounts struct {
	topics, terms, materials, examples, assignments int
}

func importCourse(db *kb.DB, course *Course) (importCounts, error) {
	var c importCounts
	for _, ct := range course.Topics {
		topicID, err := db.AddTopic(ct.Name)
		if err != nil {
			return c, fmt.Errorf("topic %q: %w", ct.Name, err)
		}
		c.topics++

		for i, content := range ct.Materials {
			if _, err := db.AddMaterial(kb.Material{
				TopicID:    topicID,
				OrderIndex: i + 1,
				Content:    content,
			}); err != nil {
				return c, fmt.Errorf("topic %q material: %w", ct.Name, err)
			}
			c.materials++
		}

		for i, ca := range ct.Tasks {
			if _, err := db.AddAssignment(assignment(0, topicID, i+1, ca)); err != nil {
				return c, fmt.Errorf("topic %q assignment: %w", ct.Name, err)
			}
			c.assignments++
		}

		for _, term := range ct.Terms {
			termID, err := db.AddTerm(topicID, term.Name)
			if err != nil {
				return c, fmt.Errorf("term %q: %w", term.Name, err)
			}
			c.terms++

			for i, mat := range term.Materials {
				matID, err := db.AddMaterial(kb.Material{
					TermID:     termID,
					TopicID:    topicID,
					OrderIndex: i + 1,
					Content:    mat.Content,
				})
				if err != nil {
					return c, fmt.Errorf("term %q material: %w", term.Name, err)
				}
				c.materials++

				for j, ex := range mat.Examples {
					if _, err := db.AddExample(kb.Example{
						MaterialID: matID,
						OrderIndex: j + 1,
						Content:    ex,
					}); err != nil {
						return c, fmt.Errorf("term %q example: %w", term.Name, err)
					}
					c.examples++
				}
			}

			for i, ca := range term.Tasks {
				if _, err := db.AddAssignment(assignment(termID, topicID, i+1, ca)); err != nil {
					return c, fmt.Errorf("term %q assignment: %w", term.Name, err)
				}
				c.assignments++
			}
		}
	}
	return c, nil
}

func assignment(termID, topicID int64, order int, ca CourseAssignment) kb.Assignment {
	a := kb.Assignment{
		TermID:     termID,
		TopicID:    topicID,
		OrderIndex: order,
		Content:    ca.Content,
	}
	for i, ans := range ca.Answers {
		if i >= kb.AnswerSlots {
			break
		}
		a.Answers[i] = ans
	}
	return a
}

func report(course *Course) {
	for _, ct := range course.Topics {
		fmt.Printf("topic: %s (%d materials, %d assignments)\n",
			ct.Name, len(ct.Materials), len(ct.Tasks))
		for _, term := range ct.Terms {
			examples := 0
			for _, m := range term.Materials {
				examples += len(m.Examples)
			}
			fmt.Printf("  term: %s (%d materials, %d examples, %d assignments)\n",
				term.Name, len(term.Materials), examples, len(term.Tasks))
		}
	}
}
