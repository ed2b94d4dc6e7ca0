package kb

// SeedDemo loads a small geometry and arithmetic course. The REPL uses it
// when no database path is configured so the bot has something to teach.
func SeedDemo(s *MemStore) {
	geometry := s.AddTopic("Geometry")
	s.AddMaterial(Material{
		TopicID:    geometry,
		OrderIndex: 1,
		Content:    "Geometry studies shapes, sizes, angles and the properties of space.",
	})

	acute := s.AddTerm(geometry, "Acute Triangle")
	acuteDef := s.AddMaterial(Material{
		TermID:     acute,
		TopicID:    geometry,
		OrderIndex: 1,
		Content:    "An acute triangle is a triangle in which all three interior angles measure less than 90 degrees.",
	})
	s.AddExample(Example{
		MaterialID: acuteDef,
		OrderIndex: 1,
		Content:    "A triangle with angles of 60, 60 and 60 degrees is acute.",
	})
	s.AddExample(Example{
		MaterialID: acuteDef,
		OrderIndex: 2,
		Content:    "A triangle with angles of 80, 60 and 40 degrees is acute.",
	})
	s.AddAssignment(Assignment{
		TermID:     acute,
		TopicID:    geometry,
		OrderIndex: 1,
		Content:    "A triangle has angles of 70 and 50 degrees. What is the third angle, and is the triangle acute?",
		Answers:    [AnswerSlots]string{"60 degrees", "yes, it is acute"},
	})
	s.AddAssignment(Assignment{
		TermID:     acute,
		TopicID:    geometry,
		OrderIndex: 2,
		Content:    "Can a right triangle ever be acute? Explain your answer.",
		Answers:    [AnswerSlots]string{"no, a right triangle has a 90 degree angle"},
	})

	square := s.AddTerm(geometry, "Square")
	s.AddMaterial(Material{
		TermID:     square,
		TopicID:    geometry,
		OrderIndex: 1,
		Content:    "A square is a quadrilateral with four equal sides and four right angles.",
	})

	arithmetic := s.AddTopic("Arithmetic")
	s.AddMaterial(Material{
		TopicID:    arithmetic,
		OrderIndex: 1,
		Content:    "Arithmetic covers addition, subtraction, multiplication and division. Try the calculator: type =35*6.",
	})
}
