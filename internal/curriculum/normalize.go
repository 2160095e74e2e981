package curriculum

import (
	"fmt"
	"math"
)

// Normalize turns a plan request into a canonical curriculum tree.
// Resolution order: explicit subjects, then a preset key (syllabus or
// roadmap), then student-type defaults, then a generic fallback. The
// result always has at least one subject with at least one unit with at
// least one topic; the packer depends on that.
func (l *Library) Normalize(req Request, studentType string) Curriculum {
	if len(req.Subjects) > 0 {
		return fromSubjects(req.Subjects, req.Duration)
	}

	if req.Preset != "" {
		if subjects, ok := l.Syllabus(req.Preset); ok {
			return Curriculum{
				Subjects:      normalizeSubjects(subjects),
				TotalDuration: req.Duration,
				RoadmapType:   req.Preset,
				Source:        "static",
			}
		}
		if r, ok := l.Roadmap(req.Preset); ok {
			return ConvertRoadmap(r, req.Preset, req.Duration)
		}
	}

	return Curriculum{
		Subjects:      normalizeSubjects(defaultSubjects(studentType)),
		TotalDuration: req.Duration,
		Source:        "static",
	}
}

func fromSubjects(specs []SubjectSpec, duration int) Curriculum {
	subjects := make([]Subject, 0, len(specs))
	for _, spec := range specs {
		s := Subject{
			Name:        spec.Name,
			Description: spec.Description,
			Weightage:   spec.Weightage,
			Units:       spec.Units,
			TotalHours:  spec.TotalHours,
		}
		if s.Description == "" {
			s.Description = fmt.Sprintf("Comprehensive study of %s", s.Name)
		}
		if s.Weightage == 0 {
			s.Weightage = int(math.Round(100 / float64(len(specs))))
		}
		if len(s.Units) == 0 {
			s.Units = defaultUnits(s.Name)
		}
		if s.TotalHours == 0 {
			s.TotalHours = 45
		}
		subjects = append(subjects, s)
	}
	return Curriculum{
		Subjects:      normalizeSubjects(subjects),
		TotalDuration: duration,
		Source:        "custom",
	}
}

// normalizeSubjects fills missing weightage and totalHours and guarantees
// every subject has a unit with a topic.
func normalizeSubjects(subjects []Subject) []Subject {
	out := make([]Subject, len(subjects))
	copy(out, subjects)
	for i := range out {
		if out[i].Weightage == 0 {
			out[i].Weightage = int(math.Round(100 / float64(len(out))))
		}
		if len(out[i].Units) == 0 {
			out[i].Units = defaultUnits(out[i].Name)
		}
		for j := range out[i].Units {
			if len(out[i].Units[j].Topics) == 0 {
				out[i].Units[j].Topics = namedTopics(fmt.Sprintf("Fundamentals of %s", out[i].Name))
			}
		}
		if out[i].TotalHours == 0 {
			out[i].TotalHours = out[i].UnitHours()
		}
	}
	return out
}

// defaultUnits synthesizes the two-unit template used when a subject
// arrives without units.
func defaultUnits(subject string) []Unit {
	return []Unit{
		{
			Title:       fmt.Sprintf("Introduction to %s", subject),
			Description: fmt.Sprintf("Basic concepts and fundamentals of %s", subject),
			Topics: namedTopics(
				fmt.Sprintf("Fundamentals of %s", subject),
				"Core Concepts",
				"Basic Applications",
				"Problem Solving",
			),
			EstimatedDuration: 20,
			Order:             1,
		},
		{
			Title:       fmt.Sprintf("Advanced %s", subject),
			Description: "Advanced topics and applications",
			Topics: namedTopics(
				"Advanced Concepts",
				"Complex Applications",
				"Real-world Problems",
				"Project Work",
			),
			EstimatedDuration: 25,
			Order:             2,
		},
	}
}

// defaultSubjects is the last-resort curriculum, keyed by student type.
func defaultSubjects(studentType string) []Subject {
	if studentType == "school" {
		return []Subject{
			{
				Name:        "Mathematics",
				Description: "Core mathematical concepts and problem-solving",
				Weightage:   25,
				Units: []Unit{{
					Title:             "Basic Mathematics",
					Description:       "Fundamental mathematical concepts",
					Topics:            namedTopics("Numbers", "Algebra", "Geometry", "Statistics"),
					EstimatedDuration: 20,
					Order:             1,
				}},
				TotalHours: 20,
			},
			{
				Name:        "Science",
				Description: "Scientific concepts and experiments",
				Weightage:   25,
				Units: []Unit{{
					Title:             "Basic Science",
					Description:       "Introduction to scientific concepts",
					Topics:            namedTopics("Physics", "Chemistry", "Biology", "Experiments"),
					EstimatedDuration: 20,
					Order:             1,
				}},
				TotalHours: 20,
			},
			{
				Name:        "English",
				Description: "Language and communication skills",
				Weightage:   20,
				Units: []Unit{{
					Title:             "Language Skills",
					Description:       "Reading, writing, and communication",
					Topics:            namedTopics("Grammar", "Vocabulary", "Comprehension", "Writing"),
					EstimatedDuration: 15,
					Order:             1,
				}},
				TotalHours: 15,
			},
			{
				Name:        "Social Studies",
				Description: "History, geography, and civics",
				Weightage:   15,
				Units: []Unit{{
					Title:             "Social Sciences",
					Description:       "Understanding society and environment",
					Topics:            namedTopics("History", "Geography", "Civics", "Economics"),
					EstimatedDuration: 15,
					Order:             1,
				}},
				TotalHours: 15,
			},
			{
				Name:        "Computer Science",
				Description: "Technology and programming basics",
				Weightage:   15,
				Units: []Unit{{
					Title:             "Technology Fundamentals",
					Description:       "Basic computer and programming concepts",
					Topics:            namedTopics("Computer Basics", "Programming", "Internet", "Applications"),
					EstimatedDuration: 15,
					Order:             1,
				}},
				TotalHours: 15,
			},
		}
	}

	return []Subject{
		{
			Name:        "Programming Fundamentals",
			Description: "Core programming concepts and practices",
			Weightage:   30,
			Units: []Unit{{
				Title:             "Programming Basics",
				Description:       "Introduction to programming concepts",
				Topics:            namedTopics("Variables", "Control Structures", "Functions", "Data Types"),
				EstimatedDuration: 25,
				Order:             1,
			}},
			TotalHours: 25,
		},
		{
			Name:        "Web Development",
			Description: "Building for the web",
			Weightage:   30,
			Units: []Unit{{
				Title:             "Web Fundamentals",
				Description:       "Core web technologies",
				Topics:            namedTopics("HTML", "CSS", "JavaScript", "Responsive Design"),
				EstimatedDuration: 25,
				Order:             1,
			}},
			TotalHours: 25,
		},
		{
			Name:        "Databases",
			Description: "Data modeling and querying",
			Weightage:   20,
			Units: []Unit{{
				Title:             "Database Fundamentals",
				Description:       "Relational concepts",
				Topics:            namedTopics("Database Design", "SQL", "Normalization", "Relationships"),
				EstimatedDuration: 20,
				Order:             1,
			}},
			TotalHours: 20,
		},
		{
			Name:        "Software Engineering",
			Description: "Building software systematically",
			Weightage:   20,
			Units: []Unit{{
				Title:             "Engineering Practices",
				Description:       "The software lifecycle",
				Topics:            namedTopics("Requirements", "Design", "Implementation", "Testing"),
				EstimatedDuration: 20,
				Order:             1,
			}},
			TotalHours: 20,
		},
	}
}
