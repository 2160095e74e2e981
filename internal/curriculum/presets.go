package curriculum

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Roadmap is a technology-track preset: stages of coarse topics, each with
// a duration in hours. Converted into a Curriculum before packing.
type Roadmap struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Stages      []Stage `yaml:"stages"`
}

// Stage is one phase of a roadmap.
type Stage struct {
	Name   string       `yaml:"name"`
	Topics []StageTopic `yaml:"topics"`
}

// StageTopic is a coarse roadmap topic, expanded into five curriculum
// topics during conversion.
type StageTopic struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Duration    float64 `yaml:"duration"` // hours
}

// RoadmapInfo is the listing entry for an available roadmap.
type RoadmapInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var titleCaser = cases.Title(language.English)

// DisplayTitle derives a listing title for a preset key that has none.
func DisplayTitle(key string) string {
	return titleCaser.String(key)
}

// ConvertRoadmap expands a roadmap into a full curriculum: stages become
// subjects, each stage topic becomes a unit with five derived topics at a
// fifth of the stage topic's duration each.
func ConvertRoadmap(r Roadmap, roadmapType string, duration int) Curriculum {
	subjects := make([]Subject, 0, len(r.Stages))
	for _, stage := range r.Stages {
		units := make([]Unit, 0, len(stage.Topics))
		var stageHours float64
		for i, t := range stage.Topics {
			units = append(units, Unit{
				Title:             t.Name,
				Description:       t.Description,
				Topics:            derivedTopics(t),
				EstimatedDuration: t.Duration,
				Order:             i + 1,
			})
			stageHours += t.Duration
		}
		subjects = append(subjects, Subject{
			Name:        stage.Name,
			Description: fmt.Sprintf("Comprehensive study of %s", stage.Name),
			Weightage:   int(math.Round(100 / float64(len(r.Stages)))),
			Units:       units,
			TotalHours:  stageHours,
		})
	}
	return Curriculum{
		Subjects:      subjects,
		TotalDuration: duration,
		RoadmapType:   roadmapType,
		Source:        "static",
	}
}

func derivedTopics(t StageTopic) []Topic {
	share := t.Duration / 5
	return []Topic{
		{
			Name:               fmt.Sprintf("Introduction to %s", t.Name),
			Description:        fmt.Sprintf("Learn the basics of %s", t.Name),
			Difficulty:         1,
			EstimatedHours:     share,
			LearningObjectives: []string{fmt.Sprintf("Understand %s fundamentals", t.Name)},
		},
		{
			Name:               "Core Concepts",
			Description:        fmt.Sprintf("Master core concepts of %s", t.Name),
			Difficulty:         2,
			EstimatedHours:     share,
			Prerequisites:      []string{fmt.Sprintf("Introduction to %s", t.Name)},
			LearningObjectives: []string{fmt.Sprintf("Apply %s core concepts", t.Name)},
		},
		{
			Name:               "Practical Applications",
			Description:        fmt.Sprintf("Apply %s in real scenarios", t.Name),
			Difficulty:         3,
			EstimatedHours:     share,
			Prerequisites:      []string{"Core Concepts"},
			LearningObjectives: []string{fmt.Sprintf("Build practical %s applications", t.Name)},
		},
		{
			Name:               "Advanced Features",
			Description:        fmt.Sprintf("Explore advanced %s features", t.Name),
			Difficulty:         4,
			EstimatedHours:     share,
			Prerequisites:      []string{"Practical Applications"},
			LearningObjectives: []string{fmt.Sprintf("Master advanced %s features", t.Name)},
		},
		{
			Name:               "Best Practices",
			Description:        fmt.Sprintf("Learn %s best practices", t.Name),
			Difficulty:         3,
			EstimatedHours:     share,
			Prerequisites:      []string{"Advanced Features"},
			LearningObjectives: []string{fmt.Sprintf("Implement %s best practices", t.Name)},
		},
	}
}

// builtinRoadmaps are the static technology tracks, used directly and as
// the fallback when AI roadmap generation fails.
var builtinRoadmaps = map[string]Roadmap{
	"frontend": {
		Title:       "Frontend Development Roadmap",
		Description: "Complete roadmap to become a frontend developer",
		Stages: []Stage{
			{Name: "Basics", Topics: []StageTopic{
				{Name: "HTML", Description: "Learn HTML structure and semantics", Duration: 20},
				{Name: "CSS", Description: "Master CSS styling and layout", Duration: 30},
				{Name: "JavaScript", Description: "Learn JavaScript fundamentals", Duration: 40},
			}},
			{Name: "Advanced Frontend", Topics: []StageTopic{
				{Name: "React", Description: "Learn React.js framework", Duration: 35},
				{Name: "Vue.js", Description: "Alternative frontend framework", Duration: 30},
				{Name: "TypeScript", Description: "Type-safe JavaScript", Duration: 25},
			}},
			{Name: "Build Tools", Topics: []StageTopic{
				{Name: "Webpack", Description: "Module bundler", Duration: 20},
				{Name: "Vite", Description: "Modern build tool", Duration: 15},
				{Name: "Testing", Description: "Jest, Cypress, etc.", Duration: 25},
			}},
		},
	},
	"backend": {
		Title:       "Backend Development Roadmap",
		Description: "Complete roadmap to become a backend developer",
		Stages: []Stage{
			{Name: "Programming Fundamentals", Topics: []StageTopic{
				{Name: "Python", Description: "Learn Python programming", Duration: 30},
				{Name: "Node.js", Description: "JavaScript runtime", Duration: 25},
				{Name: "Java", Description: "Enterprise programming", Duration: 35},
			}},
			{Name: "Databases", Topics: []StageTopic{
				{Name: "SQL", Description: "Relational databases", Duration: 25},
				{Name: "MongoDB", Description: "NoSQL database", Duration: 20},
				{Name: "Redis", Description: "In-memory database", Duration: 15},
			}},
			{Name: "APIs & Frameworks", Topics: []StageTopic{
				{Name: "Express.js", Description: "Node.js web framework", Duration: 20},
				{Name: "Django", Description: "Python web framework", Duration: 25},
				{Name: "Spring Boot", Description: "Java framework", Duration: 30},
			}},
		},
	},
	"fullstack": {
		Title:       "Full Stack Development Roadmap",
		Description: "Complete roadmap to become a full stack developer",
		Stages: []Stage{
			{Name: "Frontend", Topics: []StageTopic{
				{Name: "HTML/CSS/JS", Description: "Frontend fundamentals", Duration: 30},
				{Name: "React", Description: "Frontend framework", Duration: 25},
				{Name: "State Management", Description: "Redux, Context API", Duration: 20},
			}},
			{Name: "Backend", Topics: []StageTopic{
				{Name: "Node.js", Description: "JavaScript backend", Duration: 25},
				{Name: "Express.js", Description: "Web framework", Duration: 20},
				{Name: "Database Design", Description: "SQL and NoSQL", Duration: 25},
			}},
			{Name: "DevOps", Topics: []StageTopic{
				{Name: "Git", Description: "Version control", Duration: 15},
				{Name: "Docker", Description: "Containerization", Duration: 20},
				{Name: "Deployment", Description: "Cloud platforms", Duration: 20},
			}},
		},
	},
	"data-science": {
		Title:       "Data Science Roadmap",
		Description: "Complete roadmap to become a data scientist",
		Stages: []Stage{
			{Name: "Mathematics", Topics: []StageTopic{
				{Name: "Statistics", Description: "Statistical analysis", Duration: 30},
				{Name: "Linear Algebra", Description: "Mathematical foundations", Duration: 25},
				{Name: "Calculus", Description: "Mathematical concepts", Duration: 20},
			}},
			{Name: "Programming", Topics: []StageTopic{
				{Name: "Python", Description: "Primary language", Duration: 25},
				{Name: "R", Description: "Statistical programming", Duration: 20},
				{Name: "SQL", Description: "Data querying", Duration: 15},
			}},
			{Name: "Machine Learning", Topics: []StageTopic{
				{Name: "Scikit-learn", Description: "ML library", Duration: 25},
				{Name: "TensorFlow", Description: "Deep learning", Duration: 30},
				{Name: "Data Visualization", Description: "Matplotlib, Seaborn", Duration: 20},
			}},
		},
	},
	"cybersecurity": {
		Title:       "Cybersecurity Roadmap",
		Description: "Complete roadmap to become a cybersecurity expert",
		Stages: []Stage{
			{Name: "Networking", Topics: []StageTopic{
				{Name: "Network Fundamentals", Description: "TCP/IP, protocols", Duration: 25},
				{Name: "Network Security", Description: "Firewalls, VPNs", Duration: 20},
				{Name: "Wireless Security", Description: "WiFi security", Duration: 15},
			}},
			{Name: "Security Tools", Topics: []StageTopic{
				{Name: "Wireshark", Description: "Network analysis", Duration: 20},
				{Name: "Metasploit", Description: "Penetration testing", Duration: 25},
				{Name: "Nmap", Description: "Network scanning", Duration: 15},
			}},
			{Name: "Ethical Hacking", Topics: []StageTopic{
				{Name: "Web Application Security", Description: "OWASP Top 10", Duration: 30},
				{Name: "Social Engineering", Description: "Human factor security", Duration: 20},
				{Name: "Incident Response", Description: "Security incident handling", Duration: 25},
			}},
		},
	},
}

// builtinSyllabi are school-board and exam-prep presets whose unit/topic
// trees are copied verbatim into the curriculum.
var builtinSyllabi = map[string][]Subject{
	"cbse-9": {
		{
			Name:        "Mathematics",
			Description: "CBSE Class 9 Mathematics",
			Weightage:   25,
			Units: []Unit{{
				Title:             "Core Mathematics",
				Description:       "Number systems through statistics",
				Topics:            namedTopics("Number Systems", "Polynomials", "Coordinate Geometry", "Linear Equations", "Triangles", "Statistics"),
				EstimatedDuration: 20,
				Order:             1,
			}},
			TotalHours: 20,
		},
		{
			Name:        "Science",
			Description: "CBSE Class 9 Science",
			Weightage:   25,
			Units: []Unit{{
				Title:             "Core Science",
				Description:       "Matter, life processes, motion and force",
				Topics:            namedTopics("Matter in Our Surroundings", "Atoms and Molecules", "The Fundamental Unit of Life", "Motion", "Force and Laws of Motion", "Gravitation"),
				EstimatedDuration: 20,
				Order:             1,
			}},
			TotalHours: 20,
		},
		{
			Name:        "English",
			Description: "CBSE Class 9 English",
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
	},
	"neet": {
		{
			Name:        "Physics",
			Description: "NEET Physics preparation",
			Weightage:   25,
			Units: []Unit{{
				Title:             "Mechanics",
				Description:       "Motion, forces, and energy",
				Topics:            namedTopics("Motion", "Forces", "Energy", "Momentum"),
				EstimatedDuration: 30,
				Order:             1,
			}},
			TotalHours: 30,
		},
		{
			Name:        "Chemistry",
			Description: "NEET Chemistry preparation",
			Weightage:   25,
			Units: []Unit{{
				Title:             "Physical Chemistry",
				Description:       "Structure and bonding",
				Topics:            namedTopics("Atomic Structure", "Chemical Bonding", "Thermodynamics"),
				EstimatedDuration: 30,
				Order:             1,
			}},
			TotalHours: 30,
		},
		{
			Name:        "Biology",
			Description: "NEET Biology preparation",
			Weightage:   50,
			Units: []Unit{{
				Title:             "Botany and Zoology",
				Description:       "Cells through ecology",
				Topics:            namedTopics("Cell Biology", "Plant Physiology", "Ecology"),
				EstimatedDuration: 40,
				Order:             1,
			}},
			TotalHours: 40,
		},
	},
	"mern": {
		{
			Name:        "MongoDB",
			Description: "Document database for the MERN stack",
			Weightage:   20,
			Units: []Unit{{
				Title:             "MongoDB Essentials",
				Description:       "Working with documents",
				Topics:            namedTopics("CRUD Operations", "Schema Design", "Indexing"),
				EstimatedDuration: 25,
				Order:             1,
			}},
			TotalHours: 25,
		},
		{
			Name:        "Express.js",
			Description: "Backend web framework",
			Weightage:   20,
			Units: []Unit{{
				Title:             "Express Essentials",
				Description:       "Routing and middleware",
				Topics:            namedTopics("Routing", "Middleware", "REST APIs"),
				EstimatedDuration: 25,
				Order:             1,
			}},
			TotalHours: 25,
		},
		{
			Name:        "React",
			Description: "Frontend library",
			Weightage:   30,
			Units: []Unit{{
				Title:             "React Essentials",
				Description:       "Components and state",
				Topics:            namedTopics("Components", "Hooks", "State Management"),
				EstimatedDuration: 30,
				Order:             1,
			}},
			TotalHours: 30,
		},
		{
			Name:        "Node.js",
			Description: "JavaScript runtime",
			Weightage:   30,
			Units: []Unit{{
				Title:             "Node Essentials",
				Description:       "Server-side JavaScript",
				Topics:            namedTopics("Event Loop", "Modules", "File System", "HTTP Servers"),
				EstimatedDuration: 30,
				Order:             1,
			}},
			TotalHours: 30,
		},
	},
}

func namedTopics(names ...string) []Topic {
	topics := make([]Topic, len(names))
	for i, n := range names {
		topics[i] = Topic{Name: n}
	}
	return topics
}
