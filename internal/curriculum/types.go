// Package curriculum defines the subject/unit/topic tree that learning
// plans are generated from, and normalizes caller input into that tree.
package curriculum

// Resource points a student at study material for a topic.
type Resource struct {
	Type     string `json:"type" yaml:"type"`
	Title    string `json:"title" yaml:"title"`
	URL      string `json:"url" yaml:"url"`
	Duration int    `json:"duration,omitempty" yaml:"duration,omitempty"` // minutes
}

// Topic is the leaf unit of learning content.
type Topic struct {
	Name               string     `json:"name" yaml:"name"`
	Description        string     `json:"description,omitempty" yaml:"description,omitempty"`
	Difficulty         int        `json:"difficulty,omitempty" yaml:"difficulty,omitempty"` // 1-10
	EstimatedHours     float64    `json:"estimatedHours,omitempty" yaml:"estimated_hours,omitempty"`
	Prerequisites      []string   `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	LearningObjectives []string   `json:"learningObjectives,omitempty" yaml:"learning_objectives,omitempty"`
	Resources          []Resource `json:"resources,omitempty" yaml:"resources,omitempty"`
}

// Unit is an ordered collection of topics under a title.
type Unit struct {
	Title             string  `json:"title" yaml:"title"`
	Description       string  `json:"description,omitempty" yaml:"description,omitempty"`
	Topics            []Topic `json:"topics" yaml:"topics"`
	EstimatedDuration float64 `json:"estimatedDuration" yaml:"estimated_duration"` // hours
	Order             int     `json:"order" yaml:"order"`
}

// Subject is a named collection of units. Weightage is relative importance
// used for progress percentages only; packing order is positional.
type Subject struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Weightage   int     `json:"weightage" yaml:"weightage"`
	Units       []Unit  `json:"units" yaml:"units"`
	TotalHours  float64 `json:"totalHours" yaml:"total_hours"`
}

// Curriculum is the full tree for one learning plan. Constructed once per
// generation request and read-only from then on.
type Curriculum struct {
	Subjects      []Subject `json:"subjects" yaml:"subjects"`
	TotalDuration int       `json:"totalDuration" yaml:"total_duration"` // days
	RoadmapType   string    `json:"roadmapType,omitempty" yaml:"roadmap_type,omitempty"`
	Source        string    `json:"source" yaml:"source"` // "ai-generated" | "static" | "custom"
}

// TotalHours sums the subjects' total hours.
func (c Curriculum) TotalHours() float64 {
	var total float64
	for _, s := range c.Subjects {
		total += s.TotalHours
	}
	return total
}

// UnitHours sums a subject's unit durations.
func (s Subject) UnitHours() float64 {
	var total float64
	for _, u := range s.Units {
		total += u.EstimatedDuration
	}
	return total
}

// SubjectSpec is a caller-supplied subject, possibly without units.
type SubjectSpec struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Weightage   int     `json:"weightage,omitempty"`
	Units       []Unit  `json:"units,omitempty"`
	TotalHours  float64 `json:"totalHours,omitempty"`
}

// Request is the normalizer input: explicit subjects, a preset key, or
// neither (generic fallback).
type Request struct {
	Subjects []SubjectSpec `json:"subjects,omitempty"`
	Preset   string        `json:"preset,omitempty"`
	Duration int           `json:"duration"` // days
}
