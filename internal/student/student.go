// Package student holds student profiles and their persistence.
package student

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Student types.
const (
	TypeSchool  = "school"
	TypeCollege = "college"
)

// LearningStyle weights how a student learns best. The three weights are
// fractions that roughly sum to 1.
type LearningStyle struct {
	Visual      float64 `json:"visual"`
	Auditory    float64 `json:"auditory"`
	Kinesthetic float64 `json:"kinesthetic"`
}

// SchoolDetails is the school-student side of the profile.
type SchoolDetails struct {
	Class  string `json:"class,omitempty"`
	Board  string `json:"board,omitempty"`
	Medium string `json:"medium,omitempty"`
}

// CollegeDetails is the college-student side of the profile.
type CollegeDetails struct {
	Degree string `json:"degree,omitempty"`
	Branch string `json:"branch,omitempty"`
	Year   int    `json:"year,omitempty"`
}

// Student is a registered learner profile.
type Student struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Email                string          `json:"email"`
	PasswordHash         string          `json:"-"`
	StudentType          string          `json:"studentType"`
	Age                  int             `json:"age"`
	LearningStyle        LearningStyle   `json:"learningStyle"`
	PreferredSubjects    []string        `json:"preferredSubjects,omitempty"`
	DifficultyPreference int             `json:"difficultyPreference"` // 1-10
	CurrentLevel         int             `json:"currentLevel"`
	School               *SchoolDetails  `json:"schoolDetails,omitempty"`
	College              *CollegeDetails `json:"collegeDetails,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// RegisterRequest is the profile registration input.
type RegisterRequest struct {
	Name                 string          `json:"name"`
	Email                string          `json:"email"`
	Password             string          `json:"password"`
	StudentType          string          `json:"studentType"`
	Age                  int             `json:"age"`
	LearningStyle        *LearningStyle  `json:"learningStyle,omitempty"`
	PreferredSubjects    []string        `json:"preferredSubjects,omitempty"`
	DifficultyPreference int             `json:"difficultyPreference,omitempty"`
	School               *SchoolDetails  `json:"schoolDetails,omitempty"`
	College              *CollegeDetails `json:"collegeDetails,omitempty"`
}

// New builds a Student from a registration request, hashing the password.
func New(req RegisterRequest) (*Student, error) {
	if req.Name == "" || req.Email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if req.StudentType != TypeSchool && req.StudentType != TypeCollege {
		return nil, fmt.Errorf("studentType must be %q or %q, got %q", TypeSchool, TypeCollege, req.StudentType)
	}
	if req.Age < 5 || req.Age > 100 {
		return nil, fmt.Errorf("age out of range: %d", req.Age)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	style := LearningStyle{Visual: 0.33, Auditory: 0.33, Kinesthetic: 0.34}
	if req.LearningStyle != nil {
		style = *req.LearningStyle
	}
	difficulty := req.DifficultyPreference
	if difficulty == 0 {
		difficulty = 5
	}

	return &Student{
		Name:                 req.Name,
		Email:                req.Email,
		PasswordHash:         string(hash),
		StudentType:          req.StudentType,
		Age:                  req.Age,
		LearningStyle:        style,
		PreferredSubjects:    req.PreferredSubjects,
		DifficultyPreference: difficulty,
		CurrentLevel:         1,
		School:               req.School,
		College:              req.College,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (s *Student) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)) == nil
}
