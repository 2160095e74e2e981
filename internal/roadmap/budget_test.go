package roadmap_test

import (
	"errors"
	"testing"

	"github.com/learnloop/learnloop/internal/curriculum"
	"github.com/learnloop/learnloop/internal/roadmap"
)

func curriculumWithHours(hours ...float64) curriculum.Curriculum {
	c := curriculum.Curriculum{}
	for i, h := range hours {
		c.Subjects = append(c.Subjects, curriculum.Subject{
			Name:       string(rune('A' + i)),
			TotalHours: h,
		})
	}
	return c
}

func TestDailyStudyHours(t *testing.T) {
	tests := []struct {
		name  string
		hours []float64
		days  int
		want  int
	}{
		{"20h over 10 days", []float64{20}, 10, 3},  // ceil(20/7) = 3
		{"45h over 30 days", []float64{45}, 30, 3},  // ceil(45/21) = 3
		{"split subjects", []float64{20, 25}, 30, 3}, // ceil(45/21) = 3
		{"exact division", []float64{14}, 10, 2},     // ceil(14/7) = 2
		{"tiny curriculum floors at 1", []float64{0.5}, 90, 1},
		{"empty curriculum floors at 1", nil, 30, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := roadmap.DailyStudyHours(curriculumWithHours(tt.hours...), tt.days)
			if err != nil {
				t.Fatalf("DailyStudyHours() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DailyStudyHours() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDailyStudyHours_InvalidDuration(t *testing.T) {
	for _, days := range []int{0, -1, -30} {
		_, err := roadmap.DailyStudyHours(curriculumWithHours(20), days)
		if !errors.Is(err, roadmap.ErrInvalidDuration) {
			t.Errorf("DailyStudyHours(days=%d) error = %v, want ErrInvalidDuration", days, err)
		}
	}
}
