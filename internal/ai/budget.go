package ai

import (
	"fmt"
	"sync"
)

// BudgetChecker checks and records token usage per student, so a single
// student cannot burn through the platform's generation quota.
type BudgetChecker interface {
	// Check returns true if the student has budget remaining.
	Check(studentID string) (bool, error)
	// Record records token usage for a student.
	Record(studentID string, tokens int) error
	// Usage returns current usage for a student.
	Usage(studentID string) (used int64, budget int64, err error)
}

// InMemoryBudget is a simple in-memory budget tracker for development.
type InMemoryBudget struct {
	mu      sync.RWMutex
	budgets map[string]int64 // studentID -> budget limit
	usage   map[string]int64 // studentID -> tokens used
}

// NewInMemoryBudget creates a new in-memory budget tracker.
func NewInMemoryBudget() *InMemoryBudget {
	return &InMemoryBudget{
		budgets: make(map[string]int64),
		usage:   make(map[string]int64),
	}
}

// SetBudget sets the token budget for a student.
func (b *InMemoryBudget) SetBudget(studentID string, tokens int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.budgets[studentID] = tokens
}

func (b *InMemoryBudget) Check(studentID string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	budget, hasBudget := b.budgets[studentID]
	if !hasBudget {
		// No budget set means unlimited.
		return true, nil
	}

	return b.usage[studentID] < budget, nil
}

func (b *InMemoryBudget) Record(studentID string, tokens int) error {
	if tokens < 0 {
		return fmt.Errorf("tokens must be non-negative, got %d", tokens)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.usage[studentID] += int64(tokens)
	return nil
}

func (b *InMemoryBudget) Usage(studentID string) (int64, int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.usage[studentID], b.budgets[studentID], nil
}
