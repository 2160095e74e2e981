package plan

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists learning plans.
type Store interface {
	Create(p LearningPlan) (string, error)
	Get(id string) (*LearningPlan, error)
	ListByStudent(studentID string) ([]LearningPlan, error)
	Update(p *LearningPlan) error
}

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	plans map[string]*LearningPlan
	mu    sync.RWMutex
}

// NewMemoryStore creates a new in-memory plan store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]*LearningPlan)}
}

func (m *MemoryStore) Create(p LearningPlan) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = uuid.NewString()
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	m.plans[p.ID] = &p
	return p.ID, nil
}

func (m *MemoryStore) Get(id string) (*LearningPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan not found: %s", id)
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) ListByStudent(studentID string) ([]LearningPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []LearningPlan
	for _, p := range m.plans {
		if p.StudentID == studentID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) Update(p *LearningPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plans[p.ID]; !ok {
		return fmt.Errorf("plan not found: %s", p.ID)
	}
	p.UpdatedAt = time.Now()
	cp := *p
	m.plans[p.ID] = &cp
	return nil
}
