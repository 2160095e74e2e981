package student

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists student profiles.
type Store interface {
	Create(s Student) (string, error)
	Get(id string) (*Student, error)
	GetByEmail(email string) (*Student, error)
}

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	students map[string]*Student
	byEmail  map[string]string
	mu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory student store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		students: make(map[string]*Student),
		byEmail:  make(map[string]string),
	}
}

func (m *MemoryStore) Create(s Student) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byEmail[s.Email]; taken {
		return "", fmt.Errorf("email already registered: %s", s.Email)
	}

	s.ID = uuid.NewString()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	m.students[s.ID] = &s
	m.byEmail[s.Email] = s.ID
	return s.ID, nil
}

func (m *MemoryStore) Get(id string) (*Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.students[id]
	if !ok {
		return nil, fmt.Errorf("student not found: %s", id)
	}
	return s, nil
}

func (m *MemoryStore) GetByEmail(email string) (*Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("student not found: %s", email)
	}
	return m.students[id], nil
}
