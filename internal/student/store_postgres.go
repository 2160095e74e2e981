package student

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed Store. The profile body lives in a
// JSONB column; id, email, and password hash are relational so lookups
// and the uniqueness constraint stay in SQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed student store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Create(st Student) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now()
	}

	profile, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	var id string
	err = s.pool.QueryRow(ctx,
		`INSERT INTO students (email, password_hash, profile, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id::text`,
		st.Email,
		st.PasswordHash,
		profile,
		st.CreatedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create student: %w", err)
	}

	return id, nil
}

func (s *PostgresStore) Get(id string) (*Student, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	return s.getByQuery(ctx,
		`SELECT id::text, email, password_hash, profile
		 FROM students
		 WHERE id = $1::uuid
		 LIMIT 1`,
		id,
	)
}

func (s *PostgresStore) GetByEmail(email string) (*Student, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	return s.getByQuery(ctx,
		`SELECT id::text, email, password_hash, profile
		 FROM students
		 WHERE email = $1
		 LIMIT 1`,
		email,
	)
}

func (s *PostgresStore) getByQuery(ctx context.Context, query string, args ...any) (*Student, error) {
	var (
		id           string
		email        string
		passwordHash string
		profile      []byte
	)
	err := s.pool.QueryRow(ctx, query, args...).Scan(&id, &email, &passwordHash, &profile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("student not found")
		}
		return nil, fmt.Errorf("get student: %w", err)
	}

	var st Student
	if err := json.Unmarshal(profile, &st); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	st.ID = id
	st.Email = email
	st.PasswordHash = passwordHash
	return &st, nil
}
