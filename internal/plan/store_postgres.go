package plan

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

// PostgresStore is a PostgreSQL-backed Store. The plan body is a JSONB
// document; student id, status, and timestamps are relational columns so
// listing and filtering stay in SQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed plan store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

// Schema returns the DDL for the plans table.
func Schema() string {
	return `
CREATE TABLE IF NOT EXISTS learning_plans (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	student_id TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'active',
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_learning_plans_student ON learning_plans (student_id, created_at DESC);
`
}

func (s *PostgresStore) Create(p LearningPlan) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	doc, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal plan: %w", err)
	}

	var id string
	err = s.pool.QueryRow(ctx,
		`INSERT INTO learning_plans (student_id, status, document, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id::text`,
		p.StudentID,
		p.Status,
		doc,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create plan: %w", err)
	}

	return id, nil
}

func (s *PostgresStore) Get(id string) (*LearningPlan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	var (
		doc    []byte
		status string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT document, status
		 FROM learning_plans
		 WHERE id = $1::uuid
		 LIMIT 1`,
		id,
	).Scan(&doc, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("plan not found: %s", id)
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}

	var p LearningPlan
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	p.ID = id
	p.Status = status
	return &p, nil
}

func (s *PostgresStore) ListByStudent(studentID string) ([]LearningPlan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, document, status
		 FROM learning_plans
		 WHERE student_id = $1
		 ORDER BY created_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var out []LearningPlan
	for rows.Next() {
		var (
			id     string
			doc    []byte
			status string
		)
		if err := rows.Scan(&id, &doc, &status); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		var p LearningPlan
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("unmarshal plan %s: %w", id, err)
		}
		p.ID = id
		p.Status = status
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(p *LearningPlan) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	p.UpdatedAt = time.Now()

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE learning_plans
		 SET document = $2, status = $3, updated_at = $4
		 WHERE id = $1::uuid`,
		p.ID,
		doc,
		p.Status,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("plan not found: %s", p.ID)
	}
	return nil
}
