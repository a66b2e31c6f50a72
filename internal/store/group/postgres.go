package group

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/statisticsnorway/dataset-access-sub000/internal/store"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/sentinel"
)

// PostgresStore persists group documents as JSONB rows.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed group store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, groupID string) (*domain.Group, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM groups WHERE group_id = $1`, groupID).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", store.Unavailable(err))
	}
	var g domain.Group
	if err := json.Unmarshal(doc, &g); err != nil {
		return nil, fmt.Errorf("decode group document: %w", err)
	}
	return &g, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*domain.Group, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM groups ORDER BY group_id`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", store.Unavailable(err))
	}
	defer rows.Close()

	var result []*domain.Group
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan group document: %w", store.Unavailable(err))
		}
		var g domain.Group
		if err := json.Unmarshal(doc, &g); err != nil {
			return nil, fmt.Errorf("decode group document: %w", err)
		}
		result = append(result, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list groups: %w", store.Unavailable(err))
	}
	return result, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, group *domain.Group) error {
	if err := group.Validate(); err != nil {
		return err
	}
	doc, err := json.Marshal(group)
	if err != nil {
		return fmt.Errorf("encode group document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO groups (group_id, doc)
		VALUES ($1, $2)
		ON CONFLICT (group_id) DO UPDATE SET doc = EXCLUDED.doc
	`, group.GroupID, doc)
	if err != nil {
		return fmt.Errorf("upsert group: %w", store.Unavailable(err))
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, groupID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM groups WHERE group_id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("delete group: %w", store.Unavailable(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete group rows affected: %w", store.Unavailable(err))
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM groups`)
	if err != nil {
		return 0, fmt.Errorf("delete all groups: %w", store.Unavailable(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all groups rows affected: %w", store.Unavailable(err))
	}
	return rows, nil
}
