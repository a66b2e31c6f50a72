package user

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

// PostgresStore persists user documents as JSONB rows. The store is pure I/O;
// validation and identity logic belong to the callers.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM users WHERE user_id = $1`, userID).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", store.Unavailable(err))
	}
	var u domain.User
	if err := json.Unmarshal(doc, &u); err != nil {
		return nil, fmt.Errorf("decode user document: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, doc)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc
	`, user.UserID, doc)
	if err != nil {
		return fmt.Errorf("upsert user: %w", store.Unavailable(err))
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", store.Unavailable(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", store.Unavailable(err))
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users`)
	if err != nil {
		return 0, fmt.Errorf("delete all users: %w", store.Unavailable(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all users rows affected: %w", store.Unavailable(err))
	}
	return rows, nil
}

func (s *PostgresStore) List(ctx context.Context, filter string) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc FROM users
		WHERE $1 = '' OR user_id LIKE '%' || $1 || '%'
		ORDER BY user_id
	`, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", store.Unavailable(err))
	}
	defer rows.Close()

	var result []*domain.User
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan user document: %w", store.Unavailable(err))
		}
		var u domain.User
		if err := json.Unmarshal(doc, &u); err != nil {
			return nil, fmt.Errorf("decode user document: %w", err)
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", store.Unavailable(err))
	}
	return result, nil
}
