package role

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

// PostgresStore persists role documents as JSONB rows.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed role store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, roleID string) (*domain.Role, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM roles WHERE role_id = $1`, roleID).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get role: %w", store.Unavailable(err))
	}
	return decodeRole(doc)
}

func (s *PostgresStore) GetMany(ctx context.Context, roleIDs []string) ([]*domain.Role, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc FROM roles
		WHERE role_id = ANY($1)
		ORDER BY role_id
	`, roleIDs)
	if err != nil {
		return nil, fmt.Errorf("get roles: %w", store.Unavailable(err))
	}
	defer rows.Close()
	return scanRoles(rows)
}

func (s *PostgresStore) Upsert(ctx context.Context, role *domain.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	doc, err := json.Marshal(role)
	if err != nil {
		return fmt.Errorf("encode role document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO roles (role_id, doc)
		VALUES ($1, $2)
		ON CONFLICT (role_id) DO UPDATE SET doc = EXCLUDED.doc
	`, role.RoleID, doc)
	if err != nil {
		return fmt.Errorf("upsert role: %w", store.Unavailable(err))
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, roleID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM roles WHERE role_id = $1`, roleID)
	if err != nil {
		return fmt.Errorf("delete role: %w", store.Unavailable(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete role rows affected: %w", store.Unavailable(err))
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM roles`)
	if err != nil {
		return 0, fmt.Errorf("delete all roles: %w", store.Unavailable(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all roles rows affected: %w", store.Unavailable(err))
	}
	return rows, nil
}

func (s *PostgresStore) List(ctx context.Context, filter string) ([]*domain.Role, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc FROM roles
		WHERE $1 = '' OR role_id LIKE '%' || $1 || '%'
		ORDER BY role_id
	`, filter)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", store.Unavailable(err))
	}
	defer rows.Close()
	return scanRoles(rows)
}

func decodeRole(doc []byte) (*domain.Role, error) {
	var r domain.Role
	if err := json.Unmarshal(doc, &r); err != nil {
		return nil, fmt.Errorf("decode role document: %w", err)
	}
	return &r, nil
}

func scanRoles(rows *sql.Rows) ([]*domain.Role, error) {
	var result []*domain.Role
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan role document: %w", store.Unavailable(err))
		}
		r, err := decodeRole(doc)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan roles: %w", store.Unavailable(err))
	}
	return result, nil
}
