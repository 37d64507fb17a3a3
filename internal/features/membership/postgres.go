package membership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go-erp/internal/features/role"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS companies (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	owner_user_id BIGINT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at    TIMESTAMPTZ
);
CREATE TABLE IF NOT EXISTS roles (
	id          BIGSERIAL PRIMARY KEY,
	company_id  BIGINT NOT NULL REFERENCES companies(id),
	name        TEXT NOT NULL,
	is_system   BOOLEAN NOT NULL DEFAULT false,
	permissions TEXT NOT NULL DEFAULT '{}',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS company_users (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL,
	company_id BIGINT NOT NULL REFERENCES companies(id),
	role_id    BIGINT REFERENCES roles(id),
	is_active  BOOLEAN NOT NULL DEFAULT true,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS company_users_active_uq
	ON company_users (user_id, company_id) WHERE is_active;
`

const findAssignmentSQL = `SELECT cu.id, cu.user_id, cu.company_id, cu.role_id, cu.is_active, cu.created_at,
	r.id, r.name, r.is_system, r.permissions
FROM company_users cu
LEFT JOIN roles r ON r.id = cu.role_id AND r.company_id = cu.company_id
WHERE cu.user_id = $1 AND cu.company_id = $2 AND cu.is_active
LIMIT 1`

const companyExistsSQL = `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1 AND deleted_at IS NULL)`

const listCompaniesSQL = `SELECT c.id, c.name, c.owner_user_id, COALESCE(cu.role_id, 0)
FROM company_users cu
JOIN companies c ON c.id = cu.company_id
WHERE cu.user_id = $1 AND cu.is_active AND c.deleted_at IS NULL
ORDER BY c.name`

const listRolesSQL = `SELECT id, company_id, name, is_system, permissions, created_at, updated_at
FROM roles WHERE company_id = $1 ORDER BY name`

const findRoleSQL = `SELECT id, company_id, name, is_system, permissions, created_at, updated_at
FROM roles WHERE company_id = $1 AND id = $2`

// PostgresStore is the Store over database/sql with the lib/pq driver.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure membership schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindAssignment(ctx context.Context, userID, companyID int64) (*Assignment, error) {
	var (
		a           Assignment
		roleID      sql.NullInt64
		joinedID    sql.NullInt64
		name        sql.NullString
		isSystem    sql.NullBool
		permissions sql.NullString
	)
	err := s.db.QueryRowContext(ctx, findAssignmentSQL, userID, companyID).Scan(
		&a.ID, &a.UserID, &a.CompanyID, &roleID, &a.IsActive, &a.CreatedAt,
		&joinedID, &name, &isSystem, &permissions,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find membership: %w", err)
	}

	a.RoleID = roleID.Int64
	if joinedID.Valid {
		a.Role = &role.Role{
			ID:          joinedID.Int64,
			CompanyID:   a.CompanyID,
			Name:        name.String,
			IsSystem:    isSystem.Bool,
			Permissions: permissions.String,
		}
	}
	return &a, nil
}

func (s *PostgresStore) CompanyExists(ctx context.Context, companyID int64) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, companyExistsSQL, companyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check company: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListCompanies(ctx context.Context, userID int64) ([]CompanyMembership, error) {
	rows, err := s.db.QueryContext(ctx, listCompaniesSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	out := []CompanyMembership{}
	for rows.Next() {
		var (
			cm    CompanyMembership
			owner int64
		)
		if err := rows.Scan(&cm.CompanyID, &cm.CompanyName, &owner, &cm.RoleID); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		cm.IsOwner = owner == userID
		out = append(out, cm)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListRoles(ctx context.Context, companyID int64) ([]role.Role, error) {
	rows, err := s.db.QueryContext(ctx, listRolesSQL, companyID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	roles := []role.Role{}
	for rows.Next() {
		var r role.Role
		if err := rows.Scan(&r.ID, &r.CompanyID, &r.Name, &r.IsSystem, &r.Permissions, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

func (s *PostgresStore) FindRole(ctx context.Context, companyID, roleID int64) (*role.Role, error) {
	var r role.Role
	err := s.db.QueryRowContext(ctx, findRoleSQL, companyID, roleID).Scan(
		&r.ID, &r.CompanyID, &r.Name, &r.IsSystem, &r.Permissions, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &r, nil
}
