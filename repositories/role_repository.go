package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/torneolink/backend/models"
)

var (
	ErrRoleNotFound            = errors.New("role not found")
	ErrRoleAssignmentConflict  = errors.New("role already assigned to user")
)

type RoleRepository interface {
	GetByName(ctx context.Context, name models.RoleName) (*models.Role, error)
	ListByUserID(ctx context.Context, userID int) ([]models.Role, error)
	Assign(ctx context.Context, exec SQLExecutor, userID, roleID int) error
}

type postgresRoleRepository struct {
	db *sql.DB
}

func NewPostgresRoleRepository(db *sql.DB) RoleRepository {
	return &postgresRoleRepository{db: db}
}

func (r *postgresRoleRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRoleRepository) GetByName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	query := `SELECT id, name, description FROM roles WHERE name = $1`
	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

func (r *postgresRoleRepository) ListByUserID(ctx context.Context, userID int) ([]models.Role, error) {
	query := `
		SELECT r.id, r.name, r.description
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]models.Role, 0)
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *postgresRoleRepository) Assign(ctx context.Context, exec SQLExecutor, userID, roleID int) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`
	_, err := executor.ExecContext(ctx, query, userID, roleID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrRoleAssignmentConflict
		}
		return err
	}
	return nil
}
