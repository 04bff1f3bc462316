package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

const selectUsersQuery = `
SELECT id, username, email, full_name, password_hash, role, created_at
FROM users
`

type UserRepository struct {
	base
}

type userRow struct {
	ID           uint64    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	FullName     string    `db:"full_name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{base: newBase(db)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	createdAt := r.now()
	id, err := r.insert(ctx, `
INSERT INTO users (username, email, full_name, password_hash, role, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.FullName, user.PasswordHash, string(user.Role), createdAt,
	)
	if err != nil {
		if isMySQLError(err, mysqlErrDuplicateEntry) {
			return domain.ErrDuplicateUser
		}
		return err
	}

	user.ID = id
	user.CreatedAt = createdAt
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (domain.User, error) {
	var row userRow
	if err := r.conn(ctx).GetContext(ctx, &row, selectUsersQuery+"WHERE id = ?", id); err != nil {
		return domain.User{}, notFoundOr(err, domain.ErrUserNotFound)
	}
	return mapUserRowToDomainUser(row), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var row userRow
	if err := r.conn(ctx).GetContext(ctx, &row, selectUsersQuery+"WHERE username = ?", username); err != nil {
		return domain.User{}, notFoundOr(err, domain.ErrUserNotFound)
	}
	return mapUserRowToDomainUser(row), nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID uint64) (bool, error) {
	var exists bool
	err := r.conn(ctx).GetContext(ctx, &exists, `
SELECT EXISTS (
  SELECT 1 FROM users WHERE (username = ? OR email = ?) AND id <> ?
)`, username, email, excludeID)
	return exists, err
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	_, err := r.conn(ctx).ExecContext(ctx, `
UPDATE users
SET username = ?, email = ?, full_name = ?, password_hash = ?, role = ?
WHERE id = ?`,
		user.Username, user.Email, user.FullName, user.PasswordHash, string(user.Role), user.ID,
	)
	if isMySQLError(err, mysqlErrDuplicateEntry) {
		return domain.ErrDuplicateUser
	}
	return err
}

// Delete relies on the foreign keys to unassign tasks, clear subtask
// completions and remove the user's comments.
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	return r.deleteByID(ctx, "DELETE FROM users WHERE id = ?", id, domain.ErrUserNotFound)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var rows []userRow
	if err := r.conn(ctx).SelectContext(ctx, &rows, selectUsersQuery+"ORDER BY full_name, id"); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUserRowToDomainUser(row))
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.conn(ctx).GetContext(ctx, &count, "SELECT COUNT(*) FROM users")
	return count, err
}

func mapUserRowToDomainUser(row userRow) domain.User {
	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		FullName:     row.FullName,
		PasswordHash: row.PasswordHash,
		Role:         domain.Role(row.Role),
		CreatedAt:    row.CreatedAt,
	}
}
