package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"clearcause/internal/domain"
	"clearcause/internal/infra"
	"clearcause/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	db infra.DB
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(db infra.DB) *UserRepositoryPG {
	return &UserRepositoryPG{db: db}
}

// Create inserts the user; a taken email yields domain.ErrConflict.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, sqlinline.QInsertUser, user.Email, user.PasswordHash, user.FullName, string(user.Role)).
		Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if infra.IsUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

// GetByID fetches a user by UUID.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, sqlinline.QSelectUserByID, id))
}

// GetByEmail fetches a user by email, case-insensitively.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, sqlinline.QSelectUserByEmail, email))
}

// UpdateProfile changes the non-empty fields.
func (r *UserRepositoryPG) UpdateProfile(ctx context.Context, id, fullName, avatarURL string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, sqlinline.QUpdateUserProfile, id, fullName, avatarURL))
}

func (r *UserRepositoryPG) SetRole(ctx context.Context, id string, role domain.UserRole) error {
	tag, err := r.db.Exec(ctx, sqlinline.QUpdateUserRole, id, string(role))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepositoryPG) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.db.Exec(ctx, sqlinline.QUpdateUserActive, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepositoryPG) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	page := filter.Page.Normalize()
	rows, err := r.db.Query(ctx, sqlinline.QListUsers, string(filter.Role), filter.Search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanUser)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.AvatarURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
