package repository

import (
	"context"
	"database/sql"

	"eventhub/core/database"
	"eventhub/core/logger"
	"eventhub/modules/auth/entity"

	"github.com/google/uuid"
)

// AuthRepository handles all user and account database operations
type AuthRepository struct {
	DB database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: db}
}

// AuthRepositoryInterface defines the contract for user persistence
type AuthRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, username *string, fullName *string) error
	UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL string) error
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error
	CountAdmins(ctx context.Context) (int, error)
	PromoteToAdmin(ctx context.Context, id uuid.UUID) error
}

const userColumns = `id, email, username, full_name, avatar_url, password_hash, is_admin, is_banned, created_at, updated_at`

func (r *AuthRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (email, username, full_name, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query,
		user.Email, user.Username, user.FullName, user.Password, user.IsAdmin)
	if err != nil {
		// Duplicate email/username surfaces as a unique violation; the
		// service maps it to an "already exists" outcome.
		if !database.IsUniqueViolation(err) {
			logger.Error("AuthRepository:CreateUser", err)
		}
		return nil, err
	}

	return &created, nil
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID", err)
		return nil, err
	}

	return &user, nil
}

// GetUserByIdentifier looks a user up by email or username.
func (r *AuthRepository) GetUserByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR username = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, identifier)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByIdentifier", err)
		return nil, err
	}

	return &user, nil
}

// GetUserByUsername matches on username only, for public profile lookups.
func (r *AuthRepository) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByUsername", err)
		return nil, err
	}

	return &user, nil
}

func (r *AuthRepository) UpdateProfile(ctx context.Context, id uuid.UUID, username *string, fullName *string) error {
	query := `
		UPDATE users
		SET username = COALESCE($2, username),
		    full_name = COALESCE($3, full_name),
		    updated_at = NOW()
		WHERE id = $1
	`
	err := r.DB.ExecContext(ctx, query, id, username, fullName)
	if err != nil {
		if !database.IsUniqueViolation(err) {
			logger.Error("AuthRepository:UpdateProfile", err)
		}
		return err
	}
	return nil
}

func (r *AuthRepository) UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL string) error {
	query := `UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, avatarURL)
	if err != nil {
		logger.Error("AuthRepository:UpdateAvatarURL", err)
		return err
	}
	return nil
}

func (r *AuthRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	query := `UPDATE users SET is_banned = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, banned)
	if err != nil {
		logger.Error("AuthRepository:SetBanned", err)
		return err
	}
	return nil
}

func (r *AuthRepository) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE is_admin = true`)
	if err != nil {
		logger.Error("AuthRepository:CountAdmins", err)
		return 0, err
	}
	return count, nil
}

func (r *AuthRepository) PromoteToAdmin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET is_admin = true, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("AuthRepository:PromoteToAdmin", err)
		return err
	}
	return nil
}
