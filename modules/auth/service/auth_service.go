package service

import (
	"context"
	"io"

	"eventhub/core/cache"
	"eventhub/core/config"
	"eventhub/core/constants"
	"eventhub/core/database"
	"eventhub/core/errors"
	"eventhub/core/logger"
	"eventhub/core/storage"
	"eventhub/core/utils"
	"eventhub/modules/auth/dto"
	"eventhub/modules/auth/entity"
	"eventhub/modules/auth/repository"

	"github.com/google/uuid"
)

// AuthService handles registration, authentication, profiles and the admin
// moderation surface.
type AuthService struct {
	repo     repository.AuthRepositoryInterface
	cache    cache.Cache
	uploader storage.Uploader
}

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenPairResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenPairResponse, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
	RefreshToken(ctx context.Context, token string) (*dto.TokenPairResponse, *errors.AppError)
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
	GetPublicProfile(ctx context.Context, username string) (*dto.PublicProfileResponse, *errors.AppError)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, *errors.AppError)
	UploadAvatar(ctx context.Context, userID uuid.UUID, filename string, contentType string, body io.Reader) (*dto.UserResponse, *errors.AppError)
	BanUser(ctx context.Context, targetID uuid.UUID) *errors.AppError
	UnbanUser(ctx context.Context, targetID uuid.UUID) *errors.AppError
	EnsureAdminAccount(ctx context.Context) error

	// Middleware hooks
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
	IsUserBanned(ctx context.Context, userID uuid.UUID) (bool, error)
	IsUserAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

func NewAuthService(repo repository.AuthRepositoryInterface, c cache.Cache, uploader storage.Uploader) *AuthService {
	return &AuthService{
		repo:     repo,
		cache:    c,
		uploader: uploader,
	}
}

// Register creates a new account with a salted password hash and returns a
// token pair. Duplicate email or username is reported as a conflict, never
// silently overwritten.
func (service *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenPairResponse, *errors.AppError) {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("AuthService:Register:HashPassword", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	userEntity := &entity.User{
		Email:    req.Email,
		Password: hashedPassword,
	}
	if req.Username != "" {
		userEntity.Username = &req.Username
	}
	if req.FullName != "" {
		userEntity.FullName = &req.FullName
	}

	// The unique constraints on email/username are the authority here; a
	// pre-check would still race with a concurrent registration.
	created, err := service.repo.CreateUser(ctx, userEntity)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "email or username already exists", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create user", err)
	}

	return service.issueTokenPair(created)
}

// Login authenticates by email or username. Banned users are refused before
// the password check; repeated failures lock the identifier out for a while.
func (service *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenPairResponse, *errors.AppError) {
	loginKey := constants.RedisKeyLoginAttempt + req.Identifier

	blocked, err := service.cache.IsLoginBlocked(ctx, loginKey)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check login attempts", err)
	}
	if blocked {
		if errExpire := service.cache.Expire(ctx, loginKey, constants.BlockDuration); errExpire != nil {
			logger.Error("AuthService:Login:Expire", errExpire)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "too many failed attempts, try again later", nil)
	}

	user, err := service.repo.GetUserByIdentifier(ctx, req.Identifier)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up user", err)
	}
	if user == nil {
		service.recordFailedLogin(ctx, loginKey)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid credentials", nil)
	}

	// A banned user may not authenticate even with correct credentials. The
	// refusal is not a failed guess, so it does not feed the lockout counter.
	if user.IsBanned {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "account is suspended", nil)
	}

	if !utils.ComparePassword(user.Password, req.Password) {
		service.recordFailedLogin(ctx, loginKey)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid credentials", nil)
	}

	if errDel := service.cache.Del(ctx, loginKey); errDel != nil {
		logger.Error("AuthService:Login:Del", errDel)
	}

	return service.issueTokenPair(user)
}

func (service *AuthService) recordFailedLogin(ctx context.Context, loginKey string) {
	if err := service.cache.IncrementLoginAttempt(ctx, loginKey); err != nil {
		logger.Error("AuthService:recordFailedLogin", err)
	}
}

func (service *AuthService) issueTokenPair(user *entity.User) (*dto.TokenPairResponse, *errors.AppError) {
	accessToken, err := utils.GenerateToken(user.ID, user.Email, user.Username, constants.ScopeTokenAccess)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}

	refreshToken, err := utils.GenerateToken(user.ID, user.Email, user.Username, constants.ScopeTokenRefresh)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate refresh token", err)
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (service *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	if err := service.cache.AddToTokenBlacklist(ctx, token); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}
	return nil
}

// RefreshToken exchanges a valid refresh token for a fresh pair and revokes
// the presented token.
func (service *AuthService) RefreshToken(ctx context.Context, token string) (*dto.TokenPairResponse, *errors.AppError) {
	blacklisted, err := service.cache.IsTokenBlacklisted(ctx, token)
	if err != nil {
		logger.Error("AuthService:RefreshToken:IsTokenBlacklisted", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check token", err)
	}
	if blacklisted {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "token has been revoked", nil)
	}

	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token", nil)
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "not a refresh token", nil)
	}

	user, errGet := service.repo.GetUserByID(ctx, claims.UserID)
	if errGet != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up user", errGet)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	if user.IsBanned {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "account is suspended", nil)
	}

	if errBl := service.cache.AddToTokenBlacklist(ctx, token); errBl != nil {
		logger.Error("AuthService:RefreshToken:AddToTokenBlacklist", errBl)
	}

	return service.issueTokenPair(user)
}

func (service *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := service.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	return dto.ToUserResponse(user), nil
}

// GetPublicProfile resolves strictly by username; email addresses are not a
// public lookup key.
func (service *AuthService) GetPublicProfile(ctx context.Context, username string) (*dto.PublicProfileResponse, *errors.AppError) {
	user, err := service.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	return dto.ToPublicProfileResponse(user), nil
}

func (service *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, *errors.AppError) {
	var username, fullName *string
	if req.Username != "" {
		username = &req.Username
	}
	if req.FullName != "" {
		fullName = &req.FullName
	}

	if err := service.repo.UpdateProfile(ctx, userID, username, fullName); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "username already exists", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update profile", err)
	}

	return service.GetProfile(ctx, userID)
}

func (service *AuthService) UploadAvatar(ctx context.Context, userID uuid.UUID, filename string, contentType string, body io.Reader) (*dto.UserResponse, *errors.AppError) {
	url, err := service.uploader.UploadAvatar(ctx, userID.String(), filename, contentType, body)
	if err != nil {
		logger.Error("AuthService:UploadAvatar", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to upload avatar", err)
	}

	if err := service.repo.UpdateAvatarURL(ctx, userID, url); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save avatar", err)
	}

	return service.GetProfile(ctx, userID)
}

// BanUser flags an account as banned. An admin account cannot be banned.
func (service *AuthService) BanUser(ctx context.Context, targetID uuid.UUID) *errors.AppError {
	target, err := service.repo.GetUserByID(ctx, targetID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if target == nil {
		return errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	if target.IsAdmin {
		return errors.NewAppError(errors.ErrForbidden, "cannot ban an administrator", nil)
	}

	if err := service.repo.SetBanned(ctx, targetID, true); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to ban user", err)
	}
	return nil
}

func (service *AuthService) UnbanUser(ctx context.Context, targetID uuid.UUID) *errors.AppError {
	target, err := service.repo.GetUserByID(ctx, targetID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if target == nil {
		return errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	if err := service.repo.SetBanned(ctx, targetID, false); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to unban user", err)
	}
	return nil
}

// EnsureAdminAccount runs once at startup: if no administrator exists, the
// configured admin email is promoted (or created with a generated password).
// The default credential is a bootstrap convenience and must be rotated by
// the operator.
func (service *AuthService) EnsureAdminAccount(ctx context.Context) error {
	count, err := service.repo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminEmail := constants.BootstrapAdminUsername + "@localhost"
	adminPassword := ""
	if cfg, ok := config.GetSafe(); ok {
		if cfg.Admin.Email != "" {
			adminEmail = cfg.Admin.Email
		}
		adminPassword = cfg.Admin.Password
	}

	existing, err := service.repo.GetUserByIdentifier(ctx, adminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := service.repo.PromoteToAdmin(ctx, existing.ID); err != nil {
			return err
		}
		logger.Warn("Promoted existing account to administrator", "email", adminEmail)
		return nil
	}

	generated := false
	if adminPassword == "" {
		adminPassword = utils.GenerateRandomString(16)
		generated = true
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	username := constants.BootstrapAdminUsername
	admin := &entity.User{
		Email:    adminEmail,
		Username: &username,
		Password: hashed,
		IsAdmin:  true,
	}
	if _, err := service.repo.CreateUser(ctx, admin); err != nil {
		return err
	}

	if generated {
		// Logged once so the operator can log in; rotate immediately.
		logger.Warn("Created bootstrap administrator with generated password, rotate it now",
			"email", adminEmail, "password", adminPassword)
	} else {
		logger.Warn("Created bootstrap administrator from configured credentials, rotate the password",
			"email", adminEmail)
	}
	return nil
}

// ===================== Middleware hooks =====================

func (service *AuthService) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	return service.cache.IsTokenBlacklisted(ctx, token)
}

func (service *AuthService) IsUserBanned(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := service.repo.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return true, nil
	}
	return user.IsBanned, nil
}

func (service *AuthService) IsUserAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := service.repo.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return user.IsAdmin, nil
}
