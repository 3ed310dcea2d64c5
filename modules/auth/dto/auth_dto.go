package dto

import (
	"time"

	"eventhub/modules/auth/entity"
)

// ===================== Request DTOs =====================

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// LoginRequest accepts an email or a username as identifier.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// ===================== Response DTOs =====================

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	IsBanned  bool      `json:"is_banned"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicProfileResponse omits account flags and email; shown on the public
// profile page.
type PublicProfileResponse struct {
	Username  string `json:"username"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ===================== Mapper Functions =====================

func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		IsBanned:  u.IsBanned,
		CreatedAt: u.CreatedAt,
	}
	if u.Username != nil {
		resp.Username = *u.Username
	}
	if u.FullName != nil {
		resp.FullName = *u.FullName
	}
	if u.AvatarURL != nil {
		resp.AvatarURL = *u.AvatarURL
	}
	return resp
}

func ToPublicProfileResponse(u *entity.User) *PublicProfileResponse {
	if u == nil {
		return nil
	}
	resp := &PublicProfileResponse{}
	if u.Username != nil {
		resp.Username = *u.Username
	}
	if u.FullName != nil {
		resp.FullName = *u.FullName
	}
	if u.AvatarURL != nil {
		resp.AvatarURL = *u.AvatarURL
	}
	return resp
}
