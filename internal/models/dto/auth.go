package dto

import "github.com/khushi71103/travelpin/internal/models"

// RegisterRequestDTO carries the addUser mutation arguments.
type RegisterRequestDTO struct {
	Username string `mapstructure:"username" validate:"required,min=1,max=64"`
	Email    string `mapstructure:"email" validate:"required,min=1,max=254"`
	Password string `mapstructure:"password" validate:"required,min=1,max=64"`
}

// LoginRequestDTO carries the login mutation arguments.
type LoginRequestDTO struct {
	Username string `mapstructure:"username" validate:"required,min=1,max=64"`
	Password string `mapstructure:"password" validate:"required,min=1,max=64"`
}

// AuthPayloadDTO is the addUser/login result: a bearer token plus the
// outward projection of the account it belongs to.
type AuthPayloadDTO struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
