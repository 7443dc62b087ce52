package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister = "register success"
	MessageSuccessLogin    = "login success"
	MessageSuccessGetUser  = "success get user"

	MessageFailedRegister = "failed to register"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetUser  = "failed to get user"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UserResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Image     string    `json:"image,omitempty"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
	}
)
