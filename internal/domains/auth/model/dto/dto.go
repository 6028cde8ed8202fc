package dto

import (
	"time"

	"atoll/infras/jwt"
	"atoll/internal/domains/customer/model"
	customerDto "atoll/internal/domains/customer/model/dto"
	"atoll/shared/constant"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required"`
	Name        string `json:"name"        validate:"required,max=150"`
	Phone       string `json:"phone"       validate:"omitempty,max=30"`
	Nationality string `json:"nationality" validate:"omitempty,max=100"`
}

// ToModel always yields a plain customer account; staff roles are granted by a superadmin.
func (r *RegisterRequest) ToModel(hashedPassword string) model.Customer {
	return model.Customer{
		ID:          uuid.NewString(),
		Email:       r.Email,
		Password:    hashedPassword,
		Role:        constant.RoleCustomer,
		Name:        r.Name,
		Phone:       r.Phone,
		Nationality: r.Nationality,
		Active:      true,
		Metadata:    gModel.NewMetadata(timezone.Now(), constant.ContextGuest),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}

type AuthResponse struct {
	AccessToken  string                       `json:"access_token"`
	RefreshToken string                       `json:"refresh_token"`
	TokenType    string                       `json:"token_type"`
	ExpiresIn    int64                        `json:"expires_in"`
	Customer     *customerDto.CustomerResponse `json:"customer,omitempty"`
}

func (r *AuthResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

func (r *AuthResponse) WithCustomer(customer model.Customer) {
	res := customerDto.CustomerResponse{}
	res.FromModel(customer)

	r.Customer = &res
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}
