package dto

import (
	"time"

	"atoll/internal/domains/customer/model"
	"atoll/shared"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	Email          string `json:"email"           validate:"required,email"`
	Password       string `json:"password"        validate:"required,min=8,max=72"`
	Role           string `json:"role"            validate:"omitempty,oneof=superadmin admin customer"`
	Name           string `json:"name"            validate:"required,max=150"`
	Phone          string `json:"phone"           validate:"omitempty,max=30"`
	Nationality    string `json:"nationality"     validate:"omitempty,max=100"`
	PassportNumber string `json:"passport_number" validate:"omitempty,max=50"`
	DateOfBirth    string `json:"date_of_birth"   validate:"omitempty,date"`
}

// ToModel builds an active customer; an empty role means a plain customer account.
func (r *CreateCustomerRequest) ToModel(user, hashedPassword string) model.Customer {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleCustomer
	}

	return model.Customer{
		ID:             uuid.NewString(),
		Email:          r.Email,
		Password:       hashedPassword,
		Role:           role,
		Name:           r.Name,
		Phone:          r.Phone,
		Nationality:    r.Nationality,
		PassportNumber: r.PassportNumber,
		DateOfBirth:    parseBirthDate(r.DateOfBirth),
		Active:         true,
		Metadata:       gModel.NewMetadata(timezone.Now(), user),
	}
}

// UpdateCustomerRequest is the staff view of a customer record.
type UpdateCustomerRequest struct {
	Name           *string `db:"name"            json:"name"            validate:"omitempty,max=150"`
	Phone          *string `db:"phone"           json:"phone"           validate:"omitempty,max=30"`
	Nationality    *string `db:"nationality"     json:"nationality"     validate:"omitempty,max=100"`
	PassportNumber *string `db:"passport_number" json:"passport_number" validate:"omitempty,max=50"`
	DateOfBirth    *string `db:"date_of_birth"   json:"date_of_birth"   validate:"omitempty,date"`
	Role           *string `db:"role"            json:"role"            validate:"omitempty,oneof=superadmin admin customer"`
	Active         *bool   `db:"active"          json:"active"`
}

type UpdateProfileRequest struct {
	Name           *string `db:"name"            json:"name"            validate:"omitempty,max=150"`
	Phone          *string `db:"phone"           json:"phone"           validate:"omitempty,max=30"`
	Nationality    *string `db:"nationality"     json:"nationality"     validate:"omitempty,max=100"`
	PassportNumber *string `db:"passport_number" json:"passport_number" validate:"omitempty,max=50"`
	DateOfBirth    *string `db:"date_of_birth"   json:"date_of_birth"   validate:"omitempty,date"`
}

type CustomerResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Nationality    string `json:"nationality"`
	PassportNumber string `json:"passport_number"`
	DateOfBirth    string `json:"date_of_birth"`
	Active         bool   `json:"active"`
	LastLogin      string `json:"last_login"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.Name = model.Name
	r.Phone = model.Phone
	r.Nationality = model.Nationality
	r.PassportNumber = model.PassportNumber
	r.Active = model.Active

	if model.DateOfBirth != nil {
		r.DateOfBirth = timezone.FormatDate(*model.DateOfBirth)
	}

	if model.LastLogin != nil {
		r.LastLogin = timezone.Format(*model.LastLogin, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}

func parseBirthDate(value string) *time.Time {
	if value == constant.Empty {
		return nil
	}

	date, err := timezone.ParseDate(value)
	if err != nil {
		return nil
	}

	return &date
}
