package model

import (
	"time"

	"atoll/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldName      = "name"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

type Customer struct {
	ID             string     `db:"id"`
	Email          string     `db:"email"`
	Password       string     `db:"password"`
	Role           string     `db:"role"`
	Name           string     `db:"name"`
	Phone          string     `db:"phone"`
	Nationality    string     `db:"nationality"`
	PassportNumber string     `db:"passport_number"`
	DateOfBirth    *time.Time `db:"date_of_birth"`
	Active         bool       `db:"active"`
	LastLogin      *time.Time `db:"last_login"`
	model.Metadata
}
