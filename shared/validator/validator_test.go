package validator_test

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"atoll/shared/failure"
	"atoll/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guestRequest struct {
	Name   string `json:"name"   validate:"required"`
	Email  string `json:"email"  validate:"required,email"`
	Guests int    `json:"guests" validate:"gte=1,lte=20"`
	Role   string `json:"role"   validate:"omitempty,oneof=superadmin admin customer"`
}

func TestValidateStruct(t *testing.T) {
	valid := guestRequest{Name: "Aminath", Email: "aminath@example.com", Guests: 2, Role: "customer"}

	tests := []struct {
		name    string
		mutate  func(r *guestRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(*guestRequest) {}},
		{name: "missing name", mutate: func(r *guestRequest) { r.Name = "" }, wantMsg: "name is required"},
		{name: "bad email", mutate: func(r *guestRequest) { r.Email = "aminath" }, wantMsg: "email must be a valid email address"},
		{name: "no guests", mutate: func(r *guestRequest) { r.Guests = 0 }, wantMsg: "guests must be greater than or equal to 1"},
		{name: "too many guests", mutate: func(r *guestRequest) { r.Guests = 40 }, wantMsg: "guests must be less than or equal to 20"},
		{name: "unknown role", mutate: func(r *guestRequest) { r.Role = "owner" }, wantMsg: "role must be one of superadmin admin customer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, failure.HasCode(err, 400))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("en", "locale"))
	assert.NoError(t, validator.ValidateVar(3, "gte=1"))
	assert.Error(t, validator.ValidateVar("", "required"))
	assert.Error(t, validator.ValidateVar("fr", "locale"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid body", body: `{"name":"Aminath","email":"aminath@example.com","guests":2}`},
		{name: "failing rule", body: `{"name":"Aminath","email":"nope","guests":2}`, wantErr: true},
		{name: "malformed body", body: `{"name":"Aminath","email":}`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req guestRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr {
				assert.True(t, failure.HasCode(err, 400))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Aminath", req.Name)
		})
	}
}

type bookingStatus string

func (s bookingStatus) IsValid() bool {
	return s == "pending" || s == "confirmed"
}

type customTagStruct struct {
	Slug     string        `json:"slug"      validate:"omitempty,slug"`
	CheckIn  string        `json:"check_in"  validate:"omitempty,date"`
	Locale   string        `json:"locale"    validate:"omitempty,locale"`
	Status   bookingStatus `json:"status"    validate:"omitempty,enum"`
	Internal string        `json:"-"         validate:"omitempty,empty"`
}

func TestCustomTags(t *testing.T) {
	tests := []struct {
		name        string
		data        customTagStruct
		expectError string
	}{
		{name: "all valid", data: customTagStruct{Slug: "about-us-2", CheckIn: "2025-01-10", Locale: "ru", Status: "confirmed"}},
		{name: "slug with spaces", data: customTagStruct{Slug: "about us"}, expectError: "slug may only contain"},
		{name: "slug with double dash", data: customTagStruct{Slug: "about--us"}, expectError: "slug may only contain"},
		{name: "bad date", data: customTagStruct{CheckIn: "10/01/2025"}, expectError: "check_in must be a date"},
		{name: "unknown locale", data: customTagStruct{Locale: "fr"}, expectError: "locale must be one of"},
		{name: "unknown enum", data: customTagStruct{Status: "lost"}, expectError: "status has an unsupported value"},
		{name: "must be empty", data: customTagStruct{Internal: "x"}, expectError: "must be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

type uploadStruct struct {
	File  *multipart.FileHeader `json:"file"  validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
	Image string                `json:"image" validate:"omitempty,mimetypes=image/png,maxfilesize=0.001"`
}

func TestFileValidation(t *testing.T) {
	header := func(contentType string, size int64) *multipart.FileHeader {
		return &multipart.FileHeader{
			Filename: "upload",
			Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
			Size:     size,
		}
	}

	tests := []struct {
		name        string
		data        uploadStruct
		expectError bool
	}{
		{name: "png file", data: uploadStruct{File: header("image/png", 1024)}},
		{name: "pdf file", data: uploadStruct{File: header("application/pdf", 1024)}, expectError: true},
		{name: "file too large", data: uploadStruct{File: header("image/jpeg", 2*1024*1024)}, expectError: true},
		{name: "small data uri", data: uploadStruct{Image: "data:image/png;base64,iVBORw0KGgo="}},
		{name: "data uri wrong type", data: uploadStruct{Image: "data:image/gif;base64,R0lGODlh"}, expectError: true},
		{name: "plain string", data: uploadStruct{Image: "not-a-data-uri"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMessagesUseJSONNames(t *testing.T) {
	type request struct {
		CustomerEmail string `json:"customer_email" validate:"required,email"`
	}

	err := validator.ValidateStruct(&request{})
	assert.EqualError(t, err, "customer_email is required")
}
