package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"atoll/config"
	"atoll/infras/jwt"
	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/auth/model/dto"
	customerModel "atoll/internal/domains/customer/model"
	customerRepo "atoll/internal/domains/customer/repository"
	"atoll/shared"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/password"
	"atoll/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	errInvalidCredentials = "invalid email or password"
	errEmailRegistered    = "email already registered"
	errInactiveAccount    = "customer account is deactivated"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.AuthResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	customerRepo customerRepo.Customer
	cfg          *config.Config
	otel         otel.Otel
	jwtService   jwt.JWT
}

func New(customerRepo customerRepo.Customer, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		customerRepo: customerRepo,
		cfg:          cfg,
		otel:         otel,
		jwtService:   jwt,
	}
}

// Register creates a customer account and signs the new customer in.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = password.CheckStrength(req.Password); err != nil {
		return res, failure.BadRequest(err)
	}

	exists, err := s.customerRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return res, fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if exists {
		return res, failure.Conflict(errEmailRegistered)
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	customer := req.ToModel(hashedPassword)

	if err = s.customerRepo.Insert(ctx, customer); err != nil {
		if postgres.IsUniqueViolation(err) {
			return res, failure.Conflict(errEmailRegistered)
		}

		log.Error().Err(err).Msg("failed to register customer")

		return res, fmt.Errorf("failed to register customer: %w", err)
	}

	return s.issue(ctx, customer)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	customer, err := s.customerRepo.Get(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized(errInvalidCredentials)
	}

	if err := password.Verify(req.Password, customer.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(errInvalidCredentials)
	}

	if !customer.Active {
		return res, failure.Forbidden(errInactiveAccount)
	}

	res, err = s.issue(ctx, customer)
	if err != nil {
		return res, err
	}

	lastLogin := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}, customer.ID)

	if err := s.customerRepo.Update(ctx, lastLogin, shared.FilterByID(customer.ID, customerModel.FieldID, customerModel.TableName)); err != nil {
		log.Warn().Err(err).Str("customer_id", customer.ID).Msg("failed to update last login")
	}

	return res, nil
}

// RefreshToken rotates the pair; a deactivated or deleted customer cannot refresh.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("invalid refresh token")

		return res, failure.Unauthorized("invalid refresh token")
	}

	customer, err := s.customerRepo.Get(ctx, shared.FilterByID(claims.UserID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty || !customer.Active {
		return res, failure.Unauthorized("invalid refresh token")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, customer.ID, customer.Email, customer.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if id == constant.Empty {
		return failure.Unauthorized("authentication required")
	}

	filter := shared.FilterByID(id, customerModel.FieldID, customerModel.TableName)

	customer, err := s.customerRepo.Get(ctx, filter, customerModel.FieldID, customerModel.FieldPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return failure.NotFound("customer not found")
	}

	if err := password.Verify(req.CurrentPassword, customer.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	if err := password.CheckStrength(req.NewPassword); err != nil {
		return failure.BadRequest(err)
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err = s.customerRepo.Update(ctx, shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, id), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) issue(ctx context.Context, customer customerModel.Customer) (res dto.AuthResponse, err error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, customer.ID, customer.Email, customer.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)
	res.WithCustomer(customer)

	return res, nil
}

func emailFilter(email string) gDto.FilterGroup {
	return shared.FilterByField(customerModel.FieldEmail, email, customerModel.TableName)
}
