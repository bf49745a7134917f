package service

import (
	"context"
	"log"
	"strings"
	"time"

	"xlai-be/internal/dto"
	"xlai-be/internal/entity"
	"xlai-be/internal/pkg/apperror"
	"xlai-be/internal/repository/specification"
	"xlai-be/internal/repository/unitofwork"
	"xlai-be/pkg/events"
	pkgNats "xlai-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserPayload, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	jwtSecret      string
	eventPublisher *pkgNats.Publisher
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string, eventPublisher *pkgNats.Publisher) IAuthService {
	if jwtSecret == "" {
		jwtSecret = "default_secret"
	}
	return &authService{
		uowFactory:     uowFactory,
		jwtSecret:      jwtSecret,
		eventPublisher: eventPublisher,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	handle := strings.TrimSpace(req.Handle)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("An account with that email already exists")
	}

	existing, err = uow.UserRepository().FindOne(ctx, specification.ByHandle{Handle: handle})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("That handle is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := entity.User{
		Id:           uuid.New(),
		Handle:       handle,
		DisplayName:  req.DisplayName,
		Email:        &email,
		PasswordHash: &hashStr,
		CreatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, &user); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.UserSignedUp(user.Id.String(), user.Handle)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish USER_SIGNUP event: %v", err)
		}
	}

	return s.issueToken(&user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, apperror.Auth("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Auth("Invalid email or password")
	}

	return s.issueToken(user)
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserPayload, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("Account no longer exists")
	}

	payload := dto.UserPayload{
		Id:          user.Id,
		Handle:      user.Handle,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
	if user.Email != nil {
		payload.Email = *user.Email
	}
	return &payload, nil
}

func (s *authService) issueToken(user *entity.User) (*dto.AuthResponse, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"handle":  user.Handle,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	payload := dto.UserPayload{
		Id:          user.Id,
		Handle:      user.Handle,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
	if user.Email != nil {
		payload.Email = *user.Email
	}

	return &dto.AuthResponse{Token: signed, User: payload}, nil
}
