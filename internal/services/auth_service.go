package services

import (
	"context"
	"errors"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// IDTokenVerifier is the part of the Firebase auth client used for login.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// ErrFirebaseDisabled is returned by FirebaseLogin when no verifier is configured.
var ErrFirebaseDisabled = errors.New("firebase login is not configured")

// AuthService handles signup, the login flavours and token resolution.
type AuthService struct {
	users    repositories.UserRepository
	tokens   *TokenManager
	firebase IDTokenVerifier
	logger   zerolog.Logger
}

// NewAuthService builds the service. firebase may be nil.
func NewAuthService(users repositories.UserRepository, tokens *TokenManager, firebase IDTokenVerifier) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		firebase: firebase,
		logger:   log.With().Str("service", "AuthService").Logger(),
	}
}

func (s *AuthService) FirebaseEnabled() bool {
	return s.firebase != nil
}

func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.NewInternalWithCause(err)
	}
	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errs.IsUniqueViolation(err) {
			return nil, errs.NewConflict("User with this email already exists")
		}
		return nil, errs.NewDatabaseError("create", "User", err)
	}
	s.logger.Info().Uint("userId", user.ID).Msg("user signed up")
	return s.respond(user)
}

// Login checks email and password. Unknown emails and wrong passwords get the
// same answer.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errs.IsRecordNotFound(err) {
			return nil, errs.NewUnauthorized("Invalid email or password")
		}
		return nil, errs.NewDatabaseError("load", "User", err)
	}
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errs.NewUnauthorized("Invalid email or password")
	}
	return s.respond(user)
}

// FirebaseLogin exchanges a Firebase ID token for a local token, linking or
// creating the matching user.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	if s.firebase == nil {
		return nil, errs.NewInvalidOperation(ErrFirebaseDisabled.Error())
	}
	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Debug().Err(err).Msg("firebase token rejected")
		return nil, errs.NewUnauthorized("Invalid Firebase ID token")
	}
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	user, err := s.users.GetUserByFirebaseUID(ctx, token.UID)
	if err == nil {
		return s.respond(user)
	}
	if !errs.IsRecordNotFound(err) {
		return nil, errs.NewDatabaseError("load", "User", err)
	}
	if email == "" {
		return nil, errs.NewValidation("Firebase account has no email address")
	}

	user, err = s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.users.LinkFirebaseUID(ctx, user.ID, token.UID); err != nil {
			return nil, errs.NewDatabaseError("update", "User", err)
		}
	case errs.IsRecordNotFound(err):
		if name == "" {
			name = strings.SplitN(email, "@", 2)[0]
		}
		uid := token.UID
		user = &models.User{Name: name, Email: strings.ToLower(email), FirebaseUID: &uid}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return nil, errs.NewDatabaseError("create", "User", err)
		}
	default:
		return nil, errs.NewDatabaseError("load", "User", err)
	}
	return s.respond(user)
}

// ResolveToken returns the user a bearer token belongs to, or nil when the token
// is invalid or its user no longer exists. Lookup failures are logged and
// treated as anonymous.
func (s *AuthService) ResolveToken(ctx context.Context, token string) *models.User {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if !errs.IsRecordNotFound(err) {
			s.logger.Error().Err(err).Uint("userId", claims.UserID).Msg("failed to resolve token user")
		}
		return nil
	}
	return user
}

func (s *AuthService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, errs.NewInternalWithCause(err)
	}
	return &models.AuthResponse{User: user, Token: token}, nil
}
