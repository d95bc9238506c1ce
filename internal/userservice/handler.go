package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogsphere/internal/common"
)

var (
	ErrInvalidCredentials = errors.New("invalid authentication credentials")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, tokens *TokenMaker, logger *slog.Logger) *UserService {
	if mb == nil {
		mb = common.NopProducer{}
	}

	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new account, issues an access token for it and publishes a user.registered event.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	v := common.NewValidator()
	validateEmail(v, email)
	validatePassword(v, password)
	validateName(v, name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Email: email,
		Name:  name,
	}

	if err := u.Password.set(password); err != nil {
		return nil, err
	}

	if err := s.m.insertUser(ctx, &u); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(&u)
	if err != nil {
		return nil, err
	}

	s.publishRegistered(ctx, &u)

	return &AuthResult{AccessToken: token, User: &u}, nil
}

// publishRegistered does not fail the registration: the account already exists.
func (s *UserService) publishRegistered(ctx context.Context, u *User) {
	data, err := json.Marshal(common.UserRegisteredEvent{
		UserID: u.ID.String(),
		Email:  u.Email,
		Name:   u.Name,
	})
	if err != nil {
		s.logger.Error("could not encode user.registered event", slog.String("error", err.Error()))
		return
	}

	if err := s.mb.Publish(ctx, data, common.UserRegisteredKey, common.UserExchange); err != nil {
		s.logger.Error("could not publish user.registered event", slog.String("user_id", u.ID.String()), slog.String("error", err.Error()))
	}
}

// Login verifies the credentials and issues a new access token.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)

	v := common.NewValidator()
	validateLogin(v, email, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{AccessToken: token, User: user}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.m.getUserByID(ctx, id)
}

// Authenticate resolves the user behind an access token. Tokens of deleted users are rejected.
func (s *UserService) Authenticate(ctx context.Context, token string) (*User, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.m.getUserByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrInvalidToken
		default:
			return nil, err
		}
	}

	return user, nil
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

func (u *User) Author() Author {
	return Author{ID: u.ID, Name: u.Name, Email: u.Email}
}
