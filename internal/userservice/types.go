package userservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogsphere/internal/common"
)

const (
	AccessTokenTime time.Duration = 7 * 24 * time.Hour
	TokenIssuer                   = "blogsphere-api"
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *DBModel
	mb     common.MessageProducer
	tokens *TokenMaker
	logger *slog.Logger
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// Author is the public view of a user attached to blogs, comments and likes.
type Author struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}
