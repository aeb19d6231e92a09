// internal/users/users.go
//
// User accounts and per-user game history backed by SQLite.
// Responsibilities:
//   - Signup validation (validator/v10 tags plus a "username" rule), bcrypt hashing.
//   - Lookups by username (case-insensitive) and by ID.
//   - Game rows: record at start, finish on win, claim anonymous rows after login.
//   - Profile counters: games played, wins, best score.
//
// Notes:
//   - Timestamps are stored as RFC3339 text, as the schema declares TEXT columns.
//   - Either user_id or anonymous_id identifies the owner of a game row.

package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("users: username taken")
	ErrInvalidCredentials = errors.New("users: invalid username or password")
	ErrNotFound           = errors.New("users: not found")
)

// User matches the users table shape.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	GamesPlayed  int       `json:"gamesPlayed"`
	Wins         int       `json:"wins"`
	BestScore    int       `json:"bestScore"`
}

// Credentials is the signup/login payload.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=24,username"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// Store reads and writes users and their games.
type Store struct {
	db       *sql.DB
	validate *validator.Validate
}

// NewStore wraps db, which must already be migrated.
func NewStore(db *sql.DB) *Store {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
				return false
			}
		}
		return true
	})
	return &Store{db: db, validate: v}
}

// Validate checks c against the signup rules and returns a readable error.
func (s *Store) Validate(c Credentials) error {
	err := s.validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Username":
		if fe.Tag() == "username" {
			return errors.New("username: letters, numbers, underscore only")
		}
		return errors.New("username must be 3-24 chars")
	default:
		return errors.New("password must be 8-100 chars")
	}
}

// Create validates c, checks uniqueness, hashes the password and inserts a new user.
func (s *Store) Create(ctx context.Context, c Credentials) (*User, error) {
	c.Username = strings.TrimSpace(c.Username)
	if err := s.Validate(c); err != nil {
		return nil, err
	}
	if _, err := s.ByUsername(ctx, c.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	h, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:           uuid.NewString(),
		Username:     c.Username,
		PasswordHash: string(h),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user when the password matches.
func (s *Store) Authenticate(ctx context.Context, c Credentials) (*User, error) {
	u, err := s.ByUsername(ctx, strings.TrimSpace(c.Username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(c.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ByUsername loads a user by case-insensitive username.
func (s *Store) ByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at, games_played, wins, best_score
		FROM users WHERE lower(username)=lower(?)`, username))
}

// ByID loads a user by ID.
func (s *Store) ByID(ctx context.Context, id string) (*User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at, games_played, wins, best_score
		FROM users WHERE id=?`, id))
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created, &u.GamesPlayed, &u.Wins, &u.BestScore)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}
