// Package accounts keeps back-office operators in the state backend.
package accounts

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"backoffice/internal/models"
	"backoffice/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrExists             = errors.New("operator already exists")
	ErrNotFound           = errors.New("operator not found")
	ErrInvalid            = errors.New("invalid operator data")
)

var operatorsKey = storage.Key("operators")

type Directory struct {
	kv   storage.KV
	cost int

	mu sync.Mutex
}

func NewDirectory(kv storage.KV) *Directory {
	return &Directory{kv: kv, cost: bcrypt.DefaultCost}
}

// WithCost changes the bcrypt cost; tests use bcrypt.MinCost.
func (d *Directory) WithCost(cost int) *Directory {
	d.cost = cost
	return d
}

func (d *Directory) load(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := storage.GetJSON(ctx, d.kv, operatorsKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (d *Directory) List(ctx context.Context) ([]models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(ctx)
}

func (d *Directory) Get(ctx context.Context, id string) (models.User, error) {
	users, err := d.List(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (d *Directory) Register(ctx context.Context, username, name, password string, role models.UserRole) (models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if len(username) < 3 || len(password) < 6 || !role.Valid() {
		return models.User{}, ErrInvalid
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return models.User{}, ErrExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return models.User{}, err
	}
	if name == "" {
		name = username
	}
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
	}
	users = append(users, user)
	if err := storage.SetJSON(ctx, d.kv, operatorsKey, users); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (d *Directory) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	users, err := d.List(ctx)
	if err != nil {
		return models.User{}, err
	}
	username = strings.ToLower(strings.TrimSpace(username))
	for _, u := range users {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return models.User{}, ErrInvalidCredentials
		}
		return u, nil
	}
	return models.User{}, ErrInvalidCredentials
}

// EnsureAdmin создаёт админа из конфига, если в системе нет ни одного.
func (d *Directory) EnsureAdmin(ctx context.Context, username, password string) error {
	users, err := d.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Role == models.RoleAdmin {
			return nil
		}
	}

	if _, err := d.Register(ctx, username, "Administrator", password, models.RoleAdmin); err != nil {
		return err
	}
	log.Printf("created default admin user: %s", username)
	return nil
}

// SeedDemo добавляет тестовые аккаунты для демо; существующие пропускаются.
func (d *Directory) SeedDemo(ctx context.Context) {
	demo := []struct {
		Username string
		Name     string
		Password string
		Role     models.UserRole
	}{
		{"editor@backoffice.local", "Blog Editor", "Editor123!", models.RoleEditor},
		{"recruiter@backoffice.local", "Recruiter", "Recruit123!", models.RoleRecruiter},
		{"viewer@backoffice.local", "Viewer", "Viewer123!", models.RoleViewer},
	}

	for _, u := range demo {
		_, err := d.Register(ctx, u.Username, u.Name, u.Password, u.Role)
		switch {
		case errors.Is(err, ErrExists):
			// уже есть, пропускаем
		case err != nil:
			log.Printf("failed to create seed user %s: %v", u.Username, err)
		default:
			log.Printf("created seed user %s (%s)", u.Username, u.Role)
		}
	}
}
