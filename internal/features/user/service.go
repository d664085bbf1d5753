package user

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	FindSupervisor(ctx context.Context) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id string, update bson.M) error
	Delete(ctx context.Context, id string) error
}

type UserServiceImpl struct {
	Repo UserRepository
}

func NewUserService(repo UserRepository) UserService {
	return &UserServiceImpl{Repo: repo}
}

func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func validRole(role string) bool {
	switch role {
	case RoleAdviser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

func (s *UserServiceImpl) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errors.New("username and password are required")
	}
	role := req.Role
	if role == "" {
		role = RoleAdviser
	}
	if !validRole(role) {
		return nil, errors.New("invalid role: " + role)
	}

	u := &User{
		Name:         req.Name,
		Username:     strings.ToLower(req.Username),
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: HashPassword(req.Password),
		Role:         role,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserServiceImpl) Get(ctx context.Context, id string) (*User, error) {
	return s.Repo.FindByID(ctx, id)
}

// FindSupervisor picks the centre's manager. Escalation actions need a
// concrete recipient, so a centre without a manager is an error.
func (s *UserServiceImpl) FindSupervisor(ctx context.Context) (*User, error) {
	return s.Repo.FindByRole(ctx, RoleManager)
}

func (s *UserServiceImpl) List(ctx context.Context) ([]User, error) {
	return s.Repo.List(ctx)
}

func (s *UserServiceImpl) Update(ctx context.Context, id string, update bson.M) error {
	delete(update, "password_hash")
	delete(update, "centre_id")
	if role, ok := update["role"].(string); ok && !validRole(role) {
		return errors.New("invalid role: " + role)
	}
	return s.Repo.Update(ctx, id, update)
}

func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
