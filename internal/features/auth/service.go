package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	common_models "go-casework/internal/common/models"
	"go-casework/internal/features/audit"
	"go-casework/internal/features/centre"
	"go-casework/internal/features/user"
	"go-casework/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*user.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type AuthServiceImpl struct {
	UserRepo     user.UserRepository
	CentreRepo   centre.CentreRepository
	AuditService audit.AuditService
}

func NewAuthService(userRepo user.UserRepository, centreRepo centre.CentreRepository, auditService audit.AuditService) AuthService {
	return &AuthServiceImpl{
		UserRepo:     userRepo,
		CentreRepo:   centreRepo,
		AuditService: auditService,
	}
}

type RegisterRequest struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email"`
	CentreName string `json:"centreName"`
}

// Register bootstraps a new centre and makes the registering user its
// manager, so escalation actions have a recipient from day one.
func (s *AuthServiceImpl) Register(ctx context.Context, req *RegisterRequest) (*user.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errors.New("username and password are required")
	}

	centreName := req.CentreName
	if centreName == "" {
		centreName = req.Username + "'s Centre"
	}

	ownerID := primitive.NewObjectID()
	newCentre := centre.Centre{
		ID:      primitive.NewObjectID(),
		Name:    centreName,
		Slug:    utils.Slugify(centreName) + "-" + primitive.NewObjectID().Hex()[:4],
		OwnerID: ownerID,
	}
	if err := s.CentreRepo.Create(ctx, &newCentre); err != nil {
		return nil, err
	}

	// the rest of the bootstrap runs inside the new centre's scope
	ctx = context.WithValue(ctx, common_models.CentreIDKey, newCentre.ID.Hex())

	newUser := user.User{
		Name:         req.Name,
		Username:     strings.ToLower(req.Username),
		Email:        req.Email,
		PasswordHash: user.HashPassword(req.Password),
		Role:         user.RoleManager,
	}
	if err := s.UserRepo.Create(ctx, &newUser); err != nil {
		return nil, err
	}

	changes := map[string]common_models.Change{
		"username":  {New: newUser.Username},
		"centre_id": {New: newCentre.ID.Hex()},
		"role":      {New: newUser.Role},
	}
	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "user", newUser.ID.Hex(), changes)

	return &newUser, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	usr, err := s.UserRepo.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return "", errors.New("invalid credentials")
	}
	if usr.PasswordHash != user.HashPassword(password) {
		return "", errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(usr.ID, usr.CentreID, []string{usr.Role})
	if err != nil {
		return "", err
	}

	ctx = context.WithValue(ctx, common_models.CentreIDKey, usr.CentreID.Hex())
	_ = s.AuditService.LogChange(ctx, common_models.AuditActionLogin, "auth", usr.ID.Hex(),
		map[string]common_models.Change{"login_at": {New: time.Now().UTC()}})

	return token, nil
}
