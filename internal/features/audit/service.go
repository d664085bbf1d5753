package audit

import (
	"context"
	"time"

	common_models "go-casework/internal/common/models"
	"go-casework/internal/features/user"
	"go-casework/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]user.User, error)
}

type AuditService interface {
	LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error
	ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error)
}

type AuditServiceImpl struct {
	Repo     AuditRepository
	UserRepo UserFinder
}

func NewAuditService(repo AuditRepository, userRepo UserFinder) AuditService {
	return &AuditServiceImpl{
		Repo:     repo,
		UserRepo: userRepo,
	}
}

func (s *AuditServiceImpl) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	actorID := "system"
	if claims, ok := ctx.Value(utils.UserClaimsKey).(*utils.UserClaims); ok {
		actorID = claims.UserID
	}

	log := common_models.AuditLog{
		ID:        primitive.NewObjectID(),
		Action:    action,
		Module:    module,
		RecordID:  recordID,
		ActorID:   actorID,
		Changes:   changes,
		Timestamp: time.Now(),
	}

	return s.Repo.Create(ctx, log)
}

func (s *AuditServiceImpl) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	logs, err := s.Repo.List(ctx, filters, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	// batch-resolve actor names, one lookup for the whole page
	seen := make(map[string]bool)
	actorIDs := make([]string, 0)
	for _, l := range logs {
		if l.ActorID != "" && l.ActorID != "system" && !seen[l.ActorID] {
			seen[l.ActorID] = true
			actorIDs = append(actorIDs, l.ActorID)
		}
	}

	names := make(map[string]string)
	if len(actorIDs) > 0 {
		if users, err := s.UserRepo.FindByIDs(ctx, actorIDs); err == nil {
			for _, u := range users {
				names[u.ID.Hex()] = u.Name
			}
		}
	}

	for i, l := range logs {
		switch {
		case l.ActorID == "" || l.ActorID == "system":
			logs[i].ActorName = "System"
		default:
			if name, ok := names[l.ActorID]; ok {
				logs[i].ActorName = name
			} else {
				logs[i].ActorName = "Unknown User"
			}
		}
	}

	return logs, nil
}
