package note

import (
	"context"
	"fmt"

	"go-casework/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NoteService interface {
	Create(ctx context.Context, n *Note) error
	// CreateSystemNote persists an engine-generated note and returns its id.
	CreateSystemNote(ctx context.Context, caseID, content string) (string, error)
	ListByCase(ctx context.Context, caseID string) ([]Note, error)
	LatestNoteID(ctx context.Context, caseID string) (string, error)
	Delete(ctx context.Context, id string) error
}

type NoteServiceImpl struct {
	Repo NoteRepository
}

func NewNoteService(repo NoteRepository) NoteService {
	return &NoteServiceImpl{Repo: repo}
}

func (s *NoteServiceImpl) Create(ctx context.Context, n *Note) error {
	if n.Content == "" {
		return fmt.Errorf("note content is required")
	}
	if claims, ok := ctx.Value(utils.UserClaimsKey).(*utils.UserClaims); ok {
		if oid, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
			n.AuthorID = oid
		}
	}
	return s.Repo.Create(ctx, n)
}

func (s *NoteServiceImpl) CreateSystemNote(ctx context.Context, caseID, content string) (string, error) {
	caseOID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		return "", fmt.Errorf("invalid case id: %w", err)
	}

	n := &Note{
		CaseID:  caseOID,
		Content: content,
		System:  true,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return "", err
	}
	return n.ID.Hex(), nil
}

func (s *NoteServiceImpl) ListByCase(ctx context.Context, caseID string) ([]Note, error) {
	return s.Repo.ListByCase(ctx, caseID)
}

func (s *NoteServiceImpl) LatestNoteID(ctx context.Context, caseID string) (string, error) {
	n, err := s.Repo.FindLatestByCase(ctx, caseID)
	if err != nil {
		return "", err
	}
	if n == nil {
		return "", nil
	}
	return n.ID.Hex(), nil
}

func (s *NoteServiceImpl) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
