package document

import (
	"context"
	"fmt"
	"path/filepath"

	"go-casework/pkg/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DocumentService interface {
	Register(ctx context.Context, caseID, fileName, contentType string, size int64) (*Document, error)
	Get(ctx context.Context, id string) (*Document, error)
	ListByCase(ctx context.Context, caseID string) ([]Document, error)
	Delete(ctx context.Context, id string) error
}

type DocumentServiceImpl struct {
	Repo DocumentRepository
}

func NewDocumentService(repo DocumentRepository) DocumentService {
	return &DocumentServiceImpl{Repo: repo}
}

// Register records metadata for an uploaded file. The stored key is a uuid
// so original filenames never collide on disk.
func (s *DocumentServiceImpl) Register(ctx context.Context, caseID, fileName, contentType string, size int64) (*Document, error) {
	caseOID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		return nil, fmt.Errorf("invalid case id: %w", err)
	}

	d := &Document{
		CaseID:      caseOID,
		FileName:    fileName,
		StoredKey:   uuid.NewString() + filepath.Ext(fileName),
		ContentType: contentType,
		Size:        size,
	}
	if claims, ok := ctx.Value(utils.UserClaimsKey).(*utils.UserClaims); ok {
		d.UploadedBy = claims.UserID
	}

	if err := s.Repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DocumentServiceImpl) Get(ctx context.Context, id string) (*Document, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *DocumentServiceImpl) ListByCase(ctx context.Context, caseID string) ([]Document, error) {
	return s.Repo.ListByCase(ctx, caseID)
}

func (s *DocumentServiceImpl) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
