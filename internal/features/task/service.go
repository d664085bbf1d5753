package task

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskService interface {
	Create(ctx context.Context, t *Task) error
	// CreateFollowUp persists an engine-generated follow-up task. noteID may
	// be empty, in which case the task is created unlinked.
	CreateFollowUp(ctx context.Context, caseID, noteID, title, description string, due time.Time) (string, error)
	ListByCase(ctx context.Context, caseID string) ([]Task, error)
	UpdateStatus(ctx context.Context, id string, status TaskStatus) error
	Delete(ctx context.Context, id string) error
}

type TaskServiceImpl struct {
	Repo TaskRepository
}

func NewTaskService(repo TaskRepository) TaskService {
	return &TaskServiceImpl{Repo: repo}
}

func (s *TaskServiceImpl) Create(ctx context.Context, t *Task) error {
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if t.DueDate.IsZero() {
		t.DueDate = time.Now().AddDate(0, 0, 7)
	}
	return s.Repo.Create(ctx, t)
}

func (s *TaskServiceImpl) CreateFollowUp(ctx context.Context, caseID, noteID, title, description string, due time.Time) (string, error) {
	caseOID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		return "", fmt.Errorf("invalid case id: %w", err)
	}

	t := &Task{
		CaseID:      caseOID,
		Title:       title,
		Description: description,
		DueDate:     due,
	}
	if noteID != "" {
		if noteOID, err := primitive.ObjectIDFromHex(noteID); err == nil {
			t.NoteID = noteOID
		}
	}

	if err := s.Repo.Create(ctx, t); err != nil {
		return "", err
	}
	return t.ID.Hex(), nil
}

func (s *TaskServiceImpl) ListByCase(ctx context.Context, caseID string) ([]Task, error) {
	return s.Repo.ListByCase(ctx, caseID)
}

func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, id string, status TaskStatus) error {
	return s.Repo.UpdateStatus(ctx, id, status)
}

func (s *TaskServiceImpl) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
