package client

import (
	"context"
	"fmt"
)

type ClientService interface {
	Create(ctx context.Context, client *Client) error
	Get(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, page, limit int64) ([]Client, int64, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type ClientServiceImpl struct {
	Repo ClientRepository
}

func NewClientService(repo ClientRepository) ClientService {
	return &ClientServiceImpl{Repo: repo}
}

func (s *ClientServiceImpl) Create(ctx context.Context, client *Client) error {
	if client.FirstName == "" && client.LastName == "" {
		return fmt.Errorf("client name is required")
	}
	return s.Repo.Create(ctx, client)
}

func (s *ClientServiceImpl) Get(ctx context.Context, id string) (*Client, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *ClientServiceImpl) List(ctx context.Context, page, limit int64) ([]Client, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return s.Repo.List(ctx, map[string]interface{}{}, limit, (page-1)*limit)
}

func (s *ClientServiceImpl) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	delete(updates, "_id")
	delete(updates, "id")
	delete(updates, "centre_id")
	return s.Repo.Update(ctx, id, updates)
}

func (s *ClientServiceImpl) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
