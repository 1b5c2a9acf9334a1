package service

import (
	"context"

	"github.com/google/uuid"

	"yamdb-backend/internal/domains/title/model"
)

type TitleService interface {
	Create(ctx context.Context, req model.CreateTitleRequest) (*model.Title, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Title, error)
	List(ctx context.Context, req model.ListTitlesRequest) ([]model.Title, int, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateTitleRequest) (*model.Title, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
