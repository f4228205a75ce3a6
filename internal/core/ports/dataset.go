package ports

import (
	"context"

	"github.com/mdip/intelligence-platform/internal/core/domain"
)

// DatasetRepository persists dataset metadata records.
type DatasetRepository interface {
	Insert(ctx context.Context, dataset *domain.Dataset) error
	FindByID(ctx context.Context, id int64) (*domain.Dataset, error)
	List(ctx context.Context, limit int64) ([]domain.Dataset, error)
	Update(ctx context.Context, dataset *domain.Dataset) error
	Delete(ctx context.Context, id int64) error
	NextID(ctx context.Context) (int64, error)
}

// CreateDatasetInput carries the fields accepted when registering a dataset.
type CreateDatasetInput struct {
	Name        string
	Description string
	Rows        int64
	Owner       int64
}

// UpdateDatasetInput carries the mutable dataset fields.
type UpdateDatasetInput struct {
	ID          int64
	Name        string
	Description string
	Rows        int64
}

// DatasetStats summarises registered datasets.
type DatasetStats struct {
	Count       int64  `json:"count"`
	TotalRows   int64  `json:"total_rows"`
	LargestName string `json:"largest_name,omitempty"`
	LargestRows int64  `json:"largest_rows"`
}

// DatasetService defines use-case operations for dataset metadata.
type DatasetService interface {
	Create(ctx context.Context, input CreateDatasetInput) (*domain.Dataset, error)
	Get(ctx context.Context, id int64) (*domain.Dataset, error)
	List(ctx context.Context, limit int64) ([]domain.Dataset, error)
	Update(ctx context.Context, input UpdateDatasetInput) (*domain.Dataset, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*DatasetStats, error)
}
