package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mdip/intelligence-platform/internal/core/domain"
	"github.com/mdip/intelligence-platform/internal/core/ports"
)

type DatasetService struct {
	repo   ports.DatasetRepository
	logger zerolog.Logger
}

func NewDatasetService(repo ports.DatasetRepository, logger zerolog.Logger) *DatasetService {
	return &DatasetService{repo: repo, logger: logger}
}

// Create registers a new dataset metadata record.
func (s *DatasetService) Create(ctx context.Context, input ports.CreateDatasetInput) (*domain.Dataset, error) {
	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	dataset := &domain.Dataset{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Rows:        input.Rows,
		Owner:       input.Owner,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, dataset); err != nil {
		s.logger.Error().Err(err).Msg("failed to insert dataset")
		return nil, err
	}

	s.logger.Info().Int64("dataset_id", dataset.ID).Str("name", dataset.Name).Msg("dataset registered")
	return dataset, nil
}

func (s *DatasetService) Get(ctx context.Context, id int64) (*domain.Dataset, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DatasetService) List(ctx context.Context, limit int64) ([]domain.Dataset, error) {
	return s.repo.List(ctx, limit)
}

func (s *DatasetService) Update(ctx context.Context, input ports.UpdateDatasetInput) (*domain.Dataset, error) {
	dataset, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	dataset.Name = strings.TrimSpace(input.Name)
	dataset.Description = input.Description
	dataset.Rows = input.Rows

	if err := s.repo.Update(ctx, dataset); err != nil {
		return nil, err
	}
	return dataset, nil
}

func (s *DatasetService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("dataset_id", id).Msg("dataset deleted")
	return nil
}

// Stats reports the dataset count, total row volume, and the largest dataset.
func (s *DatasetService) Stats(ctx context.Context) (*ports.DatasetStats, error) {
	datasets, err := s.repo.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	stats := &ports.DatasetStats{}
	for i := range datasets {
		stats.Count++
		stats.TotalRows += datasets[i].Rows
		if datasets[i].Rows > stats.LargestRows {
			stats.LargestRows = datasets[i].Rows
			stats.LargestName = datasets[i].Name
		}
	}
	return stats, nil
}
