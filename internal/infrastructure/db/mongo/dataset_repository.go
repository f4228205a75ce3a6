package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mdip/intelligence-platform/internal/core/domain"
)

const (
	datasetsCollection = "datasets_metadata"
	datasetsSequence   = "dataset_id"
)

type DatasetRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewDatasetRepository(db *mongo.Database) *DatasetRepository {
	return &DatasetRepository{db: db, col: db.Collection(datasetsCollection)}
}

func (r *DatasetRepository) NextID(ctx context.Context) (int64, error) {
	return nextSequence(ctx, r.db, datasetsSequence)
}

func (r *DatasetRepository) Insert(ctx context.Context, dataset *domain.Dataset) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, dataset)
	return err
}

func (r *DatasetRepository) FindByID(ctx context.Context, id int64) (*domain.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var dataset domain.Dataset
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&dataset); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDatasetNotFound
		}
		return nil, err
	}
	return &dataset, nil
}

// List returns datasets by descending row count. limit <= 0 returns all.
func (r *DatasetRepository) List(ctx context.Context, limit int64) ([]domain.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "rows", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var datasets []domain.Dataset
	if err := cursor.All(ctx, &datasets); err != nil {
		return nil, err
	}
	return datasets, nil
}

func (r *DatasetRepository) Update(ctx context.Context, dataset *domain.Dataset) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": dataset.ID}, dataset)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrDatasetNotFound
	}
	return nil
}

func (r *DatasetRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrDatasetNotFound
	}
	return nil
}
