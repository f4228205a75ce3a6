package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mdip/intelligence-platform/internal/core/domain"
	"github.com/mdip/intelligence-platform/internal/core/ports"
)

const (
	incidentsCollection = "cyber_incidents"
	incidentsSequence   = "incident_id"
)

type IncidentRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewIncidentRepository(db *mongo.Database) *IncidentRepository {
	return &IncidentRepository{db: db, col: db.Collection(incidentsCollection)}
}

func (r *IncidentRepository) NextID(ctx context.Context) (int64, error) {
	return nextSequence(ctx, r.db, incidentsSequence)
}

func (r *IncidentRepository) Insert(ctx context.Context, incident *domain.Incident) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, incident)
	return err
}

func (r *IncidentRepository) FindByID(ctx context.Context, id int64) (*domain.Incident, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var incident domain.Incident
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&incident); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIncidentNotFound
		}
		return nil, err
	}
	return &incident, nil
}

// List returns incidents newest first, optionally filtered by severity.
func (r *IncidentRepository) List(ctx context.Context, filter ports.IncidentFilter) ([]domain.Incident, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if len(filter.Severities) > 0 {
		query["severity"] = bson.M{"$in": filter.Severities}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date_reported", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var incidents []domain.Incident
	if err := cursor.All(ctx, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

func (r *IncidentRepository) Update(ctx context.Context, incident *domain.Incident) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": incident.ID}, incident)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrIncidentNotFound
	}
	return nil
}

func (r *IncidentRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrIncidentNotFound
	}
	return nil
}
