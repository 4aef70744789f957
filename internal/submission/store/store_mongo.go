package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"formtrail/internal/submission/models"
)

// mongoSubmission is the document shape stored in the collection. The
// timestamp is a BSON date, which already has millisecond precision.
type mongoSubmission struct {
	ID        string    `bson:"_id"`
	Gmail     string    `bson:"gmail"`
	Title     string    `bson:"title"`
	Timestamp time.Time `bson:"timestamp"`
}

// MongoStore persists submissions as documents in one collection.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongo(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

func (s *MongoStore) Insert(ctx context.Context, submission models.Submission) error {
	doc := mongoSubmission{
		ID:        submission.ID.String(),
		Gmail:     submission.Identity.String(),
		Title:     submission.FormLabel.String(),
		Timestamp: submission.SubmittedAt,
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.Submission, error) {
	cursor, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	var docs []mongoSubmission
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read submissions: %w", err)
	}

	out := make([]models.Submission, 0, len(docs))
	for _, doc := range docs {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("submission id %q: %w", doc.ID, err)
		}
		out = append(out, models.Submission{
			ID:          id,
			Identity:    models.ResolvedIdentity(doc.Gmail),
			FormLabel:   models.KnownLabel(doc.Title),
			SubmittedAt: models.CanonicalTime(doc.Timestamp),
		})
	}
	return out, nil
}

func (s *MongoStore) Health(ctx context.Context) error {
	return s.collection.Database().Client().Ping(ctx, readpref.Primary())
}
