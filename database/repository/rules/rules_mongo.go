package rulesRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shutterbook/database"
	"shutterbook/models"
)

// ErrNotFound is returned when a photographer has no rules document.
var ErrNotFound = errors.New("booking rules not found")

// MongoBookingRulesRepo is the MongoDB-backed implementation.
type MongoBookingRulesRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRulesRepo returns a repository over the bookingRules collection.
func NewMongoBookingRulesRepo() *MongoBookingRulesRepo {
	return &MongoBookingRulesRepo{coll: database.Collection("bookingRules")}
}

// EnsureIndexes creates the unique per-photographer index. The uniqueness of
// one rules document per photographer is enforced here, not by the engine.
func (repo *MongoBookingRulesRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "photographer_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create bookingRules index: %w", err)
	}
	return nil
}

// GetByPhotographer fetches the rules document for one photographer.
func (repo *MongoBookingRulesRepo) GetByPhotographer(photographerID string) (*models.BookingRules, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var rules models.BookingRules
	err := repo.coll.FindOne(ctx, bson.M{"photographer_id": photographerID}).Decode(&rules)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking rules: %w", err)
	}
	return &rules, nil
}

// Upsert replaces the photographer's rules document, creating it when absent.
func (repo *MongoBookingRulesRepo) Upsert(rules *models.BookingRules) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	rules.UpdatedAt = now
	if rules.CreatedAt.IsZero() {
		rules.CreatedAt = now
	}

	filter := bson.M{"photographer_id": rules.PhotographerID}
	opts := options.Replace().SetUpsert(true)
	if _, err := repo.coll.ReplaceOne(ctx, filter, rules, opts); err != nil {
		return fmt.Errorf("failed to upsert booking rules: %w", err)
	}
	return nil
}

// Delete removes the photographer's rules document.
func (repo *MongoBookingRulesRepo) Delete(photographerID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.DeleteOne(ctx, bson.M{"photographer_id": photographerID}); err != nil {
		return fmt.Errorf("failed to delete booking rules: %w", err)
	}
	return nil
}
