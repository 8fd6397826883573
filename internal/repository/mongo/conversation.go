package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nmehta6/shopassist/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationRepository implements domain.ConversationRepository over MongoDB
type ConversationRepository struct {
	coll *mongo.Collection
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *DB) *ConversationRepository {
	return &ConversationRepository{coll: db.Collection(conversationsCollection)}
}

// Create inserts a new conversation
func (r *ConversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	if _, err := r.coll.InsertOne(ctx, conv); err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}
	return nil
}

// Get retrieves a conversation by ID scoped to its owner; a missing or
// foreign conversation yields (nil, nil).
func (r *ConversationRepository) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conv, nil
}

// ListByUser returns the user's conversations, most recently updated first
func (r *ConversationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	var convs []domain.Conversation
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %w", err)
	}
	return convs, nil
}

// LatestByUser returns the user's most recently updated conversation, or
// (nil, nil) when the user has none.
func (r *ConversationRepository) LatestByUser(ctx context.Context, userID uuid.UUID) (*domain.Conversation, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	var conv domain.Conversation
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest conversation: %w", err)
	}
	return &conv, nil
}

// AppendTurns pushes the turns and refreshes the update timestamp in a
// single write, so a user turn can never be persisted without its bot turn.
func (r *ConversationRepository) AppendTurns(ctx context.Context, id uuid.UUID, turns []domain.Turn) error {
	update := bson.M{
		"$push": bson.M{"turns": bson.M{"$each": turns}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to append turns: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetFeedback records the owner's rating on the conversation
func (r *ConversationRepository) SetFeedback(ctx context.Context, id, userID uuid.UUID, fb domain.Feedback) error {
	update := bson.M{"$set": bson.M{"feedback": fb, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id, "userId": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to set feedback: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// End marks the conversation inactive
func (r *ConversationRepository) End(ctx context.Context, id, userID uuid.UUID) error {
	update := bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id, "userId": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to end conversation: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the conversation
func (r *ConversationRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
