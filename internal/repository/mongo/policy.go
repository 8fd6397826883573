package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nmehta6/shopassist/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PolicyRepository implements domain.PolicyRepository over MongoDB.
// The policy type doubles as the document ID.
type PolicyRepository struct {
	coll *mongo.Collection
}

// NewPolicyRepository creates a new policy repository
func NewPolicyRepository(db *DB) *PolicyRepository {
	return &PolicyRepository{coll: db.Collection(policiesCollection)}
}

// GetByType retrieves a policy; a missing policy yields (nil, nil)
func (r *PolicyRepository) GetByType(ctx context.Context, policyType domain.PolicyType) (*domain.Policy, error) {
	var policy domain.Policy
	err := r.coll.FindOne(ctx, bson.M{"_id": policyType}).Decode(&policy)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}
	return &policy, nil
}

// List returns all policies ordered by type
func (r *PolicyRepository) List(ctx context.Context) ([]domain.Policy, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	var policies []domain.Policy
	if err := cursor.All(ctx, &policies); err != nil {
		return nil, fmt.Errorf("failed to decode policies: %w", err)
	}
	return policies, nil
}

// Upsert creates or replaces the policy for its type
func (r *PolicyRepository) Upsert(ctx context.Context, policy *domain.Policy) error {
	policy.UpdatedAt = time.Now()
	if policy.CreatedAt.IsZero() {
		policy.CreatedAt = policy.UpdatedAt
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": policy.Type}, policy, opts); err != nil {
		return fmt.Errorf("failed to upsert policy: %w", err)
	}
	return nil
}

// Delete removes a policy
func (r *PolicyRepository) Delete(ctx context.Context, policyType domain.PolicyType) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": policyType})
	if err != nil {
		return fmt.Errorf("failed to delete policy: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
