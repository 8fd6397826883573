package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nmehta6/shopassist/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	policyCachePrefix = "policy:"
	policyCacheTTL    = 5 * time.Minute
)

// CachedPolicyRepository wraps a policy repository with a Redis read cache.
// Policies change rarely but are read on every policy question, so reads
// are served from Redis and writes invalidate the cached entry.
type CachedPolicyRepository struct {
	inner  domain.PolicyRepository
	client *Client
}

// NewCachedPolicyRepository creates a caching decorator around inner
func NewCachedPolicyRepository(inner domain.PolicyRepository, client *Client) *CachedPolicyRepository {
	return &CachedPolicyRepository{inner: inner, client: client}
}

// GetByType retrieves a policy, preferring the cache. Cache failures fall
// through to the underlying repository.
func (c *CachedPolicyRepository) GetByType(ctx context.Context, policyType domain.PolicyType) (*domain.Policy, error) {
	key := fmt.Sprintf("%s%s", policyCachePrefix, policyType)

	if data, err := c.client.rdb.Get(ctx, key).Bytes(); err == nil {
		var policy domain.Policy
		if err := json.Unmarshal(data, &policy); err == nil {
			return &policy, nil
		}
		log.Warn().Str("policy_type", string(policyType)).Msg("discarding unreadable cached policy")
	}

	policy, err := c.inner.GetByType(ctx, policyType)
	if err != nil || policy == nil {
		return policy, err
	}

	if data, err := json.Marshal(policy); err == nil {
		if err := c.client.rdb.Set(ctx, key, data, policyCacheTTL).Err(); err != nil {
			log.Warn().Err(err).Str("policy_type", string(policyType)).Msg("failed to cache policy")
		}
	}

	return policy, nil
}

// List returns all policies from the underlying repository
func (c *CachedPolicyRepository) List(ctx context.Context) ([]domain.Policy, error) {
	return c.inner.List(ctx)
}

// Upsert writes the policy and invalidates its cached entry
func (c *CachedPolicyRepository) Upsert(ctx context.Context, policy *domain.Policy) error {
	if err := c.inner.Upsert(ctx, policy); err != nil {
		return err
	}
	return c.invalidate(ctx, policy.Type)
}

// Delete removes the policy and invalidates its cached entry
func (c *CachedPolicyRepository) Delete(ctx context.Context, policyType domain.PolicyType) error {
	if err := c.inner.Delete(ctx, policyType); err != nil {
		return err
	}
	return c.invalidate(ctx, policyType)
}

func (c *CachedPolicyRepository) invalidate(ctx context.Context, policyType domain.PolicyType) error {
	key := fmt.Sprintf("%s%s", policyCachePrefix, policyType)
	if err := c.client.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached policy: %w", err)
	}
	return nil
}
