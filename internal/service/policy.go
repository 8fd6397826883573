package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nmehta6/shopassist/internal/domain"
)

// ErrUnknownPolicyType is returned for a policy type outside the known set
var ErrUnknownPolicyType = errors.New("unknown policy type")

// PolicyService handles store policy management
type PolicyService struct {
	policyRepo domain.PolicyRepository
}

// NewPolicyService creates a new policy service
func NewPolicyService(policyRepo domain.PolicyRepository) *PolicyService {
	return &PolicyService{policyRepo: policyRepo}
}

// Get retrieves a policy by type
func (s *PolicyService) Get(ctx context.Context, policyType domain.PolicyType) (*domain.Policy, error) {
	if !domain.ValidPolicyType(policyType) {
		return nil, ErrUnknownPolicyType
	}

	policy, err := s.policyRepo.GetByType(ctx, policyType)
	if err != nil {
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}
	if policy == nil {
		return nil, domain.ErrNotFound
	}
	return policy, nil
}

// List returns all policies
func (s *PolicyService) List(ctx context.Context) ([]domain.Policy, error) {
	return s.policyRepo.List(ctx)
}

// Upsert creates or replaces the policy for a type
func (s *PolicyService) Upsert(ctx context.Context, policyType domain.PolicyType, input domain.PolicyUpsert) (*domain.Policy, error) {
	if !domain.ValidPolicyType(policyType) {
		return nil, ErrUnknownPolicyType
	}

	policy := &domain.Policy{
		Type:    policyType,
		Title:   input.Title,
		Content: input.Content,
	}
	if err := s.policyRepo.Upsert(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

// Delete removes the policy for a type
func (s *PolicyService) Delete(ctx context.Context, policyType domain.PolicyType) error {
	if !domain.ValidPolicyType(policyType) {
		return ErrUnknownPolicyType
	}
	return s.policyRepo.Delete(ctx, policyType)
}
