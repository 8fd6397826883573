package domain

import (
	"context"
	"time"
)

// PolicyType enumerates the store policy kinds. One policy exists per type.
type PolicyType string

const (
	PolicyReturn   PolicyType = "return"
	PolicyRefund   PolicyType = "refund"
	PolicyShipping PolicyType = "shipping"
	PolicyPrivacy  PolicyType = "privacy"
	PolicyTerms    PolicyType = "terms"
)

// ValidPolicyType reports whether t is a known policy type
func ValidPolicyType(t PolicyType) bool {
	switch t {
	case PolicyReturn, PolicyRefund, PolicyShipping, PolicyPrivacy, PolicyTerms:
		return true
	}
	return false
}

// Policy is a free-text store policy document
type Policy struct {
	Type      PolicyType `json:"type" bson:"_id"`
	Title     string     `json:"title" bson:"title"`
	Content   string     `json:"content" bson:"content"`
	CreatedAt time.Time  `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updatedAt"`
}

// PolicyUpsert represents the payload for creating or replacing a policy
type PolicyUpsert struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// PolicyRepository defines the interface for policy storage
type PolicyRepository interface {
	GetByType(ctx context.Context, policyType PolicyType) (*Policy, error)
	List(ctx context.Context) ([]Policy, error)
	Upsert(ctx context.Context, policy *Policy) error
	Delete(ctx context.Context, policyType PolicyType) error
}
