package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Speaker identifies who produced a turn
type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

// TurnMetadata carries optional classification details attached to a turn
type TurnMetadata struct {
	RelatedProductIDs []string `json:"related_product_ids,omitempty" bson:"relatedProductIds,omitempty"`
	RelatedOrderIDs   []string `json:"related_order_ids,omitempty" bson:"relatedOrderIds,omitempty"`
	Intent            string   `json:"intent,omitempty" bson:"intent,omitempty"`
	Sentiment         string   `json:"sentiment,omitempty" bson:"sentiment,omitempty"`
}

// Turn is a single message within a conversation. Turns are immutable once
// appended; insertion order is the only ordering guarantee.
type Turn struct {
	Speaker   Speaker       `json:"speaker" bson:"speaker"`
	Message   string        `json:"message" bson:"message"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
	Metadata  *TurnMetadata `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// Feedback is an optional rating left by the conversation owner
type Feedback struct {
	Rating  int    `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" bson:"comment,omitempty"`
}

// Conversation is a support chat thread owned by a single user
type Conversation struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	UserID    uuid.UUID `json:"user_id" bson:"userId"`
	Title     string    `json:"title" bson:"title"`
	Turns     []Turn    `json:"turns" bson:"turns"`
	Active    bool      `json:"active" bson:"active"`
	Feedback  *Feedback `json:"feedback,omitempty" bson:"feedback,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

// DefaultConversationTitle is used when a conversation is created implicitly
// by an inbound message.
const DefaultConversationTitle = "New Conversation"

// ConversationRepository defines the interface for conversation storage.
//
// AppendTurns must persist both turns and the refreshed update timestamp in a
// single write; a user turn without its bot turn is a correctness bug.
type ConversationRepository interface {
	Create(ctx context.Context, conv *Conversation) error
	Get(ctx context.Context, id, userID uuid.UUID) (*Conversation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Conversation, error)
	LatestByUser(ctx context.Context, userID uuid.UUID) (*Conversation, error)
	AppendTurns(ctx context.Context, id uuid.UUID, turns []Turn) error
	SetFeedback(ctx context.Context, id, userID uuid.UUID, fb Feedback) error
	End(ctx context.Context, id, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
