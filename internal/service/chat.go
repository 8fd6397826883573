package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nmehta6/shopassist/internal/assistant"
	"github.com/nmehta6/shopassist/internal/bus"
	"github.com/nmehta6/shopassist/internal/domain"
	"github.com/nmehta6/shopassist/internal/llm"
	"github.com/rs/zerolog/log"
)

// ErrEmptyMessage is returned when an inbound message is empty or whitespace
var ErrEmptyMessage = errors.New("message is required")

// ChatReply is the outcome of processing one inbound message. It carries the
// conversation with both new turns appended so callers can render the updated
// transcript without a follow-up fetch.
type ChatReply struct {
	Conversation *domain.Conversation `json:"conversation"`
	Reply        string               `json:"reply"`
	Intent       string               `json:"intent"`
	UsedAI       bool                 `json:"used_ai"`
}

// ChatService runs the message pipeline: admission, classification, response
// composition, persistence and event publication.
type ChatService struct {
	convRepo     domain.ConversationRepository
	classifier   *assistant.Classifier
	responder    *assistant.Responder
	limiter      *assistant.WindowLimiter
	retrier      *assistant.Retrier
	provider     llm.Provider
	events       bus.Bus
	historyLimit int
}

// NewChatService creates a new chat service
func NewChatService(
	convRepo domain.ConversationRepository,
	classifier *assistant.Classifier,
	responder *assistant.Responder,
	limiter *assistant.WindowLimiter,
	retrier *assistant.Retrier,
	provider llm.Provider,
	events bus.Bus,
	historyLimit int,
) *ChatService {
	return &ChatService{
		convRepo:     convRepo,
		classifier:   classifier,
		responder:    responder,
		limiter:      limiter,
		retrier:      retrier,
		provider:     provider,
		events:       events,
		historyLimit: historyLimit,
	}
}

// SendMessage processes one user message and returns the bot's reply.
// Pass uuid.Nil as conversationID to continue the user's latest conversation,
// or start a new one if none exists.
func (s *ChatService) SendMessage(ctx context.Context, userID, conversationID uuid.UUID, message string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	if err := s.limiter.TryAdmit(); err != nil {
		return nil, err
	}

	conv, err := s.resolveConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	classification := s.classifier.Classify(message)

	var reply string
	usedAI := classification.UseAI
	if classification.UseAI {
		reply = s.aiReply(ctx, conv, message)
	} else {
		reply = s.responder.Respond(ctx, userID, classification)
	}

	now := time.Now()
	turns := []domain.Turn{
		{Speaker: domain.SpeakerUser, Message: message, Timestamp: now},
		{
			Speaker:   domain.SpeakerBot,
			Message:   reply,
			Timestamp: now,
			Metadata:  &domain.TurnMetadata{Intent: classification.Category},
		},
	}
	if err := s.convRepo.AppendTurns(ctx, conv.ID, turns); err != nil {
		return nil, fmt.Errorf("failed to save turns: %w", err)
	}
	conv.Turns = append(conv.Turns, turns...)
	conv.UpdatedAt = now

	s.publish(ctx, conv.ID, bus.Event{Type: bus.EventMessage, Payload: turns[1]})

	return &ChatReply{
		Conversation: conv,
		Reply:        reply,
		Intent:       classification.Category,
		UsedAI:       usedAI,
	}, nil
}

// resolveConversation finds the conversation a message belongs to. An explicit
// ID must reference a conversation owned by the user; without one the user's
// latest active conversation is continued, creating a fresh one if needed.
func (s *ChatService) resolveConversation(ctx context.Context, userID, conversationID uuid.UUID) (*domain.Conversation, error) {
	if conversationID != uuid.Nil {
		conv, err := s.convRepo.Get(ctx, conversationID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get conversation: %w", err)
		}
		if conv == nil {
			return nil, domain.ErrNotFound
		}
		return conv, nil
	}

	conv, err := s.convRepo.LatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest conversation: %w", err)
	}
	if conv != nil && conv.Active {
		return conv, nil
	}

	now := time.Now()
	conv = &domain.Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     domain.DefaultConversationTitle,
		Turns:     []domain.Turn{},
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// aiReply asks the model for a response, retrying transient failures. The
// caller always gets a usable reply; total failure degrades to the fallback
// template instead of surfacing an error to the user.
func (s *ChatService) aiReply(ctx context.Context, conv *domain.Conversation, message string) string {
	if !s.provider.IsConfigured() {
		log.Warn().Str("provider", s.provider.Name()).Msg("provider not configured, using fallback reply")
		return assistant.Template(assistant.IntentDefault, assistant.SubcaseError)
	}

	s.publish(ctx, conv.ID, bus.Event{Type: bus.EventTyping, Payload: true})
	defer s.publish(ctx, conv.ID, bus.Event{Type: bus.EventTyping, Payload: false})

	history := s.history(conv)

	reply, err := s.retrier.Do(ctx, func(ctx context.Context) (string, error) {
		return s.provider.Chat(ctx, history, message)
	})
	if err != nil {
		log.Error().Err(err).Str("conversation_id", conv.ID.String()).Msg("AI reply failed after retries")
		return assistant.Template(assistant.IntentDefault, assistant.SubcaseError)
	}

	return reply
}

// history maps the conversation's most recent turns to provider messages
func (s *ChatService) history(conv *domain.Conversation) []llm.Message {
	turns := conv.Turns
	if len(turns) > s.historyLimit {
		turns = turns[len(turns)-s.historyLimit:]
	}

	history := make([]llm.Message, 0, len(turns))
	for _, turn := range turns {
		role := llm.RoleUser
		if turn.Speaker == domain.SpeakerBot {
			role = llm.RoleModel
		}
		history = append(history, llm.Message{Role: role, Content: turn.Message})
	}
	return history
}

func (s *ChatService) publish(ctx context.Context, conversationID uuid.UUID, event bus.Event) {
	if err := s.events.Publish(ctx, conversationID.String(), event); err != nil {
		log.Warn().Err(err).Str("conversation_id", conversationID.String()).Msg("failed to publish conversation event")
	}
}

// ListConversations lists the user's conversations, most recently active first
func (s *ChatService) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	return s.convRepo.ListByUser(ctx, userID)
}

// GetConversation retrieves one of the user's conversations
func (s *ChatService) GetConversation(ctx context.Context, userID, conversationID uuid.UUID) (*domain.Conversation, error) {
	conv, err := s.convRepo.Get(ctx, conversationID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	return conv, nil
}

// DeleteConversation removes one of the user's conversations
func (s *ChatService) DeleteConversation(ctx context.Context, userID, conversationID uuid.UUID) error {
	return s.convRepo.Delete(ctx, conversationID, userID)
}

// EndConversation marks one of the user's conversations inactive
func (s *ChatService) EndConversation(ctx context.Context, userID, conversationID uuid.UUID) error {
	return s.convRepo.End(ctx, conversationID, userID)
}

// LeaveFeedback records a rating on one of the user's conversations
func (s *ChatService) LeaveFeedback(ctx context.Context, userID, conversationID uuid.UUID, fb domain.Feedback) error {
	return s.convRepo.SetFeedback(ctx, conversationID, userID, fb)
}
