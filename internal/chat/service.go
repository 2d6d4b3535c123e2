// Package chat manages match conversations: listing matches, fetching
// history and sending messages, with participant authorization on every
// operation.
package chat

import (
	"context"
	"unicode/utf8"

	"heartlink-dating-app/internal/apperrors"
	"heartlink-dating-app/internal/models"
	"heartlink-dating-app/internal/store"

	"github.com/sirupsen/logrus"
)

// MaxMessageLength bounds message content, counted in runes.
const MaxMessageLength = 1000

// Broadcaster pushes a persisted message to connected websocket clients.
type Broadcaster interface {
	BroadcastNewMessage(matchID string, message *models.Message)
}

type Service struct {
	store       store.Store
	broadcaster Broadcaster
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// SetBroadcaster wires the websocket hub in after construction. The hub
// depends on this service for authorization, so the link is set late to
// break the cycle.
func (s *Service) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// MatchesForUser lists the user's matches, newest first.
func (s *Service) MatchesForUser(ctx context.Context, userID string) ([]models.Match, error) {
	return s.store.ListMatchesForUser(ctx, userID)
}

// Match fetches a single match the requester participates in.
func (s *Service) Match(ctx context.Context, matchID, requesterID string) (*models.Match, error) {
	match, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.User1ID != requesterID && match.User2ID != requesterID {
		return nil, apperrors.ErrForbidden
	}
	return match, nil
}

// Messages returns the match history oldest-first and marks the other
// side's messages as read.
func (s *Service) Messages(ctx context.Context, matchID, requesterID string) ([]models.Message, error) {
	if _, err := s.Match(ctx, matchID, requesterID); err != nil {
		return nil, err
	}

	messages, err := s.store.ListMessagesForMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if err := s.store.MarkMessagesRead(ctx, matchID, requesterID); err != nil {
		logrus.WithError(err).WithField("match_id", matchID).Warn("failed to mark messages read")
	}
	return messages, nil
}

// Send persists a message in the match and broadcasts it to subscribed
// websocket clients before returning.
func (s *Service) Send(ctx context.Context, matchID, senderID, content string) (*models.Message, error) {
	if _, err := s.Match(ctx, matchID, senderID); err != nil {
		return nil, err
	}

	length := utf8.RuneCountInString(content)
	if length < 1 {
		return nil, apperrors.Validation("message content is required")
	}
	if length > MaxMessageLength {
		return nil, apperrors.Validation("message content must be at most %d characters", MaxMessageLength)
	}

	message := &models.Message{MatchID: matchID, SenderID: senderID, Content: content}
	if err := s.store.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastNewMessage(matchID, message)
	}
	return message, nil
}

// IsParticipant reports whether the user belongs to the match. Used by the
// websocket hub to authorize subscriptions.
func (s *Service) IsParticipant(ctx context.Context, matchID, userID string) (bool, error) {
	match, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return match.User1ID == userID || match.User2ID == userID, nil
}
