// Package store is the persistence gateway. The discovery, swipe and chat
// services depend only on the Store contract, which lets tests substitute
// any backing database.
package store

import (
	"context"

	"heartlink-dating-app/internal/models"
)

// CandidateFilter narrows the discovery candidate pool. Nil bounds mean
// "no filter". Exclude must already contain the requesting user's id.
type CandidateFilter struct {
	Exclude []string
	AgeMin  *int
	AgeMax  *int
	Gender  *string
	Limit   int
}

type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Profiles
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile *models.Profile) error
	FindCandidates(ctx context.Context, filter CandidateFilter) ([]models.User, error)

	// Swipes
	CreateSwipe(ctx context.Context, swipe *models.Swipe) error
	SwipedUserIDs(ctx context.Context, swiperID string) ([]string, error)
	HasLiked(ctx context.Context, swiperID, swipedID string) (bool, error)

	// Matches
	CreateMatchIfAbsent(ctx context.Context, user1ID, user2ID string) (*models.Match, bool, error)
	GetMatch(ctx context.Context, id string) (*models.Match, error)
	ListMatchesForUser(ctx context.Context, userID string) ([]models.Match, error)

	// Messages
	CreateMessage(ctx context.Context, message *models.Message) error
	ListMessagesForMatch(ctx context.Context, matchID string) ([]models.Message, error)
	MarkMessagesRead(ctx context.Context, matchID, readerID string) error

	// Safety
	CreateBlock(ctx context.Context, block *models.Block) error
	BlockedUserIDs(ctx context.Context, userID string) ([]string, error)
	IsBlockedEither(ctx context.Context, userID, otherID string) (bool, error)
	CreateReport(ctx context.Context, report *models.Report) error

	// Daily swipe counters
	DailySwipeCount(ctx context.Context, userID, date string) (int, error)
	IncrementDailySwipe(ctx context.Context, userID, date string) error
}
