// Package discovery builds the swipe candidate feed.
package discovery

import (
	"context"

	"heartlink-dating-app/internal/apperrors"
	"heartlink-dating-app/internal/models"
	"heartlink-dating-app/internal/store"
)

// DefaultLimit caps the feed size when the caller does not ask for one.
const DefaultLimit = 50

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Candidates returns profiles the user can swipe on. Excluded from the
// feed: the user themself, anyone already swiped on (either direction of
// like or pass counts once swiped by the requester), anyone in a block
// relationship, and anyone with an incomplete profile. The requester must
// have a complete profile before discovering others.
func (s *Service) Candidates(ctx context.Context, userID string, limit int) ([]models.User, error) {
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return nil, apperrors.ErrProfileIncomplete
		}
		return nil, err
	}
	if !profile.IsProfileComplete {
		return nil, apperrors.ErrProfileIncomplete
	}

	swiped, err := s.store.SwipedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	blocked, err := s.store.BlockedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	exclude := make([]string, 0, len(swiped)+len(blocked)+1)
	exclude = append(exclude, userID)
	exclude = append(exclude, swiped...)
	exclude = append(exclude, blocked...)

	if limit <= 0 {
		limit = DefaultLimit
	}

	filter := store.CandidateFilter{
		Exclude: exclude,
		Limit:   limit,
	}
	if profile.AgeRangeMin > 0 {
		ageMin := profile.AgeRangeMin
		filter.AgeMin = &ageMin
	}
	if profile.AgeRangeMax > 0 {
		ageMax := profile.AgeRangeMax
		filter.AgeMax = &ageMax
	}
	if profile.LookingFor != "" && profile.LookingFor != models.LookingForEveryone {
		gender := profile.LookingFor
		filter.Gender = &gender
	}

	return s.store.FindCandidates(ctx, filter)
}
