// Package swipe records like/pass decisions, enforces the daily quota and
// detects mutual likes.
package swipe

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"heartlink-dating-app/internal/apperrors"
	"heartlink-dating-app/internal/models"
	"heartlink-dating-app/internal/redis"
	"heartlink-dating-app/internal/store"

	"github.com/sirupsen/logrus"
)

// DailySwipeLimit is the number of swipes a free user gets per calendar day.
// Premium users are unlimited.
const DailySwipeLimit = 10

const matchCacheTTL = 24 * time.Hour

type Engine struct {
	store store.Store
	cache *redis.Client
}

func NewEngine(st store.Store, cache *redis.Client) *Engine {
	return &Engine{store: st, cache: cache}
}

// Result is the outcome of a recorded swipe. Match is set only when this
// swipe completed a mutual like.
type Result struct {
	Swipe   *models.Swipe
	IsMatch bool
	Match   *models.Match
}

// RecordSwipe validates and persists a swipe, then checks for reciprocity.
// IsMatch is true only for the swipe that creates the match row, so a
// repeated like against an already-matched user reports false.
func (e *Engine) RecordSwipe(ctx context.Context, swiperID, swipedID, direction string) (*Result, error) {
	if direction != models.DirectionLike && direction != models.DirectionPass {
		return nil, apperrors.Validation("direction must be like or pass")
	}
	if swipedID == "" {
		return nil, apperrors.Validation("swipedId is required")
	}
	if swipedID == swiperID {
		return nil, apperrors.Validation("cannot swipe on yourself")
	}

	premium, err := e.isPremium(ctx, swiperID)
	if err != nil {
		return nil, err
	}

	date := today()
	if !premium {
		count, err := e.dailyCount(ctx, swiperID, date)
		if err != nil {
			return nil, err
		}
		if count >= DailySwipeLimit {
			return nil, apperrors.ErrQuotaExceeded
		}
	}

	blocked, err := e.store.IsBlockedEither(ctx, swiperID, swipedID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, apperrors.ErrBlocked
	}

	swipe := &models.Swipe{SwiperID: swiperID, SwipedID: swipedID, Direction: direction}
	if err := e.store.CreateSwipe(ctx, swipe); err != nil {
		return nil, err
	}

	result := &Result{Swipe: swipe}
	if direction == models.DirectionLike {
		liked, err := e.store.HasLiked(ctx, swipedID, swiperID)
		if err != nil {
			return nil, err
		}
		if liked {
			match, created, err := e.store.CreateMatchIfAbsent(ctx, swiperID, swipedID)
			if err != nil {
				return nil, err
			}
			result.IsMatch = created
			result.Match = match
			if created {
				e.cacheMatch(ctx, match)
				logrus.WithFields(logrus.Fields{
					"match_id": match.ID,
					"user1":    match.User1ID,
					"user2":    match.User2ID,
				}).Info("new match created")
			}
		}
	}

	if !premium {
		if err := e.store.IncrementDailySwipe(ctx, swiperID, date); err != nil {
			return nil, err
		}
		e.cache.Del(ctx, dailyKey(swiperID, date))
	}

	return result, nil
}

// DailyStatus reports today's swipe count and the applicable limit. A nil
// limit means unlimited (premium).
func (e *Engine) DailyStatus(ctx context.Context, userID string) (int, *int, error) {
	premium, err := e.isPremium(ctx, userID)
	if err != nil {
		return 0, nil, err
	}

	count, err := e.dailyCount(ctx, userID, today())
	if err != nil {
		return 0, nil, err
	}

	if premium {
		return count, nil, nil
	}
	limit := DailySwipeLimit
	return count, &limit, nil
}

// isPremium treats a missing profile as non-premium.
func (e *Engine) isPremium(ctx context.Context, userID string) (bool, error) {
	profile, err := e.store.GetProfile(ctx, userID)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return profile.IsPremium, nil
}

// dailyCount reads the counter through a short-lived cache. The cache is
// invalidated on every increment, so a stale read only ever undercounts by
// the entries written between Set and Del.
func (e *Engine) dailyCount(ctx context.Context, userID, date string) (int, error) {
	key := dailyKey(userID, date)
	if val, ok := e.cache.Get(ctx, key); ok {
		if n, err := strconv.Atoi(val); err == nil {
			return n, nil
		}
	}

	count, err := e.store.DailySwipeCount(ctx, userID, date)
	if err != nil {
		return 0, err
	}
	e.cache.Set(ctx, key, strconv.Itoa(count), untilMidnight())
	return count, nil
}

func (e *Engine) cacheMatch(ctx context.Context, match *models.Match) {
	key := fmt.Sprintf("match:%s", match.ID)
	e.cache.HSet(ctx, key, map[string]interface{}{
		"user1_id":   match.User1ID,
		"user2_id":   match.User2ID,
		"created_at": match.CreatedAt.Format(time.RFC3339),
	})
	e.cache.Expire(ctx, key, matchCacheTTL)
}

func dailyKey(userID, date string) string {
	return fmt.Sprintf("swipes:daily:%s:%s", userID, date)
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func untilMidnight() time.Duration {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return midnight.Sub(now)
}
