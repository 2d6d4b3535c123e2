package store

import (
	"context"
	"errors"

	"heartlink-dating-app/internal/apperrors"
	"heartlink-dating-app/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db *gorm.DB
}

// New wraps a gorm connection in the Store contract.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}

// Users

func (s *gormStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Profile").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *gormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// Profiles

func (s *gormStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

func (s *gormStore) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"bio", "age", "gender", "location", "interests", "photos",
				"looking_for", "age_range_min", "age_range_max", "max_distance",
				"is_premium", "is_profile_complete", "updated_at",
			}),
		}).
		Create(profile).Error
}

func (s *gormStore) FindCandidates(ctx context.Context, filter CandidateFilter) ([]models.User, error) {
	query := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("profiles.is_profile_complete = ?", true)

	if len(filter.Exclude) > 0 {
		query = query.Where("users.id NOT IN ?", filter.Exclude)
	}
	if filter.AgeMin != nil {
		query = query.Where("profiles.age >= ?", *filter.AgeMin)
	}
	if filter.AgeMax != nil {
		query = query.Where("profiles.age <= ?", *filter.AgeMax)
	}
	if filter.Gender != nil {
		query = query.Where("profiles.gender = ?", *filter.Gender)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var users []models.User
	err := query.Order("profiles.created_at ASC").Preload("Profile").Find(&users).Error
	return users, err
}

// Swipes

func (s *gormStore) CreateSwipe(ctx context.Context, swipe *models.Swipe) error {
	return s.db.WithContext(ctx).Create(swipe).Error
}

func (s *gormStore) SwipedUserIDs(ctx context.Context, swiperID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.Swipe{}).
		Where("swiper_id = ?", swiperID).
		Distinct().
		Pluck("swiped_id", &ids).Error
	return ids, err
}

func (s *gormStore) HasLiked(ctx context.Context, swiperID, swipedID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Swipe{}).
		Where("swiper_id = ? AND swiped_id = ? AND direction = ?", swiperID, swipedID, models.DirectionLike).
		Count(&count).Error
	return count > 0, err
}

// Matches

// CreateMatchIfAbsent inserts a match for the unordered pair and reports
// whether this call created the row. The pair is stored in canonical order
// and guarded by a unique index, so the insert is conflict-tolerant: under
// concurrent reciprocal swipes exactly one caller observes created=true.
func (s *gormStore) CreateMatchIfAbsent(ctx context.Context, user1ID, user2ID string) (*models.Match, bool, error) {
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	match := models.Match{User1ID: user1ID, User2ID: user2ID}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
			DoNothing: true,
		}).
		Create(&match)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return &match, true, nil
	}

	// Lost the race or the pair already matched; return the existing row.
	var existing models.Match
	if err := s.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).
		First(&existing).Error; err != nil {
		return nil, false, notFound(err)
	}
	return &existing, false, nil
}

func (s *gormStore) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	var match models.Match
	err := s.db.WithContext(ctx).
		Preload("User1.Profile").Preload("User2.Profile").
		Where("id = ?", id).First(&match).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &match, nil
}

func (s *gormStore) ListMatchesForUser(ctx context.Context, userID string) ([]models.Match, error) {
	var matches []models.Match
	err := s.db.WithContext(ctx).
		Preload("User1.Profile").Preload("User2.Profile").
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}

// Messages

func (s *gormStore) CreateMessage(ctx context.Context, message *models.Message) error {
	return s.db.WithContext(ctx).Create(message).Error
}

func (s *gormStore) ListMessagesForMatch(ctx context.Context, matchID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Preload("Sender").
		Where("match_id = ?", matchID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (s *gormStore) MarkMessagesRead(ctx context.Context, matchID, readerID string) error {
	return s.db.WithContext(ctx).Model(&models.Message{}).
		Where("match_id = ? AND sender_id <> ? AND is_read = ?", matchID, readerID, false).
		Update("is_read", true).Error
}

// Safety

func (s *gormStore) CreateBlock(ctx context.Context, block *models.Block) error {
	return s.db.WithContext(ctx).Create(block).Error
}

// BlockedUserIDs returns users blocked by or blocking the given user.
// Blocking is symmetric for exclusion purposes.
func (s *gormStore) BlockedUserIDs(ctx context.Context, userID string) ([]string, error) {
	var blockedByUser []string
	if err := s.db.WithContext(ctx).Model(&models.Block{}).
		Where("blocker_id = ?", userID).
		Pluck("blocked_id", &blockedByUser).Error; err != nil {
		return nil, err
	}

	var blockingUser []string
	if err := s.db.WithContext(ctx).Model(&models.Block{}).
		Where("blocked_id = ?", userID).
		Pluck("blocker_id", &blockingUser).Error; err != nil {
		return nil, err
	}

	return append(blockedByUser, blockingUser...), nil
}

func (s *gormStore) IsBlockedEither(ctx context.Context, userID, otherID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userID, otherID, otherID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) CreateReport(ctx context.Context, report *models.Report) error {
	return s.db.WithContext(ctx).Create(report).Error
}

// Daily swipe counters

func (s *gormStore) DailySwipeCount(ctx context.Context, userID, date string) (int, error) {
	var counter models.DailySwipe
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return counter.Count, nil
}

// IncrementDailySwipe is a single atomic upsert: insert count=1, or bump the
// existing row for (user, date).
func (s *gormStore) IncrementDailySwipe(ctx context.Context, userID, date string) error {
	counter := models.DailySwipe{UserID: userID, Date: date, Count: 1}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count": gorm.Expr("daily_swipes.count + 1"),
			}),
		}).
		Create(&counter).Error
}
