package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Swipe is an append-only record of a like/pass action. Rows are never
// updated or deleted.
type Swipe struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	SwiperID  string    `json:"swiperId" gorm:"not null;index;size:36"`
	SwipedID  string    `json:"swipedId" gorm:"not null;index;size:36"`
	Direction string    `json:"direction" gorm:"not null;size:10"` // like or pass
	CreatedAt time.Time `json:"createdAt"`
	Swiper    User      `json:"-" gorm:"foreignKey:SwiperID"`
	Swiped    User      `json:"-" gorm:"foreignKey:SwipedID"`
}

func (s *Swipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Match pairs two users after a mutual like. User1ID/User2ID are stored in
// canonical (lexicographic) order and the pair carries a unique index, so
// concurrent reciprocal swipes cannot produce duplicates. Consumers must
// compare both ids against "self" to find the other user.
type Match struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	User1ID   string    `json:"user1Id" gorm:"not null;size:36;uniqueIndex:idx_matches_pair"`
	User2ID   string    `json:"user2Id" gorm:"not null;size:36;uniqueIndex:idx_matches_pair"`
	CreatedAt time.Time `json:"createdAt"`
	User1     User      `json:"user1,omitempty" gorm:"foreignKey:User1ID"`
	User2     User      `json:"user2,omitempty" gorm:"foreignKey:User2ID"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Message belongs to a match. Append-only except for the IsRead flip.
type Message struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	MatchID   string    `json:"matchId" gorm:"not null;index;size:36"`
	SenderID  string    `json:"senderId" gorm:"not null;size:36"`
	Content   string    `json:"content" gorm:"not null"`
	IsRead    bool      `json:"isRead" gorm:"default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	Sender    User      `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// DailySwipe counts accepted swipes per user per calendar day (server-local,
// YYYY-MM-DD). Only incremented for non-premium users.
type DailySwipe struct {
	ID     string `json:"id" gorm:"primaryKey;size:36"`
	UserID string `json:"userId" gorm:"not null;size:36;uniqueIndex:idx_daily_swipes_user_date"`
	Date   string `json:"date" gorm:"not null;size:10;uniqueIndex:idx_daily_swipes_user_date"`
	Count  int    `json:"count" gorm:"default:0"`
}

func (d *DailySwipe) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
