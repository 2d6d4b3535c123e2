package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Valid report reasons.
const (
	ReasonInappropriate = "inappropriate"
	ReasonScam          = "scam"
	ReasonFake          = "fake"
	ReasonHarassment    = "harassment"
	ReasonOther         = "other"
)

// Block is directional in storage but interpreted symmetrically: a block in
// either direction excludes both users from each other's feeds and swipes.
type Block struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	BlockerID string    `json:"blockerId" gorm:"not null;index;size:36"`
	BlockedID string    `json:"blockedId" gorm:"not null;index;size:36"`
	CreatedAt time.Time `json:"createdAt"`
	Blocker   User      `json:"-" gorm:"foreignKey:BlockerID"`
	Blocked   User      `json:"-" gorm:"foreignKey:BlockedID"`
}

func (b *Block) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type Report struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	ReporterID string    `json:"reporterId" gorm:"not null;size:36"`
	ReportedID string    `json:"reportedId" gorm:"not null;size:36"`
	Reason     string    `json:"reason" gorm:"not null;size:50"`
	Details    *string   `json:"details,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	Reporter   User      `json:"-" gorm:"foreignKey:ReporterID"`
	Reported   User      `json:"-" gorm:"foreignKey:ReportedID"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
