package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Swipe directions and the gender wildcard accepted by lookingFor.
const (
	DirectionLike = "like"
	DirectionPass = "pass"

	LookingForEveryone = "everyone"
)

type User struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	Email           *string   `json:"email,omitempty" gorm:"uniqueIndex;size:255"`
	PasswordHash    string    `json:"-"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
	Profile         *Profile  `json:"profile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Profile holds the dating-specific data for a user. One row per user;
// a user is discoverable only while IsProfileComplete is true.
type Profile struct {
	ID                string    `json:"id" gorm:"primaryKey;size:36"`
	UserID            string    `json:"userId" gorm:"uniqueIndex;not null;size:36"`
	Bio               *string   `json:"bio,omitempty"`
	Age               int       `json:"age" gorm:"not null"`
	Gender            string    `json:"gender" gorm:"not null;size:50"`
	Location          *string   `json:"location,omitempty" gorm:"size:255"`
	Interests         []string  `json:"interests" gorm:"serializer:json"`
	Photos            []string  `json:"photos" gorm:"serializer:json"`
	LookingFor        string    `json:"lookingFor,omitempty" gorm:"size:50"`
	AgeRangeMin       int       `json:"ageRangeMin" gorm:"default:18"`
	AgeRangeMax       int       `json:"ageRangeMax" gorm:"default:99"`
	MaxDistance       int       `json:"maxDistance" gorm:"default:50"` // km, stored but not filtered on
	IsPremium         bool      `json:"isPremium" gorm:"default:false"`
	IsProfileComplete bool      `json:"isProfileComplete" gorm:"default:false"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
