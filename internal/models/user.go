// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account. PasswordHash never leaves the process.
type User struct {
	ID           string    `gorm:"primaryKey;size:32" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	ProfilePic   string    `gorm:"not null;default:''" json:"profilePic"`
	Bio          string    `gorm:"not null;default:''" json:"bio"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an ID when the caller did not.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

// Follow is a directed edge: Follower follows Following.
// Both foreign keys restrict deletion so neither side cascades.
type Follow struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id"`
	FollowerID  string    `gorm:"size:32;not null;uniqueIndex:idx_follows_pair" json:"followerId"`
	FollowingID string    `gorm:"size:32;not null;uniqueIndex:idx_follows_pair;index" json:"followingId"`
	Follower    User      `gorm:"foreignKey:FollowerID;constraint:OnDelete:RESTRICT" json:"-"`
	Following   User      `gorm:"foreignKey:FollowingID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName pins the follow edge table name.
func (Follow) TableName() string {
	return "user_follows"
}

func (f *Follow) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	return nil
}
