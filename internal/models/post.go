package models

import (
	"time"

	"gorm.io/gorm"
)

// Post limits.
const (
	MaxPostTextLength  = 500
	MaxReplyTextLength = 200
)

// Post is authored by exactly one user. Replies cascade with the post; likes
// are removed explicitly by the delete path.
type Post struct {
	ID         string    `gorm:"primaryKey;size:32" json:"id"`
	PostedByID string    `gorm:"size:32;not null;index" json:"postedById"`
	PostedBy   User      `gorm:"foreignKey:PostedByID;constraint:OnDelete:CASCADE" json:"-"`
	Text       string    `gorm:"size:500;not null" json:"text"`
	Img        string    `json:"img,omitempty"`
	Likes      []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:RESTRICT" json:"-"`
	Replies    []Reply   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	LikeCount  int64     `gorm:"->;-:migration" json:"likeCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}

// Like is the (post, user) association toggled by the like endpoint.
type Like struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	PostID    string    `gorm:"size:32;not null;uniqueIndex:idx_likes_post_user" json:"postId"`
	UserID    string    `gorm:"size:32;not null;uniqueIndex:idx_likes_post_user;index" json:"userId"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l *Like) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = NewID()
	}
	return nil
}

// Reply keeps a snapshot of the author's username and picture taken when the
// reply was written. The snapshot is not updated by later profile edits.
type Reply struct {
	ID             string    `gorm:"primaryKey;size:32" json:"id"`
	PostID         string    `gorm:"size:32;not null;index" json:"postId"`
	UserID         string    `gorm:"size:32;not null;index" json:"userId"`
	User           User      `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Text           string    `gorm:"size:200;not null" json:"text"`
	Username       string    `gorm:"size:50;not null" json:"username"`
	UserProfilePic string    `gorm:"not null;default:''" json:"userProfilePic"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (r *Reply) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	return nil
}
