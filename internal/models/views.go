package models

import "time"

// ToggleOutcome is the result of flipping an association row.
type ToggleOutcome string

const (
	ToggleAdded   ToggleOutcome = "added"
	ToggleRemoved ToggleOutcome = "removed"
)

// Author is the public projection of a user embedded in post payloads.
type Author struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
}

// AuthorOf projects u into its public author summary.
func AuthorOf(u User) Author {
	return Author{ID: u.ID, Username: u.Username, ProfilePic: u.ProfilePic}
}

// AccountView is returned by signup and login.
type AccountView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"`
}

// AccountOf projects u without its password hash.
func AccountOf(u *User) AccountView {
	return AccountView{
		ID:         u.ID,
		Name:       u.Name,
		Username:   u.Username,
		Email:      u.Email,
		Bio:        u.Bio,
		ProfilePic: u.ProfilePic,
	}
}

// Profile is the public profile read by username.
type Profile struct {
	AccountView
	Followers int64     `json:"followers"`
	Following int64     `json:"following"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostView is a post with its author, likers and replies.
type PostView struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Img       string      `json:"img,omitempty"`
	PostedBy  Author      `json:"postedBy"`
	Likes     []Author    `json:"likes"`
	LikeCount int64       `json:"likeCount"`
	Replies   []ReplyView `json:"replies"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ReplyView exposes the stored author snapshot, not the live user.
type ReplyView struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	UserID         string    `json:"userId"`
	Username       string    `json:"username"`
	UserProfilePic string    `json:"userProfilePic"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ReplyViewOf projects a stored reply.
func ReplyViewOf(r Reply) ReplyView {
	return ReplyView{
		ID:             r.ID,
		Text:           r.Text,
		UserID:         r.UserID,
		Username:       r.Username,
		UserProfilePic: r.UserProfilePic,
		CreatedAt:      r.CreatedAt,
	}
}

// PostViewOf builds a view from a post loaded with PostedBy, Likes.User and
// Replies. LikeCount falls back to the number of loaded likes.
func PostViewOf(p *Post) PostView {
	view := PostView{
		ID:        p.ID,
		Text:      p.Text,
		Img:       p.Img,
		PostedBy:  AuthorOf(p.PostedBy),
		Likes:     make([]Author, 0, len(p.Likes)),
		LikeCount: p.LikeCount,
		Replies:   make([]ReplyView, 0, len(p.Replies)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, l := range p.Likes {
		view.Likes = append(view.Likes, AuthorOf(l.User))
	}
	if view.LikeCount == 0 {
		view.LikeCount = int64(len(p.Likes))
	}
	for _, r := range p.Replies {
		view.Replies = append(view.Replies, ReplyViewOf(r))
	}
	return view
}
