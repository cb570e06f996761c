package instagram

import "time"

// Credentials identifies the principal used to authenticate with the provider.
type Credentials struct {
	Username string
	Password string
}

// UserProfile is the provider's view of an account. Feed items carry a partial
// profile (no follower count or biography); UserInfo returns the full record.
type UserProfile struct {
	PK             string `json:"pk"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	IsPrivate      bool   `json:"is_private"`
	IsVerified     bool   `json:"is_verified"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	MediaCount     int    `json:"media_count"`
	Biography      string `json:"biography"`
}

// Comment is a single comment on a media item with its embedded author.
type Comment struct {
	PK        string      `json:"pk"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
	User      UserProfile `json:"user"`
}

// Post is a single media item from an account feed.
type Post struct {
	PK           string    `json:"pk"`
	Shortcode    string    `json:"code"`
	TakenAt      time.Time `json:"taken_at"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	Caption      string    `json:"caption"`
}
