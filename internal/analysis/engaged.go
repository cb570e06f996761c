package analysis

import "github.com/leadscope/mcpgram/internal/instagram"

// EngagedUser is one unique user observed across accumulated pages, keyed by
// the provider's stable pk. Profile fields come from the first occurrence;
// later occurrences only append comments. FollowerCount and Biography are
// unknown until an enrichment fetch fills them in.
type EngagedUser struct {
	PK         string `json:"pk"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	IsPrivate  bool   `json:"is_private"`
	IsVerified bool   `json:"is_verified"`

	FollowerCount *int   `json:"follower_count,omitempty"`
	Biography     string `json:"biography,omitempty"`

	Comments []string `json:"comments,omitempty"`
}

// Collector deduplicates user-bearing records by pk while preserving
// first-encounter order, so truncating the collected slice stays
// deterministic across runs.
type Collector struct {
	order []string
	byPK  map[string]*EngagedUser
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{byPK: make(map[string]*EngagedUser)}
}

// AddComment records a comment's author, appending the comment text to an
// existing user when the pk was already seen.
func (c *Collector) AddComment(cm instagram.Comment) {
	u := c.upsert(cm.User)
	u.Comments = append(u.Comments, cm.Text)
}

// AddUser records a user-bearing record with no comment attached (follower
// and liker feeds).
func (c *Collector) AddUser(p instagram.UserProfile) {
	c.upsert(p)
}

func (c *Collector) upsert(p instagram.UserProfile) *EngagedUser {
	if u, ok := c.byPK[p.PK]; ok {
		return u
	}
	u := &EngagedUser{
		PK:         p.PK,
		Username:   p.Username,
		FullName:   p.FullName,
		IsPrivate:  p.IsPrivate,
		IsVerified: p.IsVerified,
	}
	// Follower feeds sometimes carry full profiles already; keep what we got.
	if p.FollowerCount > 0 {
		n := p.FollowerCount
		u.FollowerCount = &n
	}
	if p.Biography != "" {
		u.Biography = p.Biography
	}
	c.byPK[p.PK] = u
	c.order = append(c.order, p.PK)
	return u
}

// Users returns the unique users in first-encounter order.
func (c *Collector) Users() []*EngagedUser {
	out := make([]*EngagedUser, 0, len(c.order))
	for _, pk := range c.order {
		out = append(out, c.byPK[pk])
	}
	return out
}

// Len reports the number of unique users collected.
func (c *Collector) Len() int {
	return len(c.order)
}
