package follow

import "time"

// Follow is a directed subscription from one user to an author.
type Follow struct {
	FollowerID string    `json:"follower_id"`
	AuthorID   string    `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}
