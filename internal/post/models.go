package post

import "time"

type Post struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	GroupID        *string   `json:"group_id,omitempty"`
	GroupTitle     *string   `json:"group_title,omitempty"`
	Text           string    `json:"text"`
	ImageURL       *string   `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PostRequest carries the writable post fields for create and edit.
type PostRequest struct {
	Text     string  `json:"text"`
	GroupID  *string `json:"group_id"`
	ImageURL *string `json:"image_url"`
}

type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type GroupInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Listing is the paginated shape shared by index, group, profile and
// feed pages.
type Listing struct {
	Posts      []Post `json:"posts"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Count      int    `json:"count"`
}
