package comment

import (
	"context"
	"errors"

	"backend-yatube/internal/db"

	"github.com/google/uuid"
)

var ErrEmptyText = errors.New("comment text required")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) AddComment(ctx context.Context, postID, authorID, text string) (Comment, error) {
	if text == "" {
		return Comment{}, ErrEmptyText
	}
	c := Comment{
		ID:       uuid.NewString(),
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO comments (id, post_id, author_id, text)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at, (SELECT username FROM users WHERE id=$3)
	`, c.ID, c.PostID, c.AuthorID, c.Text)
	if err := row.Scan(&c.CreatedAt, &c.AuthorUsername); err != nil {
		return Comment{}, err
	}
	return c, nil
}

// ListByPost returns a post's comments oldest first, the order they
// appear under the post.
func (s *Service) ListByPost(ctx context.Context, postID string) ([]Comment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.post_id, c.author_id, u.username, c.text, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id=$1
		ORDER BY c.created_at
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorUsername, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}
