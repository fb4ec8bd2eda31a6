package follow

import (
	"context"
	"errors"

	"backend-yatube/internal/db"
)

var (
	ErrSelfFollow     = errors.New("cannot follow yourself")
	ErrAuthorNotFound = errors.New("author not found")
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Follow subscribes followerID to the author behind username.
// Following the same author twice is a no-op, following yourself is
// rejected.
func (s *Service) Follow(ctx context.Context, followerID, username string) error {
	authorID, err := s.authorID(ctx, username)
	if err != nil {
		return err
	}
	if authorID == followerID {
		return ErrSelfFollow
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO follows (follower_id, author_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, followerID, authorID)
	return err
}

// Unfollow removes the subscription. Removing one that does not exist
// is a no-op.
func (s *Service) Unfollow(ctx context.Context, followerID, username string) error {
	authorID, err := s.authorID(ctx, username)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		DELETE FROM follows
		WHERE follower_id=$1 AND author_id=$2
	`, followerID, authorID)
	return err
}

func (s *Service) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	row := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follows WHERE follower_id=$1 AND author_id=$2
		)
	`, followerID, authorID)
	var following bool
	if err := row.Scan(&following); err != nil {
		return false, err
	}
	return following, nil
}

func (s *Service) authorID(ctx context.Context, username string) (string, error) {
	row := s.db.QueryRow(ctx, `SELECT id FROM users WHERE username=$1`, username)
	var id string
	if err := row.Scan(&id); err != nil {
		return "", ErrAuthorNotFound
	}
	return id, nil
}
