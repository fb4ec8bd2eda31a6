package post

import (
	"context"
	"errors"

	"backend-yatube/internal/db"
	"backend-yatube/internal/shared/paginate"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrTextRequired   = errors.New("post text required")
	ErrNotAuthor      = errors.New("only the author may change a post")
	ErrPostNotFound   = errors.New("post not found")
	ErrGroupNotFound  = errors.New("group not found")
	ErrAuthorNotFound = errors.New("author not found")
)

const selectPosts = `
	SELECT p.id, p.author_id, u.username, p.group_id, g.title, p.text, p.image_url, p.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id`

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreatePost(ctx context.Context, authorID string, req PostRequest) (Post, error) {
	if req.Text == "" {
		return Post{}, ErrTextRequired
	}
	p := Post{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		GroupID:  req.GroupID,
		Text:     req.Text,
		ImageURL: req.ImageURL,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO posts (id, author_id, group_id, text, image_url)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, (SELECT username FROM users WHERE id=$2)
	`, p.ID, p.AuthorID, p.GroupID, p.Text, p.ImageURL)
	if err := row.Scan(&p.CreatedAt, &p.AuthorUsername); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) GetPost(ctx context.Context, id string) (Post, error) {
	row := s.db.QueryRow(ctx, selectPosts+` WHERE p.id=$1`, id)
	var p Post
	if err := row.Scan(&p.ID, &p.AuthorID, &p.AuthorUsername, &p.GroupID, &p.GroupTitle, &p.Text, &p.ImageURL, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Post{}, ErrPostNotFound
		}
		return Post{}, err
	}
	return p, nil
}

// UpdatePost applies an edit on behalf of editorID. Only the author may
// edit; empty request fields keep their current values.
func (s *Service) UpdatePost(ctx context.Context, id, editorID string, req PostRequest) (Post, error) {
	p, err := s.GetPost(ctx, id)
	if err != nil {
		return Post{}, err
	}
	if p.AuthorID != editorID {
		return Post{}, ErrNotAuthor
	}
	if req.Text != "" {
		p.Text = req.Text
	}
	if req.GroupID != nil {
		p.GroupID = req.GroupID
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}

	_, err = s.db.Exec(ctx, `
		UPDATE posts
		SET text=$2, group_id=$3, image_url=$4
		WHERE id=$1
	`, p.ID, p.Text, p.GroupID, p.ImageURL)
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) DeletePost(ctx context.Context, id, editorID string) error {
	p, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if p.AuthorID != editorID {
		return ErrNotAuthor
	}
	_, err = s.db.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	return err
}

// Index returns the newest-first slice of all posts for one page plus
// the total post count.
func (s *Service) Index(ctx context.Context, page paginate.Page) ([]Post, int, error) {
	posts, err := s.queryPosts(ctx, selectPosts+`
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	count, err := s.count(ctx, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

func (s *Service) GroupPosts(ctx context.Context, slug string, page paginate.Page) (GroupInfo, []Post, int, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, slug, description FROM groups WHERE slug=$1
	`, slug)
	var g GroupInfo
	if err := row.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
		return GroupInfo{}, nil, 0, ErrGroupNotFound
	}

	posts, err := s.queryPosts(ctx, selectPosts+`
		WHERE p.group_id=$1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, g.ID, page.Limit(), page.Offset())
	if err != nil {
		return GroupInfo{}, nil, 0, err
	}
	count, err := s.count(ctx, `SELECT COUNT(*) FROM posts WHERE group_id=$1`, g.ID)
	if err != nil {
		return GroupInfo{}, nil, 0, err
	}
	return g, posts, count, nil
}

func (s *Service) AuthorPosts(ctx context.Context, username string, page paginate.Page) (Author, []Post, int, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, full_name FROM users WHERE username=$1
	`, username)
	var a Author
	if err := row.Scan(&a.ID, &a.Username, &a.FullName); err != nil {
		return Author{}, nil, 0, ErrAuthorNotFound
	}

	posts, err := s.queryPosts(ctx, selectPosts+`
		WHERE p.author_id=$1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, a.ID, page.Limit(), page.Offset())
	if err != nil {
		return Author{}, nil, 0, err
	}
	count, err := s.count(ctx, `SELECT COUNT(*) FROM posts WHERE author_id=$1`, a.ID)
	if err != nil {
		return Author{}, nil, 0, err
	}
	return a, posts, count, nil
}

// Feed lists posts authored only by users that userID follows.
func (s *Service) Feed(ctx context.Context, userID string, page paginate.Page) ([]Post, int, error) {
	posts, err := s.queryPosts(ctx, selectPosts+`
		WHERE p.author_id IN (SELECT author_id FROM follows WHERE follower_id=$1)
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	count, err := s.count(ctx, `
		SELECT COUNT(*) FROM posts
		WHERE author_id IN (SELECT author_id FROM follows WHERE follower_id=$1)
	`, userID)
	if err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

func (s *Service) queryPosts(ctx context.Context, sql string, args ...any) ([]Post, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.AuthorUsername, &p.GroupID, &p.GroupTitle, &p.Text, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (s *Service) count(ctx context.Context, sql string, args ...any) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
