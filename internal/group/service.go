package group

import (
	"context"
	"errors"

	"backend-yatube/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrSlugTaken = errors.New("slug already in use")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateGroup(ctx context.Context, input Group) (Group, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO groups (id, title, slug, description)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, input.ID, input.Title, input.Slug, input.Description)
	if err := row.Scan(&input.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Group{}, ErrSlugTaken
		}
		return Group{}, err
	}
	return input, nil
}

func (s *Service) Groups(ctx context.Context) ([]Group, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, slug, description, created_at
		FROM groups
		ORDER BY title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Group, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, slug, description, created_at
		FROM groups WHERE slug=$1
	`, slug)
	var g Group
	if err := row.Scan(&g.ID, &g.Title, &g.Slug, &g.Description, &g.CreatedAt); err != nil {
		return Group{}, err
	}
	return g, nil
}

// DeleteGroup detaches the group's posts before removing the group.
// Posts always outlive their group.
func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `UPDATE posts SET group_id=NULL WHERE group_id=$1`, id); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `DELETE FROM groups WHERE id=$1`, id)
	return err
}
