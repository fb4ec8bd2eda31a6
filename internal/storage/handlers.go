package storage

import (
	"context"
	"errors"
	"path"
	"strings"

	"backend-yatube/internal/db"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var ErrUnsupportedKind = errors.New("unsupported media kind")

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// SaveMedia records an uploaded image and returns the id and the URL a
// client puts into a post's image_url.
func (s *Service) SaveMedia(ctx context.Context, ownerID, fileName, kind string) (string, string, error) {
	if kind != "image" {
		return "", "", ErrUnsupportedKind
	}
	name := path.Base(fileName)
	if name == "" || name == "." || name == "/" {
		name = "upload.jpg"
	}
	if !imageExtensions[strings.ToLower(path.Ext(name))] {
		return "", "", ErrUnsupportedKind
	}

	id := uuid.NewString()
	url := "/media/posts/" + id + "-" + name
	_, err := s.db.Exec(ctx, `
		INSERT INTO media_objects (id, owner_id, url, kind)
		VALUES ($1,$2,$3,$4)
	`, id, ownerID, url, kind)
	if err != nil {
		return "", "", err
	}
	return id, url, nil
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/upload", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			FileName string `json:"file_name"`
			Kind     string `json:"kind"`
		}
		_ = c.BodyParser(&body)
		if body.Kind == "" {
			body.Kind = "image"
		}
		ownerID, _ := c.Locals("user_id").(string)
		id, url, err := svc.SaveMedia(c.Context(), ownerID, body.FileName, body.Kind)
		if err != nil {
			if errors.Is(err, ErrUnsupportedKind) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "url": url})
	})
}
