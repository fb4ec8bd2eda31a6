package post

import (
	"encoding/json"
	"errors"
	"strconv"

	"backend-yatube/internal/cache"
	"backend-yatube/internal/comment"
	"backend-yatube/internal/shared/paginate"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, comments *comment.Service, pages *cache.Pages, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		page := paginate.Parse(c.Query("page"))
		key := "index:" + strconv.Itoa(page.Number)

		// replay the cached body verbatim while it lives; deletions
		// only show up once the entry expires
		if body, ok := pages.Get(c.Context(), key); ok {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(body)
		}

		posts, count, err := svc.Index(c.Context(), page)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		body, err := json.Marshal(listing(posts, page, count))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		pages.Set(c.Context(), key, body)

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	})

	r.Get("/group/:slug", func(c *fiber.Ctx) error {
		page := paginate.Parse(c.Query("page"))
		g, posts, count, err := svc.GroupPosts(c.Context(), c.Params("slug"), page)
		if err != nil {
			if errors.Is(err, ErrGroupNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"group": g, "listing": listing(posts, page, count)})
	})

	r.Get("/profile/:username", func(c *fiber.Ctx) error {
		page := paginate.Parse(c.Query("page"))
		author, posts, count, err := svc.AuthorPosts(c.Context(), c.Params("username"), page)
		if err != nil {
			if errors.Is(err, ErrAuthorNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"author": author, "listing": listing(posts, page, count)})
	})

	r.Get("/posts/:id", func(c *fiber.Ctx) error {
		p, err := svc.GetPost(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		postComments, err := comments.ListByPost(c.Context(), p.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"post": p, "comments": postComments})
	})

	r.Post("/create", authMiddleware, func(c *fiber.Ctx) error {
		var req PostRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		authorID, _ := c.Locals("user_id").(string)
		created, err := svc.CreatePost(c.Context(), authorID, req)
		if err != nil {
			if errors.Is(err, ErrTextRequired) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Post("/posts/:id/edit", authMiddleware, func(c *fiber.Ctx) error {
		var req PostRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		editorID, _ := c.Locals("user_id").(string)
		updated, err := svc.UpdatePost(c.Context(), c.Params("id"), editorID, req)
		if err != nil {
			return editError(c, err)
		}
		return c.JSON(updated)
	})

	r.Delete("/posts/:id", authMiddleware, func(c *fiber.Ctx) error {
		editorID, _ := c.Locals("user_id").(string)
		if err := svc.DeletePost(c.Context(), c.Params("id"), editorID); err != nil {
			return editError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/follow", authMiddleware, func(c *fiber.Ctx) error {
		page := paginate.Parse(c.Query("page"))
		userID, _ := c.Locals("user_id").(string)
		posts, count, err := svc.Feed(c.Context(), userID, page)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(listing(posts, page, count))
	})
}

// editError maps change failures the way the site behaves: unknown
// posts are 404, a non-author is bounced back to the post detail.
func editError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotAuthor):
		return c.Redirect("/posts/"+c.Params("id"), fiber.StatusFound)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func listing(posts []Post, page paginate.Page, count int) Listing {
	if posts == nil {
		posts = []Post{}
	}
	return Listing{
		Posts:      posts,
		Page:       page.Number,
		TotalPages: paginate.TotalPages(count),
		Count:      count,
	}
}
