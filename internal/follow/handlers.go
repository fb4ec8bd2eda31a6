package follow

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/profile/:username/follow", authMiddleware, func(c *fiber.Ctx) error {
		followerID, _ := c.Locals("user_id").(string)
		if err := svc.Follow(c.Context(), followerID, c.Params("username")); err != nil {
			return followError(err)
		}
		return c.SendStatus(fiber.StatusCreated)
	})

	r.Post("/profile/:username/unfollow", authMiddleware, func(c *fiber.Ctx) error {
		followerID, _ := c.Locals("user_id").(string)
		if err := svc.Unfollow(c.Context(), followerID, c.Params("username")); err != nil {
			return followError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func followError(err error) error {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrSelfFollow):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
