package controller

import (
	"errors"

	"github.com/benbeisheim/shapechess-backend/internal/model"
	"github.com/benbeisheim/shapechess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var inputErr *model.InputError
	var illegalErr *model.IllegalMoveError
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &inputErr):
		return fiber.StatusBadRequest
	case errors.As(err, &illegalErr):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrNotPlayer):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull), errors.Is(err, model.ErrGameOver), errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
