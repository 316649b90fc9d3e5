package serverutils

import (
	"errors"

	"talk-rag-be/pkg/rag/ragerr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors to HTTP statuses: lookup misses
// to 404, invalid prompt or document configuration to 422, everything else
// to 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var (
			botNotFound     *ragerr.BotNotFoundError
			sessionNotFound *ragerr.SessionNotFoundError
			configErr       *ragerr.ConfigurationError
			noDocs          *ragerr.NoDocumentsError
			fiberErr        *fiber.Error
		)

		switch {
		case errors.As(err, &botNotFound), errors.As(err, &sessionNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))
		case errors.As(err, &configErr), errors.As(err, &noDocs):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(fiber.StatusUnprocessableEntity, err.Error()))
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
		}
	}
}
