package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/domain"
)

var statusByCode = map[string]int{
	"NOT_FOUND":             fiber.StatusNotFound,
	"VALIDATION":            fiber.StatusBadRequest,
	"CAPACITY_EXCEEDED":     fiber.StatusConflict,
	"INSUFFICIENT_STOCK":    fiber.StatusConflict,
	"ALLOCATION_IMPOSSIBLE": fiber.StatusConflict,
	"INVALID_TRANSITION":    fiber.StatusConflict,
	"CONFLICT":              fiber.StatusConflict,
	"CAPACITY_INCONSISTENT": fiber.StatusInternalServerError,
	"BUSY":                  fiber.StatusServiceUnavailable,
	"UNAUTHORIZED":          fiber.StatusUnauthorized,
	"FORBIDDEN":             fiber.StatusForbidden,
}

// writeError traduce un error de caso de uso a status + ErrorResponse.
// Los errores sin tipo de dominio se registran y se ocultan al cliente.
func writeError(c *fiber.Ctx, err error) error {
	code := domain.Code(err)
	status, ok := statusByCode[code]
	if !ok {
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("code", code).Msg("error de consistencia")
	}
	if code == "BUSY" {
		c.Set(fiber.HeaderRetryAfter, "1")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// idParam copia el parámetro :id; el valor de c.Params no sobrevive al handler.
func idParam(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}
