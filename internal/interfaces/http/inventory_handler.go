package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/application/inventory"
)

// InventoryHandler maneja ubicación y salida de stock en racks (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Place godoc
// @Summary      Ubicar producto en un rack
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceInventoryRequest  true  "Rack, producto y cantidad"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Place(c.Context(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Remove godoc
// @Summary      Retirar producto de un rack (opcionalmente como baja)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RemoveInventoryRequest  true  "Rack, producto, cantidad y baja"
// @Success      200   {object}  dto.RemoveInventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/remove [post]
func (h *InventoryHandler) Remove(c *fiber.Ctx) error {
	var in dto.RemoveInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Remove(c.Context(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetRack godoc
// @Summary      Obtener rack con su inventario
// @Tags         racks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rack"
// @Success      200  {object}  dto.RackResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/racks/{id} [get]
func (h *InventoryHandler) GetRack(c *fiber.Ctx) error {
	out, err := h.uc.ListRack(c.Context(), ActorFrom(c), idParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
