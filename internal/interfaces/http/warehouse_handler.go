package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/application/usecase"
)

// WarehouseHandler maneja las peticiones HTTP para bodegas y racks (protegido).
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Datos de la bodega"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateRack godoc
// @Summary      Crear rack en una bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la bodega"
// @Param        body  body  dto.CreateRackRequest  true  "Posición y capacidad"
// @Success      201   {object}  dto.RackResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/racks [post]
func (h *WarehouseHandler) CreateRack(c *fiber.Ctx) error {
	var in dto.CreateRackRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateRack(c.Context(), ActorFrom(c), idParam(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ThrownSummary godoc
// @Summary      Resumen de bajas por bodega y producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC3339)"
// @Param        to    query  string  false  "Hasta (RFC3339)"
// @Success      200   {object}  dto.ThrownSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/thrown-items [get]
func (h *WarehouseHandler) ThrownSummary(c *fiber.Ctx) error {
	var in dto.DateRangeRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	out, err := h.uc.ThrownSummary(c.Context(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
