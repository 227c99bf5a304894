package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/application/ordering"
)

// PickingListRenderer genera el documento imprimible de un plan.
type PickingListRenderer interface {
	Generate(ctx context.Context, plan *ordering.Plan) ([]byte, error)
}

// OrderHandler maneja registro, ciclo de vida y planes de órdenes (protegido).
type OrderHandler struct {
	uc  *ordering.UseCase
	pdf PickingListRenderer
}

// NewOrderHandler construye el handler. pdf nil deshabilita /picking-list.
func NewOrderHandler(uc *ordering.UseCase, pdf PickingListRenderer) *OrderHandler {
	return &OrderHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Crear orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Tipo, contrapartes y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), ActorFrom(c), idParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar líneas de una orden nueva
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderRequest  true  "Líneas"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), ActorFrom(c), idParam(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar orden nueva
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), ActorFrom(c), idParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar orden y asignar transporte
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la orden"
// @Param        body  body  dto.ConfirmOrderRequest  true  "Transporte"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/confirm [post]
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Confirm(c.Context(), ActorFrom(c), idParam(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Send godoc
// @Summary      Despachar orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/send [post]
func (h *OrderHandler) Send(c *fiber.Ctx) error {
	out, err := h.uc.Send(c.Context(), ActorFrom(c), idParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deliver godoc
// @Summary      Marcar orden como entregada
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/deliver [post]
func (h *OrderHandler) Deliver(c *fiber.Ctx) error {
	out, err := h.uc.Deliver(c.Context(), ActorFrom(c), idParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportLost godoc
// @Summary      Reportar unidades perdidas o dañadas
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la orden"
// @Param        body  body  dto.ReportLostRequest  true  "Líneas y estado opcional"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/lost-items [post]
func (h *OrderHandler) ReportLost(c *fiber.Ctx) error {
	var in dto.ReportLostRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ReportLost(c.Context(), ActorFrom(c), idParam(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir orden (ubicación en racks o cierre)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receive [post]
func (h *OrderHandler) Receive(c *fiber.Ctx) error {
	out, err := h.uc.Receive(c.Context(), ActorFrom(c), idParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SendPlan godoc
// @Summary      Vista previa del plan de salida
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PlanResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/send-plan [get]
func (h *OrderHandler) SendPlan(c *fiber.Ctx) error {
	plan, err := h.uc.PreviewSend(c.Context(), ActorFrom(c), idParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ordering.ToPlanResponse(plan))
}

// ReceivePlan godoc
// @Summary      Vista previa del plan de ubicación
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PlanResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receive-plan [get]
func (h *OrderHandler) ReceivePlan(c *fiber.Ctx) error {
	plan, err := h.uc.PreviewReceive(c.Context(), ActorFrom(c), idParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ordering.ToPlanResponse(plan))
}

// PickingList godoc
// @Summary      Hoja de picking en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id         path   string  true   "ID de la orden"
// @Param        direction  query  string  false  "send | receive"  default(send)
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/picking-list [get]
func (h *OrderHandler) PickingList(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "generador PDF no configurado"})
	}
	var (
		plan *ordering.Plan
		err  error
	)
	switch ordering.Direction(c.Query("direction", string(ordering.DirectionSend))) {
	case ordering.DirectionSend:
		plan, err = h.uc.PreviewSend(c.Context(), ActorFrom(c), idParam(c))
	case ordering.DirectionReceive:
		plan, err = h.uc.PreviewReceive(c.Context(), ActorFrom(c), idParam(c))
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "direction debe ser send o receive"})
	}
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.pdf.Generate(c.Context(), plan)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="picking-`+plan.OrderID+`.pdf"`)
	return c.Send(doc)
}
