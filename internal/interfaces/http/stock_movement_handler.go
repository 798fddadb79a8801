package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
)

// StockMovementHandler maneja las peticiones HTTP de movimientos de stock.
type StockMovementHandler struct {
	uc  *inventory.StockMovementUseCase
	val *Validator
}

// NewStockMovementHandler construye el handler.
func NewStockMovementHandler(uc *inventory.StockMovementUseCase, val *Validator) *StockMovementHandler {
	return &StockMovementHandler{uc: uc, val: val}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Description  Las salidas se validan contra el stock actual; si algún ítem falla no se persiste nada.
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockMovementRequest  true  "type (entrada|saída), movement_date, items"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /stock-movements/ [post]
func (h *StockMovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockMovementRequest
	if ok, err := parseBody(c, h.val, &in); !ok {
		return err
	}
	out, err := h.uc.CreateMovement(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos con sus ítems
// @Tags         stock-movements
// @Produce      json
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /stock-movements/ [get]
func (h *StockMovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         stock-movements
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stock-movements/{id} [get]
func (h *StockMovementHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cabecera del movimiento
// @Description  Solo cambia type y movement_date; los ítems no se modifican.
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del movimiento"
// @Param        body  body  dto.UpdateStockMovementRequest  true  "type, movement_date"
// @Success      200   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /stock-movements/{id} [put]
func (h *StockMovementHandler) Update(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	var in dto.UpdateStockMovementRequest
	if ok, err := parseBody(c, h.val, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento y sus ítems
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stock-movements/{id} [delete]
func (h *StockMovementHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
