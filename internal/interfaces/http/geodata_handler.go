package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
)

// GeodataHandler maneja las peticiones HTTP de geometrías.
type GeodataHandler struct {
	uc  *usecase.GeodataUseCase
	val *Validator
}

// NewGeodataHandler construye el handler.
func NewGeodataHandler(uc *usecase.GeodataUseCase, val *Validator) *GeodataHandler {
	return &GeodataHandler{uc: uc, val: val}
}

// Create godoc
// @Summary      Crear polígono
// @Tags         geodata
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePolygonRequest  true  "name, description, geometry GeoJSON"
// @Success      201   {object}  dto.PolygonResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /geodata/ [post]
func (h *GeodataHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePolygonRequest
	if ok, err := parseBody(c, h.val, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar polígonos
// @Tags         geodata
// @Produce      json
// @Param        skip   query  int  false  "Offset"  default(0)
// @Param        limit  query  int  false  "Límite"  default(100)
// @Success      200    {array}  dto.PolygonResponse
// @Router       /geodata/ [get]
func (h *GeodataHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "skip y limit deben ser enteros"})
	}
	if details := h.val.Struct(&page); len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida", Details: details})
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener polígono
// @Tags         geodata
// @Produce      json
// @Param        id   path  int  true  "ID del polígono"
// @Success      200  {object}  dto.PolygonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /geodata/{id} [get]
func (h *GeodataHandler) GetByID(c *fiber.Ctx) error {
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

// KML godoc
// @Summary      Exportar polígono a KML
// @Tags         geodata
// @Produce      application/vnd.google-earth.kml+xml
// @Param        id   path  int  true  "ID del polígono"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /geodata/{id}/kml [get]
func (h *GeodataHandler) KML(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	b, err := h.uc.KML(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.google-earth.kml+xml")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="polygon-%d.kml"`, id))
	return c.Send(b)
}
