package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-sheets/internal/application/dto"
	appinventory "github.com/jhoicas/Inventario-sheets/internal/application/inventory"
	"github.com/jhoicas/Inventario-sheets/internal/domain"
	"github.com/jhoicas/Inventario-sheets/internal/domain/inventory"
)

// InventoryHandler maneja las tres páginas del inventario (ver, alta, editar/eliminar)
// sobre la tabla de la sesión del operador.
type InventoryHandler struct {
	uc       *appinventory.InventoryUseCase
	sessions *appinventory.SessionRegistry
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *appinventory.InventoryUseCase, sessions *appinventory.SessionRegistry) *InventoryHandler {
	return &InventoryHandler{uc: uc, sessions: sessions}
}

// List godoc
// @Summary      Ver inventario
// @Description  Filtra por categoría y estado; "All" o vacío no filtra.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Categoría o All"
// @Param        status    query  string  false  "In Stock, Out of Stock, Damaged o All"
// @Success      200  {object}  dto.InventoryViewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var filter dto.InventoryFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	var out *dto.InventoryViewResponse
	err := h.sessions.Do(c.Context(), SessionKey(c), func(tbl *inventory.Table) error {
		var err error
		out, err = h.uc.View(tbl, filter)
		return err
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Form godoc
// @Summary      Valores por defecto del alta
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RecordFormResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/form [get]
func (h *InventoryHandler) Form(c *fiber.Ctx) error {
	var out *dto.RecordFormResponse
	err := h.sessions.Do(c.Context(), SessionKey(c), func(tbl *inventory.Table) error {
		out = h.uc.FormDefaults(tbl)
		return nil
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar ítem
// @Description  Inserta el ítem al final de la tabla y sobrescribe la hoja completa.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecordRequest  true  "item_id opcional (por defecto máximo + 1)"
// @Success      201  {object}  dto.RecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var out *dto.RecordResponse
	err := h.sessions.Do(c.Context(), SessionKey(c), func(tbl *inventory.Table) error {
		var err error
		out, err = h.uc.Add(c.Context(), tbl, in)
		return err
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Buscar ítem por item_id
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "item_id"
// @Success      200  {object}  dto.RecordLookupResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "item_id debe ser un entero positivo"})
	}
	var out *dto.RecordLookupResponse
	err := h.sessions.Do(c.Context(), SessionKey(c), func(tbl *inventory.Table) error {
		var err error
		out, err = h.uc.Find(tbl, id)
		return err
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar ítem
// @Description  Reemplaza los campos enviados; la fila conserva su posición.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "item_id"
// @Param        body  body  dto.UpdateRecordRequest  true  "campos a modificar"
// @Success      200  {object}  dto.RecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "item_id debe ser un entero positivo"})
	}
	var in dto.UpdateRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var out *dto.RecordResponse
	err := h.sessions.Do(c.Context(), SessionKey(c), func(tbl *inventory.Table) error {
		var err error
		out, err = h.uc.Edit(c.Context(), tbl, id, in)
		return err
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "item_id"
// @Success      200  {object}  dto.DeleteRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "item_id debe ser un entero positivo"})
	}
	var out *dto.DeleteRecordResponse
	err := h.sessions.Do(c.Context(), SessionKey(c), func(tbl *inventory.Table) error {
		var err error
		out, err = h.uc.Delete(c.Context(), tbl, id)
		return err
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reload godoc
// @Summary      Recargar desde la hoja
// @Description  Descarta la tabla de la sesión y vuelve a leer la hoja ignorando la caché.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReloadResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/reload [post]
func (h *InventoryHandler) Reload(c *fiber.Ctx) error {
	var out *dto.ReloadResponse
	err := h.sessions.Do(c.Context(), SessionKey(c), func(tbl *inventory.Table) error {
		var err error
		out, err = h.uc.Reload(c.Context(), tbl)
		return err
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de existencias
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        category  query  string  false  "Categoría o All"
// @Param        status    query  string  false  "Estado o All"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/report.pdf [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	var filter dto.InventoryFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	var out []byte
	err := h.sessions.Do(c.Context(), SessionKey(c), func(tbl *inventory.Table) error {
		var err error
		out, err = h.uc.Report(c.Context(), tbl, filter)
		return err
	})
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="inventario.pdf"`)
	return c.Send(out)
}

func itemID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeError traduce los errores de dominio a códigos HTTP.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RECORD_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_ITEM_ID", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrSyncFailed):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SYNC_FAILED", Message: err.Error()})
	case errors.Is(err, domain.ErrLoadFailed), errors.Is(err, domain.ErrHeaderMismatch), errors.Is(err, domain.ErrMalformedRow):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "LOAD_FAILED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
