package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/partsgarage/inventory-api/internal/middleware"
	"github.com/partsgarage/inventory-api/internal/queue"
	"github.com/partsgarage/inventory-api/internal/service"
)

// PartHandler exposes the car part catalogue. Reads are public;
// mutations are registered behind the admin role middleware.
type PartHandler struct {
	Parts *service.PartService
}

func NewPartHandler(parts *service.PartService) *PartHandler {
	return &PartHandler{Parts: parts}
}

type createPartReq struct {
	PartNumber string `json:"part_number"`
	Name       string `json:"name"`
	Condition  string `json:"condition"`
	Image      string `json:"image"`
}
type renamePartReq struct {
	Name string `json:"name"`
}

// auditPart records a catalogue mutation. Best effort: a broker
// outage must not fail the request, so the error is discarded after
// the publisher has logged it.
func auditPart(c echo.Context, action string, partNumber uint64) {
	_ = queue.PublishAudit(c.Request().Context(), queue.AuditEvent{
		Entity:     "part",
		Action:     action,
		PartNumber: partNumber,
		Actor:      middleware.Identity(c).Username,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// List returns the whole catalogue.
func (h *PartHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	parts, err := h.Parts.ListAll(ctx)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toPartResps(parts))
}

// Get looks one part number up. The response is an array: empty when
// the part does not exist, which is a normal outcome rather than 404.
func (h *PartHandler) Get(c echo.Context) error {
	n, err := service.ParsePartNumber(c.Param("number"))
	if err != nil {
		return writeDomainError(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	parts, err := h.Parts.FindByNumber(ctx, n)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toPartResps(parts))
}

// Create registers a new part.
func (h *PartHandler) Create(c echo.Context) error {
	var req createPartReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	n, err := service.ParsePartNumber(req.PartNumber)
	if err != nil {
		return writeDomainError(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Parts.Create(ctx, n, req.Name, req.Condition, req.Image)
	if err != nil {
		return writeDomainError(c, err)
	}
	auditPart(c, queue.ActionCreated, p.PartNumber)
	return c.JSON(http.StatusCreated, toPartResp(p))
}

// Rename changes a part's name, the only mutable field.
func (h *PartHandler) Rename(c echo.Context) error {
	n, err := service.ParsePartNumber(c.Param("number"))
	if err != nil {
		return writeDomainError(c, err)
	}
	var req renamePartReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Parts.UpdateName(ctx, n, req.Name)
	if err != nil {
		return writeDomainError(c, err)
	}
	auditPart(c, queue.ActionUpdated, p.PartNumber)
	return c.JSON(http.StatusOK, toPartResp(p))
}

// Delete removes a part and its project associations.
func (h *PartHandler) Delete(c echo.Context) error {
	n, err := service.ParsePartNumber(c.Param("number"))
	if err != nil {
		return writeDomainError(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Parts.Delete(ctx, n); err != nil {
		return writeDomainError(c, err)
	}
	auditPart(c, queue.ActionDeleted, n)
	return c.NoContent(http.StatusNoContent)
}
