// Package handler implements the HTTP surface. Handlers bind request
// bodies, call the entity services, and map the domain error taxonomy
// to HTTP statuses with bilingual messages. No storage detail ever
// reaches a response.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/partsgarage/inventory-api/internal/i18n"
	"github.com/partsgarage/inventory-api/internal/model"
)

// dbTimeout bounds every storage call made on behalf of one request.
const dbTimeout = 5 * time.Second

// reqCtx derives a bounded context from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// lang picks the response language from the ?lang query parameter.
func lang(c echo.Context) i18n.Lang {
	return i18n.ParseLang(c.QueryParam("lang"))
}

// badBody rejects a request whose body failed to bind.
func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang(c), i18n.MsgInvalidInput)})
}

// writeDomainError maps a taxonomy error to an HTTP response. 5xx
// causes are logged server-side; the client only ever sees the
// translated generic message.
func writeDomainError(c echo.Context, err error) error {
	l := lang(c)
	switch {
	case errors.Is(err, model.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(l, i18n.MsgInvalidInput)})
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": i18n.T(l, i18n.MsgNotFound)})
	case errors.Is(err, model.ErrDuplicateUser):
		return c.JSON(http.StatusConflict, echo.Map{"error": i18n.T(l, i18n.MsgDuplicateUser)})
	case errors.Is(err, model.ErrIntegrity):
		return c.JSON(http.StatusConflict, echo.Map{"error": i18n.T(l, i18n.MsgIntegrity)})
	case errors.Is(err, model.ErrOwnerRequired):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": i18n.T(l, i18n.MsgOwnerRequired)})
	case errors.Is(err, model.ErrStoreUnavailable):
		log.Printf("handler: store unavailable: %v", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": i18n.T(l, i18n.MsgServerError)})
	default:
		log.Printf("handler: unexpected error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": i18n.T(l, i18n.MsgServerError)})
	}
}

// partResp is the transport shape of a car part. The image is a plain
// string, empty when the stored column is NULL.
type partResp struct {
	PartNumber uint64 `json:"part_number"`
	Name       string `json:"name"`
	Condition  string `json:"condition"`
	Image      string `json:"image,omitempty"`
}

func toPartResp(p model.CarPart) partResp {
	out := partResp{PartNumber: p.PartNumber, Name: p.Name, Condition: p.Condition}
	if p.Image.Valid {
		out.Image = p.Image.String
	}
	return out
}

func toPartResps(parts []model.CarPart) []partResp {
	out := make([]partResp, 0, len(parts))
	for _, p := range parts {
		out = append(out, toPartResp(p))
	}
	return out
}

// projectResp is the transport shape of a project.
type projectResp struct {
	ProjectID   uint64 `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func toProjectResp(p model.Project) projectResp {
	return projectResp{ProjectID: p.ID, Name: p.Name, Description: p.Description}
}
