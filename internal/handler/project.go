package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/partsgarage/inventory-api/internal/i18n"
	"github.com/partsgarage/inventory-api/internal/middleware"
	"github.com/partsgarage/inventory-api/internal/model"
	"github.com/partsgarage/inventory-api/internal/queue"
	"github.com/partsgarage/inventory-api/internal/service"
)

// ProjectHandler exposes project CRUD and the part/user associations.
// All routes require an authenticated session; mutating a project
// additionally requires membership or the admin role.
type ProjectHandler struct {
	Projects *service.ProjectService
	Users    *service.UserService
}

func NewProjectHandler(projects *service.ProjectService, users *service.UserService) *ProjectHandler {
	return &ProjectHandler{Projects: projects, Users: users}
}

type createProjectReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
type updateProjectReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
type addPartReq struct {
	PartNumber string `json:"part_number"`
}
type addUserReq struct {
	UserID uint64 `json:"user_id"`
}

func auditProject(c echo.Context, action string, projectID uint64) {
	_ = queue.PublishAudit(c.Request().Context(), queue.AuditEvent{
		Entity:     "project",
		Action:     action,
		ProjectID:  projectID,
		Actor:      middleware.Identity(c).Username,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// projectID parses the :id path parameter.
func projectID(c echo.Context) (uint64, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, model.ErrValidation
	}
	return n, nil
}

// canTouch reports whether the current caller may mutate the project:
// admins always, everyone else only when they are a member.
func (h *ProjectHandler) canTouch(c echo.Context, id uint64) (bool, error) {
	if middleware.Role(c) == model.RoleAdmin {
		return true, nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	return h.Projects.IsMember(ctx, id, middleware.Identity(c).Username)
}

// Create opens a new project owned by the calling user.
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Resolve the owner from the authenticated identity. A session
	// whose user has vanished cannot own anything.
	owner, err := h.Users.GetByUsername(ctx, middleware.Identity(c).Username)
	if err != nil {
		return writeDomainError(c, model.ErrOwnerRequired)
	}

	id, err := h.Projects.CreateProject(ctx, req.Name, req.Description, owner.ID)
	if err != nil {
		return writeDomainError(c, err)
	}
	auditProject(c, queue.ActionCreated, id)
	return c.JSON(http.StatusCreated, echo.Map{"project_id": id})
}

// ListMine returns the caller's projects.
func (h *ProjectHandler) ListMine(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Projects.ListProjectsForUser(ctx, middleware.Identity(c).Username)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]projectResp, 0, len(list))
	for _, p := range list {
		out = append(out, toProjectResp(p))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one project, 404 when it does not exist.
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := projectID(c)
	if err != nil {
		return writeDomainError(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, ok, err := h.Projects.GetProject(ctx, id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": i18n.T(lang(c), i18n.MsgNotFound)})
	}
	return c.JSON(http.StatusOK, toProjectResp(p))
}

// Update changes name and description.
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := projectID(c)
	if err != nil {
		return writeDomainError(c, err)
	}
	var req updateProjectReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if ok, err := h.canTouch(c, id); err != nil {
		return writeDomainError(c, err)
	} else if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": i18n.T(lang(c), i18n.MsgForbidden)})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Projects.UpdateProject(ctx, req.Name, req.Description, id); err != nil {
		return writeDomainError(c, err)
	}
	auditProject(c, queue.ActionUpdated, id)
	return c.NoContent(http.StatusNoContent)
}

// Delete removes the project and its associations.
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := projectID(c)
	if err != nil {
		return writeDomainError(c, err)
	}
	if ok, err := h.canTouch(c, id); err != nil {
		return writeDomainError(c, err)
	} else if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": i18n.T(lang(c), i18n.MsgForbidden)})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Projects.DeleteProject(ctx, id); err != nil {
		return writeDomainError(c, err)
	}
	auditProject(c, queue.ActionDeleted, id)
	return c.NoContent(http.StatusNoContent)
}

// AddPart links a part into the project.
func (h *ProjectHandler) AddPart(c echo.Context) error {
	id, err := projectID(c)
	if err != nil {
		return writeDomainError(c, err)
	}
	var req addPartReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	n, err := service.ParsePartNumber(req.PartNumber)
	if err != nil {
		return writeDomainError(c, err)
	}
	if ok, err := h.canTouch(c, id); err != nil {
		return writeDomainError(c, err)
	} else if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": i18n.T(lang(c), i18n.MsgForbidden)})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Projects.AddPartToProject(ctx, id, n); err != nil {
		return writeDomainError(c, err)
	}
	auditProject(c, queue.ActionUpdated, id)
	return c.NoContent(http.StatusNoContent)
}

// RemovePart unlinks a part; removing an absent link succeeds.
func (h *ProjectHandler) RemovePart(c echo.Context) error {
	id, err := projectID(c)
	if err != nil {
		return writeDomainError(c, err)
	}
	n, err := service.ParsePartNumber(c.Param("number"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if ok, err := h.canTouch(c, id); err != nil {
		return writeDomainError(c, err)
	} else if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": i18n.T(lang(c), i18n.MsgForbidden)})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Projects.DeletePartFromProject(ctx, id, n); err != nil {
		return writeDomainError(c, err)
	}
	auditProject(c, queue.ActionUpdated, id)
	return c.NoContent(http.StatusNoContent)
}

// ListParts returns the project's parts, resolved to full records.
func (h *ProjectHandler) ListParts(c echo.Context) error {
	id, err := projectID(c)
	if err != nil {
		return writeDomainError(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	parts, err := h.Projects.ListPartsInProject(ctx, id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toPartResps(parts))
}

// AddUser shares the project with another user.
func (h *ProjectHandler) AddUser(c echo.Context) error {
	id, err := projectID(c)
	if err != nil {
		return writeDomainError(c, err)
	}
	var req addUserReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if ok, err := h.canTouch(c, id); err != nil {
		return writeDomainError(c, err)
	} else if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": i18n.T(lang(c), i18n.MsgForbidden)})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Projects.AddUserToProject(ctx, id, req.UserID); err != nil {
		return writeDomainError(c, err)
	}
	auditProject(c, queue.ActionUpdated, id)
	return c.NoContent(http.StatusNoContent)
}
