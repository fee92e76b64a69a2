package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"routeadmin/internal/data"
	"routeadmin/internal/domain"
	"routeadmin/internal/domain/models"
	"routeadmin/internal/http/middleware"
	"routeadmin/internal/services"
	"routeadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuditLister reads back the delete journal.
type AuditLister interface {
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

// Console serves the route list pages and their JSON twins. Every browser
// session gets its own RouteList from Sessions.
type Console struct {
	Sessions *services.SessionStore
	Audit    AuditLister
	FontPath string
}

func (h *Console) list(c *gin.Context) *services.RouteList {
	return h.Sessions.Get(middleware.GetSessionID(c))
}

// applyFilter mounts the controller or, when the request names a filter,
// switches to it. Values the selectors cannot show become "no filter".
func (h *Console) applyFilter(c *gin.Context, l *services.RouteList) {
	ctx := operationContext(c)
	from, hasFrom := c.GetQuery("from")
	to, hasTo := c.GetQuery("to")
	if !hasFrom && !hasTo {
		_ = l.Mount(ctx)
		return
	}
	current := l.Snapshot().Filter
	if !hasFrom {
		from = current.From
	}
	if !hasTo {
		to = current.To
	}
	_ = l.SetFilter(ctx, data.SelectableOrEmpty(utils.NormalizeSpace(from)), data.SelectableOrEmpty(utils.NormalizeSpace(to)))
}

// GET /
func (h *Console) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/routes")
}

// GET /routes
func (h *Console) RoutesPage(c *gin.Context) {
	l := h.list(c)
	h.applyFilter(c, l)
	view := BuildRoutesView(l.Snapshot(), l.TakeNotices())
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "routes.html", view)
}

// POST /routes/:id/delete
func (h *Console) OpenDeleteDialog(c *gin.Context) {
	h.list(c).RequestDelete(models.RouteID(strings.TrimSpace(c.Param("id"))))
	c.Redirect(http.StatusSeeOther, "/routes")
}

// POST /deletion/cancel
func (h *Console) CancelDelete(c *gin.Context) {
	h.list(c).Cancel()
	c.Redirect(http.StatusSeeOther, "/routes")
}

// POST /deletion/confirm
func (h *Console) ConfirmDelete(c *gin.Context) {
	l := h.list(c)
	l.SetPassword(c.PostForm("pass"))
	_, _ = l.Confirm(operationContext(c))
	c.Redirect(http.StatusSeeOther, "/routes")
}

// GET /export/routes.pdf
func (h *Console) ExportPDF(c *gin.Context) {
	s := h.list(c).Snapshot()
	svc := services.ExportService{FontPath: h.FontPath, RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.RoutesPDF(s.Filter, s.Routes)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "export_failed", "could not render pdf", nil)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

type stateResponse struct {
	services.State
	Notices []domain.Notice `json:"notices"`
}

func (h *Console) respondState(c *gin.Context, l *services.RouteList) {
	notices := l.TakeNotices()
	if notices == nil {
		notices = []domain.Notice{}
	}
	c.JSON(http.StatusOK, stateResponse{State: l.Snapshot(), Notices: notices})
}

// GET /api/state
func (h *Console) State(c *gin.Context) {
	l := h.list(c)
	h.applyFilter(c, l)
	h.respondState(c, l)
}

type deletionRequest struct {
	ID models.RouteID `json:"id"`
}

// POST /api/deletion
func (h *Console) APIOpenDelete(c *gin.Context) {
	var req deletionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.ID = models.RouteID(strings.TrimSpace(req.ID.String()))
	if req.ID == "" {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "route id is required"})
		return
	}
	l := h.list(c)
	l.RequestDelete(req.ID)
	h.respondState(c, l)
}

// DELETE /api/deletion
func (h *Console) APICancelDelete(c *gin.Context) {
	l := h.list(c)
	l.Cancel()
	h.respondState(c, l)
}

type confirmRequest struct {
	Pass string `json:"pass"`
}

// POST /api/deletion/confirm
func (h *Console) APIConfirmDelete(c *gin.Context) {
	var req confirmRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid payload", err)
			return
		}
	}
	l := h.list(c)
	l.SetPassword(req.Pass)
	_, _ = l.Confirm(operationContext(c))
	h.respondState(c, l)
}

// GET /api/audit
func (h *Console) AuditLog(c *gin.Context) {
	if h.Audit == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false, "entries": []domain.AuditEntry{}})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "limit", Msg: "limit must be a positive number"})
		return
	}
	entries, err := h.Audit.ListRecent(c.Request.Context(), limit)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "audit query failed", Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": true, "entries": entries})
}

// GET /api/cities
func (h *Console) Cities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cities": data.Cities(), "options": data.CityOptions()})
}
