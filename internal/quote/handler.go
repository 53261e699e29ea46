package quote

import (
	"math"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quotes/internal/auth/authctx"
	apperrors "github.com/skillsenselab/quotes/internal/errors"
	"github.com/skillsenselab/quotes/internal/server"
	"github.com/skillsenselab/quotes/internal/util"
	"github.com/skillsenselab/quotes/internal/validation"
)

// Handler exposes the quotes service over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates the quotes HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /api/quotes. Public: runs without an identity.
func (h *Handler) List(c *gin.Context) {
	page, pageSize := NormalizePage(
		util.ParseIntDefault(c.Query("page"), 1),
		util.ParseIntDefault(c.Query("page_size"), DefaultPageSize),
	)

	quotes, total, err := h.svc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondOKWithMeta(c, quotes, &server.Meta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	})
}

// Get handles GET /api/quotes/:id. Public.
func (h *Handler) Get(c *gin.Context) {
	q, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, q)
}

// Create handles POST /api/quotes. Protected: the access gate guarantees an
// identity is present.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("request body must be valid JSON"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	identity := authctx.MustGet(c.Request.Context())
	q, err := h.svc.Create(c.Request.Context(), req, identity.UserID)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, q)
}

// Update handles PUT /api/quotes/:id. Protected.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("request body must be valid JSON"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	q, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, q)
}

// Delete handles DELETE /api/quotes/:id. Protected.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}
