package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/service"
	"library-backend/internal/shared/response"
	"library-backend/internal/shared/utils"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the author endpoints on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	authors := rg.Group("/authors")
	authors.GET("", h.ListAuthors)
	authors.POST("", h.CreateAuthor)
	authors.GET("/:id", h.GetAuthor)
	authors.PUT("/:id", h.UpdateAuthor)
	authors.DELETE("/:id", h.DeleteAuthor)
}

// ListAuthors - GET /api/v1/authors
func (h *Handler) ListAuthors(c *gin.Context) {
	authors, err := h.service.ListAuthors(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, model.ToResponses(authors), &response.Meta{Total: len(authors)})
}

// GetAuthor - GET /api/v1/authors/:id?associations=false
func (h *Handler) GetAuthor(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	withBooks := utils.ParseBool(c.Query("associations"), true)

	a, err := h.service.GetAuthor(c.Request.Context(), id, withBooks)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, a.ToResponse())
}

// CreateAuthor - POST /api/v1/authors
func (h *Handler) CreateAuthor(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	a, err := h.service.CreateAuthor(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a.ToResponse())
}

// UpdateAuthor - PUT /api/v1/authors/:id
func (h *Handler) UpdateAuthor(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	a, err := h.service.UpdateAuthor(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, a.ToResponse())
}

// DeleteAuthor - DELETE /api/v1/authors/:id
func (h *Handler) DeleteAuthor(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.DeleteAuthor(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error) {
	response.DomainError(c, err, model.ToHTTPStatus, model.ToErrorCode)
}
