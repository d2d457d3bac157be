package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/library/model"
	"library-backend/internal/domains/library/service"
	"library-backend/internal/shared/response"
	"library-backend/internal/shared/utils"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the library endpoints on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	libraries := rg.Group("/libraries")
	libraries.GET("", h.ListLibraries)
	libraries.POST("", h.CreateLibrary)
	libraries.GET("/:id", h.GetLibrary)
	libraries.PUT("/:id", h.UpdateLibrary)
	libraries.DELETE("/:id", h.DeleteLibrary)
	libraries.GET("/:id/holdings", h.GetHoldings)
	libraries.POST("/:id/books/:bookId", h.AddBook)
	libraries.DELETE("/:id/books/:bookId", h.RemoveBook)
}

// ListLibraries - GET /api/v1/libraries
func (h *Handler) ListLibraries(c *gin.Context) {
	libraries, err := h.service.ListLibraries(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, model.ToResponses(libraries), &response.Meta{Total: len(libraries)})
}

// GetLibrary - GET /api/v1/libraries/:id
func (h *Handler) GetLibrary(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	l, err := h.service.GetLibrary(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, l.ToResponse())
}

// GetHoldings - GET /api/v1/libraries/:id/holdings
func (h *Handler) GetHoldings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	l, err := h.service.GetLibraryHoldings(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, l.ToResponse())
}

// CreateLibrary - POST /api/v1/libraries
func (h *Handler) CreateLibrary(c *gin.Context) {
	var req model.CreateLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	l, err := h.service.CreateLibrary(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, l.ToResponse())
}

// UpdateLibrary - PUT /api/v1/libraries/:id
func (h *Handler) UpdateLibrary(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	l, err := h.service.UpdateLibrary(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, l.ToResponse())
}

// DeleteLibrary - DELETE /api/v1/libraries/:id
func (h *Handler) DeleteLibrary(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteLibrary(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddBook - POST /api/v1/libraries/:id/books/:bookId
func (h *Handler) AddBook(c *gin.Context) {
	libraryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseID(c, "bookId")
	if !ok {
		return
	}

	l, err := h.service.AddBook(c.Request.Context(), libraryID, bookID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, l.ToResponse())
}

// RemoveBook - DELETE /api/v1/libraries/:id/books/:bookId
func (h *Handler) RemoveBook(c *gin.Context) {
	libraryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseID(c, "bookId")
	if !ok {
		return
	}

	if err := h.service.RemoveBook(c.Request.Context(), libraryID, bookID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := utils.ParseID(c.Param(param))
	if err != nil {
		response.BadRequest(c, err.Error())
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	response.DomainError(c, err, model.ToHTTPStatus, model.ToErrorCode)
}
