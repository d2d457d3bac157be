package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"
	"library-backend/internal/shared/utils"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the book endpoints on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	books.GET("", h.ListBooks)
	books.POST("", h.CreateBook)
	books.GET("/:id", h.GetBook)
	books.PUT("/:id", h.UpdateBook)
	books.DELETE("/:id", h.DeleteBook)
}

// ListBooks - GET /api/v1/books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, model.ToResponses(books), &response.Meta{Total: len(books)})
}

// GetBook - GET /api/v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b.ToResponse())
}

// CreateBook - POST /api/v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	b, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b.ToResponse())
}

// UpdateBook - PUT /api/v1/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	b, err := h.service.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b.ToResponse())
}

// DeleteBook - DELETE /api/v1/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error) {
	response.DomainError(c, err, model.ToHTTPStatus, model.ToErrorCode)
}
