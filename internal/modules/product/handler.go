package product

import (
	"net/http"
	"strconv"

	"github.com/zakariamagdyz/memorize-api/internal/domain"
	"github.com/zakariamagdyz/memorize-api/internal/middleware"
	"github.com/zakariamagdyz/memorize-api/internal/pkg/apperr"
	"github.com/zakariamagdyz/memorize-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts product CRUD under an already-protected group.
// Writes need the Editor or Admin role; deletes are Admin only.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	products := protected.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)

		editors := products.Group("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleEditor))
		{
			editors.POST("", h.Create)
			editors.PATCH("/:id", h.Update)
		}

		admins := products.Group("", middleware.RequireRoles(domain.RoleAdmin))
		{
			admins.DELETE("/:id", h.Delete)
		}
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	products, info, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"info": info, "results": products})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Wrap(apperr.BadRequest, "Invalid request body", err))
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Wrap(apperr.BadRequest, "Invalid request body", err))
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.Newf(apperr.BadRequest, "Invalid id : %s", c.Param("id"))
	}
	return id, nil
}
