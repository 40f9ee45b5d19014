package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"b2bportal/internal/pkg/pagination"
	"b2bportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/categories", h.ListCategories)
	v1.GET("/categories/:id/products", h.ListCategoryProducts)
	v1.GET("/products", h.ListProducts)
	v1.GET("/products/:id", h.GetProduct)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load categories")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) ListProducts(c *gin.Context) {
	p := pagination.FromQuery(c)
	categoryID, _ := strconv.ParseInt(c.Query("category_id"), 10, 64)
	search := c.Query("search")

	products, total, err := h.service.ListProducts(c.Request.Context(), categoryID, search, p.PageSize, p.Offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load products")
		return
	}

	response.Paginated(c, http.StatusOK, products, total, p.Page, p.PageSize, pagination.TotalPages(p, total))
}

// ListCategoryProducts is the path-scoped form of the product listing.
func (h *Handler) ListCategoryProducts(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category ID")
		return
	}

	p := pagination.FromQuery(c)
	products, total, err := h.service.ListProducts(c.Request.Context(), categoryID, c.Query("search"), p.PageSize, p.Offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load products")
		return
	}

	response.Paginated(c, http.StatusOK, products, total, p.Page, p.PageSize, pagination.TotalPages(p, total))
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product ID")
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load product")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"product": product})
}
