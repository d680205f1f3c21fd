package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonylazarte/ecommerce-page/internal/service"
)

type ProductHandler struct {
	catalog service.CatalogService
}

func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		failErr(c, "Failed to list products", err)
		return
	}
	respond(c, http.StatusOK, "Products retrieved successfully", products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, "Failed to get product", err)
		return
	}
	respond(c, http.StatusOK, "Product retrieved successfully", product)
}
