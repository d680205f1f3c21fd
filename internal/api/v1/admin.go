package v1

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jonylazarte/ecommerce-page/internal/model"
	"github.com/jonylazarte/ecommerce-page/internal/service"
	"github.com/jonylazarte/ecommerce-page/pkg/middleware"
)

type AdminHandler struct {
	users     service.UserService
	catalog   service.CatalogService
	orders    service.OrderService
	settings  service.SettingsService
	dashboard service.DashboardService
}

func NewAdminHandler(users service.UserService, catalog service.CatalogService,
	orders service.OrderService, settings service.SettingsService,
	dashboard service.DashboardService) *AdminHandler {
	return &AdminHandler{
		users:     users,
		catalog:   catalog,
		orders:    orders,
		settings:  settings,
		dashboard: dashboard,
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		failErr(c, "Failed to load dashboard", err)
		return
	}
	respond(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		failErr(c, "Failed to list users", err)
		return
	}
	respond(c, http.StatusOK, "Users retrieved successfully", users)
}

type updateRoleRequest struct {
	Role model.Role `json:"role" binding:"required"`
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request parameters", gin.H{
			"validation_error": err.Error(),
		})
		return
	}

	user, err := h.users.UpdateRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		failErr(c, "Failed to update role", err)
		return
	}
	respond(c, http.StatusOK, "Role updated successfully", user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID := c.GetString(middleware.ContextUserID)
	if err := h.users.Delete(c.Request.Context(), actorID, c.Param("id")); err != nil {
		failErr(c, "Failed to delete user", err)
		return
	}
	respond(c, http.StatusOK, "User deleted successfully", nil)
}

type createProductRequest struct {
	Name        string          `json:"name" binding:"required,min=2"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Images      []string        `json:"images"`
	Category    string          `json:"category" binding:"required"`
	Brand       string          `json:"brand"`
	Stock       int             `json:"stock" binding:"min=0"`
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request parameters", gin.H{
			"validation_error": err.Error(),
		})
		return
	}
	if req.Price.Sign() <= 0 {
		fail(c, http.StatusBadRequest, "Price must be positive", nil)
		return
	}

	product, err := h.catalog.Create(c.Request.Context(), &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    req.Category,
		Brand:       req.Brand,
		Stock:       req.Stock,
	})
	if err != nil {
		failErr(c, "Failed to create product", err)
		return
	}
	respond(c, http.StatusCreated, "Product created successfully", product)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var update service.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request parameters", gin.H{
			"validation_error": err.Error(),
		})
		return
	}
	if update.Price != nil && update.Price.Sign() <= 0 {
		fail(c, http.StatusBadRequest, "Price must be positive", nil)
		return
	}

	product, err := h.catalog.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		failErr(c, "Failed to update product", err)
		return
	}
	respond(c, http.StatusOK, "Product updated successfully", product)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, "Failed to delete product", err)
		return
	}
	respond(c, http.StatusOK, "Product deleted successfully", nil)
}

// ImportProducts accepts a multipart upload with an Excel workbook under the
// "file" field and bulk-creates products from its Products sheet.
func (h *AdminHandler) ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "No file uploaded", gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "Failed to open uploaded file", gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	result, err := h.catalog.ImportExcel(c.Request.Context(), file)
	if err != nil {
		failErr(c, "Import failed", err)
		return
	}
	respond(c, http.StatusOK, "Products imported successfully", result)
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		failErr(c, "Failed to list orders", err)
		return
	}
	respond(c, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, "Failed to get order", err)
		return
	}
	respond(c, http.StatusOK, "Order retrieved successfully", order)
}

type updateOrderRequest struct {
	Status        *model.OrderStatus   `json:"status"`
	PaymentStatus *model.PaymentStatus `json:"payment_status"`
}

func (h *AdminHandler) UpdateOrder(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request parameters", gin.H{
			"validation_error": err.Error(),
		})
		return
	}

	order, err := h.orders.AdminUpdate(c.Request.Context(), c.Param("id"), req.Status, req.PaymentStatus)
	if err != nil {
		failErr(c, "Failed to update order", err)
		return
	}
	respond(c, http.StatusOK, "Order updated successfully", order)
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	sections, err := h.settings.All(c.Request.Context())
	if err != nil {
		failErr(c, "Failed to load settings", err)
		return
	}
	respond(c, http.StatusOK, "Settings retrieved successfully", sections)
}

func (h *AdminHandler) SaveSettings(c *gin.Context) {
	var sections map[string]json.RawMessage
	if err := c.ShouldBindJSON(&sections); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request parameters", gin.H{
			"validation_error": err.Error(),
		})
		return
	}
	if len(sections) == 0 {
		fail(c, http.StatusBadRequest, "No settings provided", nil)
		return
	}

	if err := h.settings.Save(c.Request.Context(), sections); err != nil {
		failErr(c, "Failed to save settings", err)
		return
	}
	respond(c, http.StatusOK, "Settings saved successfully", nil)
}
