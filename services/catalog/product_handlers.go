package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProductHandler contém os handlers HTTP de produtos
type ProductHandler struct {
	useCase ProductUseCaseInterface
}

// NewProductHandler cria uma nova instância de ProductHandler
func NewProductHandler(useCase ProductUseCaseInterface) *ProductHandler {
	return &ProductHandler{
		useCase: useCase,
	}
}

// ListProducts GET /products com filtros opcionais na query string
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var filter ProductFilter
	if !bindQuery(c, &filter) {
		return
	}

	products, err := h.useCase.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, products, "", map[string]any{"count": len(products)})
}

// CreateProduct POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.useCase.CreateProduct(c.Request.Context(), req.Draft())
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, product, "")
}

// GetProduct GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.useCase.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, product, "")
}

// UpdateProduct PUT /products/:id (atualização parcial)
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.useCase.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, product, "Product updated successfully")
}

// UpdateProductInventory PATCH /products/:id
func (h *ProductHandler) UpdateProductInventory(c *gin.Context) {
	var req UpdateProductInventoryRequest
	if !bindJSON(c, &req) {
		return
	}

	inventory, err := h.useCase.UpdateInventoryForProduct(c.Request.Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, inventory, "Inventory updated successfully")
}

// DeleteProduct DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.useCase.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondNoContent(c)
}

// BulkCreateProducts POST /products/bulk
func (h *ProductHandler) BulkCreateProducts(c *gin.Context) {
	var req BulkCreateProductsRequest
	if !bindJSON(c, &req) {
		return
	}

	drafts := make([]ProductDraft, 0, len(req.Products))
	for _, p := range req.Products {
		drafts = append(drafts, p.Draft())
	}

	products, err := h.useCase.BulkCreateProducts(c.Request.Context(), drafts)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, products, "Products created successfully")
}

// BulkDeleteProducts DELETE /products/bulk
func (h *ProductHandler) BulkDeleteProducts(c *gin.Context) {
	var req BulkDeleteProductsRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.useCase.BulkDeleteProducts(c.Request.Context(), req.IDs); err != nil {
		respondError(c, err)
		return
	}

	respondNoContent(c)
}

// RegisterRoutes registra as rotas de produto no grupo informado
func (h *ProductHandler) RegisterRoutes(r gin.IRouter) {
	products := r.Group("/products")
	products.GET("", h.ListProducts)
	products.POST("", h.CreateProduct)
	products.POST("/bulk", h.BulkCreateProducts)
	products.DELETE("/bulk", h.BulkDeleteProducts)
	products.GET("/:id", h.GetProduct)
	products.PUT("/:id", h.UpdateProduct)
	products.PATCH("/:id", h.UpdateProductInventory)
	products.DELETE("/:id", h.DeleteProduct)
}
