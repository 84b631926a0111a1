package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// InventoryHandler contém os handlers HTTP de inventário
type InventoryHandler struct {
	useCase InventoryUseCaseInterface
}

// NewInventoryHandler cria uma nova instância de InventoryHandler
func NewInventoryHandler(useCase InventoryUseCaseInterface) *InventoryHandler {
	return &InventoryHandler{
		useCase: useCase,
	}
}

// ListInventories GET /inventory, ou GET /inventory?productId=... para o estoque de um produto
func (h *InventoryHandler) ListInventories(c *gin.Context) {
	if productID := c.Query("productId"); productID != "" {
		inventory, err := h.useCase.GetInventoryByProductID(c.Request.Context(), productID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, inventory, "")
		return
	}

	inventories, err := h.useCase.ListInventories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, inventories, "", map[string]any{"count": len(inventories)})
}

// CreateInventory POST /inventory
func (h *InventoryHandler) CreateInventory(c *gin.Context) {
	var req CreateInventoryRequest
	if !bindJSON(c, &req) {
		return
	}

	inventory, err := h.useCase.CreateInventory(c.Request.Context(), *req.ProductID, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, inventory, "")
}

// GetInventory GET /inventory/:id
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	inventory, err := h.useCase.GetInventoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, inventory, "")
}

// UpdateInventory PUT /inventory/:id
func (h *InventoryHandler) UpdateInventory(c *gin.Context) {
	var req UpdateInventoryRequest
	if !bindJSON(c, &req) {
		return
	}

	inventory, err := h.useCase.UpdateInventory(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, inventory, "Inventory updated successfully")
}

// DeleteInventory DELETE /inventory/:id
func (h *InventoryHandler) DeleteInventory(c *gin.Context) {
	if err := h.useCase.DeleteInventory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondNoContent(c)
}

// RegisterRoutes registra as rotas de inventário no grupo informado
func (h *InventoryHandler) RegisterRoutes(r gin.IRouter) {
	inventory := r.Group("/inventory")
	inventory.GET("", h.ListInventories)
	inventory.POST("", h.CreateInventory)
	inventory.GET("/:id", h.GetInventory)
	inventory.PUT("/:id", h.UpdateInventory)
	inventory.DELETE("/:id", h.DeleteInventory)
}

// Pinger é satisfeito por *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusHandler expõe /health e /api/db-test
type StatusHandler struct {
	db          Pinger
	pingTimeout time.Duration
}

func NewStatusHandler(db Pinger) *StatusHandler {
	return &StatusHandler{
		db:          db,
		pingTimeout: 3 * time.Second,
	}
}

// Health GET /health
func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// DBTest GET /api/db-test; responde 200 mesmo com o banco fora do ar
func (h *StatusHandler) DBTest(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		log.Printf("❌ [DB TEST] Database unreachable: %v", err)
		respondOK(c, gin.H{"connected": false}, "Database connection failed")
		return
	}

	respondOK(c, gin.H{"connected": true}, "Database connection successful")
}
