package main

import (
	"context"
	"log"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InventoryUseCaseInterface define a interface usada pelos handlers de inventário
type InventoryUseCaseInterface interface {
	CreateInventory(ctx context.Context, productID string, quantity int) (*Inventory, error)
	GetInventoryByID(ctx context.Context, id string) (*Inventory, error)
	GetInventoryByProductID(ctx context.Context, productID string) (*Inventory, error)
	ListInventories(ctx context.Context) ([]*Inventory, error)
	UpdateInventory(ctx context.Context, id string, quantity *int) (*Inventory, error)
	DeleteInventory(ctx context.Context, id string) error
}

// InventoryUseCase contém a lógica de negócio do inventário avulso
type InventoryUseCase struct {
	repository InventoryRepository
	cache      ProductCache
	tracer     trace.Tracer
	metrics    *catalogMetrics
}

// NewInventoryUseCase cria uma nova instância de InventoryUseCase
func NewInventoryUseCase(
	repository InventoryRepository,
	cache ProductCache,
	tracer trace.Tracer,
	metrics *catalogMetrics,
) *InventoryUseCase {
	return &InventoryUseCase{
		repository: repository,
		cache:      cache,
		tracer:     tracer,
		metrics:    metrics,
	}
}

// CreateInventory cria um estoque para um produto existente
func (uc *InventoryUseCase) CreateInventory(ctx context.Context, productID string, quantity int) (*Inventory, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.create", trace.WithAttributes(
		attribute.String("product_id", productID),
		attribute.Int("quantity", quantity),
	))
	defer span.End()

	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if err := validateQuantityRange(quantity); err != nil {
		return nil, err
	}
	productID, ok := canonicalID(productID)
	if !ok {
		return nil, ErrProductNotFound
	}

	inventory, err := uc.repository.Create(ctx, productID, quantity)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	uc.invalidate(ctx, inventory.ProductID)
	log.Printf("✅ [CREATE INVENTORY] InventoryID=%s ProductID=%s", inventory.ID, inventory.ProductID)
	return inventory, nil
}

func (uc *InventoryUseCase) GetInventoryByID(ctx context.Context, id string) (*Inventory, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.get", trace.WithAttributes(attribute.String("inventory_id", id)))
	defer span.End()

	id, ok := canonicalID(id)
	if !ok {
		return nil, ErrInventoryNotFound
	}

	inventory, err := uc.repository.FindByID(ctx, id)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	return inventory, nil
}

func (uc *InventoryUseCase) GetInventoryByProductID(ctx context.Context, productID string) (*Inventory, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.get_by_product", trace.WithAttributes(attribute.String("product_id", productID)))
	defer span.End()

	productID, ok := canonicalID(productID)
	if !ok {
		return nil, ErrProductInventoryNotFound
	}

	inventory, err := uc.repository.FindByProductID(ctx, productID)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	return inventory, nil
}

func (uc *InventoryUseCase) ListInventories(ctx context.Context) ([]*Inventory, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.list")
	defer span.End()

	inventories, err := uc.repository.FindAll(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	return inventories, nil
}

// UpdateInventory altera a quantidade (opcional); updated_at é sempre renovado
func (uc *InventoryUseCase) UpdateInventory(ctx context.Context, id string, quantity *int) (*Inventory, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.update", trace.WithAttributes(attribute.String("inventory_id", id)))
	defer span.End()

	if quantity != nil {
		if *quantity < 0 {
			return nil, ErrNegativeQuantity
		}
		if err := validateQuantityRange(*quantity); err != nil {
			return nil, err
		}
	}
	id, ok := canonicalID(id)
	if !ok {
		return nil, ErrInventoryNotFound
	}

	inventory, err := uc.repository.Update(ctx, id, quantity)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	uc.invalidate(ctx, inventory.ProductID)
	uc.metrics.inventoryUpdates.Add(ctx, 1)

	log.Printf("✅ [UPDATE INVENTORY] InventoryID=%s Quantity=%d", inventory.ID, inventory.Quantity)
	return inventory, nil
}

// DeleteInventory remove apenas o estoque; o produto continua existindo sem inventário
func (uc *InventoryUseCase) DeleteInventory(ctx context.Context, id string) error {
	ctx, span := uc.tracer.Start(ctx, "inventory.delete", trace.WithAttributes(attribute.String("inventory_id", id)))
	defer span.End()

	id, ok := canonicalID(id)
	if !ok {
		return ErrInventoryNotFound
	}

	productID, err := uc.repository.Delete(ctx, id)
	if err != nil {
		recordSpanError(span, err)
		return err
	}

	uc.invalidate(ctx, productID)
	log.Printf("✅ [DELETE INVENTORY] InventoryID=%s ProductID=%s", id, productID)
	return nil
}

func (uc *InventoryUseCase) invalidate(ctx context.Context, productIDs ...string) {
	if err := uc.cache.Invalidate(ctx, productIDs...); err != nil {
		log.Printf("ℹ️ [CACHE] Failed to invalidate %v: %v", productIDs, err)
	}
}
