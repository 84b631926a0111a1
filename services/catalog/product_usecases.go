package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductUseCaseInterface define a interface usada pelos handlers de produto
type ProductUseCaseInterface interface {
	CreateProduct(ctx context.Context, draft ProductDraft) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, changes UpdateProductRequest) (*Product, error)
	UpdateInventoryForProduct(ctx context.Context, id string, quantity int) (*Inventory, error)
	DeleteProduct(ctx context.Context, id string) error
	BulkCreateProducts(ctx context.Context, drafts []ProductDraft) ([]*Product, error)
	BulkDeleteProducts(ctx context.Context, ids []string) error
}

// ProductUseCase contém a lógica de negócio dos produtos
type ProductUseCase struct {
	repository ProductRepository
	cache      ProductCache
	tracer     trace.Tracer
	metrics    *catalogMetrics
}

// NewProductUseCase cria uma nova instância de ProductUseCase
func NewProductUseCase(
	repository ProductRepository,
	cache ProductCache,
	tracer trace.Tracer,
	metrics *catalogMetrics,
) *ProductUseCase {
	return &ProductUseCase{
		repository: repository,
		cache:      cache,
		tracer:     tracer,
		metrics:    metrics,
	}
}

// CreateProduct valida preço/quantidade e cria produto + estoque atomicamente
func (uc *ProductUseCase) CreateProduct(ctx context.Context, draft ProductDraft) (*Product, error) {
	ctx, span := uc.tracer.Start(ctx, "product.create")
	defer span.End()

	if err := validateDraft(draft); err != nil {
		span.RecordError(err)
		return nil, err
	}

	product, err := uc.repository.Create(ctx, draft)
	if err != nil {
		log.Printf("❌ [CREATE PRODUCT] Failed: %v", err)
		recordSpanError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("product_id", product.ID))
	uc.invalidate(ctx)
	uc.metrics.productsCreated.Add(ctx, 1)

	log.Printf("✅ [CREATE PRODUCT] ProductID=%s Quantity=%d", product.ID, draft.InitialQuantity)
	return product, nil
}

// GetProduct busca um produto, primeiro no cache
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*Product, error) {
	ctx, span := uc.tracer.Start(ctx, "product.get", trace.WithAttributes(attribute.String("product_id", id)))
	defer span.End()

	id, ok := canonicalID(id)
	if !ok {
		return nil, ErrProductNotFound
	}

	if cached, err := uc.cache.GetProduct(ctx, id); err != nil {
		log.Printf("ℹ️ [CACHE] Falling back to DB for ProductID=%s: %v", id, err)
	} else if cached != nil {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return cached, nil
	}

	product, err := uc.repository.FindByID(ctx, id)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	if err := uc.cache.SetProduct(ctx, product); err != nil {
		log.Printf("ℹ️ [CACHE] Failed to cache ProductID=%s: %v", id, err)
	}

	return product, nil
}

// ListProducts lista os produtos e aplica filtro/ordenação
func (uc *ProductUseCase) ListProducts(ctx context.Context, filter ProductFilter) ([]*Product, error) {
	ctx, span := uc.tracer.Start(ctx, "product.list")
	defer span.End()

	products, err := uc.cache.GetProductList(ctx)
	if err != nil {
		log.Printf("ℹ️ [CACHE] Falling back to DB for product list: %v", err)
	}

	if products == nil {
		products, err = uc.repository.FindAll(ctx)
		if err != nil {
			recordSpanError(span, err)
			return nil, err
		}
		if err := uc.cache.SetProductList(ctx, products); err != nil {
			log.Printf("ℹ️ [CACHE] Failed to cache product list: %v", err)
		}
	} else {
		span.SetAttributes(attribute.Bool("cache_hit", true))
	}

	result := filter.Apply(products)
	span.SetAttributes(attribute.Int("count", len(result)))
	return result, nil
}

// UpdateProduct aplica uma atualização parcial; payload vazio não escreve nada
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, changes UpdateProductRequest) (*Product, error) {
	ctx, span := uc.tracer.Start(ctx, "product.update", trace.WithAttributes(attribute.String("product_id", id)))
	defer span.End()

	id, ok := canonicalID(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	if changes.Name != nil {
		if err := validateName(*changes.Name); err != nil {
			return nil, err
		}
	}
	if changes.Price != nil {
		if changes.Price.IsNegative() {
			return nil, NewValidationError("Price must be non-negative")
		}
		if err := validatePriceRange(*changes.Price); err != nil {
			return nil, err
		}
	}

	product, err := uc.repository.Update(ctx, id, changes)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	if !changes.IsEmpty() {
		uc.invalidate(ctx, id)
		log.Printf("✅ [UPDATE PRODUCT] ProductID=%s", id)
	}

	return product, nil
}

// UpdateInventoryForProduct altera a quantidade em estoque de um produto
func (uc *ProductUseCase) UpdateInventoryForProduct(ctx context.Context, id string, quantity int) (*Inventory, error) {
	ctx, span := uc.tracer.Start(ctx, "product.update_inventory", trace.WithAttributes(
		attribute.String("product_id", id),
		attribute.Int("quantity", quantity),
	))
	defer span.End()

	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if err := validateQuantityRange(quantity); err != nil {
		return nil, err
	}
	id, ok := canonicalID(id)
	if !ok {
		return nil, ErrInventoryNotFound
	}

	inventory, err := uc.repository.UpdateInventory(ctx, id, quantity)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	uc.invalidate(ctx, id)
	uc.metrics.inventoryUpdates.Add(ctx, 1)

	log.Printf("✅ [UPDATE STOCK] ProductID=%s Quantity=%d", id, quantity)
	return inventory, nil
}

// DeleteProduct remove produto e estoque atomicamente
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := uc.tracer.Start(ctx, "product.delete", trace.WithAttributes(attribute.String("product_id", id)))
	defer span.End()

	id, ok := canonicalID(id)
	if !ok {
		return ErrProductNotFound
	}

	if err := uc.repository.Delete(ctx, id); err != nil {
		recordSpanError(span, err)
		return err
	}

	uc.invalidate(ctx, id)
	uc.metrics.productsDeleted.Add(ctx, 1)

	log.Printf("✅ [DELETE PRODUCT] ProductID=%s", id)
	return nil
}

// BulkCreateProducts valida todos os itens antes de qualquer escrita
func (uc *ProductUseCase) BulkCreateProducts(ctx context.Context, drafts []ProductDraft) ([]*Product, error) {
	ctx, span := uc.tracer.Start(ctx, "product.bulk_create", trace.WithAttributes(attribute.Int("count", len(drafts))))
	defer span.End()

	if len(drafts) == 0 {
		return nil, ErrNoProductsProvided
	}

	for i, draft := range drafts {
		if err := validateDraft(draft); err != nil {
			span.RecordError(err)
			return nil, NewValidationError(fmt.Sprintf("Invalid product at index %d: %s", i, err.Error()))
		}
	}

	products, err := uc.repository.BulkCreate(ctx, drafts)
	if err != nil {
		log.Printf("❌ [BULK CREATE] Rolled back %d products: %v", len(drafts), err)
		recordSpanError(span, err)
		return nil, err
	}

	uc.invalidate(ctx)
	uc.metrics.productsCreated.Add(ctx, int64(len(products)))

	log.Printf("✅ [BULK CREATE] Created %d products", len(products))
	return products, nil
}

// BulkDeleteProducts remove vários produtos e seus estoques em uma transação
func (uc *ProductUseCase) BulkDeleteProducts(ctx context.Context, ids []string) error {
	ctx, span := uc.tracer.Start(ctx, "product.bulk_delete", trace.WithAttributes(attribute.Int("count", len(ids))))
	defer span.End()

	if len(ids) == 0 {
		return ErrNoIDsProvided
	}

	canonical := make([]string, 0, len(ids))
	for _, id := range ids {
		cid, ok := canonicalID(id)
		if !ok {
			return NewValidationError(fmt.Sprintf("Invalid product ID: %s", id))
		}
		canonical = append(canonical, cid)
	}

	deleted, err := uc.repository.BulkDelete(ctx, canonical)
	if err != nil {
		log.Printf("❌ [BULK DELETE] Rolled back: %v", err)
		recordSpanError(span, err)
		return err
	}

	uc.invalidate(ctx, canonical...)
	uc.metrics.productsDeleted.Add(ctx, deleted)

	log.Printf("✅ [BULK DELETE] Deleted %d of %d products", deleted, len(ids))
	return nil
}

// invalidate limpa o cache após escrita; a lista é sempre removida
func (uc *ProductUseCase) invalidate(ctx context.Context, ids ...string) {
	if err := uc.cache.Invalidate(ctx, ids...); err != nil {
		log.Printf("ℹ️ [CACHE] Failed to invalidate %v: %v", ids, err)
	}
}

// Limites das colunas name VARCHAR(255), price DECIMAL(10,2) e quantity INTEGER
const maxNameLength = 255

var maxPrice = decimal.RequireFromString("99999999.99")

func validateDraft(draft ProductDraft) error {
	if err := validateName(draft.Name); err != nil {
		return err
	}
	if draft.Price.IsNegative() || draft.InitialQuantity < 0 {
		return ErrNegativePriceOrQuantity
	}
	if err := validatePriceRange(draft.Price); err != nil {
		return err
	}
	return validateQuantityRange(draft.InitialQuantity)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("Name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return NewValidationError(fmt.Sprintf("Name must be at most %d characters", maxNameLength))
	}
	return nil
}

func validatePriceRange(price decimal.Decimal) error {
	if price.Round(2).GreaterThan(maxPrice) {
		return NewValidationError(fmt.Sprintf("Price must be at most %s", maxPrice.StringFixed(2)))
	}
	return nil
}

func validateQuantityRange(quantity int) error {
	if quantity > math.MaxInt32 {
		return NewValidationError(fmt.Sprintf("Quantity must be at most %d", math.MaxInt32))
	}
	return nil
}

// canonicalID devolve o UUID na forma minúscula com hífens usada no banco e nas chaves do cache
func canonicalID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// recordSpanError marca o span como erro apenas para falhas inesperadas
func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	if !isNotFoundError(err) && !isValidationError(err) {
		span.SetStatus(codes.Error, err.Error())
	}
}
