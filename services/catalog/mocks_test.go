package main

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// MockProductRepository simula o repositório de produtos
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, draft ProductDraft) (*Product, error) {
	args := m.Called(ctx, draft)
	return productArg(args, 0), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	return productArg(args, 0), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]*Product, error) {
	args := m.Called(ctx)
	return productsArg(args, 0), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id string, changes UpdateProductRequest) (*Product, error) {
	args := m.Called(ctx, id, changes)
	return productArg(args, 0), args.Error(1)
}

func (m *MockProductRepository) UpdateInventory(ctx context.Context, productID string, quantity int) (*Inventory, error) {
	args := m.Called(ctx, productID, quantity)
	return inventoryArg(args, 0), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) BulkCreate(ctx context.Context, drafts []ProductDraft) ([]*Product, error) {
	args := m.Called(ctx, drafts)
	return productsArg(args, 0), args.Error(1)
}

func (m *MockProductRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockInventoryRepository simula o repositório de inventário
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Create(ctx context.Context, productID string, quantity int) (*Inventory, error) {
	args := m.Called(ctx, productID, quantity)
	return inventoryArg(args, 0), args.Error(1)
}

func (m *MockInventoryRepository) FindByID(ctx context.Context, id string) (*Inventory, error) {
	args := m.Called(ctx, id)
	return inventoryArg(args, 0), args.Error(1)
}

func (m *MockInventoryRepository) FindByProductID(ctx context.Context, productID string) (*Inventory, error) {
	args := m.Called(ctx, productID)
	return inventoryArg(args, 0), args.Error(1)
}

func (m *MockInventoryRepository) FindAll(ctx context.Context) ([]*Inventory, error) {
	args := m.Called(ctx)
	return inventoriesArg(args, 0), args.Error(1)
}

func (m *MockInventoryRepository) Update(ctx context.Context, id string, quantity *int) (*Inventory, error) {
	args := m.Called(ctx, id, quantity)
	return inventoryArg(args, 0), args.Error(1)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// MockProductCache simula o cache de produtos
type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) GetProduct(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	return productArg(args, 0), args.Error(1)
}

func (m *MockProductCache) SetProduct(ctx context.Context, product *Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductCache) GetProductList(ctx context.Context) ([]*Product, error) {
	args := m.Called(ctx)
	return productsArg(args, 0), args.Error(1)
}

func (m *MockProductCache) SetProductList(ctx context.Context, products []*Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockProductCache) Invalidate(ctx context.Context, ids ...string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// memoryProductCache guarda entradas por chave exata, como o Redis
type memoryProductCache struct {
	mu       sync.Mutex
	products map[string]*Product
	list     []*Product
}

func newMemoryProductCache() *memoryProductCache {
	return &memoryProductCache{products: make(map[string]*Product)}
}

func (c *memoryProductCache) GetProduct(_ context.Context, id string) (*Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products[id], nil
}

func (c *memoryProductCache) SetProduct(_ context.Context, product *Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.ID] = product
	return nil
}

func (c *memoryProductCache) GetProductList(context.Context) ([]*Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list, nil
}

func (c *memoryProductCache) SetProductList(_ context.Context, products []*Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = products
	return nil
}

func (c *memoryProductCache) Invalidate(_ context.Context, ids ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = nil
	for _, id := range ids {
		delete(c.products, id)
	}
	return nil
}

// MockProductUseCase simula a camada de casos de uso nos testes de handler
type MockProductUseCase struct {
	mock.Mock
}

func (m *MockProductUseCase) CreateProduct(ctx context.Context, draft ProductDraft) (*Product, error) {
	args := m.Called(ctx, draft)
	return productArg(args, 0), args.Error(1)
}

func (m *MockProductUseCase) GetProduct(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	return productArg(args, 0), args.Error(1)
}

func (m *MockProductUseCase) ListProducts(ctx context.Context, filter ProductFilter) ([]*Product, error) {
	args := m.Called(ctx, filter)
	return productsArg(args, 0), args.Error(1)
}

func (m *MockProductUseCase) UpdateProduct(ctx context.Context, id string, changes UpdateProductRequest) (*Product, error) {
	args := m.Called(ctx, id, changes)
	return productArg(args, 0), args.Error(1)
}

func (m *MockProductUseCase) UpdateInventoryForProduct(ctx context.Context, id string, quantity int) (*Inventory, error) {
	args := m.Called(ctx, id, quantity)
	return inventoryArg(args, 0), args.Error(1)
}

func (m *MockProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductUseCase) BulkCreateProducts(ctx context.Context, drafts []ProductDraft) ([]*Product, error) {
	args := m.Called(ctx, drafts)
	return productsArg(args, 0), args.Error(1)
}

func (m *MockProductUseCase) BulkDeleteProducts(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// MockInventoryUseCase simula os casos de uso de inventário
type MockInventoryUseCase struct {
	mock.Mock
}

func (m *MockInventoryUseCase) CreateInventory(ctx context.Context, productID string, quantity int) (*Inventory, error) {
	args := m.Called(ctx, productID, quantity)
	return inventoryArg(args, 0), args.Error(1)
}

func (m *MockInventoryUseCase) GetInventoryByID(ctx context.Context, id string) (*Inventory, error) {
	args := m.Called(ctx, id)
	return inventoryArg(args, 0), args.Error(1)
}

func (m *MockInventoryUseCase) GetInventoryByProductID(ctx context.Context, productID string) (*Inventory, error) {
	args := m.Called(ctx, productID)
	return inventoryArg(args, 0), args.Error(1)
}

func (m *MockInventoryUseCase) ListInventories(ctx context.Context) ([]*Inventory, error) {
	args := m.Called(ctx)
	return inventoriesArg(args, 0), args.Error(1)
}

func (m *MockInventoryUseCase) UpdateInventory(ctx context.Context, id string, quantity *int) (*Inventory, error) {
	args := m.Called(ctx, id, quantity)
	return inventoryArg(args, 0), args.Error(1)
}

func (m *MockInventoryUseCase) DeleteInventory(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPinger simula o pool no /api/db-test
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func productArg(args mock.Arguments, i int) *Product {
	p, _ := args.Get(i).(*Product)
	return p
}

func productsArg(args mock.Arguments, i int) []*Product {
	p, _ := args.Get(i).([]*Product)
	return p
}

func inventoryArg(args mock.Arguments, i int) *Inventory {
	inv, _ := args.Get(i).(*Inventory)
	return inv
}

func inventoriesArg(args mock.Arguments, i int) []*Inventory {
	inv, _ := args.Get(i).([]*Inventory)
	return inv
}

func testMetrics(t *testing.T) *catalogMetrics {
	t.Helper()
	m, err := newCatalogMetrics(metricnoop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	return m
}

func newTestProductUseCase(t *testing.T, repo ProductRepository, cache ProductCache) *ProductUseCase {
	return NewProductUseCase(repo, cache, tracenoop.NewTracerProvider().Tracer("test"), testMetrics(t))
}

func newTestInventoryUseCase(t *testing.T, repo InventoryRepository, cache ProductCache) *InventoryUseCase {
	return NewInventoryUseCase(repo, cache, tracenoop.NewTracerProvider().Tracer("test"), testMetrics(t))
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
