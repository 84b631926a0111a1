package main

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto do catálogo
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
	Inventory   *Inventory      `json:"inventory,omitempty"`
}

// Inventory representa o estoque (1:1) de um produto
type Inventory struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductDraft contém os dados validados para criar um produto e seu estoque inicial
type ProductDraft struct {
	Name            string
	Description     *string
	Price           decimal.Decimal
	InitialQuantity int
}

// CreateProductRequest representa a requisição para criar um produto.
// Ponteiros diferenciam campo ausente de valor zero.
type CreateProductRequest struct {
	Name            *string          `json:"name" binding:"required,max=255"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price" binding:"required"`
	InitialQuantity *int             `json:"initialQuantity" binding:"required"`
}

// Draft converte a requisição já validada pelo binding
func (r CreateProductRequest) Draft() ProductDraft {
	draft := ProductDraft{Description: r.Description}
	if r.Name != nil {
		draft.Name = *r.Name
	}
	if r.Price != nil {
		draft.Price = *r.Price
	}
	if r.InitialQuantity != nil {
		draft.InitialQuantity = *r.InitialQuantity
	}
	return draft
}

// OptionalString diferencia campo ausente (Set=false) de null explícito (Set=true, Value=nil)
type OptionalString struct {
	Set   bool
	Value *string
}

// NewOptionalString cria um valor presente; nil representa null
func NewOptionalString(value *string) OptionalString {
	return OptionalString{Set: true, Value: value}
}

// UnmarshalJSON só é chamado quando a chave existe no corpo
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}

// UpdateProductRequest representa uma atualização parcial de produto
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=255"`
	Description OptionalString   `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// IsEmpty indica que nenhum campo foi enviado
func (r UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && !r.Description.Set && r.Price == nil
}

// UpdateProductInventoryRequest é o corpo do PATCH /products/:id
type UpdateProductInventoryRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type BulkCreateProductsRequest struct {
	Products []CreateProductRequest `json:"products" binding:"required,dive"`
}

type BulkDeleteProductsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// CreateInventoryRequest representa a requisição para criar um estoque avulso
type CreateInventoryRequest struct {
	ProductID *string `json:"productId" binding:"required"`
	Quantity  *int    `json:"quantity" binding:"required"`
}

// UpdateInventoryRequest representa a atualização de um estoque; quantity é opcional
type UpdateInventoryRequest struct {
	Quantity *int `json:"quantity"`
}

// Quantity retorna a quantidade em estoque, ou 0 quando não há registro de inventário
func (p *Product) Quantity() int {
	if p.Inventory == nil {
		return 0
	}
	return p.Inventory.Quantity
}
