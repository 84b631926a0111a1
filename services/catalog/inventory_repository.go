package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InventoryRepository define a interface para operações de banco de dados de inventário
type InventoryRepository interface {
	Create(ctx context.Context, productID string, quantity int) (*Inventory, error)
	FindByID(ctx context.Context, id string) (*Inventory, error)
	FindByProductID(ctx context.Context, productID string) (*Inventory, error)
	FindAll(ctx context.Context) ([]*Inventory, error)
	// Update altera a quantidade (nil mantém a atual) e sempre renova updated_at
	Update(ctx context.Context, id string, quantity *int) (*Inventory, error)
	// Delete remove o estoque e retorna o product_id a que pertencia
	Delete(ctx context.Context, id string) (string, error)
}

// PostgresInventoryRepository implementa InventoryRepository usando PostgreSQL
type PostgresInventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository cria uma nova instância de PostgresInventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) InventoryRepository {
	return &PostgresInventoryRepository{
		db: db,
	}
}

// Create insere um estoque avulso
func (r *PostgresInventoryRepository) Create(ctx context.Context, productID string, quantity int) (*Inventory, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO inventory (id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, product_id, quantity, updated_at
	`, uuid.New().String(), productID, quantity)

	inventory, err := scanInventory(row)
	if err != nil {
		switch pgErrorCode(err) {
		case pgForeignKeyViolation:
			return nil, ErrProductNotFound
		case pgUniqueViolation:
			return nil, ErrInventoryAlreadyExists
		}
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}

	return inventory, nil
}

// FindByID busca o estoque pelo ID
func (r *PostgresInventoryRepository) FindByID(ctx context.Context, id string) (*Inventory, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, product_id, quantity, updated_at
		FROM inventory
		WHERE id = $1
	`, id)

	inventory, err := scanInventory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	return inventory, nil
}

// FindByProductID busca o estoque de um produto
func (r *PostgresInventoryRepository) FindByProductID(ctx context.Context, productID string) (*Inventory, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, product_id, quantity, updated_at
		FROM inventory
		WHERE product_id = $1
	`, productID)

	inventory, err := scanInventory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductInventoryNotFound
		}
		return nil, fmt.Errorf("failed to get inventory by product: %w", err)
	}

	return inventory, nil
}

// FindAll lista todos os estoques
func (r *PostgresInventoryRepository) FindAll(ctx context.Context) ([]*Inventory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, quantity, updated_at
		FROM inventory
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventories: %w", err)
	}
	defer rows.Close()

	inventories := make([]*Inventory, 0)
	for rows.Next() {
		inventory, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory: %w", err)
		}
		inventories = append(inventories, inventory)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventories: %w", err)
	}

	return inventories, nil
}

// Update altera a quantidade; COALESCE mantém o valor atual quando quantity é nil
func (r *PostgresInventoryRepository) Update(ctx context.Context, id string, quantity *int) (*Inventory, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE inventory
		SET quantity = COALESCE($1, quantity),
		    updated_at = NOW()
		WHERE id = $2
		RETURNING id, product_id, quantity, updated_at
	`, quantity, id)

	inventory, err := scanInventory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}

	return inventory, nil
}

// Delete remove um estoque pelo ID
func (r *PostgresInventoryRepository) Delete(ctx context.Context, id string) (string, error) {
	var productID string
	err := r.db.QueryRow(ctx, `
		DELETE FROM inventory
		WHERE id = $1
		RETURNING product_id
	`, id).Scan(&productID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrInventoryNotFound
		}
		return "", fmt.Errorf("failed to delete inventory: %w", err)
	}

	return productID, nil
}

func scanInventory(row rowScanner) (*Inventory, error) {
	var inventory Inventory
	if err := row.Scan(
		&inventory.ID,
		&inventory.ProductID,
		&inventory.Quantity,
		&inventory.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &inventory, nil
}
