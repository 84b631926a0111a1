package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductRepository define a interface para operações de banco de dados de produtos
type ProductRepository interface {
	// Create insere o produto e seu estoque inicial na mesma transação
	Create(ctx context.Context, draft ProductDraft) (*Product, error)

	// FindByID busca um produto (com estoque, se existir)
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindAll lista todos os produtos (com estoque, se existir)
	FindAll(ctx context.Context) ([]*Product, error)

	// Update altera apenas os campos presentes em changes
	Update(ctx context.Context, id string, changes UpdateProductRequest) (*Product, error)

	// UpdateInventory altera a quantidade em estoque de um produto
	UpdateInventory(ctx context.Context, productID string, quantity int) (*Inventory, error)

	// Delete remove estoque e produto na mesma transação
	Delete(ctx context.Context, id string) error

	// BulkCreate insere vários produtos e estoques em uma única transação
	BulkCreate(ctx context.Context, drafts []ProductDraft) ([]*Product, error)

	// BulkDelete remove os estoques e depois os produtos em uma única transação
	BulkDelete(ctx context.Context, ids []string) (int64, error)
}

// rowScanner cobre pgx.Row e pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

const selectProductWithInventory = `
	SELECT p.id, p.name, p.description, p.price, p.created_at,
	       i.id, i.quantity, i.updated_at
	FROM products p
	LEFT JOIN inventory i ON p.id = i.product_id
`

// PostgresProductRepository implementa ProductRepository usando PostgreSQL
type PostgresProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de PostgresProductRepository
func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &PostgresProductRepository{
		db: db,
	}
}

// Create insere produto + estoque; qualquer erro faz rollback
func (r *PostgresProductRepository) Create(ctx context.Context, draft ProductDraft) (*Product, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	product, err := insertProductWithInventory(ctx, tx, draft)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product creation: %w", err)
	}

	return product, nil
}

// FindByID busca um produto pelo ID com LEFT JOIN no estoque
func (r *PostgresProductRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRow(ctx, selectProductWithInventory+` WHERE p.id = $1`, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// FindAll lista todos os produtos
func (r *PostgresProductRepository) FindAll(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.Query(ctx, selectProductWithInventory+` ORDER BY p.created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// Update monta o SET dinamicamente; sem campos, devolve o registro atual sem escrever
func (r *PostgresProductRepository) Update(ctx context.Context, id string, changes UpdateProductRequest) (*Product, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.IsEmpty() {
		return existing, nil
	}

	var (
		updates []string
		values  []any
	)
	if changes.Name != nil {
		values = append(values, *changes.Name)
		updates = append(updates, fmt.Sprintf("name = $%d", len(values)))
	}
	if changes.Description.Set {
		values = append(values, changes.Description.Value)
		updates = append(updates, fmt.Sprintf("description = $%d", len(values)))
	}
	if changes.Price != nil {
		values = append(values, *changes.Price)
		updates = append(updates, fmt.Sprintf("price = $%d", len(values)))
	}
	values = append(values, id)

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", strings.Join(updates, ", "), len(values))

	tag, err := r.db.Exec(ctx, query, values...)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrProductNotFound
	}

	return r.FindByID(ctx, id)
}

// UpdateInventory altera a quantidade e renova updated_at
func (r *PostgresProductRepository) UpdateInventory(ctx context.Context, productID string, quantity int) (*Inventory, error) {
	var inventory Inventory
	err := r.db.QueryRow(ctx, `
		UPDATE inventory
		SET quantity = $1,
		    updated_at = NOW()
		WHERE product_id = $2
		RETURNING id, product_id, quantity, updated_at
	`, quantity, productID).Scan(&inventory.ID, &inventory.ProductID, &inventory.Quantity, &inventory.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}

	return &inventory, nil
}

// Delete remove o estoque e depois o produto
func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM inventory WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete inventory: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit product deletion: %w", err)
	}

	return nil
}

// BulkCreate insere todos os produtos ou nenhum
func (r *PostgresProductRepository) BulkCreate(ctx context.Context, drafts []ProductDraft) ([]*Product, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	products := make([]*Product, 0, len(drafts))
	for i, draft := range drafts {
		product, err := insertProductWithInventory(ctx, tx, draft)
		if err != nil {
			return nil, fmt.Errorf("bulk item %d: %w", i, err)
		}
		products = append(products, product)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit bulk creation: %w", err)
	}

	return products, nil
}

// BulkDelete remove estoques e produtos cujos IDs estão na lista
func (r *PostgresProductRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM inventory WHERE product_id = ANY($1::uuid[])`, ids); err != nil {
		return 0, fmt.Errorf("failed to delete inventories: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete products: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit bulk deletion: %w", err)
	}

	return tag.RowsAffected(), nil
}

// insertProductWithInventory executa os dois INSERTs dentro de tx
func insertProductWithInventory(ctx context.Context, tx pgx.Tx, draft ProductDraft) (*Product, error) {
	var product Product
	err := tx.QueryRow(ctx, `
		INSERT INTO products (id, name, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, price, created_at
	`, uuid.New().String(), draft.Name, draft.Description, draft.Price).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	var inventory Inventory
	err = tx.QueryRow(ctx, `
		INSERT INTO inventory (id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, product_id, quantity, updated_at
	`, uuid.New().String(), product.ID, draft.InitialQuantity).Scan(
		&inventory.ID,
		&inventory.ProductID,
		&inventory.Quantity,
		&inventory.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert inventory: %w", err)
	}

	product.Inventory = &inventory
	return &product, nil
}

// scanProduct lê uma linha de selectProductWithInventory; colunas do estoque podem ser NULL
func scanProduct(row rowScanner) (*Product, error) {
	var (
		product     Product
		inventoryID *string
		quantity    *int
		updatedAt   *time.Time
	)

	if err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.CreatedAt,
		&inventoryID,
		&quantity,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if inventoryID != nil {
		product.Inventory = &Inventory{
			ID:        *inventoryID,
			ProductID: product.ID,
		}
		if quantity != nil {
			product.Inventory.Quantity = *quantity
		}
		if updatedAt != nil {
			product.Inventory.UpdatedAt = *updatedAt
		}
	}

	return &product, nil
}
