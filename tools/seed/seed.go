package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"gopkg.in/yaml.v3"
)

// seedProduct é o payload de cada item enviado para /api/products/bulk
type seedProduct struct {
	Name            string  `json:"name" yaml:"name"`
	Description     string  `json:"description,omitempty" yaml:"description"`
	Price           float64 `json:"price" yaml:"price"`
	InitialQuantity int     `json:"initialQuantity" yaml:"initialQuantity"`
}

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type createdProduct struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type bulkCreateResponse struct {
	Success bool             `json:"success"`
	Data    []createdProduct `json:"data"`
	Message string           `json:"message"`
}

type errorResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Details map[string]any `json:"details"`
}

var sampleProducts = []seedProduct{
	{Name: "Lithium Battery Pack 48V", Description: "13S4P module with BMS", Price: 1299.90, InitialQuantity: 12},
	{Name: "Hub Motor 1000W", Description: "Rear wheel, 48V", Price: 450.00, InitialQuantity: 8},
	{Name: "Motor Controller", Description: "Sine wave, 35A", Price: 189.50, InitialQuantity: 15},
	{Name: "Charging Cable Type 2", Description: "5m, 32A", Price: 39.99, InitialQuantity: 40},
	{Name: "Throttle Grip", Price: 24.90, InitialQuantity: 60},
	{Name: "Hydraulic Brake Set", Description: "Front and rear with cutoff sensors", Price: 159.00, InitialQuantity: 10},
}

// loadProducts lê a lista de produtos de um arquivo YAML
func loadProducts(path string) ([]seedProduct, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(file.Products) == 0 {
		return nil, fmt.Errorf("%s has no products", path)
	}

	return file.Products, nil
}

// seed envia todos os produtos em uma única requisição bulk
func seed(ctx context.Context, client *resty.Client, products []seedProduct) ([]createdProduct, error) {
	var (
		result bulkCreateResponse
		apiErr errorResponse
	)

	resp, err := client.R().
		SetContext(ctx).
		SetBody(map[string]any{"products": products}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/api/products/bulk")
	if err != nil {
		return nil, fmt.Errorf("failed to call catalog service: %w", err)
	}

	if resp.IsError() {
		if apiErr.Error == "" {
			apiErr.Error = resp.Status()
		}
		return nil, fmt.Errorf("catalog service rejected seed (%d): %s", resp.StatusCode(), apiErr.Error)
	}

	return result.Data, nil
}
