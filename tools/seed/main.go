package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		baseURL string
		file    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Bulk-load sample products into the catalog service",
		Long:  "Create products (and their inventory) through POST /api/products/bulk. Uses a built-in EV parts set unless --file is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products := sampleProducts
			if file != "" {
				loaded, err := loadProducts(file)
				if err != nil {
					return err
				}
				products = loaded
			}

			client := resty.New().
				SetBaseURL(baseURL).
				SetTimeout(timeout)

			created, err := seed(cmd.Context(), client, products)
			if err != nil {
				return err
			}

			for _, p := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.ID, p.Name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Seeded %d products into %s\n", len(created), baseURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", getEnv("CATALOG_URL", "http://localhost:8080"), "Catalog service base URL")
	cmd.Flags().StringVar(&file, "file", "", "YAML file with a top-level products list")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "HTTP request timeout")

	return cmd
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
