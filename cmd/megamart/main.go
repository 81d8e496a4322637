package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/megamart/app/bootstrap"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "megamart",
	Short:         "MegaMart storefront",
	Long:          "MegaMart serves the product listing and product detail pages backed by the product API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Catalog
	rootCmd.AddCommand(productShowCmd)
	rootCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogWarmCmd)
}

// withStorefront boots, runs fn and tears the storefront down again.
func withStorefront(ctx context.Context, opts bootstrap.Options, fn func(*bootstrap.Storefront) error) error {
	s, err := bootstrap.Boot(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.Close(shutdownCtx); err != nil {
			fmt.Fprintln(os.Stderr, "shutdown:", err)
		}
	}()
	return fn(s)
}
