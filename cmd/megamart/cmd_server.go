package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/megamart/app/bootstrap"
)

// megamart serve: start the HTTP server.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withStorefront(ctx, bootstrap.Options{}, func(s *bootstrap.Storefront) error {
			return s.Serve(ctx)
		})
	},
}

// megamart route:list: print all registered named routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorefront(cmd.Context(), bootstrap.Options{Offline: true}, func(s *bootstrap.Storefront) error {
			return s.Application().PrintRoutes(cmd.OutOrStdout())
		})
	},
}
