package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/megamart/app/bootstrap"
	"github.com/shashiranjanraj/megamart/app/detail"
	"github.com/shashiranjanraj/megamart/app/listing"
)

var showDiscount int

// megamart product:show <id>: settle one detail view and print its model.
var productShowCmd = &cobra.Command{
	Use:   "product:show <id>",
	Short: "Fetch one product and print its detail view as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorefront(cmd.Context(), bootstrap.Options{Offline: true}, func(s *bootstrap.Storefront) error {
			var params detail.Params
			if showDiscount != 0 {
				if showDiscount < detail.MinDiscount || showDiscount > detail.MaxDiscount {
					return fmt.Errorf("--discount must be between %d and %d", detail.MinDiscount, detail.MaxDiscount)
				}
				params.Discount = showDiscount
			}

			st, err := detail.Load(cmd.Context(), s.Products, s.Decor, args[0], params)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(st.Model()); err != nil {
				return err
			}
			if st.Phase != detail.Found {
				return fmt.Errorf("%s: %s", args[0], st.Message())
			}
			return nil
		})
	},
}

// megamart catalog:list: print the cards the home page would show.
var catalogListCmd = &cobra.Command{
	Use:   "catalog:list",
	Short: "Print the product cards shown on the home page",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorefront(cmd.Context(), bootstrap.Options{Offline: true}, func(s *bootstrap.Storefront) error {
			products, err := s.Catalog.Products(cmd.Context())
			if err != nil {
				return fmt.Errorf("catalog: %w", err)
			}
			page := listing.Build(products, nil, s.Decor)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRICE\tCARD PRICE\tDISCOUNT")
			fmt.Fprintln(w, "--\t-----\t-----\t----------\t--------")
			for _, c := range page.Cards {
				fmt.Fprintf(w, "%d\t%s\t$%s\t$%s\t%d%%\n", c.ID, c.Title, c.Price, c.CardPrice, c.Discount)
			}
			return w.Flush()
		})
	},
}

// megamart catalog:warm: fetch every product so the cache holds it.
var catalogWarmCmd = &cobra.Command{
	Use:   "catalog:warm",
	Short: "Load every catalog product into the configured cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorefront(cmd.Context(), bootstrap.Options{}, func(s *bootstrap.Storefront) error {
			if !s.Products.Caching() {
				return fmt.Errorf("catalog:warm: CACHE_DRIVER is none, nothing to warm")
			}
			products, err := s.Products.Products(cmd.Context())
			if err != nil {
				return fmt.Errorf("catalog: %w", err)
			}

			warmed := 0
			for _, p := range products {
				if err := s.Products.Warm(cmd.Context(), p.ID); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "product %d: %v\n", p.ID, err)
					continue
				}
				warmed++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Warmed %d of %d products (%s).\n", warmed, len(products), s.Store.Driver())
			return nil
		})
	},
}

func init() {
	productShowCmd.Flags().IntVar(&showDiscount, "discount", 0, "fix the discount percentage instead of drawing one")
}
