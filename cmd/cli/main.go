// Command heartcli browses the shop catalog and prices a cart offline.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bhushan0206/HeartAndHands/internal/cart"
	"github.com/bhushan0206/HeartAndHands/internal/filter"
	"github.com/bhushan0206/HeartAndHands/internal/models"
	"github.com/bhushan0206/HeartAndHands/internal/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dbPath   string
	seedPath string
	logLevel string
}

func rootCmd() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:           "heartcli",
		Short:         "Browse the artisan catalog from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&g.dbPath, "db", getEnv("DB_PATH", store.MemoryDSN), "SQLite database path")
	cmd.PersistentFlags().StringVar(&g.seedPath, "seed", getEnv("CATALOG_SEED", ""), "YAML catalog to load instead of the built-in one")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(productsCmd(&g), portfolioCmd(&g), quoteCmd(&g))
	return cmd
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

// openStore opens, migrates and seeds the catalog the command reads from.
func openStore(ctx context.Context, g *globalFlags) (*store.Store, error) {
	db, err := store.NewStore(g.dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if g.seedPath == "" {
		err = db.SeedDefault(ctx)
	} else {
		err = seedFromFile(ctx, db, g.seedPath)
	}
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func seedFromFile(ctx context.Context, db *store.Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return db.Seed(ctx, f)
}

type filterFlags struct {
	query, category, creator, min, max string
}

func (f filterFlags) state() (filter.State, error) {
	v := url.Values{}
	v.Set("q", f.query)
	v.Set("category", f.category)
	v.Set("creator", f.creator)
	v.Set("min", f.min)
	v.Set("max", f.max)
	return filter.ParseState(v)
}

func productsCmd(g *globalFlags) *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products matching the given filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := f.state()
			if err != nil {
				return err
			}
			db, err := openStore(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer db.Close()

			products, err := db.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			matched := filter.Products(products, state)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tCREATOR\tTYPE\tPRICE")
			for _, p := range matched {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Category, p.Creator, p.OrderType, p.Price.StringFixed(2))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d products, %d active filters\n", len(matched), len(products), state.ActiveCount())
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "Search title and description")
	cmd.Flags().StringVar(&f.category, "category", filter.All, "Category id")
	cmd.Flags().StringVar(&f.creator, "creator", filter.All, "Creator name")
	cmd.Flags().StringVar(&f.min, "min", "", "Minimum price")
	cmd.Flags().StringVar(&f.max, "max", "", "Maximum price")
	return cmd
}

func portfolioCmd(g *globalFlags) *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "List gallery pieces",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := f.state()
			if err != nil {
				return err
			}
			db, err := openStore(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer db.Close()

			items, err := db.ListPortfolio(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tCREATOR\tDATE")
			for _, it := range filter.Portfolio(items, state) {
				title := it.Title
				if it.Featured {
					title += " *"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", it.ID, title, it.Category, it.Creator, it.Date)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "Search title and creator")
	cmd.Flags().StringVar(&f.category, "category", filter.All, "Category id")
	return cmd
}

// parseQuoteArg reads "id" or "id:qty".
func parseQuoteArg(arg string) (string, int, error) {
	id, qty, found := strings.Cut(arg, ":")
	if !found {
		return id, 1, nil
	}
	n, err := strconv.Atoi(qty)
	if err != nil {
		return "", 0, fmt.Errorf("invalid quantity in %q: %w", arg, err)
	}
	return id, n, nil
}

func quoteCmd(g *globalFlags) *cobra.Command {
	var (
		date    string
		payment string
	)
	cmd := &cobra.Command{
		Use:   "quote ITEM[:QTY]...",
		Short: "Price a cart without placing an order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer db.Close()

			idx, err := db.ProductIndex(cmd.Context())
			if err != nil {
				return err
			}

			c := cart.New()
			for _, arg := range args {
				id, qty, err := parseQuoteArg(arg)
				if err != nil {
					return err
				}
				p, ok := idx.Product(id)
				if !ok {
					return fmt.Errorf("product %s: %w", id, store.ErrNotFound)
				}
				c, _, err = c.Add(p, qty, cart.Options{
					SelectedDate:  date,
					PaymentMethod: models.PaymentMethod(payment),
				})
				if err != nil {
					return fmt.Errorf("cannot add %s: %w", id, err)
				}
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
			for _, l := range c.Lines() {
				p, _ := idx.Product(l.ItemID)
				lineTotal := p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
				fmt.Fprintf(w, "%s\tx%d\t%s\t\n", p.Title, l.Quantity, lineTotal.StringFixed(2))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			t := c.Totals(idx)
			fmt.Fprintf(out, "Subtotal: %s\n", t.Subtotal.StringFixed(2))
			fmt.Fprintf(out, "Tax:      %s\n", t.Tax.StringFixed(2))
			fmt.Fprintf(out, "Total:    %s\n", t.Total.StringFixed(2))
			fmt.Fprintln(out, c.CheckoutLabel())
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date for appointment items")
	cmd.Flags().StringVar(&payment, "payment", "", "Payment method (online or cash)")
	return cmd
}
