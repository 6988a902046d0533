package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/amctague/lift/internal/cli"
	"github.com/amctague/lift/internal/common"
	"github.com/amctague/lift/internal/recommend"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func recommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend products for a set of selected products",
		Long: `Mine association rules from the imported dataset and recommend products
whose rules are triggered by the selected stock codes, ranked by confidence.`,
		RunE: runRecommend,
	}

	addMiningFlags(cmd, "recommend")
	cmd.Flags().StringSlice("products", nil, "selected stock codes (comma-separated)")
	cmd.Flags().Int("count", 5, "maximum number of recommendations")
	cmd.Flags().Bool("max-confidence", false, "keep the highest confidence when multiple rules propose an item (default: first rule in scan order wins)")

	_ = cmd.MarkFlagRequired("products")
	_ = viper.BindPFlag("recommend.products", cmd.Flags().Lookup("products"))
	_ = viper.BindPFlag("recommend.count", cmd.Flags().Lookup("count"))
	_ = viper.BindPFlag("recommend.max_confidence", cmd.Flags().Lookup("max-confidence"))

	return cmd
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	products := viper.GetStringSlice("recommend.products")
	count := viper.GetInt("recommend.count")
	if len(products) == 0 {
		return fmt.Errorf("%w: no products selected", common.ErrInvalidConfig)
	}
	if count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", common.ErrInvalidConfig, count)
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	slog.Info(cli.FormatTitle("Selected products"))
	for _, code := range products {
		name, err := store.ProductName(ctx, code)
		switch {
		case errors.Is(err, common.ErrNotFound):
			slog.Warn(cli.FormatWarning(fmt.Sprintf("%s is not in the catalog", code)))
		case err != nil:
			return err
		default:
			slog.Info("Product", "stock_code", code, "name", name)
		}
	}

	_, rules, err := buildRules(ctx, store, "recommend")
	if err != nil {
		return err
	}

	ties := recommend.FirstSeen
	if viper.GetBool("recommend.max_confidence") {
		ties = recommend.HighestConfidence
	}

	engine := recommend.NewEngine(ties)
	recommendations := engine.Recommend(products, count, rules)

	slog.Info(cli.FormatTitle("Recommendations"))
	if len(recommendations) == 0 {
		slog.Info("No recommendations found for the selected products")
		return nil
	}

	fmt.Println(cli.TableHeaderStyle.Render("    stock code   product                                  confidence"))
	for i, rec := range recommendations {
		name, err := store.ProductName(ctx, rec.StockCode)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return err
		}
		fmt.Println(cli.FormatRecommendation(i+1, rec, name))
	}

	return nil
}
