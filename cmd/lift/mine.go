package main

import (
	"fmt"
	"log/slog"

	"github.com/amctague/lift/internal/cli"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func mineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine frequent itemsets and association rules",
		Long: `Run the preprocessing pipeline over the imported dataset, mine frequent
itemsets, and derive association rules. Results are printed, not stored:
every invocation recomputes from the current dataset and flags.`,
		RunE: runMine,
	}

	addMiningFlags(cmd, "mine")
	cmd.Flags().Int("top", 10, "number of itemsets and rules to display")
	_ = viper.BindPFlag("mine.top", cmd.Flags().Lookup("top"))

	return cmd
}

func runMine(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	itemsets, rules, err := buildRules(ctx, store, "mine")
	if err != nil {
		return err
	}

	top := viper.GetInt("mine.top")

	slog.Info(cli.FormatTitle("Frequent itemsets"))
	slog.Info("Mining complete", "itemsets", len(itemsets), "rules", len(rules))
	for i, s := range itemsets {
		if i >= top {
			slog.Info(fmt.Sprintf("... and %d more itemsets", len(itemsets)-i))
			break
		}
		fmt.Println(cli.TableCellStyle.Render(cli.FormatItemset(s)))
	}

	slog.Info(cli.FormatTitle("Association rules"))
	if len(rules) == 0 {
		slog.Info("No rules met the threshold")
		return nil
	}
	for i := range rules {
		if i >= top {
			slog.Info(fmt.Sprintf("... and %d more rules", len(rules)-i))
			break
		}
		fmt.Println(cli.TableCellStyle.Render(cli.FormatRule(rules[i])))
	}

	return nil
}
