package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amctague/lift/internal/common"
	"github.com/amctague/lift/internal/mining"
	"github.com/amctague/lift/internal/model"
	"github.com/amctague/lift/internal/preprocess"
	"github.com/amctague/lift/internal/service"
	"github.com/amctague/lift/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// openStorage opens the configured database and applies pending migrations.
func openStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".config", "lift", "lift.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// pipelineOptions builds preprocessing options from configuration. The
// country, cancellation marker and description exclusions are deliberate
// configuration, not hidden constants.
func pipelineOptions() preprocess.Options {
	opts := preprocess.DefaultOptions()
	if country := viper.GetString("analysis.country"); country != "" {
		opts.Country = country
	}
	if viper.IsSet("analysis.cancel_marker") {
		opts.CancelMarker = viper.GetString("analysis.cancel_marker")
	}
	opts.ExcludeDescriptions = viper.GetStringSlice("analysis.exclude_descriptions")
	return opts
}

// addMiningFlags registers the shared mining flags on a command under the
// given viper key prefix.
func addMiningFlags(cmd *cobra.Command, prefix string) {
	cmd.Flags().String("algorithm", "apriori", "mining algorithm (apriori, fpgrowth)")
	cmd.Flags().Float64("min-support", 0.05, "minimum itemset support in [0,1]")
	cmd.Flags().String("metric", "support", "rule filter metric (support, confidence)")
	cmd.Flags().Float64("min-threshold", 0.01, "minimum metric value for rules, in [0,1]")
	cmd.Flags().String("country", "", "restrict analysis to one country (default from config)")

	_ = viper.BindPFlag(prefix+".algorithm", cmd.Flags().Lookup("algorithm"))
	_ = viper.BindPFlag(prefix+".min_support", cmd.Flags().Lookup("min-support"))
	_ = viper.BindPFlag(prefix+".metric", cmd.Flags().Lookup("metric"))
	_ = viper.BindPFlag(prefix+".min_threshold", cmd.Flags().Lookup("min-threshold"))
	_ = viper.BindPFlag(prefix+".country", cmd.Flags().Lookup("country"))
}

type miningParams struct {
	miner        mining.Miner
	metric       mining.Metric
	minSupport   float64
	minThreshold float64
}

// miningConfig reads and validates the mining flags for a command. The core
// treats thresholds as a caller contract, so bounds are enforced here, before
// anything is invoked.
func miningConfig(prefix string) (miningParams, error) {
	var params miningParams

	miner, err := mining.NewMiner(viper.GetString(prefix + ".algorithm"))
	if err != nil {
		return params, err
	}
	metric, err := mining.ParseMetric(viper.GetString(prefix + ".metric"))
	if err != nil {
		return params, err
	}

	params.miner = miner
	params.metric = metric
	params.minSupport = viper.GetFloat64(prefix + ".min_support")
	params.minThreshold = viper.GetFloat64(prefix + ".min_threshold")

	if params.minSupport < 0 || params.minSupport > 1 {
		return params, fmt.Errorf("%w: min-support must be in [0,1], got %v", common.ErrInvalidConfig, params.minSupport)
	}
	if params.minThreshold < 0 || params.minThreshold > 1 {
		return params, fmt.Errorf("%w: min-threshold must be in [0,1], got %v", common.ErrInvalidConfig, params.minThreshold)
	}

	return params, nil
}

// buildRules runs the full pipeline against the stored dataset: load, filter,
// binarize, mine, derive. Rules are recomputed on every invocation; nothing
// mined is ever persisted.
func buildRules(ctx context.Context, store service.Storage, prefix string) ([]model.Itemset, model.RuleSet, error) {
	params, err := miningConfig(prefix)
	if err != nil {
		return nil, nil, err
	}

	opts := pipelineOptions()
	if country := viper.GetString(prefix + ".country"); country != "" {
		opts.Country = country
	}

	records, err := store.ListRecords(ctx, service.RecordFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, common.NewUserError("no records imported yet, run 'lift import' first", common.ErrNoRecords)
	}

	matrix := preprocess.Preprocess(records, opts)

	itemsets, err := params.miner.Mine(ctx, matrix, params.minSupport)
	if err != nil {
		return nil, nil, fmt.Errorf("mining failed: %w", err)
	}

	rules, err := mining.Derive(itemsets, params.metric, params.minThreshold)
	if err != nil {
		return nil, nil, fmt.Errorf("rule derivation failed: %w", err)
	}

	return itemsets, rules, nil
}
