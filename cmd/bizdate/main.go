package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/bizdate/internal/config"
	"github.com/username/bizdate/internal/logging"
	"github.com/username/bizdate/pkg/dateutil"
	"github.com/username/bizdate/pkg/offset"
	"github.com/username/bizdate/pkg/trace"
	"go.uber.org/zap"
)

var (
	configPath string
	cfg        *config.Config
	logger     = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bizdate",
		Short:         "Business calendar date offsets",
		Long:          "Shift dates by business days, months or years, moving weekend results to the adjacent business day",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger, err = logging.New(cfg.Logging.File, cfg.Logging.Level)
			if err != nil {
				logger, _ = logging.NewConsoleLogger("info") // Fallback to console
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")

	rootCmd.AddCommand(offsetCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(showCmd())

	return rootCmd
}

func offsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offset <date> <amount> [unit]",
		Short: "Offset a date by business days (BD), months (M) or years (Y)",
		Example: "  bizdate offset 2023-06-16 1 BD\n" +
			"  bizdate offset 2023-06-19 -1",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := dateutil.ParseDate(args[0], cfg.Offset.DateLayout)
			if err != nil {
				return err
			}

			amount, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			unit := cfg.Offset.GetDefaultUnit()
			if len(args) == 3 {
				if unit, err = offset.ParseUnit(args[2]); err != nil {
					return err
				}
			}

			result, err := tracedCompute(logger)(start, amount, unit)
			if err != nil {
				return fmt.Errorf("failed to offset %s: %w", args[0], err)
			}

			logger.Info("Offset computed",
				zap.String("start", dateutil.FormatDate(start)),
				zap.Int("amount", amount),
				zap.Stringer("unit", unit),
				zap.String("result", dateutil.FormatDate(result)))

			fmt.Fprintln(cmd.OutOrStdout(), dateutil.FormatDate(result))
			return nil
		},
	}

	// Arguments after the date are positional, so "-1" is an amount, not a flag.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// tracedCompute logs every offset.Compute call and its duration at debug level
func tracedCompute(logger *zap.Logger) offset.Func {
	return func(start time.Time, amount int, unit offset.Unit) (time.Time, error) {
		return trace.Wrap(logger, "offset.Compute", func() (time.Time, error) {
			return offset.Compute(start, amount, unit)
		})
	}
}
