package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/binops/internal/config"
	"github.com/born-ml/binops/internal/logging"
	"github.com/born-ml/binops/internal/ops"
)

// app is the state shared by all commands, set up in PersistentPreRunE.
type app struct {
	configPath string
	verbose    bool

	cfg        *config.Config
	logger     *zap.Logger
	dispatcher *ops.Dispatcher
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "binops",
		Short: "Elementwise binary tensor operators",
		Long: `binops evaluates elementwise binary operations (add, sub, rsub, mul, div,
atan2, logical_xor, lt, le, gt, ge, eq, ne) with broadcasting, type promotion
and overflow-checked scalar conversion.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd(), newKernelsCmd(a), newEvalCmd(a))
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Verbose(cfg.Logging, a.verbose))
	if err != nil {
		return err
	}
	d, err := ops.NewFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to register kernels: %w", err)
	}
	a.cfg, a.logger, a.dispatcher = cfg, logger, d
	logger.Debug("binops ready",
		zap.String("config", a.configPath),
		zap.Bool("parallel", cfg.Parallel.Enabled),
		zap.Bool("vectorize", cfg.Kernels.Vectorize))
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "binops %s\n", version)
			return err
		},
	}
}

func newKernelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kernels",
		Short: "List the registered kernels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "OP\tDEVICE\tVARIANT")
			for _, e := range a.dispatcher.Kernels() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Op, e.Device, e.Variant)
			}
			return w.Flush()
		},
	}
}
