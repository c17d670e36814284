// console-exporter - interactive command prompt for generating test metrics.
//
// The process exports demo_* metrics on an HTTP scrape endpoint and lets
// an operator change them from the console, to debug alert rules and
// dashboards without a real workload.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	pkgerr "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dialogs/console-exporter/command"
	"github.com/dialogs/console-exporter/config"
	"github.com/dialogs/console-exporter/console"
	"github.com/dialogs/console-exporter/demo"
	"github.com/dialogs/console-exporter/logger"
	"github.com/dialogs/console-exporter/metric"
	"github.com/dialogs/console-exporter/service"
	"github.com/dialogs/console-exporter/service/info"
	"github.com/dialogs/console-exporter/service/router"
)

const appName = "console-exporter"

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {

	var cfgFile string

	v := config.New(config.EnvPrefix, true)

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Interactive console that exports test metrics",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {

			if err := config.ReadFile(v, cfgFile); err != nil {
				return report(err)
			}

			cfg, err := config.Load(v)
			if err != nil {
				return report(err)
			}

			l, err := logger.New(cfg.Log)
			if err != nil {
				return report(err)
			}
			defer l.Sync()

			in := console.NewStdinReader(l)
			defer in.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := run(ctx, cfg, l, in, os.Stdout); err != nil {
				l.Error("failed", zap.Error(err))
				return err
			}

			return nil
		},
	}

	flags := config.Flags()
	cmd.Flags().AddFlagSet(flags)
	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (yaml, json, toml)")

	if err := config.BindFlags(v, flags); err != nil {
		panic(err)
	}

	return cmd
}

// run serves the metrics and runs the console until the context is done,
// the exit command is entered or a task fails
func run(ctx context.Context, cfg *config.App, l *zap.Logger, in console.LineReader, out io.Writer) error {

	registry := metric.NewRegistry()
	if err := demo.RegisterMetrics(registry); err != nil {
		return pkgerr.Wrap(err, "register metrics")
	}

	commands, err := demo.RegisterCommands(command.NewBuilder(), registry).Build()
	if err != nil {
		return pkgerr.Wrap(err, "register commands")
	}

	scrape := metric.NewHandler(registry, l)

	svc := service.NewHTTP(
		router.NewAdminRouter(info.New(appName, Version, Commit, BuildDate), cfg.MetricsPath, scrape),
		cfg.CloseTimeout)
	svc.SetAddr(cfg.Addr())
	svc.SetLogger(l)
	svc.OnClose(scrape.Shutdown)

	con := console.New(in, out, commands, registry,
		console.WithLogger(l.Named("console")),
		console.WithBanner(fmt.Sprintf("Metrics with prefix %s* exported on %s URL.", demo.Prefix, cfg.MetricsURL())),
		console.WithIssuedCounter(demo.CommandsCount))

	chErr, cancel := service.RunGroup(ctx, svc.Serve, con.Run)
	defer cancel()

	var retval error
	for err := range chErr {
		// the first finished task stops the others
		cancel()

		switch {
		case err == nil, errors.Is(err, command.ErrExit):
		case retval == nil:
			retval = err
		default:
			l.Error("task failed", zap.Error(err))
		}
	}

	l.Info("stopped")
	return retval
}

func report(err error) error {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return err
}
