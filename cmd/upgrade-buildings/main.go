package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/napolitain/lacuna-upgrader/internal/config"
	"github.com/napolitain/lacuna-upgrader/internal/lacuna"
	"github.com/napolitain/lacuna-upgrader/internal/loader"
	"github.com/napolitain/lacuna-upgrader/internal/logging"
	"github.com/napolitain/lacuna-upgrader/internal/models"
	"github.com/napolitain/lacuna-upgrader/internal/scheduler"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(logging.New).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newLogger builds the run's logger from the verbose setting
type newLogger func(verbose bool) *zap.Logger

func newRootCmd(mkLogger newLogger) *cobra.Command {
	v := viper.New()

	var (
		configFile string
		quiet      bool
	)

	rootCmd := &cobra.Command{
		Use:   "upgrade-buildings",
		Short: "Lacuna Expanse building upgrader",
		Long: `Walks every colony of an empire and queues building upgrades
following a fixed priority list, stopping each colony once its build
queue holds more than --max-time seconds of work.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, configFile, quiet, mkLogger, cmd.OutOrStdout())
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "Path to YAML config file (default is ./config.yaml or the user config dir)")
	flags.BoolP("dry-run", "d", false, "Run, showing actions, but not changing anything")
	flags.StringP("skip", "s", "", "Skip one colony by name")
	flags.IntP("max-time", "m", models.DefaultMaxTime, "Max build queue time per colony (seconds)")
	flags.StringP("priorities", "p", "", "Path to YAML priority list, by in-game building name (default is the built-in list)")
	flags.BoolP("verbose", "v", false, "Debug logging")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	_ = v.BindPFlag("run.dry_run", flags.Lookup("dry-run"))
	_ = v.BindPFlag("run.skip", flags.Lookup("skip"))
	_ = v.BindPFlag("run.max_time", flags.Lookup("max-time"))
	_ = v.BindPFlag("priorities", flags.Lookup("priorities"))
	_ = v.BindPFlag("verbose", flags.Lookup("verbose"))

	return rootCmd
}

func run(ctx context.Context, v *viper.Viper, configFile string, quiet bool, mkLogger newLogger, out io.Writer) error {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	priorities, err := loader.LoadPriorities(cfg.Priorities)
	if err != nil {
		return err
	}

	logger := mkLogger(cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	if !quiet {
		printBanner(out, cfg, len(priorities))
	}

	client := lacuna.NewClient(cfg.ClientOptions(), logger)
	if err := client.Login(ctx, cfg.Empire.Name, cfg.Empire.Password); err != nil {
		return err
	}
	defer func() {
		if err := client.Logout(context.Background()); err != nil {
			logger.Warn("logout failed", zap.Error(err))
		}
	}()

	sched := scheduler.NewScheduler(priorities, lacuna.NewRegistry(client), logger)
	driver := scheduler.NewDriver(client, sched, logger)

	opts := cfg.RunOptions()
	results, err := driver.Run(ctx, opts)
	if err != nil && results == nil {
		return err
	}

	// a cancelled run still reports the colonies it got through
	if !quiet {
		printReport(out, results, opts)
	}

	return err
}
