package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"neighborfit/internal/config"
	"neighborfit/internal/pipeline"
	"neighborfit/internal/plots"
	"neighborfit/utils"
)

const skipConfig = "skip-config"

// app guarda los flags globales y lo que PersistentPreRunE construye a partir de ellos.
type app struct {
	cfgPath  string
	seed     uint64
	users    int
	sample   int
	plotsDir string
	noPlots  bool
	verbose  bool

	cfg *config.Config
	log *utils.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "neighborfit",
		Short: "NeighborFit exploratory analysis over Seattle neighborhoods",
		Long: `neighborfit runs the exploratory analysis behind the NeighborFit matcher:

  load → correlate → cluster → sample users → validate matching → feature importance → report

Run without a subcommand to execute the whole pipeline. Charts are written as
PNG files to the plots directory unless --no-plots is given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				a.log = utils.NewNopLogger()
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: a.runAnalyze,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgPath, "config", "c", "neighborfit.yaml", "Config file (missing file uses defaults)")
	pf.Uint64Var(&a.seed, "seed", 42, "Random seed for users, sampling and k-means")
	pf.IntVar(&a.users, "users", 1000, "Number of synthetic users")
	pf.IntVar(&a.sample, "sample", 100, "Users sampled for matching validation")
	pf.StringVar(&a.plotsDir, "plots-dir", "plots", "Directory for PNG charts")
	pf.BoolVar(&a.noPlots, "no-plots", false, "Skip chart rendering")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.analyzeCmd(),
		a.correlateCmd(),
		a.clusterCmd(),
		a.usersCmd(),
		a.validateCmd(),
		a.importanceCmd(),
		a.matchCmd(),
		a.similarCmd(),
		a.neighborhoodsCmd(),
		a.configCmd(),
	)
	return root
}

// setup carga la config, aplica los flags explícitos y arma el logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("users") {
		cfg.Users.Count = a.users
	}
	if flags.Changed("sample") {
		cfg.Validation.SampleSize = a.sample
	}
	if flags.Changed("plots-dir") {
		cfg.Plots.Dir = a.plotsDir
	}
	if a.noPlots {
		cfg.Plots.Enabled = false
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := utils.NewLoggerWith(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	a.log = log
	a.log.Debug("config loaded from %s", a.cfgPath)
	return nil
}

func (a *app) charts() pipeline.Charts {
	if !a.cfg.Plots.Enabled {
		return pipeline.NopCharts{}
	}
	return plots.Renderer{Dir: a.cfg.Plots.Dir, Bins: a.cfg.Plots.Bins}
}

func (a *app) pipeline(cmd *cobra.Command) *pipeline.Pipeline {
	return pipeline.New(a.cfg, cmd.OutOrStdout(), a.charts(), a.log)
}

// run ejecuta el CLI con args y devuelve el código de salida; los errores se
// reportan por log.
func run(ctx context.Context, args []string, log *utils.Logger) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error("neighborfit: %v", err)
		_ = log.Sync()
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], utils.NewLogger(true))
	stop()
	os.Exit(code)
}
