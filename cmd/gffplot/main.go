// Package main provides the gffplot command-line tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ARU-life-sciences/gffplot/internal/annotation"
	"github.com/ARU-life-sciences/gffplot/internal/document"
	"github.com/ARU-life-sciences/gffplot/internal/gff"
	"github.com/ARU-life-sciences/gffplot/internal/plot"
	"github.com/ARU-life-sciences/gffplot/internal/snapshot"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "Hint: Check that the file path is correct\n")
		}
		return ExitError
	}
	return ExitSuccess
}

// globalOptions are shared by every subcommand.
type globalOptions struct {
	configFile string
	verbose    bool
	logger     *zap.Logger
}

type renderOptions struct {
	output     string
	pngPath    string
	pngTimeout time.Duration
	dbPath     string
	title      string
	workers    int
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "gffplot [flags] <in.gff>",
		Short: "Plot GFF3 annotations as an interactive HTML/SVG diagram",
		Long: `gffplot draws every sequence in a GFF3 file as a horizontal axis with its
features as directional arrows. Supported annotation sources are ORFfinder,
cmscan, tRNAscan-SE and barrnap:0.9. The HTML document goes to stdout unless
--output is given.`,
		Example: `  gffplot mito.gff3 > mito.html
  gffplot -o mito.html --png mito.png mito.gff3
  gffplot --db annotations.duckdb mito.gff3 > mito.html`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(g.configFile); err != nil {
				return err
			}
			g.logger = newLogger(g.verbose, cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.logger != nil {
				_ = g.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), g, opts, args[0], cmd.OutOrStdout())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.configFile, "config", "", "Config file (default: ~/.gffplot.yaml)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "Output HTML file (default: stdout)")
	f.StringVar(&opts.pngPath, "png", "", "Also render the diagram to this PNG file (needs Chrome)")
	f.DurationVar(&opts.pngTimeout, "png-timeout", time.Minute, "Timeout for PNG rendering")
	f.StringVar(&opts.dbPath, "db", "", "Also export normalized features to this DuckDB file")
	f.StringVar(&opts.title, "title", "", "Document title (overrides plot.title)")
	f.IntVar(&opts.workers, "workers", 0, "Sequences laid out concurrently (default: GOMAXPROCS)")

	cmd.AddCommand(newSummaryCmd(g))
	cmd.AddCommand(newExportCmd(g))
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// newLogger builds a console logger writing to w.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

// loadStore parses and normalizes a GFF3 file.
func loadStore(path string, logger *zap.Logger) (*annotation.Store, error) {
	parser, err := gff.NewParser(path)
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	n := annotation.NewNormalizer()
	n.SetLogger(logger)
	store, err := n.Normalize(parser)
	if err != nil {
		return nil, err
	}
	logger.Debug("read input", zap.String("path", path), zap.Int("lines", parser.LineNumber()))
	return store, nil
}

func runRender(ctx context.Context, g *globalOptions, opts *renderOptions, input string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadPlotConfig()
	if err != nil {
		return err
	}
	if opts.title != "" {
		cfg.Title = opts.title
	}

	store, err := loadStore(input, g.logger)
	if err != nil {
		return err
	}
	if store.Len() == 0 {
		g.logger.Warn("no features to plot", zap.String("input", input))
	}

	d, err := plot.Layout(ctx, store, cfg,
		plot.WithWorkers(opts.workers),
		plot.WithLogger(g.logger))
	if err != nil {
		return err
	}

	// Side outputs go first; the document is only emitted once nothing else
	// can fail.
	if opts.dbPath != "" {
		if err := exportStore(opts.dbPath, input, store, g.logger); err != nil {
			return err
		}
	}

	if opts.pngPath != "" {
		doc, err := document.Render(d, cfg)
		if err != nil {
			return err
		}
		if err := writePNG(ctx, opts.pngPath, opts.pngTimeout, doc, g.logger); err != nil {
			return err
		}
	}

	if opts.output == "" {
		return document.Write(stdout, d, cfg)
	}
	return writeDocumentFile(opts.output, d, cfg, g.logger)
}

// writeDocumentFile writes the document to path, removing the file again if
// the write fails.
func writeDocumentFile(path string, d *plot.Diagram, cfg plot.Config, logger *zap.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := document.Write(f, d, cfg); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	logger.Info("wrote document", zap.String("path", path))
	return nil
}

func writePNG(ctx context.Context, path string, timeout time.Duration, doc []byte, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png file: %w", err)
	}

	r := snapshot.NewRenderer()
	r.SetLogger(logger)
	if err := r.PNG(ctx, doc, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png file: %w", err)
	}
	logger.Info("wrote snapshot", zap.String("path", path))
	return nil
}

// initConfig wires viper to defaults, the config file and GFFPLOT_* env vars.
func initConfig(cfgFile string) error {
	viper.Reset()

	def := plot.DefaultConfig()
	viper.SetDefault("plot.width", def.Width)
	viper.SetDefault("plot.subplot_height", def.SubplotHeight)
	viper.SetDefault("plot.margin", def.Margin)
	viper.SetDefault("plot.midline_offset", def.MidlineOffset)
	viper.SetDefault("plot.label_offset", def.LabelOffset)
	viper.SetDefault("plot.palette", def.Palette[:])
	viper.SetDefault("plot.title", def.Title)

	viper.SetEnvPrefix("GFFPLOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path := filepath.Join(home, ".gffplot.yaml")
		if _, err := os.Stat(path); err != nil {
			return nil
		}
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// loadPlotConfig reads the plot.* keys into a validated plot.Config.
func loadPlotConfig() (plot.Config, error) {
	cfg := plot.Config{
		Width:         viper.GetInt("plot.width"),
		SubplotHeight: viper.GetInt("plot.subplot_height"),
		Margin:        viper.GetInt("plot.margin"),
		MidlineOffset: viper.GetInt("plot.midline_offset"),
		LabelOffset:   viper.GetInt("plot.label_offset"),
		Title:         viper.GetString("plot.title"),
	}
	palette := viper.GetStringSlice("plot.palette")
	if len(palette) != len(cfg.Palette) {
		return cfg, fmt.Errorf("invalid plot config: palette needs %d colours, got %d", len(cfg.Palette), len(palette))
	}
	copy(cfg.Palette[:], palette)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid plot config: %w", err)
	}
	return cfg, nil
}
