package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"kinship-engine/internal/config"
	"kinship-engine/internal/engine"
	"kinship-engine/internal/handler"
	"kinship-engine/internal/logging"
	"kinship-engine/internal/model"
	"kinship-engine/internal/treediff"
)

var (
	configPath string
	devLogs    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kinship-engine",
	Short: "Reconstructs household family trees from voter-roll records",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if devLogs {
			cfg.Development = true
		}
		logger, err = logging.New(cfg)
		return err
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve tree building over HTTP",
	RunE:  runServe,
}

var (
	inPath       string
	outPath      string
	baselinePath string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Precompute trees for a batch of households",
	Long: `Reads a JSON batch ({"households": [...]}) and writes one tree per
household keyed by household_id. With --baseline, each household whose tree
differs from the baseline output gets an RFC 6902 patch under "changes".`,
	RunE: runBuild,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVar(&devLogs, "dev", false, "human-readable development logs")

	buildCmd.Flags().StringVar(&inPath, "in", "", "batch input file (required)")
	buildCmd.Flags().StringVar(&outPath, "out", "-", "output file, - for stdout")
	buildCmd.Flags().StringVar(&baselinePath, "baseline", "", "previous build output to diff against")
	_ = buildCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(serveCmd, buildCmd)
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

// execute runs the CLI and flushes the logger whether or not the command
// failed. Cobra skips post-run hooks on error.
func execute() error {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	h := handler.New(logger, cfg)
	server := &fasthttp.Server{
		Handler:            h.Serve,
		Name:               "kinship-engine",
		MaxRequestBodySize: cfg.MaxBodyBytes,
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("Kinship engine starting", zap.String("port", cfg.Port), zap.Int("workers", cfg.Workers))
		errc <- server.ListenAndServe(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down")
		return server.Shutdown()
	}
}

type buildOutput struct {
	model.BatchResponse
	Changes map[string][]treediff.Op `json:"changes,omitempty"`
}

func runBuild(cmd *cobra.Command, args []string) error {
	var req model.BatchRequest
	if err := readJSON(inPath, &req); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	trees, err := engine.ProcessBatch(ctx, req.Households, cfg.Workers)
	if err != nil {
		return err
	}
	logBatch(trees, time.Since(start))

	out := buildOutput{BatchResponse: model.BatchResponse{Trees: trees}}
	if baselinePath != "" {
		var base model.BatchResponse
		if err := readJSON(baselinePath, &base); err != nil {
			return err
		}
		if out.Changes, err = diffAgainst(base, trees); err != nil {
			return err
		}
		logger.Info("Compared with baseline", zap.String("baseline", baselinePath), zap.Int("changed", len(out.Changes)))
	}

	body, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if outPath == "-" {
		_, err = cmd.OutOrStdout().Write(append(body, '\n'))
		return err
	}
	if err := os.WriteFile(outPath, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

func diffAgainst(base model.BatchResponse, trees map[string]*model.TreeResponse) (map[string][]treediff.Op, error) {
	ids := make([]string, 0, len(trees))
	for id := range trees {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	changes := make(map[string][]treediff.Op)
	for _, id := range ids {
		var before []*model.ViewNode
		if prev, ok := base.Trees[id]; ok && prev != nil {
			before = prev.Result.Roots
		}
		ops, err := treediff.Roots(before, trees[id].Result.Roots)
		if err != nil {
			return nil, fmt.Errorf("household %s: %w", id, err)
		}
		if len(ops) > 0 {
			changes[id] = ops
		}
	}
	return changes, nil
}

func logBatch(trees map[string]*model.TreeResponse, elapsed time.Duration) {
	outcomes := make(map[string]int)
	members, virtual := 0, 0
	for id, t := range trees {
		outcomes[t.Metadata.Outcome]++
		members += t.Result.Stats.Members
		virtual += t.Result.Stats.Virtual
		if t.Metadata.Outcome == model.OutcomeFailure {
			logger.Warn("Household failed", zap.String("household_id", id), zap.Any("messages", t.Result.Messages))
		}
	}
	logger.Info("Batch built",
		zap.Int("households", len(trees)),
		zap.Int("members", members),
		zap.Int("virtual_ancestors", virtual),
		zap.Any("outcomes", outcomes),
		zap.Duration("elapsed", elapsed))
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
