package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/surge/internal/dashboard"
	"github.com/blackcoderx/surge/internal/funcs"
	"github.com/blackcoderx/surge/internal/funcs/builtin"
	"github.com/blackcoderx/surge/internal/listeners"
	"github.com/blackcoderx/surge/internal/loader"
	"github.com/blackcoderx/surge/internal/runtime"
	"github.com/blackcoderx/surge/pkg/llm"
)

var (
	runQuiet     bool
	runTUI       bool
	runAPIKey    string
	runWaitToDie time.Duration
	runSavePath  string
)

var runCmd = &cobra.Command{
	Use:   "run <plan.yaml>",
	Short: "Compile and execute a test plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runQuiet, "quiet", false, "suppress the per-sample console listener")
	runCmd.Flags().BoolVar(&runTUI, "tui", false, "show a live bubbletea progress display instead of console lines")
	runCmd.Flags().StringVar(&runAPIKey, "ai-judge-key", "", "Gemini API key enabling the __aiJudge() function (falls back to $SURGE_AI_JUDGE_KEY)")
	runCmd.Flags().DurationVar(&runWaitToDie, "wait-to-die", 0, "grace period for in-flight samples on graceful stop (0 uses the engine default)")
	runCmd.Flags().StringVar(&runSavePath, "save", "", "write the aggregate summary as JSON to this path, for later `surge report`")
}

func runRun(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading plan: %w", err)
	}

	nodes, err := loader.DetectAndConvert(data)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}

	reg := funcs.NewRegistry()
	builtin.Register(reg)
	key := runAPIKey
	if key == "" {
		key = os.Getenv("SURGE_AI_JUDGE_KEY")
	}
	if key != "" {
		client, err := newAIJudgeClient(key)
		if err != nil {
			return fmt.Errorf("ai judge: %w", err)
		}
		builtin.RegisterAI(reg, client)
	}

	builder := loader.NewBuilder(reg)
	root, err := builder.Build(nodes)
	if err != nil {
		return fmt.Errorf("building tree: %w", err)
	}

	agg := listeners.NewAggregateListener()
	root.Add(agg)

	if runTUI {
		l, prog := dashboard.NewListener()
		root.Add(l)
		go func() {
			_, _ = prog.Run()
		}()
		defer prog.Quit()
	} else if !runQuiet {
		root.Add(listeners.NewConsoleListener(os.Stdout))
	}

	cfg := runtime.Config{}
	if runWaitToDie > 0 {
		cfg.WaitToDie = runWaitToDie
	}

	engine := runtime.NewEngine(root, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := engine.Start(ctx); err != nil {
		return fmt.Errorf("running plan: %w", err)
	}

	stats := agg.Finalize()
	fmt.Println(dashboard.RenderSummary(stats))

	if runSavePath != "" {
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling summary: %w", err)
		}
		if err := os.WriteFile(runSavePath, out, 0o644); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}
	return nil
}

func newAIJudgeClient(apiKey string) (llm.LLMClient, error) {
	return llm.NewGeminiClient(apiKey, "")
}
