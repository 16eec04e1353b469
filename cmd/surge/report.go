package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/blackcoderx/surge/internal/dashboard"
	"github.com/blackcoderx/surge/internal/listeners"
)

var reportCopy bool

var reportCmd = &cobra.Command{
	Use:   "report <summary.json>",
	Short: "Re-render a summary saved by `surge run --save`",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportCopy, "copy", false, "copy the rendered report to the clipboard instead of printing it")
}

func runReport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading summary: %w", err)
	}

	var stats map[string]listeners.SamplerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return fmt.Errorf("parsing summary: %w", err)
	}

	rendered := dashboard.RenderSummary(stats)
	if reportCopy {
		if err := clipboard.WriteAll(rendered); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Println("report copied to clipboard")
		return nil
	}

	fmt.Println(rendered)
	return nil
}
