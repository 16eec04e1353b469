package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/surge/internal/funcs"
	"github.com/blackcoderx/surge/internal/funcs/builtin"
	"github.com/blackcoderx/surge/internal/loader"
)

var validateCmd = &cobra.Command{
	Use:   "validate <plan.yaml>",
	Short: "Parse and build a test plan without running it",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading plan: %w", err)
	}

	nodes, err := loader.DetectAndConvert(data)
	if err != nil {
		return err
	}

	reg := funcs.NewRegistry()
	builtin.Register(reg)

	builder := loader.NewBuilder(reg)
	root, err := builder.Build(nodes)
	if err != nil {
		return err
	}

	fmt.Printf("plan is valid: %d top-level node(s), %d total\n", len(nodes), root.Size())
	return nil
}
