package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/aretw0/wizard"
	"github.com/aretw0/wizard/internal/cli"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/loader"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <tree.yaml>",
	Short: "Check a question tree for consistency",
	Long: `Parses the tree, checks its structure and lists its questions.
Functions that no builtin provides are reported so they can be served
through --resolver-url or --functions.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd.OutOrStdout(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(w io.Writer, path string) error {
	root, err := loader.New().LoadFile(path)
	if err != nil {
		return err
	}

	builtins := cli.Builtins().Methods()
	var external []string
	for _, q := range wizard.Questions(root) {
		fmt.Fprintf(w, "- %s (%s)\n", q.Name, q.Type)
		for _, fn := range functionsOf(q) {
			if !slices.Contains(builtins, fn) && !slices.Contains(external, fn) {
				external = append(external, fn)
			}
		}
	}

	if len(external) > 0 {
		fmt.Fprintf(w, "External functions: %v\n", external)
	}
	fmt.Fprintln(w, "Tree is valid! ✅")
	return nil
}

func functionsOf(q *domain.Question) []string {
	var out []string
	for _, fn := range []*domain.FuncDescriptor{q.Func, q.DefaultFunc, q.OptionsFunc} {
		if fn != nil {
			out = append(out, fn.Method)
		}
	}
	for _, rule := range q.Validation {
		if rf, ok := rule.(domain.RemoteFunc); ok {
			out = append(out, rf.Func.Method)
		}
	}
	return out
}
