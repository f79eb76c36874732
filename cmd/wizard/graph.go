package main

import (
	"fmt"
	"os"

	"github.com/aretw0/wizard/internal/cli"
	"github.com/aretw0/wizard/internal/presentation/graph"
	"github.com/aretw0/wizard/pkg/loader"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <tree.yaml>",
	Short: "Export the question tree as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph TD) of the tree. Conditional edges are
labeled with their rules. With --answers, answered questions are highlighted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root, err := loader.New().LoadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading tree: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.Overlay
		if path, _ := cmd.Flags().GetString("answers"); path != "" {
			answers, err := cli.LoadAnswers(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading answers: %v\n", err)
				os.Exit(1)
			}
			overlay = &graph.Overlay{Answers: answers}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(root, overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("answers", "", "Highlight the questions answered in this YAML or JSON file")
}
