package main

import (
	"context"
	"os"

	"github.com/aretw0/wizard/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <tree.yaml>",
	Short: "Answer a question tree interactively",
	Long: `Walks the question tree, prompting for every reachable question.

Exit codes: 0 on success, 1 on error, 2 when going back past the first
question, 130 when cancelled.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		jsonMode, _ := cmd.Flags().GetBool("json")
		seed, _ := cmd.Flags().GetString("seed")
		sessionID, _ := cmd.Flags().GetString("session")
		checkpoint, _ := cmd.Flags().GetBool("checkpoint")
		output, _ := cmd.Flags().GetString("output")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		_, err := cli.Run(sigCtx, cli.RunOptions{
			TreePath:   args[0],
			Plain:      plain,
			JSON:       jsonMode,
			Debug:      debugFlag(cmd),
			SeedPath:   seed,
			SessionID:  sessionID,
			Checkpoint: checkpoint,
			OutputPath: output,
			Store:      storeOptions(cmd),
			Resolver:   resolverOptions(cmd),
		})

		if code := cli.ExitCode(err); code != cli.ExitOK {
			sigCtx.Cancel()
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("plain", false, "Use line-based prompts instead of interactive forms")
	runCmd.Flags().Bool("json", false, "Exchange questions and answers as NDJSON on stdin/stdout")
	runCmd.Flags().String("seed", "", "YAML or JSON file of answers that are not asked again")
	runCmd.Flags().String("session", "", "Persist answers under this session ID and resume it")
	runCmd.Flags().Bool("checkpoint", false, "Save the session after every answered question")
	runCmd.Flags().StringP("output", "o", "", "Write the answers to this file (.json, .yaml)")
	addStoreFlags(runCmd)
	addResolverFlags(runCmd)
}
