package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/wizard/internal/cli"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored answer sessions",
	Long:  `List, inspect, and remove the sessions saved by 'run --session'.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored sessions",
	Run: func(cmd *cobra.Command, args []string) {
		p := openStore(cmd)
		defer p.Close()

		sessions, err := p.Repo.List(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No stored sessions found.")
			return
		}

		fmt.Println("Stored Sessions:")
		for _, s := range sessions {
			fmt.Println("- " + s)
		}
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Print the answers of a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sessionID := args[0]
		p := openStore(cmd)
		defer p.Close()

		answers, err := p.Repo.Load(cmd.Context(), sessionID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading session '%s': %v\n", sessionID, err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(answers, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling answers: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := openStore(cmd)
		defer p.Close()
		hasError := false

		for _, sessionID := range args {
			if err := p.Repo.Delete(cmd.Context(), sessionID); err != nil {
				fmt.Fprintf(os.Stderr, "Error removing '%s': %v\n", sessionID, err)
				hasError = true
			} else {
				fmt.Printf("Removed session '%s'\n", sessionID)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	for _, c := range []*cobra.Command{sessionLsCmd, sessionInspectCmd, sessionRmCmd} {
		addStoreFlags(c)
		sessionCmd.AddCommand(c)
	}
}

func openStore(cmd *cobra.Command) *cli.Persistence {
	p, err := cli.OpenRepository(storeOptions(cmd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	return p
}
