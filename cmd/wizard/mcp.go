package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/wizard"
	"github.com/aretw0/wizard/internal/cli"
	"github.com/aretw0/wizard/pkg/adapters/mcp"
	"github.com/aretw0/wizard/pkg/loader"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp <tree.yaml>",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes a question tree to AI agents: list the questions, validate a
candidate answer and evaluate tree functions.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		baseURL, _ := cmd.Flags().GetString("base-url")

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		logger := cli.NewLogger(debugFlag(cmd))
		log.SetOutput(os.Stderr)

		resolver, err := cli.NewResolver(resolverOptions(cmd), logger)
		if err != nil {
			log.Fatalf("Error configuring functions: %v", err)
		}

		srv := mcp.NewServer(loader.New().File(args[0]),
			mcp.WithResolver(resolver),
			mcp.WithLogger(logger),
			mcp.WithVersion(wizard.Version),
		)

		switch transport {
		case "stdio":
			logger.Info("Starting Wizard MCP Server (Stdio)")
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP Server execution failed", "err", err)
				os.Exit(1)
			}
		case "sse":
			addr := fmt.Sprintf(":%d", port)
			if baseURL == "" {
				baseURL = fmt.Sprintf("http://localhost:%d", port)
			}

			sigCtx := cli.NewSignalContext(context.Background())
			defer sigCtx.Cancel()

			if err := srv.ServeSSE(sigCtx, addr, baseURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("MCP Server execution failed", "err", err)
				os.Exit(1)
			}
			logger.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().String("base-url", "", "Public base URL announced to SSE clients")
	addResolverFlags(mcpCmd)
}
