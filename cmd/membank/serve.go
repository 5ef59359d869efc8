package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	membankmcp "github.com/gorewood/membank/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run membank as a Model Context Protocol (MCP) server over stdio.

The template, target directory and overwrite policy are resolved once at
startup from flags, environment and config files, exactly as for init.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "membank": {
        "command": "membank",
        "args": ["serve"]
      }
    }
  }

Available tools: sections, extract, install, prompt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := newRunEnv(cmd)
			if err != nil {
				return err
			}
			doc, err := env.loadTemplate()
			if err != nil {
				return err
			}

			server := membankmcp.NewServer(buildVersion(), membankmcp.Settings{
				Root:       env.root,
				Template:   doc,
				Policy:     env.cfg.Policy(),
				PromptPath: env.cfg.PromptPath,
				Logger:     env.logger,
				Now:        now,
			})
			env.logger.Debug("mcp server starting", "root", env.root, "template", doc.Describe())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
