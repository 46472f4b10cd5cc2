package cmd

import (
	"github.com/guidepost-dev/guidepost/internal/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Guidepost MCP server",
	Long:  `Launch an MCP server that allows AI agents to refresh guidelines and inspect run history via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The refresh tool supplies its own area per call, so a placeholder
		// keeps shared validation happy without requiring --area here.
		if viper.GetString("area") == "" {
			viper.Set("area", ".")
		}
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
