package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/openscreening/cslimport/internal/utils"
	"github.com/openscreening/cslimport/pkg/consolidate"
)

// consolidateCmd represents the consolidate command
var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Build the consolidated cross-source index",
	Long: `Reads every published per-source JSON artifact and writes consolidated.json:
all entities in one document plus a manifest of when each source last
changed upstream.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := buildDeps(ctx)
		if err != nil {
			utils.Log.Fatal(err)
		}

		srcs := consolidate.FromImporters(allImporters())
		if err := consolidate.Run(ctx, deps.Store, utils.Log, srcs); err != nil {
			utils.Log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(consolidateCmd)
}
