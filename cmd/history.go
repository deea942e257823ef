package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openscreening/cslimport/internal/utils"
	"github.com/openscreening/cslimport/pkg/history"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent import runs",
	Long:  "Prints the most recent import runs recorded in the local run database, newest first.",
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		db, err := history.Open(viper.GetString("db.path"))
		if err != nil {
			utils.Log.Fatal(err)
		}
		defer db.Close()

		runs, err := db.Runs(context.Background(), limit)
		if err != nil {
			utils.Log.Fatal(err)
		}

		for _, r := range runs {
			fmt.Printf("%s\t%s\t%s\t%d\t%s\n",
				r.RanAt.Format("2006-01-02 15:04:05"), r.Source, r.Status, r.EntityCount, r.LastModified)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of runs to print")
}
