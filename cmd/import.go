package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openscreening/cslimport/internal/utils"
	"github.com/openscreening/cslimport/pkg/history"
	"github.com/openscreening/cslimport/pkg/sources"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Fetch, normalize, and publish screening list sources",
	Long: `Fetches each selected source, checks its last-modified marker against the
stored checkpoint, and on change publishes fresh CSV, TSV, and JSON
artifacts. One source failing never blocks the others.`,
	Run: func(cmd *cobra.Command, args []string) {
		selection, _ := cmd.Flags().GetString("source")

		imps, err := selectImporters(selection)
		if err != nil {
			utils.Log.Fatal(err)
		}

		ctx := context.Background()
		deps, err := buildDeps(ctx)
		if err != nil {
			utils.Log.Fatal(err)
		}

		db, err := history.Open(viper.GetString("db.path"))
		if err != nil {
			utils.Log.Fatal(err)
		}
		defer db.Close()

		failed := 0
		for _, imp := range imps {
			run := history.Run{Source: imp.Abbr()}
			res, err := imp.Run(ctx, deps)
			switch {
			case errors.Is(err, sources.ErrUnchanged):
				utils.Log.Infof("%s: no new data, skipping processing", imp.Abbr())
				run.Status = "unchanged"
			case err != nil:
				utils.Log.Errorf("%s: import failed: %s", imp.Abbr(), err)
				run.Status = "failed"
				failed++
			default:
				utils.Log.Infof("%s: imported %d entities", imp.Abbr(), res.EntityCount)
				run.Status = "imported"
				run.EntityCount = res.EntityCount
				run.LastModified = res.LastModified
			}
			if err := db.RecordRun(ctx, run); err != nil {
				utils.Log.Warnf("%s: recording run: %s", imp.Abbr(), err)
			}
		}
		if failed > 0 {
			utils.Log.Fatalf("%d of %d sources failed", failed, len(imps))
		}
	},
}

// selectImporters resolves the --source flag: "all" or a comma-separated
// list of source abbreviations.
func selectImporters(selection string) ([]sources.Importer, error) {
	imps := allImporters()
	if selection == "all" {
		return imps, nil
	}

	byAbbr := map[string]sources.Importer{}
	for _, imp := range imps {
		byAbbr[imp.Abbr()] = imp
	}

	selected := []sources.Importer{}
	for _, abbr := range strings.Split(selection, ",") {
		abbr = strings.TrimSpace(abbr)
		imp, ok := byAbbr[abbr]
		if !ok {
			return nil, errors.New("unknown source: " + abbr)
		}
		selected = append(selected, imp)
	}
	return selected, nil
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("source", "s", "all", "Sources to import, comma separated (Available: all, cap, cmic, dpl, dtc, el, fse, isn, mbs, meu, plc, sdn, uvl)")
}
