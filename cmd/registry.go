package cmd

import (
	"context"

	"github.com/spf13/viper"

	"github.com/openscreening/cslimport/internal/utils"
	"github.com/openscreening/cslimport/pkg/fetch"
	"github.com/openscreening/cslimport/pkg/sources"
	"github.com/openscreening/cslimport/pkg/sources/dpl"
	"github.com/openscreening/cslimport/pkg/sources/dtc"
	"github.com/openscreening/cslimport/pkg/sources/el"
	"github.com/openscreening/cslimport/pkg/sources/isn"
	"github.com/openscreening/cslimport/pkg/sources/meu"
	"github.com/openscreening/cslimport/pkg/sources/plc"
	"github.com/openscreening/cslimport/pkg/sources/sdn"
	"github.com/openscreening/cslimport/pkg/sources/treasury"
	"github.com/openscreening/cslimport/pkg/sources/uvl"
	"github.com/openscreening/cslimport/pkg/store"
)

// allImporters builds every registered importer with config overrides
// applied, in the order their artifacts appear in the consolidated index.
func allImporters() []sources.Importer {
	imps := []sources.Importer{}
	for _, t := range treasury.Sources() {
		imps = append(imps, t)
	}
	imps = append(imps,
		dpl.New(), dtc.New(), el.New(), isn.New(),
		meu.New(), plc.New(), sdn.New(), uvl.New(),
	)
	for _, imp := range imps {
		applyURLOverride(imp)
	}
	return imps
}

// applyURLOverride points an importer at a configured URL instead of the
// canonical upstream one. Useful for mirrors and for replaying captured
// files.
func applyURLOverride(imp sources.Importer) {
	url := viper.GetString("sources." + imp.Abbr() + ".url")
	switch v := imp.(type) {
	case *dpl.Importer:
		if url != "" {
			v.URL = url
		}
	case *el.Importer:
		if url != "" {
			v.URL = url
		}
	case *isn.Importer:
		if url != "" {
			v.URL = url
		}
	case *meu.Importer:
		if url != "" {
			v.URL = url
		}
	case *plc.Importer:
		if url != "" {
			v.URL = url
		}
	case *sdn.Importer:
		if url != "" {
			v.URL = url
		}
	case *uvl.Importer:
		if url != "" {
			v.URL = url
		}
	case *treasury.Importer:
		if url != "" {
			v.URL = url
		}
	case *dtc.Importer:
		if u := viper.GetString("sources.dtc.statutory_url"); u != "" {
			v.StatutoryURL = u
		}
		if u := viper.GetString("sources.dtc.admin_url"); u != "" {
			v.AdminURL = u
		}
	}
}

// buildDeps assembles the shared collaborators from config: the retrying
// HTTP client and either the S3 store (when a bucket is configured) or the
// local directory store.
func buildDeps(ctx context.Context) (sources.Deps, error) {
	var (
		st  store.Store
		err error
	)
	if bucket := viper.GetString("s3.bucket"); bucket != "" {
		st, err = store.NewS3(ctx, bucket, viper.GetString("s3.region"), viper.GetString("s3.prefix"))
	} else {
		st, err = store.NewDir(viper.GetString("store.dir"))
	}
	if err != nil {
		return sources.Deps{}, err
	}
	return sources.Deps{
		Fetch: fetch.New(viper.GetString("http.useragent")),
		Store: st,
		Log:   utils.Log,
	}, nil
}
