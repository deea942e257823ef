// Package plc imports the Palestinian Legislative Council list. There is
// no standalone upstream file: the entries ride inside OFAC's consolidated
// non-SDN document and are selected by their NS-PLC program tag. Names in
// the consolidated file are written given-name first.
package plc

import (
	"bytes"
	"context"
	"slices"

	"github.com/openscreening/cslimport/pkg/csl"
	"github.com/openscreening/cslimport/pkg/sdnxml"
	"github.com/openscreening/cslimport/pkg/sources"
)

const (
	abbr       = "plc"
	sourceName = "Palestinian Legislative Council List (PLC) - Treasury Department"

	defaultURL     = "https://www.treasury.gov/ofac/downloads/consolidated/consolidated.xml"
	listURL        = defaultURL
	informationURL = "https://home.treasury.gov/policy-issues/financial-sanctions/consolidated-sanctions-list/non-sdn-palestinian-legislative-council-ns-plc-list"

	programTag = "NS-PLC"
)

type Importer struct {
	URL string
}

func New() *Importer { return &Importer{URL: defaultURL} }

func (i *Importer) Abbr() string   { return abbr }
func (i *Importer) Source() string { return sourceName }

func (i *Importer) Run(ctx context.Context, deps sources.Deps) (*sources.Result, error) {
	deps.Log.Infof("%s: checking last updated", abbr)
	lastModified := sources.Checkpoint(ctx, deps.Store, abbr)

	resp, err := deps.Fetch.Fetch(ctx, i.URL)
	if err != nil {
		return nil, err
	}
	if lastModified == resp.LastModified {
		return nil, sources.ErrUnchanged
	}

	deps.Log.Infof("%s: parsing response", abbr)
	list, err := sdnxml.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, err
	}

	deps.Log.Infof("%s: processing data", abbr)
	records := []csl.Record{}
	for _, entry := range list.Entries {
		rec := entry.ToRecord(sdnxml.FirstLast)
		if !slices.Contains(rec.Programs, programTag) {
			continue
		}
		rec.Source = sourceName
		rec.SourceListURL = listURL
		rec.SourceInformationURL = informationURL
		records = append(records, rec)
	}

	if err := sources.Publish(ctx, deps.Store, deps.Log, abbr, records, resp.LastModified); err != nil {
		return nil, err
	}
	return &sources.Result{EntityCount: len(records), LastModified: resp.LastModified}, nil
}
