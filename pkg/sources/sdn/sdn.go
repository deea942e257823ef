// Package sdn imports the Specially Designated Nationals list from the
// legacy OFAC XML feed. Individual names in that feed are written
// surname-first.
package sdn

import (
	"bytes"
	"context"

	"github.com/openscreening/cslimport/pkg/csl"
	"github.com/openscreening/cslimport/pkg/sdnxml"
	"github.com/openscreening/cslimport/pkg/sources"
)

const (
	abbr       = "sdn"
	sourceName = "Specially Designated Nationals (SDN) - Treasury Department"

	defaultURL     = "https://www.treasury.gov/ofac/downloads/sdn.xml"
	listURL        = "https://www.treasury.gov/resource-center/sanctions/SDN-List/Pages/default.aspx"
	informationURL = "https://home.treasury.gov/policy-issues/financial-sanctions/specially-designated-nationals-and-blocked-persons-list-sdn-human-readable-lists"
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
		rec := entry.ToRecord(sdnxml.LastFirst)
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
