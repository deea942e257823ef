// Package uvl imports the Unverified List, a bare three-column feed of
// names and addresses. Rows merge on name alone.
package uvl

import (
	"context"

	"github.com/openscreening/cslimport/pkg/countries"
	"github.com/openscreening/cslimport/pkg/csl"
	"github.com/openscreening/cslimport/pkg/dedup"
	"github.com/openscreening/cslimport/pkg/sources"
)

const (
	abbr       = "uvl"
	sourceName = "Unverified List (UVL) - Bureau of Industry and Security"

	defaultURL = "https://www.bis.doc.gov/index.php/component/docman/?task=doc_download&gid=1053"
	listURL    = "https://www.bis.doc.gov/index.php/policy-guidance/lists-of-parties-of-concern/unverified-list"
)

var expectedHeaders = []string{"COUNTRY", "NAME", "ADDRESS"}

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

	deps.Log.Infof("%s: processing data file", abbr)
	table, err := sources.ReadTable(resp.Body, ',')
	if err != nil {
		return nil, err
	}
	deps.Log.Infof("%s: checking header", abbr)
	if err := table.RequireHeaderSuperset(expectedHeaders); err != nil {
		return nil, err
	}

	acc := dedup.NewAccumulator()
	for _, row := range table.Rows {
		acc.Add(dedup.Key(row["NAME"]), row, &csl.Address{
			Address: csl.Ptr(row["ADDRESS"]),
			Country: csl.Ptr(countries.Code(row["COUNTRY"])),
		})
	}

	records := []csl.Record{}
	for _, e := range acc.Entries() {
		records = append(records, csl.Record{
			ID:                   e.Key,
			Source:               sourceName,
			Name:                 e.First["NAME"],
			AltNames:             []string{},
			Addresses:            e.Addresses,
			SourceListURL:        listURL,
			SourceInformationURL: listURL,
		})
	}

	if err := sources.Publish(ctx, deps.Store, deps.Log, abbr, records, resp.LastModified); err != nil {
		return nil, err
	}
	return &sources.Result{EntityCount: len(records), LastModified: resp.LastModified}, nil
}
