// Package isn imports the State Department's nonproliferation sanctions
// list. An entity sanctioned under several statutes appears once per
// designation; the rows merge on name plus Federal Register citation with
// their programs accumulated.
package isn

import (
	"context"
	"strings"

	"github.com/openscreening/cslimport/pkg/csl"
	"github.com/openscreening/cslimport/pkg/dates"
	"github.com/openscreening/cslimport/pkg/dedup"
	"github.com/openscreening/cslimport/pkg/sources"
)

const (
	abbr       = "isn"
	sourceName = "Nonproliferation Sanctions (ISN) - State Department"

	defaultURL     = "https://csldata.blob.core.windows.net/csltempdata/sanctions.csv"
	informationURL = "https://www.state.gov/key-topics-bureau-of-international-security-and-nonproliferation/nonproliferation-sanctions/"
)

var expectedHeaders = []string{
	"Source List", "Programs",
	"Name", "Alternative Names", "Country",
	"Federal Register Notice", "Effective Date",
	"Remarks/Notes", "Web Link",
}

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
	if err := table.RequireHeaders(expectedHeaders); err != nil {
		return nil, err
	}

	acc := dedup.NewAccumulator()
	for _, row := range table.Rows {
		key := dedup.Key(row["Name"], row["Federal Register Notice"])
		acc.Add(key, row, nil, row["Programs"])
	}

	records := []csl.Record{}
	for _, e := range acc.Entries() {
		row := e.First
		records = append(records, csl.Record{
			ID:                    e.Key,
			Source:                sourceName,
			Programs:              e.Programs,
			Name:                  row["Name"],
			AltNames:              splitAltNames(row["Alternative Names"]),
			FederalRegisterNotice: csl.Ptr(row["Federal Register Notice"]),
			StartDate:             csl.Ptr(dates.ParseAmericanDate(row["Effective Date"])),
			Remarks:               csl.Ptr(row["Remarks/Notes"]),
			SourceListURL:         informationURL,
			SourceInformationURL:  informationURL,
		})
	}

	if err := sources.Publish(ctx, deps.Store, deps.Log, abbr, records, resp.LastModified); err != nil {
		return nil, err
	}
	return &sources.Result{EntityCount: len(records), LastModified: resp.LastModified}, nil
}

// splitAltNames breaks the feed's prose-style "A, and B" name strings
// into a list.
func splitAltNames(s string) []string {
	s = strings.ReplaceAll(s, ", and", ",")
	if s == "" {
		return nil
	}
	return strings.Split(s, ", ")
}
