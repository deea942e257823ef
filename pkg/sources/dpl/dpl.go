// Package dpl imports the Commerce Department's Denied Persons List, a
// tab-delimited feed where one entity appears once per address.
package dpl

import (
	"context"

	"github.com/openscreening/cslimport/pkg/csl"
	"github.com/openscreening/cslimport/pkg/dates"
	"github.com/openscreening/cslimport/pkg/dedup"
	"github.com/openscreening/cslimport/pkg/sources"
)

const (
	abbr       = "dpl"
	sourceName = "Denied Persons List (DPL) - Bureau of Industry and Security"

	defaultURL     = "https://www.bis.doc.gov/dpl/dpl.txt"
	listURL        = "https://www.bis.doc.gov/index.php/the-denied-persons-list"
	informationURL = "https://www.bis.doc.gov/index.php/policy-guidance/lists-of-parties-of-concern/denied-persons-list"
)

var expectedHeaders = []string{
	"Name", "Street_Address", "City", "State", "Country", "Postal_Code",
	"Effective_Date", "Expiration_Date", "Standard_Order", "Last_Update",
	"Action", "FR_Citation",
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
	table, err := sources.ReadTable(resp.Body, '\t')
	if err != nil {
		return nil, err
	}
	deps.Log.Infof("%s: checking header", abbr)
	if err := table.RequireHeaders(expectedHeaders); err != nil {
		return nil, err
	}

	acc := dedup.NewAccumulator()
	for _, row := range table.Rows {
		key := dedup.Key(row["Name"], row["FR_Citation"])
		acc.Add(key, row, &csl.Address{
			Address:    csl.Ptr(row["Street_Address"]),
			City:       csl.Ptr(row["City"]),
			State:      csl.Ptr(row["State"]),
			PostalCode: csl.Ptr(row["Postal_Code"]),
			Country:    csl.Ptr(row["Country"]),
		})
	}

	records := []csl.Record{}
	for _, e := range acc.Entries() {
		row := e.First
		records = append(records, csl.Record{
			ID:                    e.Key,
			Source:                sourceName,
			Name:                  row["Name"],
			Addresses:             e.Addresses,
			FederalRegisterNotice: csl.Ptr(row["FR_Citation"]),
			StartDate:             csl.Ptr(dates.ParseAmericanDate(row["Effective_Date"])),
			EndDate:               csl.Ptr(dates.ParseAmericanDate(row["Expiration_Date"])),
			StandardOrder:         csl.Ptr(row["Standard_Order"]),
			Remarks:               csl.Ptr(row["Action"]),
			SourceListURL:         listURL,
			SourceInformationURL:  informationURL,
		})
	}

	if err := sources.Publish(ctx, deps.Store, deps.Log, abbr, records, resp.LastModified); err != nil {
		return nil, err
	}
	return &sources.Result{EntityCount: len(records), LastModified: resp.LastModified}, nil
}
