// Package meu imports the Military End User list. The upstream CSV is
// ISO-8859-1 encoded and names only Chinese parties, so every address is
// assigned the CN country code.
package meu

import (
	"context"
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/openscreening/cslimport/pkg/csl"
	"github.com/openscreening/cslimport/pkg/dates"
	"github.com/openscreening/cslimport/pkg/sources"
)

const (
	abbr       = "meu"
	sourceName = "Military End User (MEU) List - Bureau of Industry and Security"

	defaultURL = "https://www.bis.doc.gov/meu/meu.csv"
	listURL    = "https://www.bis.doc.gov/index.php/policy-guidance/lists-of-parties-of-concern"
)

var expectedHeaders = []string{
	"Source List", "Entity Number", "SDN Type",
	"Programs", "Name", "Title", "Address",
	"City", "State/Province", "Postal Code", "Country",
	"Federal Register Notice", "Effective Date",
	"Date Lifted/Waived/Expired", "Standard Order", "License Requirement",
	"License Policy", "Call Sign", "Vessel Type", "Gross Tonnage",
	"Gross Register Tonnage", "Vessel Flag", "Vessel Owner",
	"Remarks/Notes", "Address Number", "Address Remarks",
	"Alternate Number", "Alternate Type", "Alternate Name",
	"Alternate Remarks", "Web Link",
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
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: decode latin-1: %w", abbr, err)
	}
	table, err := sources.ReadTable(decoded, ',')
	if err != nil {
		return nil, err
	}
	deps.Log.Infof("%s: checking header", abbr)
	if err := table.RequireHeaders(expectedHeaders); err != nil {
		return nil, err
	}

	records := []csl.Record{}
	for _, row := range table.Rows {
		cn := "CN"
		altNames := []string{}
		if row["Alternate Name"] != "" {
			altNames = append(altNames, row["Alternate Name"])
		}
		records = append(records, csl.Record{
			ID:       sources.NewID(),
			Source:   sourceName,
			Name:     row["Name"],
			AltNames: altNames,
			Addresses: []csl.Address{{
				Address:    csl.Ptr(row["Address"]),
				City:       csl.Ptr(row["City"]),
				State:      csl.Ptr(row["State/Province"]),
				PostalCode: csl.Ptr(row["Postal Code"]),
				Country:    &cn,
			}},
			FederalRegisterNotice: csl.Ptr(row["Federal Register Notice"]),
			StartDate:             csl.Ptr(dates.ParseAmericanDate(row["Effective Date"])),
			LicenseRequirement:    csl.Ptr(row["License Requirement"]),
			LicensePolicy:         csl.Ptr(row["License Policy"]),
			StandardOrder:         csl.Ptr(row["Standard Order"]),
			SourceListURL:         listURL,
			SourceInformationURL:  listURL,
		})
	}

	if err := sources.Publish(ctx, deps.Store, deps.Log, abbr, records, resp.LastModified); err != nil {
		return nil, err
	}
	return &sources.Result{EntityCount: len(records), LastModified: resp.LastModified}, nil
}
