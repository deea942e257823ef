// Package el imports the Commerce Department's Entity List. The feed
// repeats an entity once per address, so rows merge on name plus Federal
// Register citation.
package el

import (
	"context"
	"strings"

	"github.com/openscreening/cslimport/pkg/countries"
	"github.com/openscreening/cslimport/pkg/csl"
	"github.com/openscreening/cslimport/pkg/dates"
	"github.com/openscreening/cslimport/pkg/dedup"
	"github.com/openscreening/cslimport/pkg/sources"
)

const (
	abbr       = "el"
	sourceName = "Entity List (EL) - Bureau of Industry and Security"

	defaultURL     = "https://www.bis.doc.gov/index.php/documents/consolidated-entity-list/1072-el-2/file"
	listURL        = "https://www.bis.doc.gov/index.php/policy-guidance/lists-of-parties-of-concern/entity-list"
	informationURL = "https://www.bis.doc.gov/index.php/policy-guidance/lists-of-parties-of-concern/entity-list"
)

// The upstream file occasionally gains informational columns, so the check
// is subset, not equality.
var expectedHeaders = []string{
	"Source List", "Entity Number", "SDN Type",
	"Programs", "Name", "Title", "Address", "City",
	"State/Province", "Postal Code", "Country",
	"Federal Register Notice", "Effective Date",
	"Date Lifted/Waived/Expired", "Standard Order",
	"License Requirement", "License Policy", "Call Sign",
	"Vessel Type", "Gross Tonnage", "Gross Register Tonnage",
	"Vessel Flag", "Vessel Owner", "Remarks/Notes",
	"Address Number", "Address Remarks", "Alternate Number",
	"Alternate Type", "Alternate Name", "Alternate Remarks", "Web Link",
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
	if err := table.RequireHeaderSuperset(expectedHeaders); err != nil {
		return nil, err
	}

	acc := dedup.NewAccumulator()
	for _, row := range table.Rows {
		key := dedup.Key(row["Name"], row["Federal Register Notice"])
		acc.Add(key, row, &csl.Address{
			Address:    csl.Ptr(row["Address"]),
			City:       csl.Ptr(row["City"]),
			State:      csl.Ptr(row["State/Province"]),
			PostalCode: csl.Ptr(row["Postal Code"]),
			Country:    csl.Ptr(countries.Code(strings.TrimSpace(row["Country"]))),
		})
	}

	records := []csl.Record{}
	for _, e := range acc.Entries() {
		row := e.First
		records = append(records, csl.Record{
			ID:                     e.Key,
			Source:                 sourceName,
			Name:                   row["Name"],
			AltNames:               splitAltNames(row["Alternate Name"]),
			Addresses:              e.Addresses,
			FederalRegisterNotice:  csl.Ptr(row["Federal Register Notice"]),
			StartDate:              csl.Ptr(dates.ParseAmericanDate(effectiveDate(row["Effective Date"]))),
			StandardOrder:          csl.Ptr(row["Standard Order"]),
			LicensePolicy:          csl.Ptr(row["License Policy"]),
			LicenseRequirement:     csl.Ptr(row["License Requirement"]),
			CallSign:               csl.Ptr(row["Call Sign"]),
			VesselType:             csl.Ptr(row["Vessel Type"]),
			GrossTonnage:           csl.Ptr(row["Gross Tonnage"]),
			GrossRegisteredTonnage: csl.Ptr(row["Gross Register Tonnage"]),
			VesselFlag:             csl.Ptr(row["Vessel Flag"]),
			VesselOwner:            csl.Ptr(row["Vessel Owner"]),
			Remarks:                csl.Ptr(row["Remarks/Notes"]),
			SourceListURL:          listURL,
			SourceInformationURL:   informationURL,
		})
	}

	if err := sources.Publish(ctx, deps.Store, deps.Log, abbr, records, resp.LastModified); err != nil {
		return nil, err
	}
	return &sources.Result{EntityCount: len(records), LastModified: resp.LastModified}, nil
}

// effectiveDate trims the qualifiers some rows append after the date
// ("5/9/2019; 6/24/2019", "8/1/2018, effective...") down to the first
// date token.
func effectiveDate(s string) string {
	for _, sep := range []string{";", ",", ":"} {
		s = strings.SplitN(s, sep, 2)[0]
	}
	return s
}

// splitAltNames turns the feed's "A; and B"-style alternate-name strings
// into a list.
func splitAltNames(s string) []string {
	s = strings.ReplaceAll(s, "; and", ";")
	if s == "" {
		return nil
	}
	return strings.Split(s, "; ")
}
