// Package treasury imports the OFAC non-SDN lists published in the
// advanced sanctions XML format. One download of the consolidated
// advanced file serves four lists; each list is selected by its numeric
// list ID and published as its own source.
package treasury

import (
	"bytes"
	"context"

	"github.com/openscreening/cslimport/pkg/sanctions"
	"github.com/openscreening/cslimport/pkg/sources"
)

// ListURL is the consolidated advanced-format download all non-SDN lists
// share.
const ListURL = "https://www.treasury.gov/ofac/downloads/sanctions/1.0/cons_advanced.xml"

// Metadata identifies one list within the advanced file. ListID is the
// published numeric ID; ListName is the token the list's reference-table
// entry carries, used to re-resolve the ID if the file renumbers lists.
type Metadata struct {
	Abbr           string
	Source         string
	ListID         int
	ListName       string
	InformationURL string
}

var lists = []Metadata{
	{
		Abbr:           "cap",
		Source:         "Capta List (CAP) - Treasury Department",
		ListID:         91763,
		ListName:       "CAPTA",
		InformationURL: "https://ofac.treasury.gov/consolidated-sanctions-list-non-sdn-lists/list-of-foreign-financial-institutions-subject-to-correspondent-account-or-payable-through-account-sanctions-capta-list",
	},
	{
		Abbr:           "cmic",
		Source:         "Non-SDN Chinese Military-Industrial Complex Companies List (CMIC) - Treasury Department",
		ListID:         92052,
		ListName:       "CMIC",
		InformationURL: "https://ofac.treasury.gov/consolidated-sanctions-list/ns-cmic-list",
	},
	{
		Abbr:           "fse",
		Source:         "Foreign Sanctions Evaders (FSE) - Treasury Department",
		ListID:         91469,
		ListName:       "FSE",
		InformationURL: "https://ofac.treasury.gov/consolidated-sanctions-list-non-sdn-lists/foreign-sanctions-evaders-fse-list",
	},
	{
		Abbr:           "mbs",
		Source:         "Non-SDN Menu-Based Sanctions List (NS-MBS List) - Treasury Department",
		ListID:         91868,
		ListName:       "Menu-Based Sanctions",
		InformationURL: "https://ofac.treasury.gov/consolidated-sanctions-list-non-sdn-lists/non-sdn-menu-based-sanctions-list-ns-mbs-list",
	},
}

type Importer struct {
	Meta Metadata
	URL  string
}

// New builds an importer for one advanced-format list.
func New(meta Metadata) *Importer {
	return &Importer{Meta: meta, URL: ListURL}
}

// Sources returns importers for every list carried by the advanced file.
func Sources() []*Importer {
	imps := make([]*Importer, 0, len(lists))
	for _, meta := range lists {
		imps = append(imps, New(meta))
	}
	return imps
}

func (i *Importer) Abbr() string   { return i.Meta.Abbr }
func (i *Importer) Source() string { return i.Meta.Source }

func (i *Importer) Run(ctx context.Context, deps sources.Deps) (*sources.Result, error) {
	deps.Log.Infof("%s: checking last updated", i.Meta.Abbr)
	lastModified := sources.Checkpoint(ctx, deps.Store, i.Meta.Abbr)

	resp, err := deps.Fetch.Fetch(ctx, i.URL)
	if err != nil {
		return nil, err
	}
	if lastModified == resp.LastModified {
		return nil, sources.ErrUnchanged
	}

	deps.Log.Infof("%s: parsing advanced sanctions file", i.Meta.Abbr)
	doc, err := sanctions.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, err
	}

	listID := i.resolveListID(doc, deps)
	deps.Log.Infof("%s: processing data for list id %d", i.Meta.Abbr, listID)
	records, err := doc.EntriesByList(listID)
	if err != nil {
		return nil, err
	}
	for j := range records {
		records[j].Source = i.Meta.Source
		records[j].SourceListURL = i.URL
		records[j].SourceInformationURL = i.Meta.InformationURL
	}

	if err := sources.Publish(ctx, deps.Store, deps.Log, i.Meta.Abbr, records, resp.LastModified); err != nil {
		return nil, err
	}
	return &sources.Result{EntityCount: len(records), LastModified: resp.LastModified}, nil
}

// resolveListID checks the configured list ID against the file's own List
// reference table and follows the name match when the file has renumbered
// the list. An unmatched name keeps the configured ID.
func (i *Importer) resolveListID(doc *sanctions.Document, deps sources.Deps) int {
	resolved, err := doc.ListIDByName(i.Meta.ListName)
	if err != nil {
		deps.Log.Warnf("%s: list %q not in reference table, keeping id %d", i.Meta.Abbr, i.Meta.ListName, i.Meta.ListID)
		return i.Meta.ListID
	}
	if resolved != i.Meta.ListID {
		deps.Log.Warnf("%s: list %q renumbered from %d to %d", i.Meta.Abbr, i.Meta.ListName, i.Meta.ListID, resolved)
	}
	return resolved
}
