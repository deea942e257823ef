// Package dtc imports the ITAR debarred list, which arrives as two CSV
// exports: statutory debarments and administrative debarments. Neither
// response carries a Last-Modified header; the change marker is the date
// token embedded in the attachment filename.
package dtc

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/openscreening/cslimport/pkg/csl"
	"github.com/openscreening/cslimport/pkg/fetch"
	"github.com/openscreening/cslimport/pkg/sources"
)

const (
	abbr       = "dtc"
	sourceName = "ITAR Debarred (DTC) - State Department"

	defaultStatutoryURL = "https://www.pmddtc.state.gov/sys_attachment.do?sys_id=5d03bca21b2255102dc36311f54bcb91"
	defaultAdminURL     = "https://www.pmddtc.state.gov/sys_attachment.do?sys_id=d78bbc2f1b8f29d0c6c3866ae54bcbd7"
	informationURL      = "https://www.pmddtc.state.gov/ddtc_public?id=ddtc_kb_article_page&sys_id=c22d1833dbb8d300d0a370131f9619f0"
)

var statutoryHeaders = []string{
	"Party Name", "Date Of Birth", "Federal Register Notice",
	"Notice Date", "Corrected Notice", "Corrected Notice Date",
}

var adminHeaders = []string{
	"Name", "Date", "Charging Letter",
	"Debarment Order", "Federal Register Notice",
}

type Importer struct {
	StatutoryURL string
	AdminURL     string
}

func New() *Importer {
	return &Importer{StatutoryURL: defaultStatutoryURL, AdminURL: defaultAdminURL}
}

func (i *Importer) Abbr() string   { return abbr }
func (i *Importer) Source() string { return sourceName }

func (i *Importer) Run(ctx context.Context, deps sources.Deps) (*sources.Result, error) {
	deps.Log.Infof("%s: checking statutory last updated %s", abbr, i.StatutoryURL)
	statCheckpoint := sources.Checkpoint(ctx, deps.Store, abbr+"_stat")
	statResp, err := deps.Fetch.Fetch(ctx, i.StatutoryURL)
	if err != nil {
		return nil, err
	}
	statMarker, err := dispositionDate(statResp)
	if err != nil {
		return nil, fmt.Errorf("%s: statutory: %w", abbr, err)
	}

	deps.Log.Infof("%s: checking administrative last updated %s", abbr, i.AdminURL)
	adminCheckpoint := sources.Checkpoint(ctx, deps.Store, abbr+"_admin")
	adminResp, err := deps.Fetch.Fetch(ctx, i.AdminURL)
	if err != nil {
		return nil, err
	}
	adminMarker, err := dispositionDate(adminResp)
	if err != nil {
		return nil, fmt.Errorf("%s: administrative: %w", abbr, err)
	}

	if statCheckpoint == statMarker && adminCheckpoint == adminMarker {
		return nil, sources.ErrUnchanged
	}

	deps.Log.Infof("%s: processing statutory data", abbr)
	statTable, err := sources.ReadTable(statResp.Body, ',')
	if err != nil {
		return nil, err
	}
	if err := statTable.RequireHeaders(statutoryHeaders); err != nil {
		return nil, fmt.Errorf("statutory: %w", err)
	}

	deps.Log.Infof("%s: processing administrative data", abbr)
	adminTable, err := sources.ReadTable(adminResp.Body, ',')
	if err != nil {
		return nil, err
	}
	if err := adminTable.RequireHeaders(adminHeaders); err != nil {
		return nil, fmt.Errorf("administrative: %w", err)
	}

	records := []csl.Record{}
	for _, row := range statTable.Rows {
		name, altNames := splitName(row["Party Name"])
		notice := row["Corrected Notice"]
		if notice == "" {
			notice = row["Federal Register Notice"]
		}
		records = append(records, csl.Record{
			ID:                    sources.NewID(),
			Source:                sourceName,
			Name:                  name,
			AltNames:              altNames,
			FederalRegisterNotice: csl.Ptr(notice),
			SourceListURL:         informationURL,
			SourceInformationURL:  informationURL,
		})
	}
	for _, row := range adminTable.Rows {
		records = append(records, csl.Record{
			ID:                    sources.NewID(),
			Source:                sourceName,
			Name:                  row["Name"],
			AltNames:              []string{},
			FederalRegisterNotice: csl.Ptr(row["Federal Register Notice"]),
			SourceListURL:         informationURL,
			SourceInformationURL:  informationURL,
		})
	}

	if err := sources.PublishArtifacts(ctx, deps.Store, deps.Log, abbr, records); err != nil {
		return nil, err
	}
	deps.Log.Infof("%s: writing last modified files", abbr)
	if err := sources.WriteCheckpoint(ctx, deps.Store, abbr+"_stat", statMarker); err != nil {
		return nil, err
	}
	if err := sources.WriteCheckpoint(ctx, deps.Store, abbr+"_admin", adminMarker); err != nil {
		return nil, err
	}
	return &sources.Result{EntityCount: len(records), LastModified: statMarker}, nil
}

var filenameDateRe = regexp.MustCompile(`_(\d{1,2}\.\d{1,2}\.\d{2})`)

// dispositionDate pulls the date token out of the attachment filename,
// e.g. "Statutorily_Debarred_Parties_1.5.23.csv" yields "1.5.23".
func dispositionDate(resp *fetch.Response) (string, error) {
	m := filenameDateRe.FindStringSubmatch(resp.Disposition)
	if m == nil {
		return "", fmt.Errorf("no date token in attachment filename %q", resp.Disposition)
	}
	return m[1], nil
}

var (
	parentheticalRe         = regexp.MustCompile(`\(.*\)`)
	trailingParentheticalRe = regexp.MustCompile(` \(.*\)`)
	akaCleaner              = strings.NewReplacer("(", "", ")", "", "a.k.a. ", "", "aka ", "")
)

// splitName separates a statutory party name from its parenthetical
// also-known-as clause: `Doe, John (a.k.a. Smith, John)` yields the
// canonical name "John Doe" and the alternates.
func splitName(raw string) (string, []string) {
	if strings.Contains(raw, "(a.k.a. ") || strings.Contains(raw, "(aka ") {
		if m := parentheticalRe.FindString(raw); m != "" {
			alts := akaCleaner.Replace(m)
			name := canonicalName(trailingParentheticalRe.ReplaceAllString(raw, ""))
			return name, strings.Split(alts, "; ")
		}
	}
	return canonicalName(raw), []string{}
}

// canonicalName flips "Last, First" to "First Last". Corporate names,
// where the comma precedes "Inc.", stay as written.
func canonicalName(name string) string {
	if strings.Contains(name, "Inc.") {
		return name
	}
	parts := strings.Split(name, ", ")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " ")
}
