// Package consolidate assembles the cross-source index: every per-source
// JSON artifact concatenated into one document with a manifest describing
// when each source last changed upstream.
package consolidate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/openscreening/cslimport/pkg/sources"
	"github.com/openscreening/cslimport/pkg/store"
)

// OutputName is the blob the consolidated index is written to.
const OutputName = "consolidated.json"

const (
	importRate      = "Hourly"
	timestampLayout = "2006-01-02T15:04:05+00:00"
)

// Source is one entry of the consolidation manifest. Checkpoint names the
// stored last-modified marker, which is usually the source abbreviation
// but not always: dtc tracks two upstream documents and is represented by
// its statutory marker.
type Source struct {
	Abbr       string
	Name       string
	Checkpoint string
}

// FromImporters derives the manifest sources from the importer registry.
func FromImporters(imps []sources.Importer) []Source {
	out := make([]Source, 0, len(imps))
	for _, imp := range imps {
		s := Source{Abbr: imp.Abbr(), Name: imp.Source(), Checkpoint: imp.Abbr()}
		if s.Abbr == "dtc" {
			s.Checkpoint = "dtc_stat"
		}
		out = append(out, s)
	}
	return out
}

// index is the consolidated document. Field order mirrors the published
// file layout.
type index struct {
	Results           []json.RawMessage `json:"results"`
	SearchPerformedAt string            `json:"search_performed_at"`
	SourcesUsed       []sourceUsed      `json:"sources_used"`
	Offset            int               `json:"offset"`
	Total             int               `json:"total"`
}

type sourceUsed struct {
	LastImported      string  `json:"last_imported"`
	SourceLastUpdated *string `json:"source_last_updated"`
	Source            string  `json:"source"`
	ImportRate        string  `json:"import_rate"`
}

// Run reads each source's JSON artifact and checkpoint from st and writes
// the consolidated index back to st. Sources with no published artifact
// yet are skipped; a checkpoint that cannot be interpreted as a timestamp
// yields a null source_last_updated.
func Run(ctx context.Context, st store.Store, log *logrus.Logger, srcs []Source) error {
	now := time.Now().UTC().Format(timestampLayout)

	idx := index{
		Results:           []json.RawMessage{},
		SearchPerformedAt: now,
		SourcesUsed:       []sourceUsed{},
	}

	for _, src := range srcs {
		data, err := st.Get(ctx, src.Abbr+".json")
		if errors.Is(err, store.ErrNotFound) {
			log.Warnf("consolidate: no artifact for %s, skipping", src.Abbr)
			continue
		}
		if err != nil {
			return fmt.Errorf("consolidate: read %s artifact: %w", src.Abbr, err)
		}

		count := 0
		for _, doc := range gjson.ParseBytes(data).Array() {
			idx.Results = append(idx.Results, json.RawMessage(doc.Raw))
			count++
		}
		log.Infof("consolidate: %s contributed %d entities", src.Abbr, count)

		idx.SourcesUsed = append(idx.SourcesUsed, sourceUsed{
			LastImported:      now,
			SourceLastUpdated: lastUpdated(ctx, st, src.Checkpoint),
			Source:            src.Name,
			ImportRate:        importRate,
		})
	}
	idx.Total = len(idx.Results)

	data, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("consolidate: marshal index: %w", err)
	}
	log.Infof("consolidate: writing %s with %d entities", OutputName, idx.Total)
	return st.Put(ctx, OutputName, "application/json", data)
}

func lastUpdated(ctx context.Context, st store.Store, checkpoint string) *string {
	marker := sources.Checkpoint(ctx, st, checkpoint)
	ts, err := ParseMarker(marker)
	if err != nil {
		return nil
	}
	return &ts
}

// markerLayouts covers the two checkpoint shapes: the verbatim
// Last-Modified header most sources store, and the dotted filename date
// the dtc export uses.
var markerLayouts = []string{
	time.RFC1123,    // Mon, 02 Jan 2006 15:04:05 GMT
	time.RFC1123Z,   // Mon, 02 Jan 2006 15:04:05 -0700
	"1.2.06",
}

// ParseMarker renders a stored checkpoint value as an RFC 3339 timestamp.
func ParseMarker(marker string) (string, error) {
	for _, layout := range markerLayouts {
		if t, err := time.Parse(layout, marker); err == nil {
			return t.Format(timestampLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized checkpoint value %q", marker)
}
