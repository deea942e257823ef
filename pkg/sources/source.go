// Package sources defines the common interface every list importer
// implements, plus the pipeline helpers they share: checkpoint handling,
// delimited-file validation, and artifact publishing.
package sources

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/openscreening/cslimport/pkg/csl"
	"github.com/openscreening/cslimport/pkg/fetch"
	"github.com/openscreening/cslimport/pkg/store"
)

// ErrUnchanged signals that the upstream document's last-modified marker
// matches the stored checkpoint: the run is a no-op, not a failure.
var ErrUnchanged = errors.New("source unchanged since last import")

// Deps carries the collaborators an importer needs. The core never reads
// ambient process state; everything arrives through here.
type Deps struct {
	Fetch fetch.Client
	Store store.Store
	Log   *logrus.Logger
}

// Result summarizes one completed import.
type Result struct {
	EntityCount  int
	LastModified string
}

// Importer is one ingestion source. Run either publishes the full artifact
// set for the source or returns an error with nothing written; it must
// never publish partial output.
type Importer interface {
	Abbr() string
	Source() string
	Run(ctx context.Context, deps Deps) (*Result, error)
}

// NewID returns a random 32-character hex identifier. Sources whose feeds
// carry no stable entity key mint one per record.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Checkpoint reads the stored last-modified marker for abbr. A missing or
// unreadable checkpoint reads as "N/A", which never matches a real
// Last-Modified value and therefore forces a full import.
func Checkpoint(ctx context.Context, st store.Store, name string) string {
	data, err := st.Get(ctx, name+"_meta.txt")
	if err != nil {
		return "N/A"
	}
	return string(data)
}

// Publish renders all three artifact renderings in memory and writes them
// plus the checkpoint. Rendering errors abort before the first write.
func Publish(ctx context.Context, st store.Store, log *logrus.Logger, abbr string, records []csl.Record, lastModified string) error {
	if err := PublishArtifacts(ctx, st, log, abbr, records); err != nil {
		return err
	}
	log.Infof("%s: writing last modified file", abbr)
	return WriteCheckpoint(ctx, st, abbr, lastModified)
}

// PublishArtifacts writes the csv, tsv, and json artifacts but no
// checkpoint. Sources tracking several upstream documents write their
// checkpoints separately.
func PublishArtifacts(ctx context.Context, st store.Store, log *logrus.Logger, abbr string, records []csl.Record) error {
	artifacts, err := csl.Render(records)
	if err != nil {
		return fmt.Errorf("%s: render artifacts: %w", abbr, err)
	}

	log.Infof("%s: writing csv file", abbr)
	if err := st.Put(ctx, abbr+".csv", "text/csv", artifacts.CSV); err != nil {
		return err
	}
	log.Infof("%s: writing tsv file", abbr)
	if err := st.Put(ctx, abbr+".tsv", "text/tsv", artifacts.TSV); err != nil {
		return err
	}
	log.Infof("%s: writing json file", abbr)
	return st.Put(ctx, abbr+".json", "application/json", artifacts.JSON)
}

// WriteCheckpoint stores the last-modified marker under name_meta.txt.
func WriteCheckpoint(ctx context.Context, st store.Store, name, lastModified string) error {
	return st.Put(ctx, name+"_meta.txt", "text/plain", []byte(lastModified))
}
