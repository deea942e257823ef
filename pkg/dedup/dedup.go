// Package dedup merges physical rows of flat-file sources that refer to the
// same entity. Those feeds repeat an entity once per address (and sometimes
// once per program) with no stable identifier, so identity is a content
// fingerprint over normalized name plus a source-specific disambiguator.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/openscreening/cslimport/pkg/csl"
)

// Row is one parsed delimited-file record, keyed by header name.
type Row map[string]string

// Key computes the content fingerprint for a set of field values: each part
// lower-cased and trimmed, concatenated, then hashed to a fixed width so
// near-duplicate inputs can't leak through as distinguishable keys.
func Key(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToLower(strings.TrimSpace(p)))
	}
	sum := sha256.Sum224([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Entry is the accumulated record for one key. Scalar fields live in First,
// the first-seen row; addresses and programs accumulate across all rows
// that share the key, in encounter order.
type Entry struct {
	Key       string
	First     Row
	Addresses []csl.Address
	Programs  []string
}

// Accumulator performs the single-pass, in-order merge. First occurrence of
// a key wins all scalar fields; rows are never merged across distinct keys.
type Accumulator struct {
	order []string
	byKey map[string]*Entry
}

func NewAccumulator() *Accumulator {
	return &Accumulator{byKey: make(map[string]*Entry)}
}

// Add folds one row into the accumulator. addr, when non-nil, is appended
// to the entry's address list; programs are appended skipping values the
// entry already carries.
func (a *Accumulator) Add(key string, row Row, addr *csl.Address, programs ...string) *Entry {
	e, ok := a.byKey[key]
	if !ok {
		e = &Entry{Key: key, First: row}
		a.byKey[key] = e
		a.order = append(a.order, key)
	}
	if addr != nil {
		e.Addresses = append(e.Addresses, *addr)
	}
	for _, p := range programs {
		if !contains(e.Programs, p) {
			e.Programs = append(e.Programs, p)
		}
	}
	return e
}

// Entries returns the merged entries in first-seen order.
func (a *Accumulator) Entries() []*Entry {
	out := make([]*Entry, 0, len(a.order))
	for _, k := range a.order {
		out = append(out, a.byKey[k])
	}
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
