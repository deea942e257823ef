package sanctions

import (
	"fmt"
	"strings"
)

// refEntry is one reference-table row. Every entry carries ID and Value;
// the Country table additionally carries ISO2 and the PartySubType table a
// parent PartyTypeID.
type refEntry struct {
	ID          int
	Value       string
	ISO2        string
	PartyTypeID int
}

// refTable maps integer code to entry for one reference category.
type refTable map[int]refEntry

func (t refTable) lookup(category string, id int) (refEntry, error) {
	e, ok := t[id]
	if !ok {
		return refEntry{}, fmt.Errorf("%s: unknown reference id %d", category, id)
	}
	return e, nil
}

// referenceTables holds every lookup table of one document, built once per
// parse and never mutated afterwards.
type referenceTables struct {
	aliasTypes       refTable
	countries        refTable
	detailReferences refTable
	detailTypes      refTable
	featureTypes     refTable
	idRegDocTypes    refTable
	lists            refTable
	locPartTypes     refTable
	namePartTypes    refTable
	partySubTypes    refTable
	partyTypes       refTable
	programs         refTable

	// Reverse index for COUNTRY-typed features, which carry the country
	// display name rather than its code.
	countriesByName map[string]refEntry
}

func buildReferenceTables(rv xmlReferenceValueSets) (referenceTables, error) {
	var refs referenceTables
	var err error

	build := func(category string, values []xmlRefValue) refTable {
		if err != nil {
			return nil
		}
		table := make(refTable, len(values))
		for _, v := range values {
			var id int
			if id, err = requireInt(category, "ID", v.ID); err != nil {
				return nil
			}
			entry := refEntry{ID: id, Value: strings.TrimSpace(v.Text), ISO2: v.ISO2}
			if category == "PartySubType" {
				if entry.PartyTypeID, err = requireInt(category, "PartyTypeID", v.PartyTypeID); err != nil {
					return nil
				}
			}
			table[id] = entry
		}
		return table
	}

	refs.aliasTypes = build("AliasType", rv.AliasTypes)
	refs.countries = build("Country", rv.Countries)
	refs.detailReferences = build("DetailReference", rv.DetailReferences)
	refs.detailTypes = build("DetailType", rv.DetailTypes)
	refs.featureTypes = build("FeatureType", rv.FeatureTypes)
	refs.idRegDocTypes = build("IDRegDocType", rv.IDRegDocTypes)
	refs.lists = build("List", rv.Lists)
	refs.locPartTypes = build("LocPartType", rv.LocPartTypes)
	refs.namePartTypes = build("NamePartType", rv.NamePartTypes)
	refs.partySubTypes = build("PartySubType", rv.PartySubTypes)
	refs.partyTypes = build("PartyType", rv.PartyTypes)
	refs.programs = build("SanctionsProgram", rv.Programs)
	if err != nil {
		return referenceTables{}, err
	}

	refs.countriesByName = make(map[string]refEntry, len(refs.countries))
	for _, e := range refs.countries {
		refs.countriesByName[e.Value] = e
	}

	return refs, nil
}
