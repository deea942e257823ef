// Package sanctions parses the Treasury "advanced" sanctions XML dialect:
// a reference-value-set plus distinct-party graph where every attribute is
// a foreign key into a numeric lookup table. Parsing decodes the whole
// document once, builds typed lookup tables and ID-keyed indexes, and then
// extracts flat records per sanctions list.
package sanctions

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Raw XML shapes. Attribute IDs stay strings here; index construction
// converts them and fails the document on anything malformed.

type xmlDocument struct {
	ReferenceValueSets xmlReferenceValueSets `xml:"ReferenceValueSets"`
	Locations          []xmlLocation         `xml:"Locations>Location"`
	IDRegDocuments     []xmlIDRegDocument    `xml:"IDRegDocuments>IDRegDocument"`
	DistinctParties    []xmlDistinctParty    `xml:"DistinctParties>DistinctParty"`
	SanctionsEntries   []xmlSanctionsEntry   `xml:"SanctionsEntries>SanctionsEntry"`
}

type xmlReferenceValueSets struct {
	AliasTypes       []xmlRefValue `xml:"AliasTypeValues>AliasType"`
	Countries        []xmlRefValue `xml:"CountryValues>Country"`
	DetailReferences []xmlRefValue `xml:"DetailReferenceValues>DetailReference"`
	DetailTypes      []xmlRefValue `xml:"DetailTypeValues>DetailType"`
	FeatureTypes     []xmlRefValue `xml:"FeatureTypeValues>FeatureType"`
	IDRegDocTypes    []xmlRefValue `xml:"IDRegDocTypeValues>IDRegDocType"`
	Lists            []xmlRefValue `xml:"ListValues>List"`
	LocPartTypes     []xmlRefValue `xml:"LocPartTypeValues>LocPartType"`
	NamePartTypes    []xmlRefValue `xml:"NamePartTypeValues>NamePartType"`
	PartySubTypes    []xmlRefValue `xml:"PartySubTypeValues>PartySubType"`
	PartyTypes       []xmlRefValue `xml:"PartyTypeValues>PartyType"`
	Programs         []xmlRefValue `xml:"SanctionsProgramValues>SanctionsProgram"`
}

type xmlRefValue struct {
	ID          string `xml:"ID,attr"`
	ISO2        string `xml:"ISO2,attr"`
	PartyTypeID string `xml:"PartyTypeID,attr"`
	Text        string `xml:",chardata"`
}

type xmlLocation struct {
	ID      string              `xml:"ID,attr"`
	Country *xmlLocationCountry `xml:"LocationCountry"`
	Parts   []xmlLocationPart   `xml:"LocationPart"`
}

type xmlLocationCountry struct {
	CountryID string `xml:"CountryID,attr"`
}

type xmlLocationPart struct {
	LocPartTypeID string                 `xml:"LocPartTypeID,attr"`
	Values        []xmlLocationPartValue `xml:"LocationPartValue"`
}

type xmlLocationPartValue struct {
	Primary string `xml:"Primary,attr"`
	Value   string `xml:"Value"`
}

type xmlIDRegDocument struct {
	IDRegDocTypeID    string `xml:"IDRegDocTypeID,attr"`
	IdentityID        string `xml:"IdentityID,attr"`
	IssuedByCountryID string `xml:"IssuedBy-CountryID,attr"`
	RegistrationNo    string `xml:"IDRegistrationNo"`
}

type xmlDistinctParty struct {
	FixedRef string       `xml:"FixedRef,attr"`
	Comment  string       `xml:"Comment"`
	Profiles []xmlProfile `xml:"Profile"`
}

type xmlProfile struct {
	ID             string        `xml:"ID,attr"`
	PartySubTypeID string        `xml:"PartySubTypeID,attr"`
	Identities     []xmlIdentity `xml:"Identity"`
	Features       []xmlFeature  `xml:"Feature"`
}

type xmlIdentity struct {
	ID             string             `xml:"ID,attr"`
	Aliases        []xmlAlias         `xml:"Alias"`
	NamePartGroups []xmlNamePartGroup `xml:"NamePartGroups>MasterNamePartGroup>NamePartGroup"`
}

type xmlAlias struct {
	AliasTypeID     string              `xml:"AliasTypeID,attr"`
	DocumentedNames []xmlDocumentedName `xml:"DocumentedName"`
}

type xmlDocumentedName struct {
	Parts []xmlDocumentedNamePart `xml:"DocumentedNamePart"`
}

type xmlDocumentedNamePart struct {
	Value xmlNamePartValue `xml:"NamePartValue"`
}

type xmlNamePartValue struct {
	NamePartGroupID string `xml:"NamePartGroupID,attr"`
	ScriptID        string `xml:"ScriptID,attr"`
	Text            string `xml:",chardata"`
}

type xmlNamePartGroup struct {
	ID             string `xml:"ID,attr"`
	NamePartTypeID string `xml:"NamePartTypeID,attr"`
}

type xmlFeature struct {
	FeatureTypeID string              `xml:"FeatureTypeID,attr"`
	Versions      []xmlFeatureVersion `xml:"FeatureVersion"`
}

type xmlFeatureVersion struct {
	DatePeriods []xmlDatePeriod      `xml:"DatePeriod"`
	Details     []xmlVersionDetail   `xml:"VersionDetail"`
	Locations   []xmlVersionLocation `xml:"VersionLocation"`
}

type xmlVersionDetail struct {
	DetailTypeID      string `xml:"DetailTypeID,attr"`
	DetailReferenceID string `xml:"DetailReferenceID,attr"`
	Text              string `xml:",chardata"`
}

type xmlVersionLocation struct {
	LocationID string `xml:"LocationID,attr"`
}

type xmlDatePeriod struct {
	Start xmlDateBoundary `xml:"Start"`
	End   xmlDateBoundary `xml:"End"`
}

type xmlDateBoundary struct {
	From *xmlDatePoint `xml:"From"`
	To   *xmlDatePoint `xml:"To"`
}

type xmlDatePoint struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

// Document is one fully parsed and indexed sanctions document. It is
// immutable after Parse and owned by the extraction session that built it.
type Document struct {
	refs referenceTables

	locationsByID    map[int]xmlLocation
	idRegsByIdentity map[int][]xmlIDRegDocument
	partiesByRef     map[int]xmlDistinctParty
	entries          []xmlSanctionsEntry
}

type xmlSanctionsEntry struct {
	ID        string                 `xml:"ID,attr"`
	ProfileID string                 `xml:"ProfileID,attr"`
	ListID    string                 `xml:"ListID,attr"`
	Measures  []xmlSanctionsMeasure  `xml:"SanctionsMeasure"`
}

type xmlSanctionsMeasure struct {
	SanctionsTypeID string `xml:"SanctionsTypeID,attr"`
	Comment         string `xml:"Comment"`
}

// Parse decodes a complete advanced-format document and builds its lookup
// tables and indexes. Any malformed required attribute fails the whole
// document; there is no partial-parse mode.
func Parse(r io.Reader) (*Document, error) {
	var raw xmlDocument
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode sanctions document: %w", err)
	}

	refs, err := buildReferenceTables(raw.ReferenceValueSets)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		refs:             refs,
		locationsByID:    make(map[int]xmlLocation, len(raw.Locations)),
		idRegsByIdentity: make(map[int][]xmlIDRegDocument, len(raw.IDRegDocuments)),
		partiesByRef:     make(map[int]xmlDistinctParty, len(raw.DistinctParties)),
		entries:          raw.SanctionsEntries,
	}

	for _, loc := range raw.Locations {
		id, err := requireInt("Location", "ID", loc.ID)
		if err != nil {
			return nil, err
		}
		doc.locationsByID[id] = loc
	}
	for _, reg := range raw.IDRegDocuments {
		identityID, err := requireInt("IDRegDocument", "IdentityID", reg.IdentityID)
		if err != nil {
			return nil, err
		}
		doc.idRegsByIdentity[identityID] = append(doc.idRegsByIdentity[identityID], reg)
	}
	for _, party := range raw.DistinctParties {
		ref, err := requireInt("DistinctParty", "FixedRef", party.FixedRef)
		if err != nil {
			return nil, err
		}
		doc.partiesByRef[ref] = party
	}

	return doc, nil
}

// ListIDByName resolves a sanctions list by case-insensitive substring
// match against the List reference table ("capta" matches the CAPTA list).
func (d *Document) ListIDByName(name string) (int, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for id, entry := range d.refs.lists {
		if strings.Contains(strings.ToLower(entry.Value), needle) {
			return id, nil
		}
	}
	return 0, fmt.Errorf("no sanctions list matching %q", name)
}

func requireInt(element, attr, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: bad or missing %s attribute %q", element, attr, value)
	}
	return n, nil
}
