package sanctions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/openscreening/cslimport/pkg/csl"
)

// Alias types with a fixed meaning in the output contract: "Name" is the
// designated primary name, the rest become alternate names.
const (
	aliasTypeName = "Name"
	aliasTypeAKA  = "A.K.A."
	aliasTypeFKA  = "F.K.A."
)

// Features that land in a dedicated output field. Every other feature type
// becomes an ad hoc id record keyed by its own type name.
var featureFields = map[string]string{
	"Birthdate":           "dates_of_birth",
	"Place of Birth":      "places_of_birth",
	"Citizenship Country": "citizenships",
	"Location":            "addresses",
}

// Feature types whose value is a country code rather than a number when
// synthesized into an id record.
var countryValuedFeatures = map[string]bool{
	"Nationality of Registration": true,
}

// EntriesByList extracts every sanctions entry belonging to listID and
// transforms it into the unified record shape. Source attribution fields
// are left empty for the caller to fill in.
func (d *Document) EntriesByList(listID int) ([]csl.Record, error) {
	var records []csl.Record
	for _, entry := range d.entries {
		entryListID, err := requireInt("SanctionsEntry", "ListID", entry.ListID)
		if err != nil {
			return nil, err
		}
		if entryListID != listID {
			continue
		}

		profileID, err := requireInt("SanctionsEntry", "ProfileID", entry.ProfileID)
		if err != nil {
			return nil, err
		}
		p, err := d.extractParty(profileID)
		if err != nil {
			return nil, err
		}

		rec, err := transformParty(p, programs(entry))
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

// programs collects the program names attached to an entry: the comments
// of its program-typed sanctions measures.
func programs(entry xmlSanctionsEntry) []string {
	out := []string{}
	for _, m := range entry.Measures {
		if strings.TrimSpace(m.SanctionsTypeID) != fmt.Sprint(programSanctionsTypeID) {
			continue
		}
		if comment := strings.TrimSpace(m.Comment); comment != "" {
			out = append(out, comment)
		}
	}
	return out
}

func transformParty(p *party, programs []string) (*csl.Record, error) {
	names, ok := p.aliases[aliasTypeName]
	if !ok || len(names) == 0 {
		return nil, fmt.Errorf("profile %d: no primary name alias", p.profileID)
	}

	altNames := []string{}
	for _, aliasType := range []string{aliasTypeAKA, aliasTypeFKA} {
		for _, parts := range p.aliases[aliasType] {
			altNames = append(altNames, displayName(parts))
		}
	}

	ids := []csl.ID{}
	for _, reg := range p.idRegs {
		ids = append(ids, csl.ID{
			Type:    reg.docType,
			Number:  csl.Ptr(reg.number),
			Country: csl.Ptr(reg.country),
		})
	}

	profileID := strconv.Itoa(p.profileID)
	rec := &csl.Record{
		ID:           profileID,
		EntityNumber: &profileID,
		Name:         displayName(names[0]),
		AltNames:     altNames,
		Type:         csl.Ptr(p.partyType),
		Remarks:      csl.Ptr(p.remarks),
		Programs:     programs,
		IDs:          ids,
	}

	for _, f := range p.features {
		switch featureFields[f.typeName] {
		case "dates_of_birth":
			rec.DatesOfBirth = append(rec.DatesOfBirth, f.text)
		case "places_of_birth":
			rec.PlacesOfBirth = append(rec.PlacesOfBirth, f.text)
		case "citizenships":
			rec.Citizenships = append(rec.Citizenships, f.text)
		case "addresses":
			if f.location != nil {
				rec.Addresses = append(rec.Addresses, *f.location)
			}
		default:
			id := csl.ID{Type: f.typeName}
			if countryValuedFeatures[f.typeName] {
				id.Country = csl.Ptr(f.text)
			} else {
				id.Number = csl.Ptr(f.text)
			}
			rec.IDs = append(rec.IDs, id)
		}
	}

	return rec, nil
}

// displayName joins an alias's name parts: entities and vessels use their
// single name part, individuals join first and last name in display order.
func displayName(parts nameParts) string {
	if v, ok := parts["Entity Name"]; ok {
		return v
	}
	if v, ok := parts["Vessel Name"]; ok {
		return v
	}
	nameSegments := make([]string, 0, 2)
	if v, ok := parts["First Name"]; ok {
		nameSegments = append(nameSegments, v)
	}
	if v, ok := parts["Last Name"]; ok {
		nameSegments = append(nameSegments, v)
	}
	return strings.Join(nameSegments, " ")
}
