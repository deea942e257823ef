package sanctions

import (
	"fmt"
	"strings"
)

const (
	// Only Latin-script name parts are extracted.
	latinScriptID = 215
	// SanctionsMeasure rows of this type carry the program name.
	programSanctionsTypeID = 1
)

// nameParts maps name-part type ("First Name", "Last Name", "Entity Name",
// "Vessel Name", ...) to its Latin-script text for one alias.
type nameParts map[string]string

// idRegistration is one identity document attached to a party's identity.
type idRegistration struct {
	docType string
	number  string
	country string // ISO2, empty when the source element has no issuer
}

// party is the raw extracted attribute set of one distinct party, before
// transformation into the output record shape.
type party struct {
	profileID int
	remarks   string
	partyType string
	aliases   map[string][]nameParts // alias-type value -> aliases of that type
	idRegs    []idRegistration
	features  []feature
}

// extractParty walks profile -> identity -> aliases/name-part groups,
// distinct-party -> id-registrations, and profile -> features, resolving
// every foreign key through the reference tables. Missing mandatory nodes
// (profile, identity, sub-type) are fatal for the document.
func (d *Document) extractParty(profileID int) (*party, error) {
	dp, ok := d.partiesByRef[profileID]
	if !ok {
		return nil, fmt.Errorf("no distinct party with profile ref %d", profileID)
	}

	var profile *xmlProfile
	for i := range dp.Profiles {
		if strings.TrimSpace(dp.Profiles[i].ID) == fmt.Sprint(profileID) {
			profile = &dp.Profiles[i]
			break
		}
	}
	if profile == nil {
		return nil, fmt.Errorf("distinct party %d: no profile node", profileID)
	}
	if len(profile.Identities) == 0 {
		return nil, fmt.Errorf("profile %d: no identity node", profileID)
	}
	identity := profile.Identities[0]

	subTypeID, err := requireInt("Profile", "PartySubTypeID", profile.PartySubTypeID)
	if err != nil {
		return nil, err
	}
	subType, err := d.refs.partySubTypes.lookup("PartySubType", subTypeID)
	if err != nil {
		return nil, err
	}
	partyType, err := d.refs.partyTypes.lookup("PartyType", subType.PartyTypeID)
	if err != nil {
		return nil, err
	}

	aliases, err := d.extractAliases(profileID, identity)
	if err != nil {
		return nil, err
	}
	idRegs, err := d.extractIDRegistrations(identity)
	if err != nil {
		return nil, err
	}
	features, err := d.extractFeatures(profileID, profile)
	if err != nil {
		return nil, err
	}

	return &party{
		profileID: profileID,
		remarks:   strings.TrimSpace(dp.Comment),
		partyType: partyType.Value,
		aliases:   aliases,
		idRegs:    idRegs,
		features:  features,
	}, nil
}

// extractAliases groups the identity's aliases by alias type. Name parts
// are resolved NamePartGroupID -> NamePartType through the identity's
// master name-part groups, keeping only Latin-script values.
func (d *Document) extractAliases(profileID int, identity xmlIdentity) (map[string][]nameParts, error) {
	groupTypes := make(map[int]string, len(identity.NamePartGroups))
	for _, g := range identity.NamePartGroups {
		groupID, err := requireInt("NamePartGroup", "ID", g.ID)
		if err != nil {
			return nil, err
		}
		typeID, err := requireInt("NamePartGroup", "NamePartTypeID", g.NamePartTypeID)
		if err != nil {
			return nil, err
		}
		partType, err := d.refs.namePartTypes.lookup("NamePartType", typeID)
		if err != nil {
			return nil, err
		}
		groupTypes[groupID] = partType.Value
	}

	aliases := make(map[string][]nameParts)
	for _, a := range identity.Aliases {
		typeID, err := requireInt("Alias", "AliasTypeID", a.AliasTypeID)
		if err != nil {
			return nil, err
		}
		aliasType, err := d.refs.aliasTypes.lookup("AliasType", typeID)
		if err != nil {
			return nil, err
		}

		parts := nameParts{}
		for _, dn := range a.DocumentedNames {
			for _, p := range dn.Parts {
				if strings.TrimSpace(p.Value.ScriptID) != fmt.Sprint(latinScriptID) {
					continue
				}
				groupID, err := requireInt("NamePartValue", "NamePartGroupID", p.Value.NamePartGroupID)
				if err != nil {
					return nil, err
				}
				partType, ok := groupTypes[groupID]
				if !ok {
					return nil, fmt.Errorf("profile %d: name part references unknown group %d", profileID, groupID)
				}
				parts[partType] = strings.TrimSpace(p.Value.Text)
			}
		}
		aliases[aliasType.Value] = append(aliases[aliasType.Value], parts)
	}
	return aliases, nil
}

// extractIDRegistrations resolves every id-registration document attached
// to the identity. The issuing country is omitted, not defaulted, when the
// source element has no IssuedBy-CountryID.
func (d *Document) extractIDRegistrations(identity xmlIdentity) ([]idRegistration, error) {
	identityID, err := requireInt("Identity", "ID", identity.ID)
	if err != nil {
		return nil, err
	}

	var regs []idRegistration
	for _, reg := range d.idRegsByIdentity[identityID] {
		docTypeID, err := requireInt("IDRegDocument", "IDRegDocTypeID", reg.IDRegDocTypeID)
		if err != nil {
			return nil, err
		}
		docType, err := d.refs.idRegDocTypes.lookup("IDRegDocType", docTypeID)
		if err != nil {
			return nil, err
		}

		r := idRegistration{
			docType: docType.Value,
			number:  strings.TrimSpace(reg.RegistrationNo),
		}
		if reg.IssuedByCountryID != "" {
			countryID, err := requireInt("IDRegDocument", "IssuedBy-CountryID", reg.IssuedByCountryID)
			if err != nil {
				return nil, err
			}
			country, err := d.refs.countries.lookup("Country", countryID)
			if err != nil {
				return nil, err
			}
			r.country = country.ISO2
		}
		regs = append(regs, r)
	}
	return regs, nil
}
