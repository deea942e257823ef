package sanctions

import (
	"fmt"
	"strings"

	"github.com/openscreening/cslimport/pkg/csl"
	"github.com/openscreening/cslimport/pkg/dates"
)

// Detail types dispatched by the feature transformer.
const (
	detailTypeDate    = "DATE"
	detailTypeLookup  = "LOOKUP"
	detailTypeText    = "TEXT"
	detailTypeCountry = "COUNTRY"
)

// Location part names used when shaping a location into an address. The
// "Unknown" part carries the country display name for COUNTRY features.
const (
	locPartCity       = "CITY"
	locPartState      = "STATE/PROVINCE"
	locPartPostalCode = "POSTAL CODE"
	locPartUnknown    = "Unknown"
)

var locPartAddressLines = []string{"ADDRESS1", "ADDRESS2", "ADDRESS3"}

// feature is one transformed feature value: either a scalar (collapsed
// date, lookup code, free text, or ISO2 country) or a location address.
type feature struct {
	typeName string
	text     string
	location *csl.Address
}

// extractFeatures transforms every feature node of the profile. A feature
// whose realization yields no usable value (irregular date period, empty
// version) is dropped silently; that is deliberate, not an error path.
func (d *Document) extractFeatures(profileID int, profile *xmlProfile) ([]feature, error) {
	var features []feature
	for _, f := range profile.Features {
		typeID, err := requireInt("Feature", "FeatureTypeID", f.FeatureTypeID)
		if err != nil {
			return nil, err
		}
		featureType, err := d.refs.featureTypes.lookup("FeatureType", typeID)
		if err != nil {
			return nil, err
		}
		if len(f.Versions) == 0 {
			continue
		}
		version := f.Versions[0]

		var detail *xmlVersionDetail
		if len(version.Details) > 0 {
			detail = &version.Details[0]
		}
		var versionLoc *xmlVersionLocation
		if len(version.Locations) > 0 {
			versionLoc = &version.Locations[0]
		}

		var value *feature
		switch {
		case detail != nil:
			value, err = d.transformDetail(featureType.Value, version, detail, versionLoc)
		case versionLoc != nil:
			value, err = d.transformLocation(featureType.Value, versionLoc)
		}
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", profileID, err)
		}
		if value != nil {
			features = append(features, *value)
		}
	}
	return features, nil
}

func (d *Document) transformDetail(featureType string, version xmlFeatureVersion, detail *xmlVersionDetail, versionLoc *xmlVersionLocation) (*feature, error) {
	detailTypeID, err := requireInt("VersionDetail", "DetailTypeID", detail.DetailTypeID)
	if err != nil {
		return nil, err
	}
	detailType, err := d.refs.detailTypes.lookup("DetailType", detailTypeID)
	if err != nil {
		return nil, err
	}

	switch detailType.Value {
	case detailTypeDate:
		if len(version.DatePeriods) == 0 {
			return nil, nil
		}
		value, ok := collapseDatePeriod(version.DatePeriods[0])
		if !ok {
			return nil, nil
		}
		return &feature{typeName: featureType, text: value}, nil

	case detailTypeLookup:
		refID, err := requireInt("VersionDetail", "DetailReferenceID", detail.DetailReferenceID)
		if err != nil {
			return nil, err
		}
		ref, err := d.refs.detailReferences.lookup("DetailReference", refID)
		if err != nil {
			return nil, err
		}
		return &feature{typeName: featureType, text: ref.Value}, nil

	case detailTypeText:
		text := strings.TrimSpace(detail.Text)
		if text == "" {
			return nil, nil
		}
		return &feature{typeName: featureType, text: text}, nil

	case detailTypeCountry:
		if versionLoc == nil {
			return nil, nil
		}
		iso2, err := d.countryFromLocation(versionLoc)
		if err != nil {
			return nil, err
		}
		return &feature{typeName: featureType, text: iso2}, nil
	}
	return nil, nil
}

func (d *Document) transformLocation(featureType string, versionLoc *xmlVersionLocation) (*feature, error) {
	parts, err := d.locationParts(versionLoc)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return &feature{typeName: featureType, location: addressFromParts(parts)}, nil
}

// locationParts resolves a location into a map keyed by location-part type
// value, plus a "COUNTRY" entry with the ISO2 code when the location names
// a country.
func (d *Document) locationParts(versionLoc *xmlVersionLocation) (map[string]string, error) {
	locationID, err := requireInt("VersionLocation", "LocationID", versionLoc.LocationID)
	if err != nil {
		return nil, err
	}
	loc, ok := d.locationsByID[locationID]
	if !ok {
		return nil, fmt.Errorf("unknown location %d", locationID)
	}

	parts := make(map[string]string)
	if loc.Country != nil {
		countryID, err := requireInt("LocationCountry", "CountryID", loc.Country.CountryID)
		if err != nil {
			return nil, err
		}
		country, err := d.refs.countries.lookup("Country", countryID)
		if err != nil {
			return nil, err
		}
		if country.ISO2 != "" {
			parts["COUNTRY"] = country.ISO2
		}
	}

	for _, part := range loc.Parts {
		partTypeID, err := requireInt("LocationPart", "LocPartTypeID", part.LocPartTypeID)
		if err != nil {
			return nil, err
		}
		partType, err := d.refs.locPartTypes.lookup("LocPartType", partTypeID)
		if err != nil {
			return nil, err
		}
		parts[partType.Value] = primaryPartValue(part)
	}
	return parts, nil
}

func primaryPartValue(part xmlLocationPart) string {
	for _, v := range part.Values {
		if v.Primary == "true" {
			return strings.TrimSpace(v.Value)
		}
	}
	if len(part.Values) > 0 {
		return strings.TrimSpace(part.Values[0].Value)
	}
	return ""
}

// countryFromLocation resolves a COUNTRY-typed feature: the location's
// unnamed part holds the country display name, which reverse-resolves to
// ISO2 through the Country table.
func (d *Document) countryFromLocation(versionLoc *xmlVersionLocation) (string, error) {
	parts, err := d.locationParts(versionLoc)
	if err != nil {
		return "", err
	}
	name := parts[locPartUnknown]
	entry, ok := d.refs.countriesByName[name]
	if !ok {
		return "", fmt.Errorf("country feature names unknown country %q", name)
	}
	return entry.ISO2, nil
}

func addressFromParts(parts map[string]string) *csl.Address {
	var lines []string
	for _, field := range locPartAddressLines {
		if v := parts[field]; v != "" {
			lines = append(lines, v)
		}
	}
	return &csl.Address{
		Address:    csl.Ptr(strings.Join(lines, ", ")),
		City:       csl.Ptr(parts[locPartCity]),
		State:      csl.Ptr(parts[locPartState]),
		PostalCode: csl.Ptr(parts[locPartPostalCode]),
		Country:    csl.Ptr(parts["COUNTRY"]),
	}
}

// collapseDatePeriod decomposes the four date points and applies the
// period-collapsing rule. Any missing point makes the period irregular.
func collapseDatePeriod(period xmlDatePeriod) (string, bool) {
	points := [...]*xmlDatePoint{period.Start.From, period.Start.To, period.End.From, period.End.To}
	var resolved [4]dates.Point
	for i, p := range points {
		if p == nil {
			return "", false
		}
		var err error
		if resolved[i], err = datePoint(p); err != nil {
			return "", false
		}
	}
	return dates.CollapsePeriod(resolved[0], resolved[1], resolved[2], resolved[3])
}

func datePoint(p *xmlDatePoint) (dates.Point, error) {
	year, err := requireInt("DatePoint", "Year", p.Year)
	if err != nil {
		return dates.Point{}, err
	}
	month, err := requireInt("DatePoint", "Month", p.Month)
	if err != nil {
		return dates.Point{}, err
	}
	day, err := requireInt("DatePoint", "Day", p.Day)
	if err != nil {
		return dates.Point{}, err
	}
	return dates.Point{Year: year, Month: month, Day: day}, nil
}
