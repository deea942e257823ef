package sdnxml

import (
	"strings"

	"github.com/openscreening/cslimport/pkg/countries"
	"github.com/openscreening/cslimport/pkg/csl"
	"github.com/openscreening/cslimport/pkg/dates"
)

// ToRecord flattens one legacy entry into the unified record shape.
// Source attribution fields are left for the caller.
func (e *Entry) ToRecord(order NameOrder) csl.Record {
	uid := strings.TrimSpace(e.UID)

	rec := csl.Record{
		ID:            uid,
		EntityNumber:  csl.Ptr(uid),
		Name:          e.Name(order),
		AltNames:      e.AltNames(order),
		Type:          csl.Ptr(strings.TrimSpace(e.SDNType)),
		Title:         csl.Ptr(strings.TrimSpace(e.Title)),
		Remarks:       csl.Ptr(strings.TrimSpace(e.Remarks)),
		Programs:      trimAll(e.Programs),
		IDs:           transformIDs(e.IDs),
		Addresses:     transformAddresses(e.Addresses),
		Citizenships:  transformCountries(e.Citizenships),
		Nationalities: transformCountries(e.Nationalities),
		DatesOfBirth:  transformDatesOfBirth(e.DatesOfBirth),
		PlacesOfBirth: transformPlacesOfBirth(e.PlacesOfBirth),
	}

	if e.Vessel != nil {
		rec.CallSign = csl.Ptr(strings.TrimSpace(e.Vessel.CallSign))
		rec.VesselType = csl.Ptr(strings.TrimSpace(e.Vessel.VesselType))
		rec.VesselFlag = csl.Ptr(strings.TrimSpace(e.Vessel.VesselFlag))
		rec.VesselOwner = csl.Ptr(strings.TrimSpace(e.Vessel.VesselOwner))
		rec.GrossTonnage = csl.Ptr(strings.TrimSpace(e.Vessel.Tonnage))
		rec.GrossRegisteredTonnage = csl.Ptr(strings.TrimSpace(e.Vessel.GrossRegisteredTonnage))
	}

	return rec
}

func transformIDs(items []IDItem) []csl.ID {
	ids := []csl.ID{}
	for _, item := range items {
		id := csl.ID{
			Type:   strings.TrimSpace(item.Type),
			Number: csl.Ptr(strings.TrimSpace(item.Number)),
		}
		if country := strings.TrimSpace(item.Country); country != "" {
			id.Country = csl.Ptr(countries.Code(country))
		}
		ids = append(ids, id)
	}
	return ids
}

// transformAddresses joins the multi-line street parts with ", " and
// resolves the country name to its code. Entirely empty address elements
// are skipped.
func transformAddresses(items []AddressItem) []csl.Address {
	addrs := []csl.Address{}
	for _, item := range items {
		lines := []string{}
		for _, l := range []string{item.Address1, item.Address2, item.Address3} {
			if l = strings.TrimSpace(l); l != "" {
				lines = append(lines, l)
			}
		}
		a := csl.Address{
			Address:    csl.Ptr(strings.Join(lines, ", ")),
			City:       csl.Ptr(strings.TrimSpace(item.City)),
			State:      csl.Ptr(strings.TrimSpace(item.StateOrProvince)),
			PostalCode: csl.Ptr(strings.TrimSpace(item.PostalCode)),
		}
		if country := strings.TrimSpace(item.Country); country != "" {
			a.Country = csl.Ptr(countries.Code(country))
		}
		if a.Address == nil && a.City == nil && a.State == nil && a.PostalCode == nil && a.Country == nil {
			continue
		}
		addrs = append(addrs, a)
	}
	return addrs
}

func transformCountries(items []CountryItem) []string {
	codes := []string{}
	for _, item := range items {
		if name := strings.TrimSpace(item.Country); name != "" {
			codes = append(codes, countries.Code(name))
		}
	}
	return codes
}

func transformDatesOfBirth(items []DOBItem) []string {
	dobs := []string{}
	for _, item := range items {
		if raw := strings.TrimSpace(item.DateOfBirth); raw != "" {
			dobs = append(dobs, dates.ParseListDate(raw))
		}
	}
	return dobs
}

func transformPlacesOfBirth(items []POBItem) []string {
	pobs := []string{}
	for _, item := range items {
		if raw := strings.TrimSpace(item.PlaceOfBirth); raw != "" {
			pobs = append(pobs, raw)
		}
	}
	return pobs
}

func trimAll(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
