package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/cozy/keys-autofill/internal/autofill/keywords"
	"github.com/cozy/keys-autofill/internal/autofill/match"
	"github.com/cozy/keys-autofill/internal/types"
)

type identitySlot int

const (
	identityTitleSlot identitySlot = iota
	identityFullNameSlot
	identityFirstNameSlot
	identityMiddleNameSlot
	identityLastNameSlot
	identityEmailSlot
	identityAddressSlot
	identityAddress1Slot
	identityAddress2Slot
	identityAddress3Slot
	identityPostalCodeSlot
	identityCitySlot
	identityStateSlot
	identityCountrySlot
	identityPhoneSlot
	identityUsernameSlot
	identityCompanySlot

	// Contact only.
	identityBirthdaySlot
	identityJobTitleSlot
)

type identitySlotRule struct {
	slot     identitySlot
	names    []string
	contains []string
	// excludes lists keyword groups that belong to a more specific slot.
	excludes [][]string
}

func (r identitySlotRule) matches(value string) bool {
	if !match.IsFieldMatch(value, r.names, r.contains) {
		return false
	}
	for _, names := range r.excludes {
		if match.IsFieldMatch(value, names, nil) {
			return false
		}
	}
	return true
}

// identitySlotRules is the keyword priority chain. When a value matches
// several groups the first one wins.
var identitySlotRules = []identitySlotRule{
	{slot: identityTitleSlot, names: keywords.TitleFieldNames},
	{slot: identityFullNameSlot, names: keywords.FullNameFieldNames, contains: keywords.FullNameFieldNameValues},
	{slot: identityFirstNameSlot, names: keywords.FirstnameFieldNames},
	{slot: identityMiddleNameSlot, names: keywords.MiddlenameFieldNames},
	{slot: identityLastNameSlot, names: keywords.LastnameFieldNames},
	{slot: identityEmailSlot, names: keywords.EmailFieldNames},
	{
		slot:     identityAddressSlot,
		names:    keywords.AddressFieldNames,
		contains: keywords.AddressFieldNameValues,
		excludes: [][]string{keywords.Address1FieldNames, keywords.Address2FieldNames, keywords.Address3FieldNames},
	},
	{slot: identityAddress1Slot, names: keywords.Address1FieldNames},
	{slot: identityAddress2Slot, names: keywords.Address2FieldNames},
	{slot: identityAddress3Slot, names: keywords.Address3FieldNames},
	{slot: identityPostalCodeSlot, names: keywords.PostalCodeFieldNames},
	{slot: identityCitySlot, names: keywords.CityFieldNames},
	{slot: identityStateSlot, names: keywords.StateFieldNames},
	{slot: identityCountrySlot, names: keywords.CountryFieldNames},
	{slot: identityPhoneSlot, names: keywords.PhoneFieldNames},
	{slot: identityUsernameSlot, names: keywords.UserNameFieldNames},
	{slot: identityCompanySlot, names: keywords.CompanyFieldNames},
}

// contactSlotRules put the contact-only slots first: "job-title" would
// otherwise be taken by the title slot.
var contactSlotRules = append([]identitySlotRule{
	{slot: identityBirthdaySlot, names: keywords.BirthdayFieldNames},
	{slot: identityJobTitleSlot, names: keywords.JobTitleFieldNames},
}, identitySlotRules...)

// identityExcludedTypes are the input types identity slots never claim.
var identityExcludedTypes = append([]string{"password"}, keywords.ExcludedAutofillTypes...)

type identitySlots map[identitySlot]*types.Field

// slotMatcher assigns page fields to identity slots.
type slotMatcher func(page *types.PageDetails, rules []identitySlotRule) identitySlots

// matchIdentityByAttribute walks the page once. For each field the
// identity attributes are tried in order, and for each attribute the rule
// chain; the first rule matching an unclaimed slot claims the field.
func matchIdentityByAttribute(page *types.PageDetails, rules []identitySlotRule) identitySlots {
	slots := make(identitySlots)
	for _, f := range page.Fields {
		if !isFillableByAttributes(f, identityExcludedTypes) {
			continue
		}
	attrs:
		for _, attr := range keywords.IdentityAttributes {
			val := f.Attr(attr)
			if val == "" {
				continue
			}
			for _, rule := range rules {
				if slots[rule.slot] != nil {
					continue
				}
				if rule.matches(val) {
					slots[rule.slot] = f
					break attrs
				}
			}
		}
	}
	return slots
}

// IdentityStrategy selects how identity slots are matched.
type IdentityStrategy string

const (
	// IdentityByAttribute tries every slot against one attribute at a time.
	IdentityByAttribute IdentityStrategy = "attributes"
	// IdentityBySlot tries every attribute against one slot at a time.
	IdentityBySlot IdentityStrategy = "slots"
)

// ParseIdentityStrategy accepts "attributes" (the default when empty) and
// "slots".
func ParseIdentityStrategy(s string) (IdentityStrategy, error) {
	switch IdentityStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", IdentityByAttribute:
		return IdentityByAttribute, nil
	case IdentityBySlot:
		return IdentityBySlot, nil
	}
	return IdentityByAttribute, fmt.Errorf("unknown identity strategy %q", s)
}

func (s IdentityStrategy) matcher() slotMatcher {
	if s == IdentityBySlot {
		return matchIdentityBySlot
	}
	return matchIdentityByAttribute
}

// NewIdentityGenerator returns the identity generator of the strategy.
func NewIdentityGenerator(s IdentityStrategy) Generator {
	if s == IdentityBySlot {
		return NewIdentitySlots()
	}
	return NewIdentity()
}

// Identity fills personal details with the attribute-loop matcher.
type Identity struct {
	match slotMatcher
}

// NewIdentity creates the attribute-loop identity generator.
func NewIdentity() *Identity {
	return &Identity{match: matchIdentityByAttribute}
}

func (g *Identity) Generate(_ context.Context, req *Request) *types.FillScript {
	identity := req.Cipher.Identity()
	if identity == nil {
		return nil
	}
	fillIdentity(req, identity, g.match(req.Page, identitySlotRules))
	return req.Script
}

// fillIdentity emits the fills of the matched slots. States and countries
// longer than two characters are replaced by their ISO code when known.
func fillIdentity(req *Request, identity *types.Identity, slots identitySlots) {
	FillField(req, slots[identityTitleSlot], identity.Title)
	FillField(req, slots[identityFirstNameSlot], identity.FirstName)
	FillField(req, slots[identityMiddleNameSlot], identity.MiddleName)
	FillField(req, slots[identityLastNameSlot], identity.LastName)
	FillField(req, slots[identityAddress1Slot], identity.Address1)
	FillField(req, slots[identityAddress2Slot], identity.Address2)
	FillField(req, slots[identityAddress3Slot], identity.Address3)
	FillField(req, slots[identityCitySlot], identity.City)
	FillField(req, slots[identityPostalCodeSlot], identity.PostalCode)
	FillField(req, slots[identityCompanySlot], identity.Company)
	FillField(req, slots[identityEmailSlot], identity.Email)
	FillField(req, slots[identityPhoneSlot], identity.Phone)
	FillField(req, slots[identityUsernameSlot], identity.Username)

	if f := slots[identityStateSlot]; f != nil {
		state := keywords.RegionCode(identity.State, keywords.IsoStates, keywords.IsoProvinces)
		if !FillField(req, f, state) && state != identity.State {
			FillField(req, f, identity.State)
		}
	}
	if f := slots[identityCountrySlot]; f != nil {
		country := keywords.RegionCode(identity.Country, keywords.IsoCountries)
		if !FillField(req, f, country) && country != identity.Country {
			FillField(req, f, identity.Country)
		}
	}

	if f := slots[identityFullNameSlot]; f != nil && (identity.FirstName != "" || identity.LastName != "") {
		FillField(req, f, identity.FullName())
	}
	if f := slots[identityAddressSlot]; f != nil && identity.Address1 != "" {
		FillField(req, f, identity.FullAddress())
	}
}
