package generate

import (
	"context"

	"go.uber.org/zap"

	"github.com/cozy/keys-autofill/internal/autofill/keywords"
	"github.com/cozy/keys-autofill/internal/autofill/match"
	"github.com/cozy/keys-autofill/internal/types"
)

// Remote attribute names, as served by the attribute source.
const (
	AttrBirthday       = "birthday"
	AttrJobTitle       = "jobTitle"
	AttrEmail          = "email"
	AttrPhone          = "phone"
	AttrNumber         = "number"
	AttrIBAN           = "iban"
	AttrBIC            = "bic"
	AttrExpirationDate = "expirationDate"
)

// Contact fills identity forms from a Cozy contact. Birthday and job title
// get slots of their own; values missing locally are fetched from the
// attribute source.
type Contact struct {
	deps  Deps
	match slotMatcher
}

// NewContact creates the contact generator. The identity strategy selects
// the slot matcher.
func NewContact(deps Deps, strategy IdentityStrategy) *Contact {
	return &Contact{deps: deps.WithDefaults(), match: strategy.matcher()}
}

func (g *Contact) Generate(ctx context.Context, req *Request) *types.FillScript {
	contact := req.Cipher.Contact()
	if contact == nil {
		return nil
	}
	slots := g.match(req.Page, contactSlotRules)

	identity := ContactIdentity(contact)
	if identity.Email == "" && slots[identityEmailSlot] != nil {
		identity.Email = fetchAttribute(ctx, g.deps, req.Cipher, AttrEmail)
	}
	if identity.Phone == "" && slots[identityPhoneSlot] != nil {
		identity.Phone = fetchAttribute(ctx, g.deps, req.Cipher, AttrPhone)
	}
	fillIdentity(req, identity, slots)

	if f := slots[identityBirthdaySlot]; f != nil {
		birthday := contact.Birthday
		if birthday == "" {
			birthday = fetchAttribute(ctx, g.deps, req.Cipher, AttrBirthday)
		}
		FillField(req, f, formatDate(f, birthday))
	}
	if f := slots[identityJobTitleSlot]; f != nil {
		jobTitle := contact.JobTitle
		if jobTitle == "" {
			jobTitle = fetchAttribute(ctx, g.deps, req.Cipher, AttrJobTitle)
		}
		FillField(req, f, jobTitle)
	}
	return req.Script
}

// ContactIdentity maps a contact onto identity attributes, taking the
// primary e-mail, phone and address.
func ContactIdentity(c *types.Contact) *types.Identity {
	id := &types.Identity{
		Title:      c.Name.NamePrefix,
		FirstName:  c.Name.GivenName,
		MiddleName: c.Name.AdditionalName,
		LastName:   c.Name.FamilyName,
		Company:    c.Company,
		Email:      c.PrimaryEmail(),
		Phone:      c.PrimaryPhone(),
	}
	if a := c.PrimaryAddress(); a != nil {
		id.Address1 = a.StreetLine()
		id.City = a.City
		id.PostalCode = a.Code
		id.State = a.Region
		id.Country = a.Country
	}
	return id
}

// paperNumberFieldNames maps a paper kind to the keywords of its number.
var paperNumberFieldNames = map[types.PaperKind][]string{
	types.PaperNationalIDCard:      keywords.IdentityCardNumberFieldNames,
	types.PaperPassport:            keywords.PassportNumberFieldNames,
	types.PaperResidencePermit:     keywords.ResidencePermitFieldNames,
	types.PaperDriverLicense:       keywords.DriverLicenseFieldNames,
	types.PaperVehicleRegistration: keywords.VehicleRegistrationFieldNames,
	types.PaperTaxNotice:           keywords.TaxNoticeFieldNames,
	types.PaperHealthInsuranceCard: keywords.HealthInsuranceFieldNames,
}

type paperSlot int

const (
	paperNumberSlot paperSlot = iota
	paperIBANSlot
	paperBICSlot
	paperExpirationSlot
)

type paperSlotRule struct {
	slot  paperSlot
	names []string
}

// paperSlotRules returns the slot chain of a paper kind. Bank details carry
// an IBAN and a BIC, other papers a number.
func paperSlotRules(kind types.PaperKind) []paperSlotRule {
	if kind == types.PaperBankDetails {
		return []paperSlotRule{
			{paperIBANSlot, keywords.IbanFieldNames},
			{paperBICSlot, keywords.BicFieldNames},
		}
	}
	rules := []paperSlotRule{{paperExpirationSlot, keywords.PaperExpirationFieldNames}}
	if names, ok := paperNumberFieldNames[kind]; ok {
		rules = append([]paperSlotRule{{paperNumberSlot, names}}, rules...)
	}
	return rules
}

// Paper fills administrative paper numbers, bank details and expiration
// dates.
type Paper struct {
	deps Deps
}

// NewPaper creates the paper generator.
func NewPaper(deps Deps) *Paper {
	return &Paper{deps: deps.WithDefaults()}
}

func (g *Paper) Generate(ctx context.Context, req *Request) *types.FillScript {
	paper := req.Cipher.Paper()
	if paper == nil {
		return nil
	}

	slots := matchPaperSlots(req.Page, paperSlotRules(paper.Kind))
	value := func(local, name string) string {
		if local != "" {
			return local
		}
		return fetchAttribute(ctx, g.deps, req.Cipher, name)
	}

	if f := slots[paperNumberSlot]; f != nil {
		FillField(req, f, value(paper.Number, AttrNumber))
	}
	if f := slots[paperIBANSlot]; f != nil {
		FillField(req, f, value(paper.IBAN, AttrIBAN))
	}
	if f := slots[paperBICSlot]; f != nil {
		FillField(req, f, value(paper.BIC, AttrBIC))
	}
	if f := slots[paperExpirationSlot]; f != nil {
		FillField(req, f, formatDate(f, value(paper.ExpirationDate, AttrExpirationDate)))
	}
	return req.Script
}

func matchPaperSlots(page *types.PageDetails, rules []paperSlotRule) map[paperSlot]*types.Field {
	slots := make(map[paperSlot]*types.Field)
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
				if match.IsFieldMatch(val, rule.names, nil) {
					slots[rule.slot] = f
					break attrs
				}
			}
		}
	}
	return slots
}

func fetchAttribute(ctx context.Context, deps Deps, cipher *types.Cipher, name string) string {
	if deps.Source == nil {
		return ""
	}
	v, err := deps.Source.Attribute(ctx, cipher, name)
	if err != nil {
		deps.Log.Debug("Remote attribute unavailable",
			zap.String("cipher", cipher.ID),
			zap.String("attribute", name),
			zap.Error(err))
		return ""
	}
	return v
}

// formatDate trims a timestamp to its YYYY-MM-DD date for date inputs.
func formatDate(f *types.Field, value string) string {
	if f.Type == "date" && len(value) > 10 && value[4] == '-' && value[7] == '-' {
		return value[:10]
	}
	return value
}
