package generate

import (
	"context"

	"github.com/cozy/keys-autofill/internal/autofill/keywords"
	"github.com/cozy/keys-autofill/internal/autofill/match"
	"github.com/cozy/keys-autofill/internal/types"
)

// IdentitySlots fills personal details by testing, for each field, one
// predicate per slot against the field's normalized keyword tokens.
type IdentitySlots struct{}

// NewIdentitySlots creates the per-slot identity generator.
func NewIdentitySlots() *IdentitySlots { return &IdentitySlots{} }

func (g *IdentitySlots) Generate(_ context.Context, req *Request) *types.FillScript {
	identity := req.Cipher.Identity()
	if identity == nil {
		return nil
	}
	fillIdentity(req, identity, matchIdentityBySlot(req.Page, identitySlotRules))
	return req.Script
}

// fieldTokens returns the distinct normalized values of the field's
// identity attributes, in attribute order.
func fieldTokens(f *types.Field) []string {
	var tokens []string
	seen := make(map[string]struct{})
	for _, attr := range keywords.IdentityAttributes {
		token := match.Normalize(f.Attr(attr))
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}

type slotPredicates struct {
	slots identitySlots
	rules map[identitySlot]identitySlotRule
}

func (p *slotPredicates) open(slot identitySlot) bool {
	_, ok := p.rules[slot]
	return ok && p.slots[slot] == nil
}

func (p *slotPredicates) shouldFill(slot identitySlot, token string) bool {
	return p.open(slot) && p.rules[slot].matches(token)
}

func (p *slotPredicates) shouldFillTitle(token string) bool {
	return p.shouldFill(identityTitleSlot, token)
}

func (p *slotPredicates) shouldFillFullName(token string) bool {
	return p.shouldFill(identityFullNameSlot, token)
}

func (p *slotPredicates) shouldFillFirstName(token string) bool {
	return p.shouldFill(identityFirstNameSlot, token)
}

func (p *slotPredicates) shouldFillMiddleName(token string) bool {
	return p.shouldFill(identityMiddleNameSlot, token)
}

func (p *slotPredicates) shouldFillLastName(token string) bool {
	return p.shouldFill(identityLastNameSlot, token)
}

func (p *slotPredicates) shouldFillEmail(token string) bool {
	return p.shouldFill(identityEmailSlot, token)
}

// The generic address slot never takes a numbered address line.
func (p *slotPredicates) shouldFillAddress(token string) bool {
	return p.shouldFill(identityAddressSlot, token)
}

func (p *slotPredicates) shouldFillAddressLine(slot identitySlot, token string) bool {
	return p.shouldFill(slot, token)
}

func (p *slotPredicates) shouldFillPostalCode(token string) bool {
	return p.shouldFill(identityPostalCodeSlot, token)
}

func (p *slotPredicates) shouldFillCity(token string) bool {
	return p.shouldFill(identityCitySlot, token)
}

func (p *slotPredicates) shouldFillState(token string) bool {
	return p.shouldFill(identityStateSlot, token)
}

func (p *slotPredicates) shouldFillCountry(token string) bool {
	return p.shouldFill(identityCountrySlot, token)
}

func (p *slotPredicates) shouldFillPhone(token string) bool {
	return p.shouldFill(identityPhoneSlot, token)
}

func (p *slotPredicates) shouldFillUsername(token string) bool {
	return p.shouldFill(identityUsernameSlot, token)
}

func (p *slotPredicates) shouldFillCompany(token string) bool {
	return p.shouldFill(identityCompanySlot, token)
}

func (p *slotPredicates) shouldFillBirthday(token string) bool {
	return p.shouldFill(identityBirthdaySlot, token)
}

func (p *slotPredicates) shouldFillJobTitle(token string) bool {
	return p.shouldFill(identityJobTitleSlot, token)
}

// slotFor tries the tokens in attribute order and returns the first slot
// whose predicate holds for a token.
func (p *slotPredicates) slotFor(tokens []string) (identitySlot, bool) {
	for _, token := range tokens {
		if slot, ok := p.slotForToken(token); ok {
			return slot, true
		}
	}
	return 0, false
}

// slotForToken returns the first slot whose predicate holds, in chain
// order. Slots missing from the rule set never hold.
func (p *slotPredicates) slotForToken(token string) (identitySlot, bool) {
	switch {
	case p.shouldFillBirthday(token):
		return identityBirthdaySlot, true
	case p.shouldFillJobTitle(token):
		return identityJobTitleSlot, true
	case p.shouldFillTitle(token):
		return identityTitleSlot, true
	case p.shouldFillFullName(token):
		return identityFullNameSlot, true
	case p.shouldFillFirstName(token):
		return identityFirstNameSlot, true
	case p.shouldFillMiddleName(token):
		return identityMiddleNameSlot, true
	case p.shouldFillLastName(token):
		return identityLastNameSlot, true
	case p.shouldFillEmail(token):
		return identityEmailSlot, true
	case p.shouldFillAddress(token):
		return identityAddressSlot, true
	case p.shouldFillAddressLine(identityAddress1Slot, token):
		return identityAddress1Slot, true
	case p.shouldFillAddressLine(identityAddress2Slot, token):
		return identityAddress2Slot, true
	case p.shouldFillAddressLine(identityAddress3Slot, token):
		return identityAddress3Slot, true
	case p.shouldFillPostalCode(token):
		return identityPostalCodeSlot, true
	case p.shouldFillCity(token):
		return identityCitySlot, true
	case p.shouldFillState(token):
		return identityStateSlot, true
	case p.shouldFillCountry(token):
		return identityCountrySlot, true
	case p.shouldFillPhone(token):
		return identityPhoneSlot, true
	case p.shouldFillUsername(token):
		return identityUsernameSlot, true
	case p.shouldFillCompany(token):
		return identityCompanySlot, true
	}
	return 0, false
}

// matchIdentityBySlot walks the page once and gives each field the first
// open slot matching its earliest matching token.
func matchIdentityBySlot(page *types.PageDetails, rules []identitySlotRule) identitySlots {
	p := &slotPredicates{
		slots: make(identitySlots),
		rules: make(map[identitySlot]identitySlotRule, len(rules)),
	}
	for _, r := range rules {
		p.rules[r.slot] = r
	}
	for _, f := range page.Fields {
		if !isFillableByAttributes(f, identityExcludedTypes) {
			continue
		}
		if slot, ok := p.slotFor(fieldTokens(f)); ok {
			p.slots[slot] = f
		}
	}
	return p.slots
}
