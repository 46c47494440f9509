package generate

import (
	"context"

	"github.com/cozy/keys-autofill/internal/autofill/keywords"
	"github.com/cozy/keys-autofill/internal/autofill/match"
	"github.com/cozy/keys-autofill/internal/types"
)

type cardSlot int

const (
	cardHolderSlot cardSlot = iota
	cardNumberSlot
	cardExpSlot
	cardExpMonthSlot
	cardExpYearSlot
	cardCodeSlot
	cardBrandSlot
)

type cardSlotRule struct {
	slot     cardSlot
	names    []string
	contains []string
}

// Slot priority when one attribute matches several groups.
var cardSlotRules = []cardSlotRule{
	{cardHolderSlot, keywords.CardHolderFieldNames, keywords.CardHolderFieldNameValues},
	{cardNumberSlot, keywords.CardNumberFieldNames, keywords.CardNumberFieldNameValues},
	{cardExpSlot, keywords.CardExpiryFieldNames, keywords.CardExpiryFieldNameValues},
	{cardExpMonthSlot, keywords.ExpiryMonthFieldNames, nil},
	{cardExpYearSlot, keywords.ExpiryYearFieldNames, nil},
	{cardCodeSlot, keywords.CVVFieldNames, nil},
	{cardBrandSlot, keywords.CardBrandFieldNames, nil},
}

// Card fills payment card forms.
type Card struct{}

// NewCard creates the card generator.
func NewCard() *Card { return &Card{} }

func (g *Card) Generate(_ context.Context, req *Request) *types.FillScript {
	card := req.Cipher.Card()
	if card == nil {
		return nil
	}

	slots := matchCardSlots(req.Page)

	FillField(req, slots[cardHolderSlot], card.CardholderName)
	FillField(req, slots[cardNumberSlot], card.Number)
	FillField(req, slots[cardCodeSlot], card.Code)
	FillField(req, slots[cardBrandSlot], card.Brand)

	if f := slots[cardExpMonthSlot]; f != nil && card.ExpMonth != "" {
		FillField(req, f, formatExpMonth(f, card.ExpMonth))
	}
	if f := slots[cardExpYearSlot]; f != nil && card.ExpYear != "" {
		FillField(req, f, formatExpYear(f, card.ExpYear))
	}
	if f := slots[cardExpSlot]; f != nil && card.ExpMonth != "" && card.ExpYear != "" {
		FillField(req, f, formatExp(f, card.ExpMonth, card.ExpYear))
	}
	return req.Script
}

// matchCardSlots walks the page once. For each field the card attributes
// are tried in order; the first attribute matching an unclaimed slot
// claims the field for it, so a field takes at most one slot.
func matchCardSlots(page *types.PageDetails) map[cardSlot]*types.Field {
	slots := make(map[cardSlot]*types.Field)
	for _, f := range page.Fields {
		if !isFillableByAttributes(f, keywords.ExcludedAutofillTypes) {
			continue
		}
	attrs:
		for _, attr := range keywords.CardAttributes {
			val := f.Attr(attr)
			if val == "" {
				continue
			}
			for _, rule := range cardSlotRules {
				if slots[rule.slot] != nil {
					continue
				}
				if match.IsFieldMatch(val, rule.names, rule.contains) {
					slots[rule.slot] = f
					break attrs
				}
			}
		}
	}
	return slots
}
