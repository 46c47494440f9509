// Package locate finds the password fields of a page and, relative to each,
// the username and one-time-code fields that go with it.
//
// Every search runs in tiers: a strict tier over visible, editable fields,
// then, unless the caller asked for visible fields only, a relaxed tier
// that admits hidden and readonly ones.
package locate

import (
	"slices"
	"strings"

	"github.com/cozy/keys-autofill/internal/autofill/keywords"
	"github.com/cozy/keys-autofill/internal/autofill/match"
	"github.com/cozy/keys-autofill/internal/types"
)

// Tier holds the visibility rules of one search pass.
type Tier struct {
	CanBeHidden   bool
	CanBeReadOnly bool
	MustBeEmpty   bool
}

// Tiers returns the strict tier followed, unless onlyVisible, by the
// relaxed one.
func Tiers(onlyVisible, mustBeEmpty bool) []Tier {
	tiers := []Tier{{MustBeEmpty: mustBeEmpty}}
	if !onlyVisible {
		tiers = append(tiers, Tier{CanBeHidden: true, CanBeReadOnly: true, MustBeEmpty: mustBeEmpty})
	}
	return tiers
}

// Admits reports whether the field passes the tier's disabled, readonly,
// visibility and emptiness gates.
func (t Tier) Admits(f *types.Field) bool {
	if f.Disabled {
		return false
	}
	if f.Readonly && !t.CanBeReadOnly {
		return false
	}
	if !f.Viewable && !t.CanBeHidden {
		return false
	}
	return !t.MustBeEmpty || strings.TrimSpace(f.Value) == ""
}

// IsCandidate reports whether a field may receive a login value at all:
// not a span, not an excluded login type, not a search box, and not
// carrying a disqualifying attribute.
func IsCandidate(f *types.Field) bool {
	return !match.IsExcludedFieldType(f, keywords.ExcludedAutofillLoginTypes) &&
		!match.FieldHasDisqualifyingAttributeValue(f)
}

// LoadPasswordFields returns, in page order, the fields of the page that
// take a password under the given tier. Inputs declared "new-password"
// are skipped unless fillNewPassword.
func LoadPasswordFields(page *types.PageDetails, tier Tier, fillNewPassword bool) []*types.Field {
	var out []*types.Field
	for _, f := range page.Fields {
		if !IsCandidate(f) {
			continue
		}
		if f.Type != "password" && !match.IsLikePasswordField(f) {
			continue
		}
		if !tier.Admits(f) {
			continue
		}
		if !fillNewPassword && f.AutoCompleteType == keywords.NewPasswordAutocomplete {
			continue
		}
		out = append(out, f)
	}
	return out
}

// LoadPasswordFieldsTiered returns the result of the first tier that finds
// any password field.
func LoadPasswordFieldsTiered(page *types.PageDetails, tiers []Tier, fillNewPassword bool) []*types.Field {
	for _, tier := range tiers {
		if fields := LoadPasswordFields(page, tier, fillNewPassword); len(fields) > 0 {
			return fields
		}
	}
	return nil
}

// Locator anchors username and TOTP fields on a password field.
type Locator struct {
	matcher *match.Matcher
}

// NewLocator creates a locator using m for exact name matching.
func NewLocator(m *match.Matcher) *Locator {
	if m == nil {
		m = match.NewMatcher(nil)
	}
	return &Locator{matcher: m}
}

// FindUsernameField scans the fields preceding pw in page order and returns
// the username candidate: the first one whose attributes exactly match a
// username keyword, else the last text, email or tel candidate seen.
// Candidates share pw's form unless withoutForm.
func (l *Locator) FindUsernameField(page *types.PageDetails, pw *types.Field, tier Tier, withoutForm bool) *types.Field {
	return l.findAnchored(page, pw, tier, withoutForm, []string{"text", "email", "tel"}, func(f *types.Field) bool {
		return l.matcher.FindMatchingFieldIndex(f, keywords.UsernameFieldNames) > -1
	})
}

// FindTotpField is FindUsernameField for one-time-code inputs: text or
// number types, with an exact TOTP keyword or a one-time-code autocomplete
// ending the scan.
func (l *Locator) FindTotpField(page *types.PageDetails, pw *types.Field, tier Tier, withoutForm bool) *types.Field {
	return l.findAnchored(page, pw, tier, withoutForm, []string{"text", "number"}, func(f *types.Field) bool {
		return l.matcher.FindMatchingFieldIndex(f, keywords.TotpFieldNames) > -1 ||
			f.AutoCompleteType == keywords.OneTimeCodeAutocomplete
	})
}

// FirstUsernameField tries each tier in turn.
func (l *Locator) FirstUsernameField(page *types.PageDetails, pw *types.Field, tiers []Tier, withoutForm bool) *types.Field {
	for _, tier := range tiers {
		if f := l.FindUsernameField(page, pw, tier, withoutForm); f != nil {
			return f
		}
	}
	return nil
}

// FirstTotpField tries each tier in turn.
func (l *Locator) FirstTotpField(page *types.PageDetails, pw *types.Field, tiers []Tier, withoutForm bool) *types.Field {
	for _, tier := range tiers {
		if f := l.FindTotpField(page, pw, tier, withoutForm); f != nil {
			return f
		}
	}
	return nil
}

func (l *Locator) findAnchored(
	page *types.PageDetails,
	pw *types.Field,
	tier Tier,
	withoutForm bool,
	allowedTypes []string,
	exact func(*types.Field) bool,
) *types.Field {
	var found *types.Field
	for _, f := range page.Fields {
		if f.IsSpan() {
			continue
		}
		if f.ElementNumber >= pw.ElementNumber {
			break
		}
		if !IsCandidate(f) || !tier.Admits(f) {
			continue
		}
		if !withoutForm && f.Form != pw.Form {
			continue
		}
		if !hasType(f, allowedTypes) {
			continue
		}

		found = f
		if exact(f) {
			break
		}
	}
	return found
}

// FuzzyUsernameFields returns the visible text, email and tel fields whose
// attributes contain a username keyword. It serves pages without any
// password field.
func FuzzyUsernameFields(page *types.PageDetails) []*types.Field {
	var out []*types.Field
	for _, f := range page.Fields {
		if !f.Viewable || f.Disabled || !IsCandidate(f) || !hasType(f, []string{"text", "email", "tel"}) {
			continue
		}
		if match.FieldIsFuzzyMatch(f, keywords.UsernameFieldNames) {
			out = append(out, f)
		}
	}
	return out
}

// FuzzyTotpFields returns the visible text and number fields that look
// like one-time-code inputs, on pages without any password field.
func FuzzyTotpFields(page *types.PageDetails) []*types.Field {
	var out []*types.Field
	for _, f := range page.Fields {
		if !f.Viewable || f.Disabled || !IsCandidate(f) || !hasType(f, []string{"text", "number"}) {
			continue
		}
		if match.FieldIsFuzzyMatch(f, keywords.TotpFieldNames) || f.AutoCompleteType == keywords.OneTimeCodeAutocomplete {
			out = append(out, f)
		}
	}
	return out
}

func hasType(f *types.Field, allowed []string) bool {
	return slices.Contains(allowed, f.Type)
}
