package qualify

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/cozy/keys-autofill/internal/autofill/keywords"
	"github.com/cozy/keys-autofill/internal/autofill/match"
	"github.com/cozy/keys-autofill/internal/types"
)

// Qualifier decides which cipher type fills a field, and which attribute of
// it. It holds no per-page state and is safe for concurrent use.
type Qualifier struct {
	log *zap.Logger
	// identityType is the cipher type offered on identity forms: Identity,
	// or Contact for the Cozy contact-based menu.
	identityType types.CipherType
}

// Option configures a Qualifier.
type Option func(*Qualifier)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(q *Qualifier) { q.log = log }
}

// WithContactsForIdentityForms makes identity forms offer contacts.
func WithContactsForIdentityForms(enabled bool) Option {
	return func(q *Qualifier) {
		if enabled {
			q.identityType = types.CipherTypeContact
		} else {
			q.identityType = types.CipherTypeIdentity
		}
	}
}

// New creates a qualifier.
func New(opts ...Option) *Qualifier {
	q := &Qualifier{log: zap.NewNop(), identityType: types.CipherTypeIdentity}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// pageContext caches the keyword data of a page's fields.
type pageContext struct {
	page     *types.PageDetails
	keywords map[*types.Field]fieldKeywords
}

func newPageContext(page *types.PageDetails) *pageContext {
	if page == nil {
		page = &types.PageDetails{}
	}
	return &pageContext{page: page.Compacted(), keywords: make(map[*types.Field]fieldKeywords)}
}

func (c *pageContext) kw(f *types.Field) fieldKeywords {
	if kw, ok := c.keywords[f]; ok {
		return kw
	}
	kw := newFieldKeywords(f)
	c.keywords[f] = kw
	return kw
}

// formFields returns the fields sharing f's form. Fields outside any form
// share the empty form.
func (c *pageContext) formFields(f *types.Field) []*types.Field {
	var out []*types.Field
	for _, other := range c.page.Fields {
		if other.Form == f.Form {
			out = append(out, other)
		}
	}
	return out
}

// FilledByCipherType returns the cipher type whose inline menu serves the
// field, or 0 when the field is ignored.
func (q *Qualifier) FilledByCipherType(f *types.Field, page *types.PageDetails) types.CipherType {
	if f == nil {
		return 0
	}
	return q.filledByCipherType(newPageContext(page), f)
}

func (q *Qualifier) filledByCipherType(c *pageContext, f *types.Field) types.CipherType {
	switch {
	case isIgnoredField(f):
		return 0
	case q.isFieldForLoginForm(c, f):
		return types.CipherTypeLogin
	case q.isFieldForCreditCardForm(c, f):
		return types.CipherTypeCard
	case q.isFieldForAccountCreationForm(c, f):
		return types.CipherTypeLogin
	case q.isFieldForIdentityForm(c, f):
		return q.identityType
	}
	return 0
}

func isIgnoredField(f *types.Field) bool {
	return match.IsExcludedFieldType(f, keywords.ExcludedInlineMenuTypes) ||
		match.FieldHasDisqualifyingAttributeValue(f)
}

func isPasswordType(f *types.Field) bool {
	return f.Type == "password" || match.IsLikePasswordField(f)
}

func (q *Qualifier) isCurrentPasswordField(c *pageContext, f *types.Field) bool {
	if !isPasswordType(f) {
		return false
	}
	if fieldContainsAutocompleteValues(f, []string{keywords.NewPasswordAutocomplete}) {
		return false
	}
	return !c.kw(f).found(keywords.AccountCreationFieldKeywords, true)
}

func (q *Qualifier) isNewPasswordField(c *pageContext, f *types.Field) bool {
	if !isPasswordType(f) {
		return false
	}
	return fieldContainsAutocompleteValues(f, []string{keywords.NewPasswordAutocomplete}) ||
		c.kw(f).found(keywords.AccountCreationFieldKeywords, true)
}

func (q *Qualifier) isUsernameField(c *pageContext, f *types.Field) bool {
	if !hasType(f, keywords.UsernameFieldTypes) {
		return false
	}
	return fieldContainsAutocompleteValues(f, keywords.LoginUsernameAutocompleteValues) ||
		c.kw(f).found(keywords.UsernameFieldNames, true)
}

func (q *Qualifier) isTotpField(c *pageContext, f *types.Field) bool {
	if !hasType(f, []string{"text", "number", "tel"}) {
		return false
	}
	return fieldContainsAutocompleteValues(f, []string{keywords.OneTimeCodeAutocomplete}) ||
		c.kw(f).found(keywords.TotpFieldNames, true)
}

func hasType(f *types.Field, allowed []string) bool {
	return slices.Contains(allowed, f.Type)
}

// isFieldForLoginForm tests the password, username and TOTP variants.
func (q *Qualifier) isFieldForLoginForm(c *pageContext, f *types.Field) bool {
	if q.isCurrentPasswordField(c, f) {
		return q.isPasswordFieldForLoginForm(c, f)
	}
	if q.isTotpField(c, f) {
		return true
	}
	if q.isUsernameField(c, f) {
		return q.isUsernameFieldForLoginForm(c, f)
	}
	return false
}

// A current password is a login password unless its form (or the page,
// outside forms) holds several password fields, which is how sign-up and
// password change forms look.
func (q *Qualifier) isPasswordFieldForLoginForm(c *pageContext, f *types.Field) bool {
	if fieldContainsAutocompleteValues(f, []string{keywords.AutocompleteCurrentPassword}) {
		return true
	}
	if q.countPasswordFields(c, f) > 1 {
		return false
	}
	return !q.isNewsletterForm(c, f)
}

func (q *Qualifier) isUsernameFieldForLoginForm(c *pageContext, f *types.Field) bool {
	if fieldContainsAutocompleteValues(f, keywords.AutocompleteDisabledValues) &&
		!c.kw(f).found(keywords.UsernameFieldNames, false) {
		return false
	}

	switch n := q.countPasswordFields(c, f); {
	case n == 1:
		return true
	case n > 1:
		return false
	}

	// Without a password field, only a lone username input is a login step.
	if q.isNewsletterForm(c, f) {
		return false
	}
	if !c.page.HasForm(f.Form) {
		return fieldContainsAutocompleteValues(f, keywords.LoginUsernameAutocompleteValues) ||
			c.kw(f).found(keywords.UsernameFieldNames, false)
	}
	return countFillable(c.formFields(f)) == 1
}

func (q *Qualifier) countPasswordFields(c *pageContext, f *types.Field) int {
	n := 0
	for _, other := range c.formFields(f) {
		if other.Type == "password" && !isIgnoredField(other) {
			n++
		}
	}
	return n
}

func countFillable(fields []*types.Field) int {
	n := 0
	for _, f := range fields {
		if f.Viewable && !isIgnoredField(f) {
			n++
		}
	}
	return n
}

// isNewsletterForm reports whether the field's form, or the field itself
// outside forms, is a newsletter subscription.
func (q *Qualifier) isNewsletterForm(c *pageContext, f *types.Field) bool {
	if form, ok := c.page.Forms[f.Form]; ok && f.Form != "" {
		attrs := strings.ToLower(strings.Join([]string{form.HTMLID, form.HTMLName, form.HTMLClass, form.HTMLAction}, " "))
		for _, k := range keywords.NewsletterFormKeywords {
			if strings.Contains(attrs, k) {
				return true
			}
		}
	}
	return c.kw(f).found(keywords.NewsletterFormKeywords, true)
}

// A card field must carry a card autocomplete token, or match a card
// keyword exactly and share its form with another such field.
func (q *Qualifier) isFieldForCreditCardForm(c *pageContext, f *types.Field) bool {
	if fieldContainsAutocompleteValues(f, keywords.CardAutocompleteValues) {
		return true
	}
	if !c.kw(f).found(keywords.CardFieldKeywords, false) {
		return false
	}
	n := 0
	for _, other := range c.formFields(f) {
		if isIgnoredField(other) {
			continue
		}
		if fieldContainsAutocompleteValues(other, keywords.CardAutocompleteValues) ||
			c.kw(other).found(keywords.CardFieldKeywords, false) {
			n++
		}
	}
	return n > 1
}

// Account creation covers new password fields, and username or e-mail
// inputs of a form holding a new password field or several passwords.
func (q *Qualifier) isFieldForAccountCreationForm(c *pageContext, f *types.Field) bool {
	if q.isNewPasswordField(c, f) {
		return true
	}
	if !isPasswordType(f) && !hasType(f, keywords.UsernameFieldTypes) {
		return false
	}
	if c.kw(f).found(keywords.AccountCreationFieldKeywords, true) {
		return true
	}
	if !q.isUsernameField(c, f) {
		return false
	}
	for _, other := range c.formFields(f) {
		if other != f && q.isNewPasswordField(c, other) {
			return true
		}
	}
	return q.countPasswordFields(c, f) > 1
}

func (q *Qualifier) isFieldForIdentityForm(c *pageContext, f *types.Field) bool {
	if isPasswordType(f) {
		return false
	}
	if fieldContainsAutocompleteValues(f, keywords.IdentityAutocompleteValues) {
		return true
	}
	kw := c.kw(f)
	if kw.found(keywords.IdentityFieldKeywords, false) {
		return true
	}
	return q.identityType == types.CipherTypeContact && kw.found(contactFieldKeywords, false)
}
