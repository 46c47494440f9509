package qualify

import (
	"sync"

	"github.com/cozy/keys-autofill/internal/autofill/keywords"
	"github.com/cozy/keys-autofill/internal/autofill/match"
	"github.com/cozy/keys-autofill/internal/types"
)

// qualifierRule assigns a qualifier to a field carrying one of the
// autocomplete tokens, or whose attributes match the keyword group.
type qualifierRule struct {
	qualifier    types.FieldQualifier
	autocomplete []string
	names        []string
	contains     []string
	excludes     [][]string
	// test replaces the keyword match when set.
	test func(q *Qualifier, c *pageContext, f *types.Field) bool
}

func (r qualifierRule) matches(q *Qualifier, c *pageContext, f *types.Field) bool {
	if r.test != nil {
		return r.test(q, c, f)
	}
	if fieldContainsAutocompleteValues(f, r.autocomplete) {
		return true
	}
	if len(r.names) == 0 {
		return false
	}
	for _, attr := range keywords.IdentityAttributes {
		v := f.Attr(attr)
		if v == "" || !match.IsFieldMatch(v, r.names, r.contains) {
			continue
		}
		if !excluded(v, r.excludes) {
			return true
		}
	}
	return false
}

func excluded(v string, groups [][]string) bool {
	for _, names := range groups {
		if match.IsFieldMatch(v, names, nil) {
			return true
		}
	}
	return false
}

// lazyTable builds its rules on first use.
type lazyTable struct {
	once  sync.Once
	build func() []qualifierRule
	rules []qualifierRule
}

func (t *lazyTable) get() []qualifierRule {
	t.once.Do(func() { t.rules = t.build() })
	return t.rules
}

var qualifierTables = map[types.CipherType]*lazyTable{
	types.CipherTypeLogin:    {build: loginQualifierRules},
	types.CipherTypeCard:     {build: cardQualifierRules},
	types.CipherTypeIdentity: {build: identityQualifierRules},
	types.CipherTypeContact:  {build: contactQualifierRules},
}

func loginQualifierRules() []qualifierRule {
	return []qualifierRule{
		{qualifier: types.QualifierNewPassword, test: (*Qualifier).isNewPasswordField},
		{qualifier: types.QualifierPassword, test: (*Qualifier).isCurrentPasswordField},
		{qualifier: types.QualifierTotp, test: (*Qualifier).isTotpField},
		{qualifier: types.QualifierUsername, test: func(q *Qualifier, c *pageContext, f *types.Field) bool {
			return hasType(f, keywords.UsernameFieldTypes)
		}},
	}
}

func cardQualifierRules() []qualifierRule {
	return []qualifierRule{
		{
			qualifier:    types.QualifierCardholderName,
			autocomplete: keywords.CardNameAutocompleteValues,
			names:        keywords.CardHolderFieldNames,
			contains:     keywords.CardHolderFieldNameValues,
		},
		{
			qualifier:    types.QualifierCardNumber,
			autocomplete: []string{keywords.AutocompleteCardNumber},
			names:        keywords.CardNumberFieldNames,
			contains:     keywords.CardNumberFieldNameValues,
		},
		{
			qualifier:    types.QualifierCardExpirationMonth,
			autocomplete: []string{keywords.AutocompleteCardExpMonth},
			names:        keywords.ExpiryMonthFieldNames,
		},
		{
			qualifier:    types.QualifierCardExpirationYear,
			autocomplete: []string{keywords.AutocompleteCardExpYear},
			names:        keywords.ExpiryYearFieldNames,
		},
		{
			qualifier:    types.QualifierCardExpirationDate,
			autocomplete: []string{keywords.AutocompleteCardExp},
			names:        keywords.CardExpiryFieldNames,
			contains:     keywords.CardExpiryFieldNameValues,
		},
		{
			qualifier:    types.QualifierCardCvv,
			autocomplete: []string{keywords.AutocompleteCardCvv},
			names:        keywords.CVVFieldNames,
		},
		{
			qualifier:    types.QualifierCardBrand,
			autocomplete: []string{keywords.AutocompleteCardType},
			names:        keywords.CardBrandFieldNames,
		},
	}
}

func identityQualifierRules() []qualifierRule {
	return []qualifierRule{
		{
			qualifier:    types.QualifierIdentityTitle,
			autocomplete: []string{keywords.AutocompleteHonorificPrefix},
			names:        keywords.TitleFieldNames,
		},
		{
			qualifier:    types.QualifierIdentityFirstName,
			autocomplete: []string{keywords.AutocompleteGivenName},
			names:        keywords.FirstnameFieldNames,
		},
		{
			qualifier:    types.QualifierIdentityMiddleName,
			autocomplete: []string{keywords.AutocompleteAdditionalName},
			names:        keywords.MiddlenameFieldNames,
		},
		{
			qualifier:    types.QualifierIdentityLastName,
			autocomplete: []string{keywords.AutocompleteFamilyName},
			names:        keywords.LastnameFieldNames,
		},
		{
			qualifier:    types.QualifierIdentityFullName,
			autocomplete: []string{keywords.AutocompleteFullName},
			names:        keywords.FullNameFieldNames,
			contains:     keywords.FullNameFieldNameValues,
		},
		{
			qualifier:    types.QualifierIdentityEmail,
			autocomplete: []string{keywords.AutocompleteEmail},
			names:        keywords.EmailFieldNames,
		},
		{
			qualifier:    types.QualifierIdentityAddress1,
			autocomplete: []string{keywords.AutocompleteAddressLine1},
			names:        keywords.Address1FieldNames,
		},
		{
			qualifier:    types.QualifierIdentityAddress2,
			autocomplete: []string{keywords.AutocompleteAddressLine2},
			names:        keywords.Address2FieldNames,
		},
		{
			qualifier:    types.QualifierIdentityAddress3,
			autocomplete: []string{keywords.AutocompleteAddressLine3},
			names:        keywords.Address3FieldNames,
		},
		{
			qualifier:    types.QualifierIdentityPostalCode,
			autocomplete: []string{keywords.AutocompletePostalCode},
			names:        keywords.PostalCodeFieldNames,
		},
		{
			qualifier:    types.QualifierIdentityCity,
			autocomplete: []string{keywords.AutocompleteAddressLevel2},
			names:        keywords.CityFieldNames,
		},
		{
			qualifier:    types.QualifierIdentityState,
			autocomplete: []string{keywords.AutocompleteAddressLevel1},
			names:        keywords.StateFieldNames,
		},
		{
			qualifier:    types.QualifierIdentityCountry,
			autocomplete: keywords.IdentityCountryAutocompleteValues,
			names:        keywords.CountryFieldNames,
		},
		{
			qualifier:    types.QualifierIdentityAddress,
			autocomplete: []string{keywords.AutocompleteStreetAddress},
			names:        keywords.AddressFieldNames,
			contains:     keywords.AddressFieldNameValues,
			excludes:     [][]string{keywords.Address1FieldNames, keywords.Address2FieldNames, keywords.Address3FieldNames},
		},
		{
			qualifier:    types.QualifierIdentityPhone,
			autocomplete: []string{keywords.AutocompleteTel},
			names:        keywords.PhoneFieldNames,
		},
		{
			qualifier:    types.QualifierIdentityUsername,
			autocomplete: []string{keywords.AutocompleteUsername},
			names:        keywords.UserNameFieldNames,
		},
		{
			qualifier:    types.QualifierIdentityCompany,
			autocomplete: []string{keywords.AutocompleteOrganization},
			names:        keywords.CompanyFieldNames,
		},
	}
}

// contactFieldKeywords are the contact and paper groups that make a field
// an identity form field for the contact menu.
var contactFieldKeywords = concat(
	keywords.BirthdayFieldNames,
	keywords.JobTitleFieldNames,
	keywords.IdentityCardNumberFieldNames,
	keywords.PassportNumberFieldNames,
	keywords.ResidencePermitFieldNames,
	keywords.DriverLicenseFieldNames,
	keywords.VehicleRegistrationFieldNames,
	keywords.HealthInsuranceFieldNames,
	keywords.IbanFieldNames,
	keywords.BicFieldNames,
	keywords.TaxNoticeFieldNames,
	keywords.PaperExpirationFieldNames,
)

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// contactQualifierRules puts the contact-only and paper groups ahead of the
// identity ones: "job-title" must not read as a title.
func contactQualifierRules() []qualifierRule {
	rules := []qualifierRule{
		{
			qualifier:    types.QualifierContactBirthday,
			autocomplete: []string{keywords.AutocompleteBirthday},
			names:        keywords.BirthdayFieldNames,
		},
		{
			qualifier:    types.QualifierContactJobTitle,
			autocomplete: []string{keywords.AutocompleteOrganizationTitle},
			names:        keywords.JobTitleFieldNames,
		},
		{qualifier: types.QualifierPaperIdentityCardNumber, names: keywords.IdentityCardNumberFieldNames},
		{qualifier: types.QualifierPaperPassportNumber, names: keywords.PassportNumberFieldNames},
		{qualifier: types.QualifierPaperResidencePermit, names: keywords.ResidencePermitFieldNames},
		{qualifier: types.QualifierPaperDriverLicenseNumber, names: keywords.DriverLicenseFieldNames},
		{qualifier: types.QualifierPaperVehicleRegistration, names: keywords.VehicleRegistrationFieldNames},
		{qualifier: types.QualifierPaperHealthInsurance, names: keywords.HealthInsuranceFieldNames},
		{qualifier: types.QualifierPaperIBAN, names: keywords.IbanFieldNames},
		{qualifier: types.QualifierPaperBIC, names: keywords.BicFieldNames},
		{qualifier: types.QualifierPaperTaxNoticeNumber, names: keywords.TaxNoticeFieldNames},
		{qualifier: types.QualifierPaperExpirationDate, names: keywords.PaperExpirationFieldNames},
	}
	return append(rules, identityQualifierRules()...)
}

// fieldQualifier returns the field's qualifier, computing it on first call
// from the table of the field's cipher type. A qualifier once set is kept.
func (q *Qualifier) fieldQualifier(c *pageContext, f *types.Field) types.FieldQualifier {
	if !f.FieldQualifier.IsZero() {
		return f.FieldQualifier
	}
	table, ok := qualifierTables[f.FilledByCipherType]
	if !ok {
		return ""
	}
	for _, rule := range table.get() {
		if rule.matches(q, c, f) {
			f.FieldQualifier = rule.qualifier
			return f.FieldQualifier
		}
	}
	return ""
}
