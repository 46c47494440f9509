package keywords

// Autocomplete tokens used by the field qualifier.
const (
	AutocompleteUsername        = "username"
	AutocompleteEmail           = "email"
	AutocompleteCurrentPassword = "current-password"

	AutocompleteCardExp      = "cc-exp"
	AutocompleteCardExpMonth = "cc-exp-month"
	AutocompleteCardExpYear  = "cc-exp-year"
	AutocompleteCardCvv      = "cc-csc"
	AutocompleteCardNumber   = "cc-number"
	AutocompleteCardType     = "cc-type"

	AutocompleteHonorificPrefix   = "honorific-prefix"
	AutocompleteFullName          = "name"
	AutocompleteGivenName         = "given-name"
	AutocompleteAdditionalName    = "additional-name"
	AutocompleteFamilyName        = "family-name"
	AutocompleteOrganization      = "organization"
	AutocompleteStreetAddress     = "street-address"
	AutocompleteAddressLine1      = "address-line1"
	AutocompleteAddressLine2      = "address-line2"
	AutocompleteAddressLine3      = "address-line3"
	AutocompleteAddressLevel2     = "address-level2"
	AutocompleteAddressLevel1     = "address-level1"
	AutocompletePostalCode        = "postal-code"
	AutocompleteTel               = "tel"
	AutocompleteBirthday          = "bday"
	AutocompleteOrganizationTitle = "organization-title"
)

// UsernameFieldTypes are the input types a login username can have.
var UsernameFieldTypes = []string{"text", "email", "number", "tel"}

var LoginUsernameAutocompleteValues = []string{AutocompleteUsername, AutocompleteEmail}

// AutocompleteDisabledValues turn autocompletion off.
var AutocompleteDisabledValues = []string{"off", "false"}

// AccountCreationFieldKeywords mark sign-up and password-change inputs.
var AccountCreationFieldKeywords = []string{
	"register",
	"registration",
	"create password",
	"create a password",
	"create an account",
	"create account password",
	"create user password",
	"confirm password",
	"confirm account password",
	"confirm user password",
	"new user",
	"new email",
	"new e-mail",
	"new password",
	"new-password",
	"neuer benutzer",
	"neues passwort",
	"neue e-mail",
	"pwdcheck",
	"inscription",
	"nouveau mot de passe",
	"confirmer le mot de passe",
}

// NewsletterFormKeywords mark forms that only subscribe an e-mail.
var NewsletterFormKeywords = []string{"newsletter", "subscribe", "subscription", "abonnement"}

var CardNameAutocompleteValues = []string{"cc-name", "cc-given-name", "cc-additional-name", "cc-family-name"}

var CardAutocompleteValues = append(append([]string{}, CardNameAutocompleteValues...),
	AutocompleteCardExp,
	AutocompleteCardExpMonth,
	AutocompleteCardExpYear,
	AutocompleteCardCvv,
	AutocompleteCardNumber,
	AutocompleteCardType,
)

var IdentityNameAutocompleteValues = []string{
	AutocompleteFullName,
	AutocompleteHonorificPrefix,
	AutocompleteGivenName,
	AutocompleteAdditionalName,
	AutocompleteFamilyName,
}

var IdentityAddressAutocompleteValues = []string{
	AutocompleteStreetAddress,
	AutocompleteAddressLine1,
	AutocompleteAddressLine2,
	AutocompleteAddressLine3,
	AutocompleteAddressLevel2,
	AutocompleteAddressLevel1,
}

var IdentityCountryAutocompleteValues = []string{"country", "country-name"}

var IdentityAutocompleteValues = concat(
	IdentityNameAutocompleteValues,
	IdentityAddressAutocompleteValues,
	IdentityCountryAutocompleteValues,
	[]string{
		AutocompleteOrganization,
		AutocompletePostalCode,
		AutocompleteTel,
		AutocompleteEmail,
		AutocompleteUsername,
	},
)

// CardFieldKeywords is the union of every card keyword group.
var CardFieldKeywords = unique(concat(
	CardHolderFieldNames,
	CardNumberFieldNames,
	CardExpiryFieldNames,
	ExpiryMonthFieldNames,
	ExpiryYearFieldNames,
	CVVFieldNames,
	CardBrandFieldNames,
))

// IdentityFieldKeywords is the union of every identity keyword group.
var IdentityFieldKeywords = unique(concat(
	TitleFieldNames,
	FullNameFieldNames,
	FirstnameFieldNames,
	MiddlenameFieldNames,
	LastnameFieldNames,
	AddressFieldNames,
	Address1FieldNames,
	Address2FieldNames,
	Address3FieldNames,
	CityFieldNames,
	StateFieldNames,
	PostalCodeFieldNames,
	CountryFieldNames,
	CompanyFieldNames,
	PhoneFieldNames,
	EmailFieldNames,
	UserNameFieldNames,
))

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func unique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
