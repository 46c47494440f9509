package keywords

// IdentityAttributes are the field attributes scanned, in order, by the
// identity generators.
var IdentityAttributes = []string{
	"autoCompleteType",
	"data-stripe",
	"htmlName",
	"htmlID",
	"label-tag",
	"placeholder",
	"label-left",
	"label-top",
	"data-recurly",
}

var FullNameFieldNames = []string{"name", "full-name", "your-name", "nom-complet"}

var FullNameFieldNameValues = []string{"full-name", "your-name", "nom-complet"}

var TitleFieldNames = []string{"honorific-prefix", "prefix", "title", "civilite"}

var FirstnameFieldNames = []string{
	// English
	"f-name",
	"first-name",
	"given-name",
	"first-n",
	// German
	"vorname",
	// French
	"prenom",
}

var MiddlenameFieldNames = []string{
	"m-name",
	"middle-name",
	"additional-name",
	"middle-initial",
	"middle-n",
	"middle-i",
}

var LastnameFieldNames = []string{
	// English
	"l-name",
	"last-name",
	"s-name",
	"surname",
	"family-name",
	"family-n",
	"last-n",
	// German
	"nachname",
	"familienname",
	// French
	"nom-de-famille",
}

var EmailFieldNames = []string{"e-mail", "email", "email-address", "courriel"}

var AddressFieldNames = []string{
	"address",
	"street-address",
	"addr",
	"street",
	"mailing-addr",
	"billing-addr",
	"mail-addr",
	"bill-addr",
	// German
	"strasse",
	"adresse",
}

var AddressFieldNameValues = []string{
	"address",
	"street-address",
	"addr",
	"street",
	"mailing-addr",
	"billing-addr",
	"mail-addr",
	"bill-addr",
	"strasse",
	"adresse",
}

var Address1FieldNames = []string{
	"address-1",
	"address-line-1",
	"addr-1",
	"street-1",
	"address-line1",
	"adresse-1",
}

var Address2FieldNames = []string{
	"address-2",
	"address-line-2",
	"addr-2",
	"street-2",
	"address-line2",
	"adresse-2",
	"complement-adresse",
}

var Address3FieldNames = []string{
	"address-3",
	"address-line-3",
	"addr-3",
	"street-3",
	"address-line3",
	"adresse-3",
}

var PostalCodeFieldNames = []string{
	"postal",
	"zip",
	"zip2",
	"zip-code",
	"postal-code",
	"post-code",
	"address-zip",
	"address-postal",
	"address-code",
	"address-postal-code",
	"address-zip-code",
	// German
	"plz",
	"postleitzahl",
	// French
	"code-postal",
}

var CityFieldNames = []string{
	"city",
	"town",
	"address-level-2",
	"address-city",
	"address-town",
	// German
	"stadt",
	// French
	"ville",
	"commune",
}

var StateFieldNames = []string{
	"state",
	"province",
	"provence",
	"address-level-1",
	"address-state",
	"address-province",
	// German
	"bundesland",
	// French
	"region",
}

var CountryFieldNames = []string{
	"country",
	"country-code",
	"country-name",
	"address-country",
	"address-country-name",
	"address-country-code",
	// German
	"land",
	// French
	"pays",
}

var PhoneFieldNames = []string{
	"phone",
	"mobile",
	"mobile-phone",
	"tel",
	"telephone",
	"phone-number",
	// German
	"telefon",
	"mobil",
	"handynummer",
	// French
	"portable",
}

var UserNameFieldNames = []string{"user-name", "user-id", "screen-name", "identifiant"}

var CompanyFieldNames = []string{
	"company",
	"company-name",
	"organization",
	"organization-name",
	// German
	"firma",
	// French
	"societe",
	"entreprise",
}
