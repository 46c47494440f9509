package keywords

// CardAttributes are the field attributes scanned, in order, by the card
// generator.
var CardAttributes = []string{
	"autoCompleteType",
	"data-stripe",
	"htmlName",
	"htmlID",
	"title",
	"label-tag",
	"placeholder",
	"label-left",
	"label-top",
	"data-recurly",
}

// CardAttributesExtended are the attributes searched for expiry format
// hints.
var CardAttributesExtended = append(append([]string{}, CardAttributes...), "label-right")

// Localized date-part abbreviations, index-aligned: English, German,
// French/Spanish, Scandinavian.
var (
	MonthAbbr     = []string{"mm", "mm", "mm", "mm"}
	YearAbbrShort = []string{"yy", "jj", "aa", "åå"}
	YearAbbrLong  = []string{"yyyy", "jjjj", "aaaa", "åååå"}
)

var CardHolderFieldNames = []string{
	"cc-name",
	"card-name",
	"cardholder-name",
	"cardholder",
	"name",
	"nom",
	"titulaire",
	"nom-titulaire",
}

// CardHolderFieldNameValues may match as substrings; other cardholder names
// must match exactly.
var CardHolderFieldNameValues = []string{
	"cc-name",
	"card-name",
	"cardholder-name",
	"cardholder",
	"tbname",
	"nom-titulaire",
}

var CardNumberFieldNames = []string{
	"cc-number",
	"cc-num",
	"card-number",
	"card-num",
	"number",
	"cc",
	"cc-no",
	"card-no",
	"credit-card",
	"numero-carte",
	"carte",
	"carte-credit",
	"num-carte",
	"cb-num",
	"numero-de-carte",
}

var CardNumberFieldNameValues = []string{
	"cc-number",
	"cc-num",
	"card-number",
	"card-num",
	"cc-no",
	"card-no",
	"numero-carte",
	"num-carte",
	"cb-num",
	"numero-de-carte",
}

var CardExpiryFieldNames = []string{
	"cc-exp",
	"card-exp",
	"cc-expiration",
	"card-expiration",
	"cc-ex",
	"card-ex",
	"card-expire",
	"card-expiry",
	"validite",
	"expiration",
	"expiry",
	"mm-yy",
	"mm-yyyy",
	"yy-mm",
	"yyyy-mm",
	"expiration-date",
	"payment-cc-date",
	"date-expiration",
	"date-validite",
}

var CardExpiryFieldNameValues = []string{
	"mm-yy",
	"mm-yyyy",
	"yy-mm",
	"yyyy-mm",
	"expiration-date",
	"payment-cc-date",
	"date-expiration",
	"date-validite",
}

var ExpiryMonthFieldNames = []string{
	"exp-month",
	"cc-exp-month",
	"cc-month",
	"card-month",
	"cc-mo",
	"card-mo",
	"exp-mo",
	"card-exp-mo",
	"cc-exp-mo",
	"card-expiration-month",
	"expiration-month",
	"cc-mm",
	"cc-m",
	"card-mm",
	"card-m",
	"card-exp-mm",
	"cc-exp-mm",
	"exp-mm",
	"exp-m",
	"expire-month",
	"expire-mo",
	"expiry-month",
	"expiry-mo",
	"card-expire-month",
	"card-expire-mo",
	"card-expiry-month",
	"card-expiry-mo",
	"mois-validite",
	"mois-expiration",
	"m-validite",
	"m-expiration",
	"expiry-date-field-month",
	"expiration-date-month",
	"expiration-date-mm",
	"exp-mon",
	"validity-mo",
	"exp-date-mo",
	"cb-date-mois",
	"date-m",
}

var ExpiryYearFieldNames = []string{
	"exp-year",
	"cc-exp-year",
	"cc-year",
	"card-year",
	"cc-yr",
	"card-yr",
	"exp-yr",
	"card-exp-yr",
	"cc-exp-yr",
	"card-expiration-year",
	"expiration-year",
	"cc-yy",
	"cc-y",
	"card-yy",
	"card-y",
	"card-exp-yy",
	"cc-exp-yy",
	"exp-yy",
	"exp-y",
	"cc-yyyy",
	"card-yyyy",
	"card-exp-yyyy",
	"cc-exp-yyyy",
	"expire-year",
	"expire-yr",
	"expiry-year",
	"expiry-yr",
	"card-expire-year",
	"card-expire-yr",
	"card-expiry-year",
	"card-expiry-yr",
	"an-validite",
	"an-expiration",
	"annee-validite",
	"annee-expiration",
	"expiry-date-field-year",
	"expiration-date-year",
	"cb-date-ann",
	"expiration-date-yy",
	"expiration-date-yyyy",
	"validity-year",
	"exp-date-year",
	"date-y",
}

var CVVFieldNames = []string{
	"cvv",
	"cvc",
	"cvv2",
	"cc-csc",
	"cc-cvv",
	"card-csc",
	"card-cvv",
	"cvd",
	"cid",
	"cvc2",
	"cnv",
	"cvn2",
	"cc-code",
	"card-code",
	"code-securite",
	"security-code",
	"crypto",
	"card-verif",
	"verification-code",
	"csc",
	"ccv",
	"cryptogramme",
}

var CardBrandFieldNames = []string{
	"cc-type",
	"card-type",
	"card-brand",
	"cc-brand",
	"cb-type",
}
