package keywords

// Contact-only slots; the other contact slots reuse the identity groups.
var (
	BirthdayFieldNames = []string{"birthday", "bday", "birth-date", "date-of-birth", "dob", "date-naissance", "naissance", "geburtsdatum"}
	JobTitleFieldNames = []string{"job-title", "jobtitle", "organization-title", "profession", "fonction", "poste"}
)

// Paper slots.
var (
	IdentityCardNumberFieldNames = []string{
		"id-card-number",
		"identity-card",
		"identity-card-number",
		"national-id",
		"national-id-number",
		"carte-identite",
		"numero-carte-identite",
		"cni",
		"personalausweis",
	}
	PassportNumberFieldNames = []string{
		"passport",
		"passport-number",
		"passport-no",
		"passeport",
		"numero-passeport",
		"reisepass",
	}
	ResidencePermitFieldNames = []string{
		"residence-permit",
		"residence-permit-number",
		"titre-sejour",
		"titre-de-sejour",
		"numero-titre-sejour",
	}
	DriverLicenseFieldNames = []string{
		"driver-license",
		"drivers-license",
		"driving-licence",
		"driving-license",
		"license-number",
		"licence-number",
		"permis",
		"permis-conduire",
		"numero-permis",
		"fuhrerschein",
	}
	VehicleRegistrationFieldNames = []string{
		"vehicle-registration",
		"registration-number",
		"license-plate",
		"licence-plate",
		"plate-number",
		"immatriculation",
		"plaque",
		"kennzeichen",
	}
	HealthInsuranceFieldNames = []string{
		"social-security",
		"social-security-number",
		"ssn",
		"securite-sociale",
		"numero-securite-sociale",
		"numero-secu",
		"nir",
		"insurance-number",
	}
	TaxNoticeFieldNames = []string{
		"tax-number",
		"tax-id",
		"tax-reference",
		"numero-fiscal",
		"reference-avis",
		"avis-imposition",
		"steuernummer",
	}
	IbanFieldNames            = []string{"iban", "iban-number", "numero-iban"}
	BicFieldNames             = []string{"bic", "swift", "bic-swift", "swift-code", "code-bic"}
	PaperExpirationFieldNames = []string{
		"expiration-date",
		"expiry-date",
		"valid-until",
		"date-expiration",
		"date-fin-validite",
		"gultig-bis",
	}
)
