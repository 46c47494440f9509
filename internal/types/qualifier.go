package types

// FieldQualifier is the semantic role assigned to a field once the user has
// interacted with it. The zero value means "not qualified".
type FieldQualifier string

const (
	QualifierUsername    FieldQualifier = "username"
	QualifierPassword    FieldQualifier = "password"
	QualifierNewPassword FieldQualifier = "newPassword"
	QualifierTotp        FieldQualifier = "totp"

	QualifierCardholderName      FieldQualifier = "cardholderName"
	QualifierCardNumber          FieldQualifier = "cardNumber"
	QualifierCardExpirationDate  FieldQualifier = "cardExpirationDate"
	QualifierCardExpirationMonth FieldQualifier = "cardExpirationMonth"
	QualifierCardExpirationYear  FieldQualifier = "cardExpirationYear"
	QualifierCardCvv             FieldQualifier = "cardCvv"
	QualifierCardBrand           FieldQualifier = "cardBrand"

	QualifierIdentityTitle      FieldQualifier = "identityTitle"
	QualifierIdentityFullName   FieldQualifier = "identityFullName"
	QualifierIdentityFirstName  FieldQualifier = "identityFirstName"
	QualifierIdentityMiddleName FieldQualifier = "identityMiddleName"
	QualifierIdentityLastName   FieldQualifier = "identityLastName"
	QualifierIdentityEmail      FieldQualifier = "identityEmail"
	QualifierIdentityAddress    FieldQualifier = "identityAddress"
	QualifierIdentityAddress1   FieldQualifier = "identityAddress1"
	QualifierIdentityAddress2   FieldQualifier = "identityAddress2"
	QualifierIdentityAddress3   FieldQualifier = "identityAddress3"
	QualifierIdentityPostalCode FieldQualifier = "identityPostalCode"
	QualifierIdentityCity       FieldQualifier = "identityCity"
	QualifierIdentityState      FieldQualifier = "identityState"
	QualifierIdentityCountry    FieldQualifier = "identityCountry"
	QualifierIdentityPhone      FieldQualifier = "identityPhone"
	QualifierIdentityUsername   FieldQualifier = "identityUsername"
	QualifierIdentityCompany    FieldQualifier = "identityCompany"

	QualifierContactBirthday FieldQualifier = "contactBirthday"
	QualifierContactJobTitle FieldQualifier = "contactJobTitle"

	QualifierPaperIdentityCardNumber  FieldQualifier = "paperIdentityCardNumber"
	QualifierPaperPassportNumber      FieldQualifier = "paperPassportNumber"
	QualifierPaperResidencePermit     FieldQualifier = "paperResidencePermitNumber"
	QualifierPaperDriverLicenseNumber FieldQualifier = "paperDrivingLicenseNumber"
	QualifierPaperVehicleRegistration FieldQualifier = "paperVehicleRegistrationNumber"
	QualifierPaperHealthInsurance     FieldQualifier = "paperSocialSecurityNumber"
	QualifierPaperIBAN                FieldQualifier = "paperBankIbanNumber"
	QualifierPaperBIC                 FieldQualifier = "paperBankBicNumber"
	QualifierPaperTaxNoticeNumber     FieldQualifier = "paperTaxNoticeNumber"
	QualifierPaperExpirationDate      FieldQualifier = "paperExpirationDate"
)

// IsZero reports whether no qualifier was assigned.
func (q FieldQualifier) IsZero() bool { return q == "" }
