package keywords

// UsernameFieldNames are matched exactly against field attributes to anchor
// the username of a login form.
var UsernameFieldNames = []string{
	// English
	"username",
	"user name",
	"email",
	"email address",
	"e-mail",
	"e-mail address",
	"userid",
	"user id",
	"customer id",
	"login id",
	"login",
	// German
	"benutzername",
	"benutzer name",
	"email adresse",
	"e-mail adresse",
	"benutzerid",
	"benutzer id",
	// French
	"identifiant",
	"adresse email",
	"adresse e-mail",
	"courriel",
}

// TotpFieldNames identify one-time-code inputs.
var TotpFieldNames = []string{
	"totp",
	"2fa",
	"mfa",
	"totpcode",
	"2facode",
	"approvals_code",
	"mfacode",
	"otc-code",
	"onetimecode",
	"otp-code",
	"otpcode",
	"pin",
	"security_code",
	"twofactor",
	"twofa",
	"twofactorcode",
	"verificationcode",
}

// SearchFieldNames are the tokens that mark a site search box.
var SearchFieldNames = []string{"search", "query", "find", "go"}

// FieldIgnoreList disqualifies a field whatever else it matches.
var FieldIgnoreList = []string{"captcha", "findanything", "forgot"}

// PasswordFieldExcludeList rejects text inputs that merely mention
// "password". It extends FieldIgnoreList.
var PasswordFieldExcludeList = []string{"hint", "captcha", "findanything", "forgot", "onetimepassword"}

// ExcludedAutofillLoginTypes are input types never filled by a login.
var ExcludedAutofillLoginTypes = []string{"hidden", "file", "button", "image", "reset", "search"}

// ExcludedAutofillTypes are input types never filled by any cipher.
var ExcludedAutofillTypes = append([]string{"radio", "checkbox"}, ExcludedAutofillLoginTypes...)

// ExcludedInlineMenuTypes are input types that never get an inline menu.
var ExcludedInlineMenuTypes = append([]string{"textarea"}, ExcludedAutofillTypes...)

// OneTimeCodeAutocomplete is the autocomplete token of TOTP inputs.
const OneTimeCodeAutocomplete = "one-time-code"

// NewPasswordAutocomplete is the autocomplete token of password creation
// inputs.
const NewPasswordAutocomplete = "new-password"
