package types

// Contact is a Cozy contact document used as an identity source.
type Contact struct {
	// DocumentID identifies the io.cozy.contacts document; remote attribute
	// lookups use it.
	DocumentID  string           `json:"documentId,omitempty"`
	DisplayName string           `json:"displayName,omitempty"`
	Name        ContactName      `json:"name"`
	Emails      []ContactEmail   `json:"email,omitempty"`
	Phones      []ContactPhone   `json:"phone,omitempty"`
	Addresses   []ContactAddress `json:"address,omitempty"`
	Company     string           `json:"company,omitempty"`
	JobTitle    string           `json:"jobTitle,omitempty"`
	Birthday    string           `json:"birthday,omitempty"`
}

func (*Contact) CipherType() CipherType { return CipherTypeContact }

// ContactName holds the parts of a contact's name.
type ContactName struct {
	NamePrefix     string `json:"namePrefix,omitempty"`
	GivenName      string `json:"givenName,omitempty"`
	AdditionalName string `json:"additionalName,omitempty"`
	FamilyName     string `json:"familyName,omitempty"`
	NameSuffix     string `json:"nameSuffix,omitempty"`
}

// ContactEmail is one e-mail address of a contact.
type ContactEmail struct {
	Address string `json:"address"`
	Type    string `json:"type,omitempty"`
	Primary bool   `json:"primary,omitempty"`
}

// ContactPhone is one phone number of a contact.
type ContactPhone struct {
	Number  string `json:"number"`
	Type    string `json:"type,omitempty"`
	Primary bool   `json:"primary,omitempty"`
}

// ContactAddress is one postal address of a contact.
type ContactAddress struct {
	FormattedAddress string `json:"formattedAddress,omitempty"`
	Number           string `json:"number,omitempty"`
	Street           string `json:"street,omitempty"`
	Code             string `json:"code,omitempty"`
	City             string `json:"city,omitempty"`
	Region           string `json:"region,omitempty"`
	Country          string `json:"country,omitempty"`
	Type             string `json:"type,omitempty"`
	Primary          bool   `json:"primary,omitempty"`
}

// PrimaryEmail returns the primary address, else the first one.
func (c *Contact) PrimaryEmail() string {
	for _, e := range c.Emails {
		if e.Primary {
			return e.Address
		}
	}
	if len(c.Emails) > 0 {
		return c.Emails[0].Address
	}
	return ""
}

// PrimaryPhone returns the primary number, else the first one.
func (c *Contact) PrimaryPhone() string {
	for _, p := range c.Phones {
		if p.Primary {
			return p.Number
		}
	}
	if len(c.Phones) > 0 {
		return c.Phones[0].Number
	}
	return ""
}

// PrimaryAddress returns the primary address, else the first one.
func (c *Contact) PrimaryAddress() *ContactAddress {
	for i := range c.Addresses {
		if c.Addresses[i].Primary {
			return &c.Addresses[i]
		}
	}
	if len(c.Addresses) > 0 {
		return &c.Addresses[0]
	}
	return nil
}

// StreetLine returns the street line of the address, house number first.
func (a *ContactAddress) StreetLine() string {
	if a == nil {
		return ""
	}
	if a.Street == "" {
		return a.FormattedAddress
	}
	return joinNonEmpty(" ", a.Number, a.Street)
}

// PaperKind is the qualification of an administrative paper.
type PaperKind string

const (
	PaperNationalIDCard      PaperKind = "national_id_card"
	PaperPassport            PaperKind = "passport"
	PaperResidencePermit     PaperKind = "residence_permit"
	PaperDriverLicense       PaperKind = "driver_license"
	PaperVehicleRegistration PaperKind = "vehicle_registration"
	PaperBankDetails         PaperKind = "bank_details"
	PaperTaxNotice           PaperKind = "tax_notice"
	PaperHealthInsuranceCard PaperKind = "national_health_insurance_card"
)

// Paper is a Cozy administrative paper (identity card, passport, bank
// details...). Attributes missing locally can be fetched remotely from the
// document identified by DocumentID.
type Paper struct {
	DocumentID     string            `json:"documentId,omitempty"`
	Kind           PaperKind         `json:"kind"`
	Number         string            `json:"number,omitempty"`
	ExpirationDate string            `json:"expirationDate,omitempty"`
	IssueDate      string            `json:"issueDate,omitempty"`
	Country        string            `json:"country,omitempty"`
	IBAN           string            `json:"iban,omitempty"`
	BIC            string            `json:"bic,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

func (*Paper) CipherType() CipherType { return CipherTypePaper }
