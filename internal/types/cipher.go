package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CipherType tags a credential record. The zero value means "none".
type CipherType int

const (
	CipherTypeLogin      CipherType = 1
	CipherTypeSecureNote CipherType = 2
	CipherTypeCard       CipherType = 3
	CipherTypeIdentity   CipherType = 4
	CipherTypeContact    CipherType = 5
	CipherTypePaper      CipherType = 6
)

// String returns the lowercase name of the type.
func (t CipherType) String() string {
	switch t {
	case CipherTypeLogin:
		return "login"
	case CipherTypeSecureNote:
		return "secureNote"
	case CipherTypeCard:
		return "card"
	case CipherTypeIdentity:
		return "identity"
	case CipherTypeContact:
		return "contact"
	case CipherTypePaper:
		return "paper"
	default:
		return "none"
	}
}

// ParseCipherType maps a name produced by String back to its type.
func ParseCipherType(s string) (CipherType, error) {
	for t := CipherTypeLogin; t <= CipherTypePaper; t++ {
		if strings.EqualFold(t.String(), s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown cipher type %q", s)
}

// Record is the type-specific attribute bag of a cipher. It is a closed
// union: Login, Card, Identity, Contact and Paper.
type Record interface {
	CipherType() CipherType
}

// Cipher is a decrypted credential.
type Cipher struct {
	ID                  string
	Name                string
	OrganizationUseTotp bool
	Fields              []CustomField
	Record              Record
}

// Type returns the tag of the cipher's record.
func (c *Cipher) Type() CipherType {
	if c == nil || c.Record == nil {
		return 0
	}
	return c.Record.CipherType()
}

// Login returns the login record, or nil.
func (c *Cipher) Login() *Login {
	if c == nil {
		return nil
	}
	r, _ := c.Record.(*Login)
	return r
}

// Card returns the card record, or nil.
func (c *Cipher) Card() *Card {
	if c == nil {
		return nil
	}
	r, _ := c.Record.(*Card)
	return r
}

// Identity returns the identity record, or nil.
func (c *Cipher) Identity() *Identity {
	if c == nil {
		return nil
	}
	r, _ := c.Record.(*Identity)
	return r
}

// Contact returns the contact record, or nil.
func (c *Cipher) Contact() *Contact {
	if c == nil {
		return nil
	}
	r, _ := c.Record.(*Contact)
	return r
}

// Paper returns the paper record, or nil.
func (c *Cipher) Paper() *Paper {
	if c == nil {
		return nil
	}
	r, _ := c.Record.(*Paper)
	return r
}

type cipherJSON struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Type                CipherType    `json:"type"`
	OrganizationUseTotp bool          `json:"organizationUseTotp,omitempty"`
	Fields              []CustomField `json:"fields,omitempty"`
	Login               *Login        `json:"login,omitempty"`
	Card                *Card         `json:"card,omitempty"`
	Identity            *Identity     `json:"identity,omitempty"`
	Contact             *Contact      `json:"contact,omitempty"`
	Paper               *Paper        `json:"paper,omitempty"`
}

// MarshalJSON writes the cipher with its record under the type's key.
func (c Cipher) MarshalJSON() ([]byte, error) {
	out := cipherJSON{
		ID:                  c.ID,
		Name:                c.Name,
		Type:                c.Type(),
		OrganizationUseTotp: c.OrganizationUseTotp,
		Fields:              c.Fields,
		Login:               c.Login(),
		Card:                c.Card(),
		Identity:            c.Identity(),
		Contact:             c.Contact(),
		Paper:               c.Paper(),
	}
	return json.Marshal(out)
}

// UnmarshalJSON selects the record from the "type" tag.
func (c *Cipher) UnmarshalJSON(data []byte) error {
	var in cipherJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	c.ID = in.ID
	c.Name = in.Name
	c.OrganizationUseTotp = in.OrganizationUseTotp
	c.Fields = in.Fields
	c.Record = nil

	switch in.Type {
	case CipherTypeLogin:
		c.Record = orEmpty(in.Login)
	case CipherTypeCard:
		c.Record = orEmpty(in.Card)
	case CipherTypeIdentity:
		c.Record = orEmpty(in.Identity)
	case CipherTypeContact:
		c.Record = orEmpty(in.Contact)
	case CipherTypePaper:
		c.Record = orEmpty(in.Paper)
	default:
		return fmt.Errorf("unsupported cipher type %d", in.Type)
	}
	return nil
}

func orEmpty[T any](p *T) *T {
	if p == nil {
		return new(T)
	}
	return p
}

// UriMatchStrategy selects how a saved login URI is compared to a page URL.
type UriMatchStrategy int

const (
	UriMatchDomain            UriMatchStrategy = 0
	UriMatchHost              UriMatchStrategy = 1
	UriMatchStartsWith        UriMatchStrategy = 2
	UriMatchExact             UriMatchStrategy = 3
	UriMatchRegularExpression UriMatchStrategy = 4
	UriMatchNever             UriMatchStrategy = 5
)

// ParseUriMatchStrategy accepts the names used in configuration.
func ParseUriMatchStrategy(s string) (UriMatchStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "domain":
		return UriMatchDomain, nil
	case "host":
		return UriMatchHost, nil
	case "startswith", "starts-with":
		return UriMatchStartsWith, nil
	case "exact":
		return UriMatchExact, nil
	case "regex", "regularexpression", "regular-expression":
		return UriMatchRegularExpression, nil
	case "never":
		return UriMatchNever, nil
	default:
		return UriMatchDomain, fmt.Errorf("unknown uri match strategy %q", s)
	}
}

// LoginURI is one saved URI of a login. A nil Match defers to the
// caller's default strategy.
type LoginURI struct {
	URI   string            `json:"uri"`
	Match *UriMatchStrategy `json:"match,omitempty"`
}

// Login holds website credentials.
type Login struct {
	Username string     `json:"username,omitempty"`
	Password string     `json:"password,omitempty"`
	Totp     string     `json:"totp,omitempty"`
	URIs     []LoginURI `json:"uris,omitempty"`
}

func (*Login) CipherType() CipherType { return CipherTypeLogin }

// Card holds payment card data.
type Card struct {
	CardholderName string `json:"cardholderName,omitempty"`
	Brand          string `json:"brand,omitempty"`
	Number         string `json:"number,omitempty"`
	ExpMonth       string `json:"expMonth,omitempty"`
	ExpYear        string `json:"expYear,omitempty"`
	Code           string `json:"code,omitempty"`
}

func (*Card) CipherType() CipherType { return CipherTypeCard }

// Identity holds personal details.
type Identity struct {
	Title          string `json:"title,omitempty"`
	FirstName      string `json:"firstName,omitempty"`
	MiddleName     string `json:"middleName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Address1       string `json:"address1,omitempty"`
	Address2       string `json:"address2,omitempty"`
	Address3       string `json:"address3,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	PostalCode     string `json:"postalCode,omitempty"`
	Country        string `json:"country,omitempty"`
	Company        string `json:"company,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	SSN            string `json:"ssn,omitempty"`
	Username       string `json:"username,omitempty"`
	PassportNumber string `json:"passportNumber,omitempty"`
	LicenseNumber  string `json:"licenseNumber,omitempty"`
}

func (*Identity) CipherType() CipherType { return CipherTypeIdentity }

// FullName joins the name parts with single spaces, skipping empty ones.
func (i *Identity) FullName() string {
	return joinNonEmpty(" ", i.FirstName, i.MiddleName, i.LastName)
}

// FullAddress joins the address lines with ", ", skipping empty ones.
func (i *Identity) FullAddress() string {
	return joinNonEmpty(", ", i.Address1, i.Address2, i.Address3)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// CustomFieldType is the kind of a user-defined cipher field.
type CustomFieldType int

const (
	CustomFieldText    CustomFieldType = 0
	CustomFieldHidden  CustomFieldType = 1
	CustomFieldBoolean CustomFieldType = 2
	CustomFieldLinked  CustomFieldType = 3
)

// CustomField is a user-defined name/value pair on a cipher. A linked
// field takes its value from the record attribute named by LinkedID.
type CustomField struct {
	Name     string          `json:"name"`
	Value    *string         `json:"value,omitempty"`
	Type     CustomFieldType `json:"type"`
	LinkedID LinkedID        `json:"linkedId,omitempty"`
}
