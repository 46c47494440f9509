package types

// LinkedID names the record attribute a linked custom field mirrors.
type LinkedID int

const (
	LinkedLoginUsername LinkedID = 100
	LinkedLoginPassword LinkedID = 101

	LinkedCardCardholderName LinkedID = 300
	LinkedCardExpMonth       LinkedID = 301
	LinkedCardExpYear        LinkedID = 302
	LinkedCardCode           LinkedID = 303
	LinkedCardBrand          LinkedID = 304
	LinkedCardNumber         LinkedID = 305

	LinkedIdentityTitle          LinkedID = 400
	LinkedIdentityMiddleName     LinkedID = 401
	LinkedIdentityAddress1       LinkedID = 402
	LinkedIdentityAddress2       LinkedID = 403
	LinkedIdentityAddress3       LinkedID = 404
	LinkedIdentityCity           LinkedID = 405
	LinkedIdentityState          LinkedID = 406
	LinkedIdentityPostalCode     LinkedID = 407
	LinkedIdentityCountry        LinkedID = 408
	LinkedIdentityCompany        LinkedID = 409
	LinkedIdentityEmail          LinkedID = 410
	LinkedIdentityPhone          LinkedID = 411
	LinkedIdentitySsn            LinkedID = 412
	LinkedIdentityUsername       LinkedID = 413
	LinkedIdentityPassportNumber LinkedID = 414
	LinkedIdentityLicenseNumber  LinkedID = 415
	LinkedIdentityFirstName      LinkedID = 416
	LinkedIdentityLastName       LinkedID = 417
	LinkedIdentityFullName       LinkedID = 418
)

// LinkedFieldValue resolves a linked custom field against the cipher's
// record. It returns false when the id does not belong to the record type.
func (c *Cipher) LinkedFieldValue(id LinkedID) (string, bool) {
	if l := c.Login(); l != nil {
		switch id {
		case LinkedLoginUsername:
			return l.Username, true
		case LinkedLoginPassword:
			return l.Password, true
		}
		return "", false
	}
	if card := c.Card(); card != nil {
		switch id {
		case LinkedCardCardholderName:
			return card.CardholderName, true
		case LinkedCardExpMonth:
			return card.ExpMonth, true
		case LinkedCardExpYear:
			return card.ExpYear, true
		case LinkedCardCode:
			return card.Code, true
		case LinkedCardBrand:
			return card.Brand, true
		case LinkedCardNumber:
			return card.Number, true
		}
		return "", false
	}
	if i := c.Identity(); i != nil {
		return i.linked(id)
	}
	return "", false
}

func (i *Identity) linked(id LinkedID) (string, bool) {
	switch id {
	case LinkedIdentityTitle:
		return i.Title, true
	case LinkedIdentityMiddleName:
		return i.MiddleName, true
	case LinkedIdentityAddress1:
		return i.Address1, true
	case LinkedIdentityAddress2:
		return i.Address2, true
	case LinkedIdentityAddress3:
		return i.Address3, true
	case LinkedIdentityCity:
		return i.City, true
	case LinkedIdentityState:
		return i.State, true
	case LinkedIdentityPostalCode:
		return i.PostalCode, true
	case LinkedIdentityCountry:
		return i.Country, true
	case LinkedIdentityCompany:
		return i.Company, true
	case LinkedIdentityEmail:
		return i.Email, true
	case LinkedIdentityPhone:
		return i.Phone, true
	case LinkedIdentitySsn:
		return i.SSN, true
	case LinkedIdentityUsername:
		return i.Username, true
	case LinkedIdentityPassportNumber:
		return i.PassportNumber, true
	case LinkedIdentityLicenseNumber:
		return i.LicenseNumber, true
	case LinkedIdentityFirstName:
		return i.FirstName, true
	case LinkedIdentityLastName:
		return i.LastName, true
	case LinkedIdentityFullName:
		return i.FullName(), true
	}
	return "", false
}
