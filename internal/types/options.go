package types

// FillOptions is the options bag of a fill-script generation.
type FillOptions struct {
	// SkipUsernameOnlyFill suppresses the bare-username fuzzy fill when a
	// page has no password field.
	SkipUsernameOnlyFill bool `json:"skipUsernameOnlyFill,omitempty"`
	// OnlyEmptyFields restricts password, username and TOTP search to
	// fields without a value.
	OnlyEmptyFields bool `json:"onlyEmptyFields,omitempty"`
	// OnlyVisibleFields disables the relaxed hidden/readonly tier.
	OnlyVisibleFields bool `json:"onlyVisibleFields,omitempty"`
	// FillNewPassword allows fields declared autocomplete="new-password".
	FillNewPassword   bool             `json:"fillNewPassword,omitempty"`
	AllowTotpAutofill bool             `json:"allowTotpAutofill,omitempty"`
	DefaultUriMatch   UriMatchStrategy `json:"defaultUriMatch,omitempty"`

	// TabURL is the top-level URL of the tab; a page whose URL differs is
	// an iframe.
	TabURL string `json:"tabUrl,omitempty"`
	// EquivalentDomains lists groups of registrable domains treated as one
	// site by Domain URI matching.
	EquivalentDomains [][]string `json:"equivalentDomains,omitempty"`
}
