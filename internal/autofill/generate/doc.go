/*
Package generate turns a page field inventory and a decrypted cipher into a
fill script.

There is one Generator per cipher type:

	Login          password fields, their username and TOTP fields, the
	               username-only fuzzy tier, and untrusted iframe detection
	Card           one attribute loop over the page, expiry formatting
	Identity       attribute loop (IdentityAttributes) or per-slot
	               predicates (IdentitySlots), ISO region codes
	Contact        the identity matching applied to a Cozy contact
	Paper          Cozy administrative papers, with remote attributes

All generators share a Request carrying the script being built and the set
of claimed fields. FillField is the only way a generator writes to a field:
it refuses empty values and fields already claimed, so the first writer
wins and no field is filled twice.

CustomFields runs before the type-specific generator and claims the fields
named by the cipher's custom fields.
*/
package generate
