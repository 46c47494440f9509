/*
Package keywords holds the static heuristic tables of the autofill engine.

The lists encode real-world site compatibility: field names, ids and label
fragments seen on login, payment and address forms, in the languages the
extension supports. They are data, not logic; callers normalize their own
input before comparing against them.

Tables:
  - Login: username, TOTP, search and ignore lists, excluded input types
  - Card: cardholder, number, expiry, CVV and brand keyword groups, plus the
    localized date-part abbreviations used to infer expiry formats
  - Identity: one group per identity slot, and the ISO country, US state
    and Canadian province tables used for region codes
  - Qualification: the keyword and autocomplete sets of the field qualifier
  - Cozy: keyword groups for contact and administrative paper slots

All exported slices and maps must be treated as read-only.
*/
package keywords
