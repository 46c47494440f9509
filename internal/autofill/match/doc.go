/*
Package match provides the matching primitives of the autofill engine.

Every function here is a pure test of a scraped field's textual attributes
against keyword lists. Absent attributes never match and never fail.

Matching flavors:
  - IsFieldMatch: normalized equality, or substring for whitelisted options
  - FieldIsFuzzyMatch: case-insensitive substring over the label-ish
    attributes
  - Matcher.FindMatchingFieldIndex: exact attribute match with the
    "id=", "name=", "label=", "placeholder=", "regex=" and "csv="
    micro-languages, returning the index of the first matching name
  - IsSearchField, FieldHasDisqualifyingAttributeValue, ValueIsLikePassword
    and the excluded-type checks gate fields out before any positive match

Regex names are compiled once and cached; an invalid pattern is logged and
treated as no match.
*/
package match
