// Package qualify decides which cipher type serves a page field and, once
// the user interacts with it, which attribute of the record the field
// takes.
//
// The cipher type is computed for every visible field when a page is
// scanned. Hidden fields wait in the Session until they are reported
// visible. The field qualifier is computed lazily on first input and then
// kept on the field.
package qualify
