/*
Package autofill runs autofill requests.

Service picks the generator of the cipher's type, runs the custom field pass
ahead of it and stamps the resulting script with an ID and the operation
delay. DoAutoFill does this for every frame of a tab:

	res, err := svc.DoAutoFill(ctx, autofill.Options{
		Tab:         &tab,
		Cipher:      cipher,
		PageDetails: frames,
	})

Scripts for untrusted iframes are dropped unless the caller allows them.
When a Sender is set, each script is delivered to its frame; the returned
Result lists the delivered scripts either way.

Subpackages:

	keywords  field name lists and normalization
	match     attribute matchers
	locate    login field locators
	generate  per cipher type fill script generators
	qualify   field qualification for in-page menus
*/
package autofill
