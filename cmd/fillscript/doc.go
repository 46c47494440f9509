// Command fillscript prints the fill script a cipher produces on an HTML
// page.
//
//	fillscript -html login.html -cipher login.yaml -url https://example.com/login
//
// Cipher files are YAML, TOML or JSON documents in the cipher JSON layout:
//
//	type: login
//	name: Example
//	login:
//	  username: alice@example.com
//	  password: s3cret
//	  uris:
//	    - uri: https://example.com
//
// With -details the collected page details are printed instead.
package main
