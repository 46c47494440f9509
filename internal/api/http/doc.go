/*
Package http exposes the autofill engine over HTTP.

Routes:

	GET  /                  service banner
	GET  /health            health, metrics snapshot and remote breaker state
	POST /v1/page-details   HTML to page details
	POST /v1/fill-script    page details (or HTML) and cipher to fill script
	POST /v1/autofill       full autofill run over the frames of a tab
	POST /v1/qualify        cipher type and qualifier of each field

Requests without options get the server defaults set by WithDefaults.
*/
package http
