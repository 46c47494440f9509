// Package cozy fetches contact and paper attributes from a Cozy instance.
//
// Contact and paper ciphers only carry part of their document; the rest
// (birthday, job title, paper number, IBAN...) is read on demand from the
// instance. Requests go through a rate limiter and a circuit breaker and
// are retried on 5xx answers. A document is cached for CacheTTL so that one
// fill fetches it once.
package cozy
