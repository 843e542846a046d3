// Package middleware groups the HTTP middleware of the Fiber application.
//
//   - auth: API key check and caller identity (X-User-ID, X-User-Role).
//   - rayid: a RayID per request, in context locals and the X-Ray-ID response header.
//   - idempotency: refuses a repeated Idempotency-Key on request submission.
package middleware
