// Package cache holds the Redis client and the idempotency key store used by request
// submission. A retried POST carrying the same Idempotency-Key is refused instead of
// creating a second pending request.
//
// When Redis is disabled, MemoryIdempotency provides the same contract for a single
// process.
package cache
