// Package circuitbreaker provides a consecutive-failure circuit breaker that
// stops issuing attempts once failures cluster.
//
// The breaker starts closed, trips open after a configured number of
// consecutive failures, and re-admits callers lazily on the first permission
// check after the open duration has elapsed (the half-open probe). A nil
// *Breaker is a valid no-op breaker that always admits.
package circuitbreaker
