// Package testutil provides shared helpers for masonry integration and stress
// tests: layout invariant assertions, item fixtures and layout waiters.
//
// For NATS server setup, use the github.com/brokenalarms/astro-masonry/testing
// package.
package testutil
