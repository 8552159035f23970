// Package integrity hashes journaled steps into a tamper-evident chain.
//
// Each step hash covers the step content and the hash of the step before it,
// so rewriting any stored step breaks every hash after it.
package integrity
