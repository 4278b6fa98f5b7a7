// Package client is a Go client for the auctiond HTTP API.
//
// Listing and lookup calls are retried on 5xx and 429 responses with
// jittered exponential backoff. Bids, creates, and stops are sent once.
// Watch follows the /ws notification feed until the context ends.
package client
