// Package wire defines the JSON and text formats shared by the HTTP server,
// the WebSocket feed, the Redis forwarder and the operator client.
//
// Money is rendered as a JSON number with exactly two decimals. An auction
// without a bidder reports "None" as its highest bidder.
package wire
