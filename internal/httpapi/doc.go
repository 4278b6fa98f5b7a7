// Package httpapi exposes the auction registry over HTTP and WebSocket.
//
// Bidder endpoints keep the browser page's wire formats: JSON listings with
// two-decimal money, form-encoded bids answered with plain text. Admin
// endpoints replace the desktop panel. GET /ws streams every notification
// as JSON.
package httpapi
