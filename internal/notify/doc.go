// Package notify fans auction state changes out to subscribers.
//
// Publishing never blocks the engine: each subscriber owns a growable
// buffer, bounded by a high-water mark past which the oldest pending event
// is dropped. The admin WebSocket feed, the journal writer and the Redis
// forwarder are all plain subscribers.
package notify
