// Package model defines shared data types used across the auction house.
//
// Conventions:
//   - Money: shopspring/decimal, never float64
//   - Auction IDs: dense ints starting at 1
//   - Participant names: trimmed, case-sensitive
package model
