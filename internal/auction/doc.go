// Package auction implements a single timed auction.
//
// Each auction runs its own countdown goroutine. Bid placement and the
// countdown step share one mutex; neither holds it while publishing a
// notification or calling the ledger. Settlement happens exactly once, on
// the countdown goroutine, right after the auction is deactivated.
package auction
