package adapter

import "time"

// Clock supplies the current time. "Today" in the ledger is always derived
// from it so that tests can pin the date.
type Clock interface {
	Now() time.Time
}
