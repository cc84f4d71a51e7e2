package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// newLocalOrderID derives a human-scannable local id from the draft time,
// with a random suffix so drafts created in the same millisecond stay
// distinct. It is not a uniqueness anchor; the payment reference is. The
// schema indexes it non-uniquely for lookups.
func newLocalOrderID(now time.Time) string {
	var suffix [4]byte
	_, _ = rand.Read(suffix[:])
	return fmt.Sprintf("WM-%d-%s", now.UnixMilli(), hex.EncodeToString(suffix[:]))
}
