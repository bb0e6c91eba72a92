package shipment

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

const trackingPrefix = "SHP-"

// NewTrackingNumber returns "SHP-" followed by ten upper-case hex characters.
func NewTrackingNumber() string {
	id := uuid.New()
	return trackingPrefix + strings.ToUpper(hex.EncodeToString(id[:5]))
}
