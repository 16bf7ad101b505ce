package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identifiers keep a human-readable timestamp token but append a uuid
// fragment so two entities created within the same second cannot collide.

func newClientID(now time.Time) string {
	return fmt.Sprintf("CLT-%d-%s", now.Unix(), uuidFragment())
}

func newInvoiceID(now time.Time) string {
	return fmt.Sprintf("INV-%d-%s", now.Unix(), uuidFragment())
}

func uuidFragment() string {
	return strings.Split(uuid.NewString(), "-")[0]
}
