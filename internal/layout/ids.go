package layout

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource produces unique suffixes for generated panel and tab ids.
type IDSource interface {
	Next() string
}

// UUIDSource yields random UUIDs.
type UUIDSource struct{}

// Next implements IDSource.
func (UUIDSource) Next() string { return uuid.NewString() }

// CounterSource yields 1, 2, 3, ... Useful in tests where ids must be predictable.
type CounterSource struct {
	n atomic.Uint64
}

// Next implements IDSource.
func (c *CounterSource) Next() string {
	return strconv.FormatUint(c.n.Add(1), 10)
}

const (
	panelIDPrefix = "newPanel-"
	tabIDPrefix   = "new-tab-"
)
