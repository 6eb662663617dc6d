package explore

import "fmt"

// LimitConfig bounds how many container entries a cache pass materializes.
// Caching a multi-million entry container would otherwise stall the input
// loop; a window keeps the pass cheap. The zero value is unlimited.
type LimitConfig struct {
	Limit  int // keep only this many entries (0 = unlimited)
	Offset int // skip the first N entries (0 = no skip)
	Tail   int // keep only the last N entries (0 = disabled); exclusive with Limit
}

// Validate checks for conflicting combinations.
func (c LimitConfig) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("limit and tail are mutually exclusive")
	}
	return nil
}

// IsActive reports whether any bound is configured.
func (c LimitConfig) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// apply windows the raw entry list. Tail wins over Offset/Limit.
func (c LimitConfig) apply(entries []RawEntry) []RawEntry {
	if !c.IsActive() {
		return entries
	}

	length := len(entries)
	if c.Tail > 0 {
		start := length - c.Tail
		if start < 0 {
			start = 0
		}
		return entries[start:]
	}

	start := c.Offset
	if start > length {
		start = length
	}
	end := length
	if c.Limit > 0 {
		end = start + c.Limit
		if end > length {
			end = length
		}
	}
	if start > end {
		start = end
	}
	return entries[start:end]
}
