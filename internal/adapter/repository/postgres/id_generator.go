package postgres

import "github.com/oklog/ulid/v2"

// ULIDGenerator issues lexicographically sortable IDs. Entries created
// in order sort in order, which keeps ledger scans cheap.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a fresh ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
