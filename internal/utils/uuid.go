package utils

import "github.com/google/uuid"

// UUIDGenerator produces client references for queued check-ins. V7 UUIDs
// are time-ordered, which keeps the idempotency keys roughly sortable by
// creation time on the server side.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
