package use_cases

import (
	"time"

	"github.com/google/uuid"
)

type Clock interface {
	NowUTC() time.Time
}

type systemClock struct{}

func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) NowUTC() time.Time {
	return time.Now().UTC()
}

// IDGenerator hands out identifiers for listings and snapshot runs.
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}
