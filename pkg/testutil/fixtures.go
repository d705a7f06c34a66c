package testutil

import (
	"time"

	"github.com/google/uuid"
)

// Sandbox numbers understood by the signal simulator.
const (
	SwappedNumber = "+99999991000"
	CleanNumber   = "+99999991001"
	UnknownNumber = "+919876543210"
)

// Fixed values for deterministic testing
var (
	TestSubjectID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	FixedNow      = time.Date(2024, 12, 1, 10, 42, 0, 0, time.UTC)
)
