package factory

import (
	"time"

	"github.com/mcoot/scorepad/internal/dependencies/mocks"
	"github.com/mcoot/scorepad/internal/storage/memory"
	"github.com/mcoot/scorepad/internal/testutil"
)

// TestHistoryCap keeps eviction easy to reach in tests
const TestHistoryCap = 3

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MockRandom  *mocks.MockRandom
	MemoryStore *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, TestHistoryCap, testutil.NopLogger())

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
		MemoryStore: store,
	}
}
