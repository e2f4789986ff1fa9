package mocks

import (
	"fmt"

	"github.com/mcoot/scorepad/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IDResults is a queue of results to return from NewID
	IDResults []string
	idIndex   int

	// fallback counter once the queue is drained
	generated int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// NewID returns the next queued ID, or a sequential "id-N" once the queue is empty
func (r *MockRandom) NewID() string {
	if r.idIndex < len(r.IDResults) {
		result := r.IDResults[r.idIndex]
		r.idIndex++
		return result
	}
	r.generated++
	return fmt.Sprintf("id-%d", r.generated)
}

// QueueID adds values to the NewID result queue
func (r *MockRandom) QueueID(values ...string) {
	r.IDResults = append(r.IDResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IDResults = nil
	r.idIndex = 0
	r.generated = 0
}
