package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/minesweeper-go/internal/dependencies/random"
	"github.com/mcoot/minesweeper-go/internal/model"
)

// MockRandom replays queued values. Intn panics once its queue is drained,
// since mine placement would otherwise retry the same cell forever. String
// returns "" when nothing is queued.
type MockRandom struct {
	mu      sync.Mutex
	ints    []int
	strings []string
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		panic(fmt.Sprintf("mocks: Intn(%d) called with an empty queue; queue values with QueueIntn or QueueMines", n))
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.strings) == 0 {
		return ""
	}
	v := r.strings[0]
	r.strings = r.strings[1:]
	return v
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = append(r.ints, values...)
}

// QueueMines queues the draws mine placement consumes to put mines on cells,
// an x then a y per mine
func (r *MockRandom) QueueMines(cells ...model.Coordinate) {
	for _, c := range cells {
		r.QueueIntn(int(c.X), int(c.Y))
	}
}

// QueueString adds values to the String result queue, typically game ids
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strings = append(r.strings, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = nil
	r.strings = nil
}
