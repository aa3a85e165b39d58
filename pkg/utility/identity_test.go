package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetRunID_Stable(t *testing.T) {
	first := GetRunID()
	second := GetRunID()

	assert.Equal(t, first, second, "run id is stable across calls")
}

func TestResetRunID(t *testing.T) {
	before := GetRunID()
	fresh := ResetRunID()

	assert.NotEqual(t, before, fresh)
	assert.Equal(t, fresh, GetRunID())
}

func TestCreateTraceID_Unique(t *testing.T) {
	seen := make(map[TraceID]struct{})
	for i := 0; i < 10000; i++ {
		id := CreateTraceID()
		_, dup := seen[id]
		assert.False(t, dup, "duplicate trace id %d", id)
		seen[id] = struct{}{}
	}
}

func TestParseTraceID(t *testing.T) {
	before := time.Now().Truncate(time.Millisecond)
	id := CreateTraceID()
	after := time.Now()

	ts, machine, seq := ParseTraceID(id)

	assert.False(t, ts.Before(before))
	assert.False(t, ts.After(after.Add(2*time.Millisecond)))
	assert.LessOrEqual(t, machine, uint64(maxMachine))
	assert.LessOrEqual(t, seq, uint64(maxSequence))
}
