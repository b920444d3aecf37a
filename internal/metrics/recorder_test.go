package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorder_EmptySnapshot(t *testing.T) {
	r := NewRecorder()
	assert.Equal(t, Summary{}, r.Snapshot())
}

func TestRecorder_Snapshot(t *testing.T) {
	r := NewRecorder()
	for i := 1; i <= 100; i++ {
		r.Record(time.Duration(i) * time.Millisecond)
	}

	s := r.Snapshot()
	assert.Equal(t, int64(100), s.Count)
	assert.InDelta(t, float64(time.Millisecond), float64(s.Min), float64(time.Millisecond)/100)
	assert.InDelta(t, float64(100*time.Millisecond), float64(s.Max), float64(time.Millisecond))
	assert.InDelta(t, float64(50*time.Millisecond), float64(s.P50), float64(time.Millisecond))
	assert.InDelta(t, float64(90*time.Millisecond), float64(s.P90), float64(time.Millisecond))
	assert.InDelta(t, float64(99*time.Millisecond), float64(s.P99), float64(time.Millisecond))
	assert.InDelta(t, float64(50500*time.Microsecond), float64(s.Mean), float64(time.Millisecond))
}

func TestRecorder_ClampsOutOfRange(t *testing.T) {
	r := NewRecorder()
	r.Record(0)
	r.Record(2 * time.Hour)

	s := r.Snapshot()
	assert.Equal(t, int64(2), s.Count)
	assert.Equal(t, time.Microsecond, s.Min)
	assert.InDelta(t, float64(time.Hour), float64(s.Max), float64(time.Hour)/100)
}

func TestRecorder_ConcurrentRecord(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Record(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), r.Snapshot().Count)
}

func TestRecorder_Reset(t *testing.T) {
	r := NewRecorder()
	r.Record(time.Millisecond)
	r.Reset()
	assert.Equal(t, int64(0), r.Snapshot().Count)
}
