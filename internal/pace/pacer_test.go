package pace

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSpacesSlots(t *testing.T) {
	p := New(100)

	first := p.Next()
	second := p.Next()
	third := p.Next()

	assert.Equal(t, 10*time.Millisecond, second.Sub(first))
	assert.Equal(t, 10*time.Millisecond, third.Sub(second))

	scheduled, waited := p.Stats()
	assert.Equal(t, int64(3), scheduled)
	assert.Greater(t, waited, time.Duration(0))
}

func TestNoRateNeverWaits(t *testing.T) {
	p := New(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, p.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestFallingBehindDoesNotBurst(t *testing.T) {
	p := New(50)
	p.Next()
	time.Sleep(100 * time.Millisecond)

	now := time.Now()
	late := p.Next()
	following := p.Next()

	assert.False(t, late.Before(now))
	assert.Equal(t, 20*time.Millisecond, following.Sub(late))
}

func TestWaitHonorsContext(t *testing.T) {
	p := New(1)
	p.Next()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitConcurrent(t *testing.T) {
	p := New(200)
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Wait(context.Background()))
		}()
	}
	wg.Wait()

	// Ten slots 5ms apart: the last one starts 45ms after the first.
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}
