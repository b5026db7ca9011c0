package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 6, 21, 10, 0, 0, 0, time.UTC)

func TestFakeSleepReleasesOnAdvance(t *testing.T) {
	f := NewFake(epoch)
	done := make(chan error, 1)

	go func() { done <- f.Sleep(context.Background(), 1200*time.Millisecond) }()
	f.BlockUntil(1)

	f.Advance(time.Second)
	select {
	case <-done:
		t.Fatal("sleep returned before its deadline")
	default:
	}

	f.Advance(200 * time.Millisecond)
	require.NoError(t, <-done)
	assert.Equal(t, epoch.Add(1200*time.Millisecond), f.Now())
	assert.Equal(t, 0, f.Waiters())
}

func TestFakeSleepHonoursCancellation(t *testing.T) {
	f := NewFake(epoch)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- f.Sleep(ctx, time.Hour) }()
	f.BlockUntil(1)
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, 0, f.Waiters())
}

func TestFakeTickerFiresPerPeriod(t *testing.T) {
	f := NewFake(epoch)
	tk := f.NewTicker(5 * time.Second)
	defer tk.Stop()

	f.Advance(4 * time.Second)
	select {
	case <-tk.C():
		t.Fatal("tick before period elapsed")
	default:
	}

	f.Advance(time.Second)
	assert.Equal(t, epoch.Add(5*time.Second), <-tk.C())

	// A slow reader sees one buffered tick, the rest are dropped.
	f.Advance(15 * time.Second)
	assert.Equal(t, epoch.Add(10*time.Second), <-tk.C())
	select {
	case <-tk.C():
		t.Fatal("expected dropped ticks")
	default:
	}
}

func TestFakeTickerStopUnregisters(t *testing.T) {
	f := NewFake(epoch)
	tk := f.NewTicker(time.Second)
	assert.Equal(t, 1, f.Waiters())
	tk.Stop()
	assert.Equal(t, 0, f.Waiters())
}

func TestRealSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Real{}.Sleep(ctx, time.Hour), context.Canceled)
}
