package storefront

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fired struct {
	mu     sync.Mutex
	values []int
}

func (f *fired) record(v int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = append(f.values, v)
}

func (f *fired) snapshot() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.values...)
}

func TestDebouncer_DeliversOnlyLastValue(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var got fired
	d := NewDebouncer(30*time.Millisecond, got.record)

	for i := 1; i <= 5; i++ {
		d.Schedule(i)
	}

	require.Eventually(t, func() bool { return len(got.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(90 * time.Millisecond)

	assert.Equal(t, []int{5}, got.snapshot())
	assert.False(t, d.Pending())
}

func TestDebouncer_ScheduleRestartsQuietPeriod(t *testing.T) {
	var got fired
	d := NewDebouncer(60*time.Millisecond, got.record)

	d.Schedule(1)
	time.Sleep(30 * time.Millisecond)
	d.Schedule(2)
	time.Sleep(40 * time.Millisecond)

	// 70ms after the first call, but only 40ms after the second
	assert.Empty(t, got.snapshot())
	assert.True(t, d.Pending())

	require.Eventually(t, func() bool { return len(got.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{2}, got.snapshot())
}

func TestDebouncer_CancelPending(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var got fired
	d := NewDebouncer(20*time.Millisecond, got.record)

	d.Schedule(7)
	assert.True(t, d.CancelPending())
	assert.False(t, d.CancelPending())

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, got.snapshot())
}

func TestDebouncer_Flush(t *testing.T) {
	var got fired
	d := NewDebouncer(time.Hour, got.record)

	assert.False(t, d.Flush())

	d.Schedule(3)
	d.Schedule(4)
	assert.True(t, d.Flush())
	assert.Equal(t, []int{4}, got.snapshot())

	assert.False(t, d.Flush())
	assert.False(t, d.Pending())
}
