//go:build linux

package hotplug

import (
	"runtime"
	"testing"
	"time"

	"github.com/egandro/schedutils/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_StopEndsNetlinkReader(t *testing.T) {
	before := runtime.NumGoroutine()

	w := NewWatcher(new(MockCPUCounter), &config.Config{HotplugBatchWindow: time.Second}, nil)
	if err := w.Start(); err != nil {
		_ = w.Stop()
		t.Skipf("netlink uevent socket not available: %v", err)
	}
	done := w.readerDone
	require.NotNil(t, done)

	require.NoError(t, w.Stop())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("netlink reader still running after Stop")
	}
	assert.Equal(t, -1, w.netlinkFD)
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, time.Second, 10*time.Millisecond)

	// A second Stop is a no-op.
	assert.NoError(t, w.Stop())
}
