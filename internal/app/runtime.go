package app

import (
	"os"
	"sync"
	"sync/atomic"
)

// TestModeEnv marks processes started by go test.
const TestModeEnv = "PRODUCTMANAGER_TEST_MODE"

var (
	testModeFlag atomic.Bool
	testModeOnce sync.Once
)

func detectTestMode() {
	testModeFlag.Store(os.Getenv(TestModeEnv) == "1")
}

// InTestMode reports whether binaries should skip runtime side effects.
func InTestMode() bool {
	testModeOnce.Do(detectTestMode)
	return testModeFlag.Load()
}

// RefreshTestMode re-reads the environment after it changed. It consumes
// the lazy detection in InTestMode so a later first call cannot overwrite
// the refreshed value with a stale read.
func RefreshTestMode() {
	testModeOnce.Do(func() {})
	detectTestMode()
}
