// Package guard flags the process as running under go test when imported
// for side effects, so binaries linked into tests skip network startup.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("PRODUCTMANAGER_TEST_MODE") == "" {
			_ = os.Setenv("PRODUCTMANAGER_TEST_MODE", "1")
		}
	})
}
