//go:build !unix

package runner

// lockFile is a no-op where flock(2) is unavailable. Concurrent writers may
// lose entries, which only costs a replay.
func lockFile(string) (func() error, error) {
	return func() error { return nil }, nil
}
