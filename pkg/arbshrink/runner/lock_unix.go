//go:build unix

package runner

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const lockPerms = 0o644

// lockFile takes an exclusive flock(2) on path, creating it if needed, and
// returns the release function.
func lockFile(path string) (func() error, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockPerms)
	if err != nil {
		return nil, fmt.Errorf("open lock %s: %w", path, err)
	}

	for {
		err = unix.Flock(int(file.Fd()), unix.LOCK_EX)
		if !errors.Is(err, unix.EINTR) {
			break
		}
	}

	if err != nil {
		return nil, errors.Join(fmt.Errorf("flock %s: %w", path, err), file.Close())
	}

	return func() error {
		unlockErr := unix.Flock(int(file.Fd()), unix.LOCK_UN)

		return errors.Join(unlockErr, file.Close())
	}, nil
}
