//go:build windows

package config

import (
	"fmt"
	"os"
)

// fileLock on windows relies on exclusive creation of the lock file.
type fileLock struct {
	path string
	f    *os.File
}

func newFileLock(targetPath string) *fileLock {
	return &fileLock{path: targetPath + ".lock"}
}

func (l *fileLock) Lock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("acquire lock file %s: %w", l.path, err)
	}
	l.f = f
	return nil
}

func (l *fileLock) Unlock() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	if rmErr := os.Remove(l.path); err == nil {
		err = rmErr
	}
	return err
}
