//go:build !windows

package config

import (
	"fmt"
	"os"
	"syscall"
)

type fileLock struct {
	path string
	f    *os.File
}

func newFileLock(targetPath string) *fileLock {
	return &fileLock{path: targetPath + ".lock"}
}

func (l *fileLock) Lock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		_ = f.Close()
		return fmt.Errorf("flock %s: %w", l.path, err)
	}
	l.f = f
	return nil
}

func (l *fileLock) Unlock() error {
	if l.f == nil {
		return nil
	}
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	err := l.f.Close()
	l.f = nil
	return err
}
