package history

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kardolus/conscience/internal"
)

const historyFile = "history.yaml"

//go:generate mockgen -destination=storemocks_test.go -package=history_test github.com/kardolus/conscience/history Store

type Store interface {
	Delete() error
	Read() ([]Entry, error)
	Write([]Entry) error
}

// Ensure FileIO implements Store interface
var _ Store = &FileIO{}

type FileIO struct {
	historyFilePath string
}

func New() *FileIO {
	path, _ := getPath()
	return &FileIO{
		historyFilePath: path,
	}
}

func (f *FileIO) WithFilePath(historyFilePath string) *FileIO {
	f.historyFilePath = historyFilePath
	return f
}

func (f *FileIO) Path() string {
	return f.historyFilePath
}

func (f *FileIO) Delete() error {
	if _, err := os.Stat(f.historyFilePath); err == nil {
		return os.Remove(f.historyFilePath)
	}

	return nil
}

func (f *FileIO) Read() ([]Entry, error) {
	return parseFile(f.historyFilePath)
}

func (f *FileIO) Write(entries []Entry) error {
	data, err := yaml.Marshal(entries)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.historyFilePath), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	return os.WriteFile(f.historyFilePath, data, 0644)
}

func getPath() (string, error) {
	home, err := internal.GetConfigHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, historyFile), nil
}

func parseFile(fileName string) ([]Entry, error) {
	var result []Entry

	buf, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(buf, &result); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fileName, err)
	}

	return result, nil
}
