package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kardolus/conscience/internal"
)

const (
	defaultName               = "conscience"
	defaultTranscriptMaxBytes = 64 * 1024
	defaultLogLevel           = "info"
)

var defaultLobes = []string{"mainloop", "after", "bind", "images", "dialogs"}

type Store interface {
	Read() (Config, error)
	ReadDefaults() Config
	Write(Config) error
}

// Ensure FileIO implements Store interface
var _ Store = &FileIO{}

type FileIO struct {
	configFilePath string
}

func New() *FileIO {
	configPath, _ := internal.GetConfigPath()

	return &FileIO{
		configFilePath: configPath,
	}
}

func (f *FileIO) WithConfigPath(configFilePath string) *FileIO {
	f.configFilePath = configFilePath
	return f
}

func (f *FileIO) Path() string {
	return f.configFilePath
}

func (f *FileIO) Read() (Config, error) {
	return parseFile(f.configFilePath)
}

func (f *FileIO) ReadDefaults() Config {
	return Config{
		Name:               defaultName,
		TranscriptMaxBytes: defaultTranscriptMaxBytes,
		LogLevel:           defaultLogLevel,
		Lobes:              append([]string(nil), defaultLobes...),
	}
}

// Write stores config, holding a lock file so concurrent writers do not
// interleave.
func (f *FileIO) Write(config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.configFilePath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	lock := newFileLock(f.configFilePath)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	return os.WriteFile(f.configFilePath, data, 0644)
}

func parseFile(fileName string) (Config, error) {
	var result Config

	buf, err := os.ReadFile(fileName)
	if err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(buf, &result); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", fileName, err)
	}

	return result, nil
}
