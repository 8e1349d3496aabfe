package internal

import (
	"os"
	"path/filepath"
)

const (
	ConfigHomeEnv     = "CONSCIENCE_CONFIG_HOME"
	DefaultConfigDir  = ".conscience"
	DefaultConfigFile = "config.yaml"
)

func GetConfigHome() (string, error) {
	if tmp := os.Getenv(ConfigHomeEnv); tmp != "" {
		return tmp, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, DefaultConfigDir), nil
}

func GetConfigPath() (string, error) {
	home, err := GetConfigHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, DefaultConfigFile), nil
}
