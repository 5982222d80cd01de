package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureUserConfig returns the path of config.yml in dataDir. On first run
// it seeds the file from seedPath layered over Default; a missing seed
// yields the defaults alone. The seed must pass validation.
func EnsureUserConfig(dataDir string, seedPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	seed, err := Load(seedPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read seed %s: %w", seedPath, err)
	}
	seed, _ = NormalizeAndValidate(seed)
	if err := SaveAtomic(userPath, seed); err != nil {
		return "", fmt.Errorf("seed %s: %w", userPath, err)
	}
	return userPath, nil
}
