package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"jobcatalog-engine/internal/config"
)

const (
	// "Service" groups the app's secrets in the OS keychain.
	KeyringService = "jobcatalog"
)

var ErrNoPassword = errors.New("web password not found in keychain")

// GetWebPassword returns the basic-auth password for account.
func GetWebPassword(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", ErrNoPassword
	}
	pw, err := keyring.Get(KeyringService, account)
	if errors.Is(err, keyring.ErrNotFound) || (err == nil && strings.TrimSpace(pw) == "") {
		return "", ErrNoPassword
	}
	if err != nil {
		return "", fmt.Errorf("keyring get: %w", err)
	}
	return pw, nil
}

func SetWebPassword(account string, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}

func DeleteWebPassword(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

func WebKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf("jobcatalog:web:%s@%s:%d", cfg.HTTP.AuthUser, cfg.App.Host, cfg.App.Port)
}
