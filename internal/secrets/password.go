package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"gradlens-engine/internal/config"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "gradlens"

// GetIMAPPassword reads the newsletter mailbox password from the keychain.
func GetIMAPPassword(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	pw, err := keyring.Get(KeyringService, account)
	if err != nil || strings.TrimSpace(pw) == "" {
		return "", errors.New("IMAP password not found; set it via the secrets endpoint")
	}
	return pw, nil
}

func SetIMAPPassword(account string, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}

func DeleteIMAPPassword(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

// IMAPKeyringAccount derives the keychain account name for the configured
// newsletter mailbox.
func IMAPKeyringAccount(cfg config.Config) string {
	im := cfg.Sources.Newsletter.IMAP
	return fmt.Sprintf("gradlens:imap:%s@%s", im.Username, im.Host)
}
