package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/subosito/gotenv"
)

// Names of the environment variables holding credentials.
const (
	OpenRouterKeyEnv = "OPENROUTER_API_KEY"
	TavilyKeyEnv     = "TAVILY_API_KEY"
)

// RequiredEnv lists the credentials toolchat cannot start without.
var RequiredEnv = []string{OpenRouterKeyEnv, TavilyKeyEnv}

// ErrMissingCredentials is returned when a required variable is unset.
var ErrMissingCredentials = errors.New("missing environment variables")

const maskedPrefixLength = 10

// LoadDotEnv loads a .env file into the process environment. Variables that
// are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := gotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// CredentialStatus describes one required variable.
type CredentialStatus struct {
	Name   string
	Found  bool
	Masked string // first characters of the value followed by "..."
}

// CheckCredentials inspects every required variable using lookup (os.LookupEnv
// when nil). The error wraps ErrMissingCredentials and names all missing ones.
func CheckCredentials(lookup func(string) (string, bool)) ([]CredentialStatus, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	statuses := make([]CredentialStatus, 0, len(RequiredEnv))
	var missing []string
	for _, name := range RequiredEnv {
		value, ok := lookup(name)
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			missing = append(missing, name)
			statuses = append(statuses, CredentialStatus{Name: name})
			continue
		}
		statuses = append(statuses, CredentialStatus{Name: name, Found: true, Masked: mask(value)})
	}

	if len(missing) > 0 {
		return statuses, fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return statuses, nil
}

func mask(value string) string {
	runes := []rune(value)
	if len(runes) > maskedPrefixLength {
		runes = runes[:maskedPrefixLength]
	}
	return string(runes) + "..."
}
