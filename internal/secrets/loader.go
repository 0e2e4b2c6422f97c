// Package secrets resolves credentials that may arrive inline through the
// environment or as files mounted by a deployment.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a credential comes from.
type Source struct {
	// Name identifies the credential in error messages.
	Name string
	// Value is an inline secret taken from the environment or configuration.
	Value string
	// File is a path to a file holding the secret. When set it takes
	// precedence over Value.
	File string
}

// Load resolves the secret described by src. A configured File wins over an
// inline Value, and the result is trimmed of surrounding whitespace. Load
// fails when neither source yields a non-empty secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}

		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}

		return secret, nil
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
