package services

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"stylesyncapi/models"
)

// Credential sources in priority order: deployment secret file, then
// environment, then interactive entry. Absence of a key blocks everything.
const (
	CredentialSourceSecretFile  = "secret file"
	CredentialSourceEnvironment = "environment"
	CredentialSourceInteractive = "interactive"
)

// ResolveGeminiAPIKey resolves the single secret the stylist needs.
// GEMINI_API_KEY_FILE points at a mounted deployment secret; GEMINI_API_KEY
// and GOOGLE_API_KEY are the env fallbacks; as a last resort the key is
// read interactively from in (pass nil to disable prompting).
func ResolveGeminiAPIKey(in io.Reader) (string, string, error) {
	if path := os.Getenv("GEMINI_API_KEY_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("failed to read secret file %s: %w", path, err)
		}
		if key := strings.TrimSpace(string(data)); key != "" {
			return key, CredentialSourceSecretFile, nil
		}
	}

	for _, envKey := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := strings.TrimSpace(os.Getenv(envKey)); key != "" {
			return key, CredentialSourceEnvironment, nil
		}
	}

	if in != nil {
		fmt.Print("Enter your Gemini API key: ")
		scanner := bufio.NewScanner(in)
		if scanner.Scan() {
			if key := strings.TrimSpace(scanner.Text()); key != "" {
				return key, CredentialSourceInteractive, nil
			}
		}
	}

	return "", "", models.ErrNoCredential
}
