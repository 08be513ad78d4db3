package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrMissingSecret is returned when a required credential is empty.
var ErrMissingSecret = errors.New("missing secret")

// Secrets holds search API credentials. Field names follow the JSON secrets
// file written by the developer portal export.
type Secrets struct {
	APIKey            string `json:"APIKey"`
	APISecret         string `json:"APISecret"`
	AccessToken       string `json:"AccessToken"`
	AccessTokenSecret string `json:"AccessTokenSecret"`
	BearerToken       string `json:"BearerToken"`
}

// LoadSecrets reads a JSON secrets file.
func LoadSecrets(path string) (*Secrets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret file: %w", err)
	}

	var s Secrets
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse secret file %s: %w", path, err)
	}
	return &s, nil
}

// Bearer returns the app-only token used by the search client.
func (s *Secrets) Bearer() (string, error) {
	if s == nil || s.BearerToken == "" {
		return "", fmt.Errorf("%w: BearerToken", ErrMissingSecret)
	}
	return s.BearerToken, nil
}
