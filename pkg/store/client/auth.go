package client

import (
	"encoding/base64"
	"net/http"
	"os"

	"github.com/de-tools/test-atlas/pkg/models/domain"
)

// Credentials hold the secret material read from the environment.
type Credentials struct {
	Username  string
	AccessKey string
}

// CredentialsFromEnv reads the two named environment variables. Both must
// be present and non-empty; the error names every variable that is not.
// This runs before any network access.
func CredentialsFromEnv(usernameVar, accessKeyVar string) (Credentials, error) {
	var missing []string

	username := os.Getenv(usernameVar)
	if username == "" {
		missing = append(missing, usernameVar)
	}
	accessKey := os.Getenv(accessKeyVar)
	if accessKey == "" {
		missing = append(missing, accessKeyVar)
	}

	if len(missing) > 0 {
		return Credentials{}, &domain.CredentialError{Missing: missing}
	}
	return Credentials{Username: username, AccessKey: accessKey}, nil
}

// Headers builds the reusable header set: HTTP basic authorization plus an
// explicit JSON accept header.
func (c Credentials) Headers() http.Header {
	token := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.AccessKey))
	h := http.Header{}
	h.Set("Authorization", "Basic "+token)
	h.Set("Accept", "application/json")
	return h
}
