package client

import (
	"encoding/base64"
	"testing"

	"github.com/de-tools/test-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsFromEnv_MissingBothNamed(t *testing.T) {
	t.Setenv("TA_TEST_USER", "")
	t.Setenv("TA_TEST_KEY", "")

	_, err := CredentialsFromEnv("TA_TEST_USER", "TA_TEST_KEY")
	require.Error(t, err)

	var credErr *domain.CredentialError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, []string{"TA_TEST_USER", "TA_TEST_KEY"}, credErr.Missing)
	assert.Contains(t, err.Error(), "TA_TEST_USER")
	assert.Contains(t, err.Error(), "TA_TEST_KEY")
}

func TestCredentialsFromEnv_MissingOneNamed(t *testing.T) {
	t.Setenv("TA_TEST_USER", "alice")
	t.Setenv("TA_TEST_KEY", "")

	_, err := CredentialsFromEnv("TA_TEST_USER", "TA_TEST_KEY")
	require.Error(t, err)

	var credErr *domain.CredentialError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, []string{"TA_TEST_KEY"}, credErr.Missing)
}

func TestCredentialsHeaders(t *testing.T) {
	t.Setenv("TA_TEST_USER", "alice")
	t.Setenv("TA_TEST_KEY", "s3cret")

	creds, err := CredentialsFromEnv("TA_TEST_USER", "TA_TEST_KEY")
	require.NoError(t, err)

	h := creds.Headers()
	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("alice:s3cret"))
	assert.Equal(t, expected, h.Get("Authorization"))
	assert.Equal(t, "application/json", h.Get("Accept"))
}
