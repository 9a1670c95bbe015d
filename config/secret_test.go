package config

import (
	"os"
	"path/filepath"
	"testing"

	vault "github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/require"
)

func TestSecretEnv(t *testing.T) {
	t.Setenv("CSPR_TEST_KEY", "  my-api-key \n")
	value, err := Secret("env:CSPR_TEST_KEY").Load()
	require.NoError(t, err)
	require.Equal(t, "my-api-key", value)
}

func TestSecretEnvUnset(t *testing.T) {
	value, err := Secret("env:CSPR_TEST_KEY_UNSET").Load()
	require.NoError(t, err)
	require.Equal(t, "", value)
}

func TestSecretEmpty(t *testing.T) {
	value, err := Secret("").Load()
	require.NoError(t, err)
	require.Equal(t, "", value)
}

func TestSecretRaw(t *testing.T) {
	value, err := Secret("raw:literal-key").Load()
	require.NoError(t, err)
	require.Equal(t, "literal-key", value)
}

func TestSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("file-key\n"), 0600))
	value, err := Secret("file:" + path).Load()
	require.NoError(t, err)
	require.Equal(t, "file-key", value)
}

func TestSecretFileNotFound(t *testing.T) {
	value, err := Secret("file:" + filepath.Join(t.TempDir(), "nope")).Load()
	require.Error(t, err)
	require.Equal(t, "", value)
}

func TestSecretInvalidReference(t *testing.T) {
	_, err := Secret("no-colon").Load()
	require.Error(t, err)

	_, err = Secret("unknown:path").Load()
	require.Error(t, err)
}

type fakeVaultLoader struct {
	secret *vault.Secret
}

func (f *fakeVaultLoader) LoadSecretData(path string) (*vault.Secret, error) {
	return f.secret, nil
}

func TestSecretVault(t *testing.T) {
	original := NewVaultClient
	defer func() { NewVaultClient = original }()
	NewVaultClient = func(cfg *vault.Config) (VaultLoader, error) {
		require.Equal(t, "https://vault.example.com:8200", cfg.Address)
		return &fakeVaultLoader{secret: &vault.Secret{
			Data: map[string]interface{}{
				"data": map[string]interface{}{
					"api-key": "vault-key\n",
				},
			},
		}}, nil
	}

	value, err := Secret("vault:https://vault.example.com:8200,secret/data/cspr/api-key").Load()
	require.NoError(t, err)
	require.Equal(t, "vault-key", value)
}

func TestSecretVaultMalformed(t *testing.T) {
	_, err := Secret("vault:https://vault.example.com:8200").Load()
	require.Error(t, err)

	_, err = Secret("vault:https://vault.example.com:8200,nopath/").Load()
	require.Error(t, err)
}
