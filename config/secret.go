package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// Secret is a reference to a secret value, resolved only when loaded so the
// value itself never appears in config files or process arguments.
//
//	env:CSPR_CLOUD_KEY
//	file:~/.config/cspr-cloud-key
//	raw:not-actually-secret
//	vault:https://vault.example.com:8200,secret/data/cspr/api-key
type Secret string

type SecretType string

var Env SecretType = "env"
var File SecretType = "file"
var Raw SecretType = "raw"
var Vault SecretType = "vault"

// Load resolves the reference. An empty reference resolves to an empty
// string, meaning no secret is configured.
func (s Secret) Load() (string, error) {
	value := string(s)
	if value == "" {
		return "", nil
	}

	splits := strings.SplitN(value, ":", 2)
	if len(splits) != 2 {
		return "", errors.New("invalid secret reference: expecting <type>:<path>")
	}

	path := splits[1]
	switch SecretType(splits[0]) {
	case Env:
		return strings.TrimSpace(os.Getenv(path)), nil
	case Raw:
		return path, nil
	case File:
		if len(path) > 1 && path[0] == '~' {
			path = strings.Replace(path, "~", os.Getenv("HOME"), 1)
		}
		result, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(result)), nil
	case Vault:
		return loadVaultSecret(path)
	}
	return "", fmt.Errorf("invalid secret reference type: %s", splits[0])
}

// LoadOrBlank resolves the reference, treating failure as no secret.
func (s Secret) LoadOrBlank() string {
	deref, _ := s.Load()
	return deref
}

type VaultLoader interface {
	LoadSecretData(path string) (*vault.Secret, error)
}

type DefaultVaultLoader struct {
	*vault.Client
}

var _ VaultLoader = &DefaultVaultLoader{}

func (v *DefaultVaultLoader) LoadSecretData(vaultPath string) (*vault.Secret, error) {
	secret, err := v.Logical().Read(vaultPath)
	if err != nil || secret == nil { // yes, secret can be nil
		return &vault.Secret{}, err
	}
	return secret, nil
}

func newVaultClient(cfg *vault.Config) (VaultLoader, error) {
	cli, err := vault.NewClient(cfg)
	if err != nil {
		return &DefaultVaultLoader{}, err
	}
	return &DefaultVaultLoader{Client: cli}, nil
}

// NewVaultClient may be swapped out in tests.
var NewVaultClient = newVaultClient

// loadVaultSecret reads "url,path/to/secret/key", expecting VAULT_TOKEN in
// the environment.
func loadVaultSecret(ref string) (string, error) {
	vaultArgs := strings.Split(ref, ",")
	if len(vaultArgs) != 2 {
		return "", errors.New("vault secret reference has 2 comma separated arguments (url,path)")
	}
	vaultUrl := vaultArgs[0]
	vaultFullPath := vaultArgs[1]

	idx := strings.LastIndex(vaultFullPath, "/")
	if idx == -1 || idx == len(vaultFullPath)-1 {
		return "", errors.New("malformed vault secret path")
	}
	vaultKey := vaultFullPath[idx+1:]
	vaultPath := vaultFullPath[:idx]

	client, err := NewVaultClient(&vault.Config{Address: vaultUrl})
	if err != nil {
		return "", err
	}
	secret, err := client.LoadSecretData(vaultPath)
	if err != nil {
		return "", err
	}
	data, _ := secret.Data["data"].(map[string]interface{})
	result, _ := data[vaultKey].(string)
	return strings.TrimSpace(result), nil
}
