package client

import (
	"crypto/rand"
	"encoding/hex"
	"io/ioutil"
	"os"
	"strings"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
	"golang.org/x/crypto/ed25519"
)

// KeyPerm is the file permissions for saved private keys
const KeyPerm = 0600

// GenPrivateKey creates a new random key.
func GenPrivateKey() (ed25519.PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return priv, nil
}

// KeyPrincipal returns the principal that signs with given key.
func KeyPrincipal(key ed25519.PrivateKey) settle.Principal {
	return settle.NewPrincipal(key.Public().(ed25519.PublicKey))
}

// EncodePrivateKey stores the private key as a hex string
// that can be saved and later loaded
func EncodePrivateKey(key ed25519.PrivateKey) string {
	return hex.EncodeToString(key)
}

// DecodePrivateKey reads a hex string created by EncodePrivateKey
// and returns the original key
func DecodePrivateKey(hexKey string) (ed25519.PrivateKey, error) {
	data, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if len(data) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "key must be %d bytes", ed25519.PrivateKeySize)
	}
	return ed25519.PrivateKey(data), nil
}

// SaveKey writes the hex encoded key to path. An existing file is only
// replaced when force is set.
func SaveKey(key ed25519.PrivateKey, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Wrapf(errors.ErrDuplicate, "%s already exists", path)
	}
	if err := ioutil.WriteFile(path, []byte(EncodePrivateKey(key)), KeyPerm); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LoadKey reads a key written by SaveKey.
func LoadKey(path string) (ed25519.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return DecodePrivateKey(string(raw))
}
