package settletest

import (
	"crypto/rand"

	"github.com/theconstruct/settle"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return priv
}

// KeyPrincipal returns the principal a signature of given key resolves to.
func KeyPrincipal(key ed25519.PrivateKey) settle.Principal {
	return settle.NewPrincipal(key.Public().(ed25519.PublicKey))
}

// NewPrincipal returns the bech32 principal of a fresh key.
func NewPrincipal() settle.Principal {
	return KeyPrincipal(NewKey())
}
