package settle

import (
	"crypto/sha256"
	"regexp"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/theconstruct/settle/errors"
)

var (
	// PrincipalPrefix is the human readable part of every bech32 encoded
	// principal. You can modify it in init() before any principal is
	// computed, but it must not change during the lifetime of the store.
	PrincipalPrefix = "settle"

	// AddressLength is the length of the address carried by a bech32
	// encoded principal.
	AddressLength = 20

	isAccountName = regexp.MustCompile(`^[a-z][a-z0-9_.\-]{2,63}$`).MatchString
)

// Principal is an opaque identifier of an account that is authorized to send
// requests or to receive funds.
//
// Two forms are accepted. A bech32 encoded address using PrincipalPrefix as
// the human readable part (this is what signers resolve to), or a plain
// account name for accounts managed outside of this chain.
type Principal string

// NewPrincipal hashes and truncates given data (usually a public key) and
// returns the bech32 encoded principal of the result.
func NewPrincipal(data []byte) Principal {
	h := sha256.Sum256(data)
	p, err := AddressPrincipal(h[:AddressLength])
	if err != nil {
		// Only happens when the prefix is broken, which is a setup bug.
		panic(err)
	}
	return p
}

// AddressPrincipal encodes a raw address as a bech32 principal.
func AddressPrincipal(addr []byte) (Principal, error) {
	if len(addr) != AddressLength {
		return "", errors.Wrapf(errors.ErrInvalidInput, "address length %d", len(addr))
	}
	conv, err := bech32.ConvertBits(addr, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	enc, err := bech32.Encode(PrincipalPrefix, conv)
	if err != nil {
		return "", errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return Principal(enc), nil
}

// IsAddress returns true if this principal is declared in the bech32 address
// form. It does not validate the checksum.
func (p Principal) IsAddress() bool {
	return strings.HasPrefix(string(p), PrincipalPrefix+"1")
}

// Address returns the raw address encoded in this principal.
func (p Principal) Address() ([]byte, error) {
	if !p.IsAddress() {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "%q is not an address", string(p))
	}
	hrp, data, err := bech32.Decode(string(p))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if hrp != PrincipalPrefix {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "prefix %q", hrp)
	}
	addr, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if len(addr) != AddressLength {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "address length %d", len(addr))
	}
	return addr, nil
}

// Validate returns an error if the principal is not in one of the accepted
// forms.
func (p Principal) Validate() error {
	if p == "" {
		return errors.Wrap(errors.ErrEmpty, "principal")
	}
	if p.IsAddress() {
		_, err := p.Address()
		return err
	}
	if !isAccountName(string(p)) {
		return errors.Wrapf(errors.ErrInvalidInput, "principal %q", string(p))
	}
	return nil
}

// Equals checks if two principals are the same.
func (p Principal) Equals(o Principal) bool {
	return p == o
}

func (p Principal) String() string {
	if p == "" {
		return "(nil)"
	}
	return string(p)
}
