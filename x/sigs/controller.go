package sigs

import (
	"crypto/sha512"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
	"golang.org/x/crypto/ed25519"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

/*
BuildSignBytes combines all info on the actual tx before signing

We use the following format:

version | len(chainID) | chainID      | signBytes
4bytes  | uint8        | ascii string | serialized transaction

This is then prehashed with sha512 before fed into
the public key signing/verification step
*/
func BuildSignBytes(signBytes []byte, chainID string) ([]byte, error) {
	if !settle.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "chain id: %v", chainID)
	}

	output := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, chainID...)
	output = append(output, signBytes...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// BuildSignBytesTx calculates the sign bytes given a tx
func BuildSignBytesTx(tx SignedTx, chainID string) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID)
}

// SignTx creates a signature for the given tx
func SignTx(key ed25519.PrivateKey, tx SignedTx, chainID string) (*StdSignature, error) {
	signBytes, err := BuildSignBytesTx(tx, chainID)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		PubKey:    key.Public().(ed25519.PublicKey),
		Signature: ed25519.Sign(key, signBytes),
	}, nil
}

// VerifySignature checks one signature against signbytes and returns the
// principal of the signer.
func VerifySignature(sig *StdSignature, signBytes []byte, chainID string) (settle.Principal, error) {
	if err := sig.Validate(); err != nil {
		return "", err
	}
	toSign, err := BuildSignBytes(signBytes, chainID)
	if err != nil {
		return "", err
	}
	if !ed25519.Verify(ed25519.PublicKey(sig.PubKey), toSign, sig.Signature) {
		return "", errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	return sig.Principal(), nil
}

// VerifyTxSignatures checks all the signatures on the tx.
//
// returns list of signer principals (possibly empty) in signature order,
// or error if any signature is invalid
func VerifyTxSignatures(tx SignedTx, chainID string) ([]settle.Principal, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()

	signers := make([]settle.Principal, 0, len(sigs))
	for i, sig := range sigs {
		signer, err := VerifySignature(sig, bz, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}
