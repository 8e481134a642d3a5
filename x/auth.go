package x

import (
	"github.com/theconstruct/settle"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetPrincipals reveals all principals that authorized the current
	// request, main signer first.
	GetPrincipals(settle.Context) []settle.Principal
	// HasPrincipal checks if the given principal authorized the request.
	HasPrincipal(settle.Context, settle.Principal) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetPrincipals combines all principals from all Authenticators, keeping
// the order and dropping duplicates
func (m MultiAuth) GetPrincipals(ctx settle.Context) []settle.Principal {
	var res []settle.Principal
	seen := make(map[settle.Principal]struct{})
	for _, impl := range m.impls {
		for _, p := range impl.GetPrincipals(ctx) {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			res = append(res, p)
		}
	}
	return res
}

// HasPrincipal returns true iff any Authenticator support this
func (m MultiAuth) HasPrincipal(ctx settle.Context, p settle.Principal) bool {
	for _, impl := range m.impls {
		if impl.HasPrincipal(ctx, p) {
			return true
		}
	}
	return false
}

// MainSigner returns the first principal if any, otherwise an empty one.
// The main signer is the caller of a request.
func MainSigner(ctx settle.Context, auth Authenticator) settle.Principal {
	signers := auth.GetPrincipals(ctx)
	if len(signers) == 0 {
		return ""
	}
	return signers[0]
}

// HasAllPrincipals returns true if all elements in required are
// also in context.
func HasAllPrincipals(ctx settle.Context, auth Authenticator, required []settle.Principal) bool {
	for _, r := range required {
		if !auth.HasPrincipal(ctx, r) {
			return false
		}
	}
	return true
}
