// Package settletest provides mocks and helpers shared by the tests of the
// settle packages.
package settletest

import (
	"context"
	"fmt"

	"github.com/theconstruct/settle"
)

// Auth is a mock implementing x.Authenticator interface.
//
// It authenticates the Signer and all Signers, regardless of the context.
type Auth struct {
	// Signer is a convenience attribute for a single signer. It is
	// reported before Signers.
	Signer settle.Principal

	// Signers represents an authentication of multiple signers.
	Signers []settle.Principal
}

// GetPrincipals returns all declared signers.
func (a *Auth) GetPrincipals(settle.Context) []settle.Principal {
	if a.Signer != "" {
		return append([]settle.Principal{a.Signer}, a.Signers...)
	}
	return a.Signers
}

// HasPrincipal returns true if given principal was declared.
func (a *Auth) HasPrincipal(ctx settle.Context, p settle.Principal) bool {
	for _, s := range a.GetPrincipals(ctx) {
		if s.Equals(p) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve principals.
type CtxAuth struct {
	// Key used to set and retrieve principals from the context. For
	// convenience only string type keys are allowed.
	Key string
}

// SetPrincipals returns a context authenticating given principals.
func (a *CtxAuth) SetPrincipals(ctx settle.Context, principals ...settle.Principal) settle.Context {
	return context.WithValue(ctx, a.Key, principals)
}

// GetPrincipals returns the principals stored in the context.
func (a *CtxAuth) GetPrincipals(ctx settle.Context) []settle.Principal {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	ps, ok := val.([]settle.Principal)
	if !ok {
		panic(fmt.Sprintf("instead of []settle.Principal got %T", val))
	}
	return ps
}

// HasPrincipal returns true if given principal is stored in the context.
func (a *CtxAuth) HasPrincipal(ctx settle.Context, p settle.Principal) bool {
	for _, s := range a.GetPrincipals(ctx) {
		if s.Equals(p) {
			return true
		}
	}
	return false
}
