package sigs

import (
	"context"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx settle.Context, signers []settle.Principal) settle.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate exposes the principals that signed the current request.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetPrincipals returns who signed the current Context.
// May be empty
func (a Authenticate) GetPrincipals(ctx settle.Context) []settle.Principal {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]settle.Principal)
	return val
}

// HasPrincipal checks if this principal signed the current Context.
func (a Authenticate) HasPrincipal(ctx settle.Context, p settle.Principal) bool {
	for _, s := range a.GetPrincipals(ctx) {
		if p.Equals(s) {
			return true
		}
	}
	return false
}
