/*
Package sigs provides basic authentication middleware to verify the
ed25519 signatures on a transaction and expose the signers as principals
to the handlers further down the stack.

A signature covers the chain id and the transaction serialized without its
signatures, so a request signed for one chain cannot be replayed on another.
*/
package sigs
