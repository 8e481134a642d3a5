/*
Package x contains the extensions of the settle engine and the helpers they
share.

Extensions implement common functionality (Handler, Decorator,
Initializer) and are combined together to construct an application.
Authentication is abstracted behind Authenticator, so handlers never
depend on a particular signature scheme.
*/
package x
