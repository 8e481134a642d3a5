/*
Package gconf implements a configuration store intended to be used as a
singleton, in-database configuration of an extension.

The configuration is read from the genesis file once, validated and saved
under the "_c:<package>" key. Handlers load it on every request and pass it
explicitly to the code that needs it, so no configuration lives in a global
variable.
*/
package gconf
