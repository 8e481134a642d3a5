/*
Package app contains the glue between the ABCI interface and the settle
handlers.

StoreApp takes care of the state: committing blocks, serving queries and
loading the genesis. BaseApp adds transaction processing on top of it by
decoding each transaction and passing it through a handler stack built with
ChainDecorators and a Router.
*/
package app
