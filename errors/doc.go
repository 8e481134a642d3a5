/*
Package errors implements the error taxonomy used across settle.

Reuse the root errors declared in this package whenever possible and register
package specific errors with Register(code, description) when a client must be
able to tell them apart. Extensions own their code ranges, for example the
escrow extension takes 1010-1020.

Code stands for the ABCI error code, which allows to distinguish types of
errors on the client side and act accordingly. ABCIError rebuilds a root error
from a response code so that the usual Is check works in a client process.

Create errors using ErrXyz.New("...") or errors.Wrap(err, "...") at the point
of failure to attach a stacktrace. Only the innermost wrap records it.

	%s is just the error message
	%+v is the full stack trace
*/
package errors
