package stm

// Transaction is a user-supplied transaction body. Run receives the
// active Context and returns either a result or an error (always
// ErrRetry or a *RetryError wrapping it) that aborts the attempt.
//
// Implementations must be idempotent: the runtime may invoke Run any
// number of times before it finally commits, and must see no externally
// visible side effect from a run that doesn't commit. Implementations
// must also propagate a Retry from Context.Read/Context.Write immediately
// instead of continuing the body.
type Transaction[O any] interface {
	Run(ctx *Context) (O, error)
}

// TransactionFunc adapts a plain function to the Transaction interface,
// the same way http.HandlerFunc adapts a function to http.Handler.
type TransactionFunc[O any] func(ctx *Context) (O, error)

// Run implements Transaction.
func (f TransactionFunc[O]) Run(ctx *Context) (O, error) {
	return f(ctx)
}

// readTx is the Transaction returned by TVar.Read.
type readTx[T any] struct {
	v *TVar[T]
}

func (t readTx[T]) Run(ctx *Context) (T, error) {
	return Read(ctx, t.v)
}

// writeTx is the Transaction returned by TVar.Write.
type writeTx[T any] struct {
	v     *TVar[T]
	value T
}

func (t writeTx[T]) Run(ctx *Context) (struct{}, error) {
	if err := Write(ctx, t.v, t.value); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, nil
}
