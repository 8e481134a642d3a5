package settletest

import "github.com/theconstruct/settle"

// Handler is a mock implementation of the settle.Handler interface that
// counts calls and returns preconfigured results.
type Handler struct {
	checkCall   int
	CheckResult settle.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult settle.DeliverResult
	DeliverErr    error
}

var _ settle.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

// WriteHandler writes a key to the store and then returns Err, so tests can
// see whether the write survived.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ settle.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &settle.CheckResult{}, nil
}

func (h WriteHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &settle.DeliverResult{}, nil
}

// PanicHandler always panics with given value.
type PanicHandler struct {
	Value interface{}
}

var _ settle.Handler = PanicHandler{}

func (h PanicHandler) Check(settle.Context, settle.KVStore, settle.Tx) (*settle.CheckResult, error) {
	panic(h.Value)
}

func (h PanicHandler) Deliver(settle.Context, settle.KVStore, settle.Tx) (*settle.DeliverResult, error) {
	panic(h.Value)
}
