package escrow

import (
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/orm"
)

const (
	// BucketName is the prefix of all escrow keys.
	BucketName = "esc"

	indexBeneficiary = "beneficiary"
	indexPayer       = "payer"
)

// Ledger stores escrow records by id. It does not check the lifecycle
// rules, only that a stored record is well formed.
type Ledger struct {
	bucket orm.Bucket
}

// NewLedger returns a ledger with the beneficiary and payer indexes.
func NewLedger() Ledger {
	b := orm.NewBucket(BucketName, orm.NewRecord(nil, new(Escrow))).
		WithIndex(indexBeneficiary, beneficiaryIndexer, false).
		WithIndex(indexPayer, payerIndexer, false)
	return Ledger{bucket: b}
}

// Register exposes the escrows under given query path, together with the
// index queries at path/beneficiary and path/payer.
func (l Ledger) Register(name string, r settle.QueryRouter) {
	l.bucket.Register(name, r)
}

// Put inserts or overwrites the record stored under its id.
func (l Ledger) Put(db settle.KVStore, e *Escrow) error {
	obj := orm.NewRecord([]byte(e.Id), e)
	return l.bucket.Save(db, obj)
}

// Get returns the record with given id or ErrNotFound.
func (l Ledger) Get(db settle.ReadOnlyKVStore, id string) (*Escrow, error) {
	obj, err := l.bucket.Get(db, []byte(id))
	if err != nil {
		return nil, err
	}
	e := asEscrow(obj)
	if e == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %q", id)
	}
	return e, nil
}

// Exists returns true if a record with given id was ever stored.
func (l Ledger) Exists(db settle.ReadOnlyKVStore, id string) (bool, error) {
	return l.bucket.Has(db, []byte(id))
}

// ByBeneficiary returns all escrows paying to given principal, ordered by
// id.
func (l Ledger) ByBeneficiary(db settle.ReadOnlyKVStore, p settle.Principal) ([]*Escrow, error) {
	return l.indexed(db, indexBeneficiary, p)
}

// ByPayer returns all escrows funded by given principal, ordered by id.
func (l Ledger) ByPayer(db settle.ReadOnlyKVStore, p settle.Principal) ([]*Escrow, error) {
	return l.indexed(db, indexPayer, p)
}

func (l Ledger) indexed(db settle.ReadOnlyKVStore, index string, p settle.Principal) ([]*Escrow, error) {
	objs, err := l.bucket.GetIndexed(db, index, []byte(p))
	if err != nil {
		return nil, err
	}
	res := make([]*Escrow, 0, len(objs))
	for _, obj := range objs {
		res = append(res, asEscrow(obj))
	}
	return res, nil
}

// asEscrow extracts an *Escrow value or nil from the object
func asEscrow(obj orm.Object) *Escrow {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Escrow)
}

func beneficiaryIndexer(obj orm.Object) ([]byte, error) {
	e, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	return []byte(e.Beneficiary), nil
}

func payerIndexer(obj orm.Object) ([]byte, error) {
	e, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	return []byte(e.Payer), nil
}
