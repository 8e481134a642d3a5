package settled

import (
	"crypto/sha256"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/coin"
	"github.com/theconstruct/settle/commands"
	"github.com/theconstruct/settle/x/escrow"
	"github.com/theconstruct/settle/x/sigs"
	"golang.org/x/crypto/ed25519"
)

// examplesChainID is used to sign the example transactions.
const examplesChainID = "settle-examples"

// makePrivKey derives a key from a fixed seed. Nothing random about it, the
// only point is a reproducible output.
func makePrivKey(seed string) ed25519.PrivateKey {
	h := sha256.Sum256([]byte(seed))
	return ed25519.NewKeyFromSeed(h[:])
}

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	owner := makePrivKey("owner")
	ownerAddr := settle.NewPrincipal(owner.Public().(ed25519.PublicKey))
	funds := []*coin.Coin{coin.NewCoinp(100, "usd"), coin.NewCoinp(5, "eur")}

	create := &escrow.CreateEscrowMsg{
		Id:          "order-1",
		Beneficiary: "bob",
		Maturity:    1700000301,
		Funds:       funds,
	}
	createTx := &Tx{CreateEscrowMsg: create}
	sig, err := sigs.SignTx(owner, createTx, examplesChainID)
	if err != nil {
		panic(err)
	}
	createTx.Signatures = []*sigs.StdSignature{sig}

	release := &escrow.ReleasePaymentMsg{Id: "order-1"}

	return []commands.Example{
		{Filename: "create_escrow_msg", Obj: create},
		{Filename: "release_payment_msg", Obj: release},
		{Filename: "create_escrow_tx", Obj: createTx},
		{Filename: "release_payment_tx", Obj: &Tx{ReleasePaymentMsg: release}},
		{Filename: "escrow", Obj: &escrow.Escrow{
			Id:          "order-1",
			Payer:       ownerAddr.String(),
			Beneficiary: "bob",
			Funds:       funds,
			Maturity:    1700000301,
		}},
		{Filename: "admin_config", Obj: &escrow.AdminConfig{
			Owner:          ownerAddr.String(),
			MinLockSeconds: escrow.DefaultMinLock,
		}},
		{Filename: "release_receipt", Obj: &escrow.ReleaseReceipt{
			Id:         "order-1",
			Recipient:  "bob",
			Directives: escrow.Emit("bob", funds),
		}},
	}
}
