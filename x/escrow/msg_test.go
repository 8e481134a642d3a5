package escrow

import (
	"strings"
	"testing"

	"github.com/theconstruct/settle/coin"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/settletest/assert"
)

func TestCreateEscrowMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     *CreateEscrowMsg
		wantErr *errors.Error
	}{
		"valid": {
			msg: &CreateEscrowMsg{
				Id:          "e1",
				Beneficiary: "bob",
				Maturity:    int64(now),
				Funds:       []*coin.Coin{coin.NewCoinp(1, "usd")},
			},
		},
		"state dependent fields are not checked": {
			msg: &CreateEscrowMsg{Id: "e1"},
		},
		"missing id": {
			msg:     &CreateEscrowMsg{Funds: []*coin.Coin{coin.NewCoinp(1, "usd")}},
			wantErr: errors.ErrEmpty,
		},
		"id too long": {
			msg:     &CreateEscrowMsg{Id: strings.Repeat("x", maxIDLength+1)},
			wantErr: errors.ErrInvalidInput,
		},
		"funds are checked on processing": {
			msg: &CreateEscrowMsg{
				Id:    "e1",
				Funds: []*coin.Coin{coin.NewCoinp(1, "usd"), coin.NewCoinp(2, "usd")},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.msg.Validate())
		})
	}
}

func TestReleasePaymentMsgValidate(t *testing.T) {
	assert.Nil(t, (&ReleasePaymentMsg{Id: "e1"}).Validate())
	assert.IsErr(t, errors.ErrEmpty, (&ReleasePaymentMsg{}).Validate())
	assert.Equal(t, "escrow/release", (&ReleasePaymentMsg{}).Path())
	assert.Equal(t, "escrow/create", (&CreateEscrowMsg{}).Path())
}
