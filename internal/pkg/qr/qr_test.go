package qr

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentURL_Deposit(t *testing.T) {
	u, err := PaymentURL(Params{
		BinCode:     "970436",
		BankNumber:  "0123456789",
		Amount:      3000000,
		Description: DepositDescription("b-42"),
	})
	require.NoError(t, err)
	assert.Equal(t,
		"https://img.vietqr.io/image/970436-0123456789-qr_only.png?amount=3000000&addInfo=Dat+coc+phong+b-42",
		u)
}

func TestPaymentURL_EscapesDescription(t *testing.T) {
	u, err := PaymentURL(Params{
		BinCode:     "970436",
		BankNumber:  "0123456789",
		Amount:      1250000.5,
		Description: BillDescription("2025-08", "c&1=2"),
	})
	require.NoError(t, err)

	parsed, err := url.Parse(u)
	require.NoError(t, err)
	assert.Equal(t, "1250000.5", parsed.Query().Get("amount"))
	assert.Equal(t, "Bill payment 2025-08 c&1=2", parsed.Query().Get("addInfo"))
}

func TestPaymentURL_MissingBank(t *testing.T) {
	_, err := PaymentURL(Params{BinCode: "", BankNumber: "1"})
	assert.ErrorIs(t, err, ErrMissingBankInfo)
}

func TestDescriptions(t *testing.T) {
	assert.Equal(t, "Dat coc phong 7", DepositDescription("7"))
	assert.Equal(t, "Bill payment 2025-08 c-1", BillDescription("2025-08", "c-1"))
}
