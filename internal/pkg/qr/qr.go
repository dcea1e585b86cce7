// Package qr builds bank transfer QR image URLs served by the VietQR image endpoint.
package qr

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const BaseURL = "https://img.vietqr.io/image"

var ErrMissingBankInfo = errors.New("bank bin code and account number are required")

// Params describes one transfer.
type Params struct {
	BinCode     string
	BankNumber  string
	Amount      float64
	Description string
}

// PaymentURL renders
// {BaseURL}/{binCode}-{bankNumber}-qr_only.png?amount={amount}&addInfo={description}
// with the query values escaped.
func PaymentURL(p Params) (string, error) {
	bin := strings.TrimSpace(p.BinCode)
	account := strings.TrimSpace(p.BankNumber)
	if bin == "" || account == "" {
		return "", ErrMissingBankInfo
	}

	q := url.Values{}
	q.Set("amount", formatAmount(p.Amount))
	q.Set("addInfo", p.Description)

	return fmt.Sprintf("%s/%s-%s-qr_only.png?%s",
		BaseURL,
		url.PathEscape(bin),
		url.PathEscape(account),
		encodeOrdered(q, "amount", "addInfo"),
	), nil
}

// DepositDescription is the transfer note for a booking deposit.
func DepositDescription(bookingID string) string {
	return "Dat coc phong " + bookingID
}

// BillDescription is the transfer note for a monthly bill.
func BillDescription(month, contractID string) string {
	return fmt.Sprintf("Bill payment %s %s", month, contractID)
}

func formatAmount(v float64) string {
	if v < 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// encodeOrdered keeps amount before addInfo. url.Values.Encode sorts keys alphabetically.
func encodeOrdered(q url.Values, keys ...string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(q.Get(k)))
	}
	return strings.Join(parts, "&")
}
