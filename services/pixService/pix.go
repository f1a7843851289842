package pixService

import (
	"fmt"
	"net/url"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"megaDeOuro/services/common"
)

// PaymentWindow is how long a participant has to pay before the checkout
// shows the code as expired. Advisory only: confirming after the window
// still succeeds.
const PaymentWindow = 30 * time.Minute

// Payload is everything the checkout screen needs to charge one entry.
type Payload struct {
	Key       string `json:"chave"`
	CopyPaste string `json:"pixCopiaECola"`
	QRURL     string `json:"qrCode"`
}

// CopyPaste assembles the "copia e cola" string: fixed EMV-style header and
// merchant fields, the amount with the decimal point stripped, and a
// reference built from the last 8 characters of the entry id. Deterministic
// for identical inputs.
func CopyPaste(key string, amountCents int64, entryID string) string {
	amount := fmt.Sprintf("%d%02d", amountCents/100, amountCents%100)

	ref := entryID
	if len(ref) > 8 {
		ref = ref[len(ref)-8:]
	}

	return fmt.Sprintf(
		"00020126580014br.gov.bcb.pix0136%s5204000053039865404%s5802BR5913BOLAO MEGA6008BRASILIA62070503***%s6304",
		key, amount, ref)
}

// QRURL builds the qrserver.com image URL embedding the simple descriptive
// payload shown on the payment screen.
func QRURL(key string, amountCents int64, entryID string) string {
	data := fmt.Sprintf("PIX:%s:%s:%s", key, common.CentsToDecimal(amountCents), entryID)
	return "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=" + url.QueryEscape(data)
}

// Build returns the full payment descriptor for an entry.
func Build(key string, amountCents int64, entryID string) Payload {
	return Payload{
		Key:       key,
		CopyPaste: CopyPaste(key, amountCents, entryID),
		QRURL:     QRURL(key, amountCents, entryID),
	}
}

// QRPNG renders the copy-paste payload as a PNG for banking apps that scan
// instead of paste.
func QRPNG(key string, amountCents int64, entryID string) ([]byte, error) {
	return qrcode.Encode(CopyPaste(key, amountCents, entryID), qrcode.Medium, 300)
}

// ExpiresAt computes the advisory end of the payment window.
func ExpiresAt(createdAt time.Time) time.Time {
	return createdAt.Add(PaymentWindow)
}
