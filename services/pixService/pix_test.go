package pixService

import (
	"strings"
	"testing"
	"time"
)

func TestCopyPasteIsDeterministic(t *testing.T) {
	const key = "04917091373"
	const entryID = "3f2a9b7c-1d4e-4f60-8a2b-9c3d5e7f1a2b"

	first := CopyPaste(key, 5000, entryID)
	for i := 0; i < 10; i++ {
		if got := CopyPaste(key, 5000, entryID); got != first {
			t.Fatalf("output changed between calls: %q vs %q", got, first)
		}
	}
}

func TestCopyPasteFields(t *testing.T) {
	tests := []struct {
		name       string
		amount     int64
		entryID    string
		wantAmount string
		wantRef    string
	}{
		{name: "fifty reais", amount: 5000, entryID: "abcd1234efgh5678", wantAmount: "5000", wantRef: "efgh5678"},
		{name: "fractional amount", amount: 12345, entryID: "short", wantAmount: "12345", wantRef: "short"},
		{name: "sub-real amount keeps two decimals", amount: 5, entryID: "xyz", wantAmount: "005", wantRef: "xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CopyPaste("chave", tt.amount, tt.entryID)

			if !strings.HasPrefix(got, "00020126580014br.gov.bcb.pix0136chave") {
				t.Errorf("missing header/key prefix: %q", got)
			}
			if !strings.Contains(got, "5404"+tt.wantAmount+"5802BR") {
				t.Errorf("amount field %q not found in %q", tt.wantAmount, got)
			}
			if !strings.Contains(got, "***"+tt.wantRef+"6304") {
				t.Errorf("reference %q not found in %q", tt.wantRef, got)
			}
		})
	}
}

func TestQRURLEscapesPayload(t *testing.T) {
	got := QRURL("minha chave", 5000, "id-1")

	if !strings.HasPrefix(got, "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=") {
		t.Errorf("unexpected URL prefix: %q", got)
	}
	if strings.Contains(got, "minha chave") {
		t.Errorf("payload not escaped: %q", got)
	}
	if !strings.Contains(got, "PIX%3Aminha+chave%3A50.00%3Aid-1") {
		t.Errorf("escaped payload missing: %q", got)
	}

	if got != QRURL("minha chave", 5000, "id-1") {
		t.Error("QRURL not deterministic")
	}
}

func TestQRPNG(t *testing.T) {
	png, err := QRPNG("chave", 5000, "id-1")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("empty PNG")
	}
	if !strings.HasPrefix(string(png), "\x89PNG") {
		t.Error("output is not a PNG")
	}
}

func TestExpiresAt(t *testing.T) {
	created := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	want := created.Add(30 * time.Minute)
	if got := ExpiresAt(created); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
