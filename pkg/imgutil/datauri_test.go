package imgutil

import (
	"encoding/base64"
	"testing"
)

func TestToDataURI(t *testing.T) {
	t.Run("MIMEタイプとbase64が正しく組み立てられるのだ", func(t *testing.T) {
		got := ToDataURI("image/png", []byte{0x89, 0x50})
		want := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{0x89, 0x50})
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})
}

func TestStripDataURIPrefix(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"PNGプレフィックス", "data:image/png;base64,AAAA", "AAAA"},
		{"JPEGプレフィックス", "data:image/jpeg;base64,BBBB", "BBBB"},
		{"WebPプレフィックス", "data:image/webp;base64,CCCC", "CCCC"},
		{"プレフィックス無しはそのまま", "DDDD", "DDDD"},
		{"非画像MIMEは剥がさない", "data:text/plain;base64,EEEE", "data:text/plain;base64,EEEE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripDataURIPrefix(tt.uri); got != tt.want {
				t.Errorf("StripDataURIPrefix(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}

func TestDecodeDataURI(t *testing.T) {
	t.Run("data URI を元のバイト列に戻せる", func(t *testing.T) {
		original := []byte("conteudo-da-imagem")
		uri := ToDataURI("image/png", original)

		got, err := DecodeDataURI(uri)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != string(original) {
			t.Errorf("round trip mismatch: got %q", got)
		}
	})

	t.Run("不正なbase64はエラーになる", func(t *testing.T) {
		if _, err := DecodeDataURI("data:image/png;base64,!!!"); err == nil {
			t.Error("expected error for invalid base64")
		}
	})
}
