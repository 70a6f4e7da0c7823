package imgutil

import (
	"encoding/base64"
	"fmt"
	"regexp"
)

var dataURIPrefix = regexp.MustCompile(`^data:image/(png|jpeg|jpg|webp);base64,`)

// ToDataURI はバイナリ画像をそのまま表示ソースに使える data URI 文字列にします。
func ToDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// StripDataURIPrefix は data URI から生の base64 ペイロードを取り出します。
// プレフィックスの無い文字列はそのまま返します。
func StripDataURIPrefix(uri string) string {
	return dataURIPrefix.ReplaceAllString(uri, "")
}

// DecodeDataURI は data URI（またはプレフィックス無しの base64）をバイト列に戻します。
func DecodeDataURI(uri string) ([]byte, error) {
	raw := StripDataURIPrefix(uri)
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("base64デコードに失敗しました: %w", err)
	}
	return data, nil
}
