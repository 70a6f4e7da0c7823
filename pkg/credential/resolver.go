// Package credential は生成呼び出しに使う API キーの解決を担当します。
// 環境変数への暗黙アクセスは行わず、明示的な Config を注入してテスト可能にしています。
package credential

import (
	"errors"
	"strings"

	"github.com/alevic/atelie-ai/pkg/domain"
)

// ErrCredentialMissing はプロフィール専用キーも既定キーも無い設定エラーです。
// リトライしても解消しないため、設定画面への誘導として呼び出し側に届けます。
var ErrCredentialMissing = errors.New("credential missing: configure uma chave de API nas configurações")

// Config はプロセス共通の既定クレデンシャルを保持します。
type Config struct {
	// DefaultAPIKey は環境から与えられる既定キーです。組み立て時に一度だけ読み込みます。
	DefaultAPIKey string
}

// Resolver はプロフィール優先の順序でキーを決定します。
type Resolver struct {
	cfg Config
}

// NewResolver は Resolver を初期化します。
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve は使用するキーを返します。
// 優先順位: プロフィールの専用キー → 既定キー。どちらも無ければ ErrCredentialMissing です。
func (r *Resolver) Resolve(profile domain.AtelierProfile) (string, error) {
	if key := strings.TrimSpace(profile.VideoAPIKey); key != "" {
		return key, nil
	}
	if r.cfg.DefaultAPIKey != "" {
		return r.cfg.DefaultAPIKey, nil
	}
	return "", ErrCredentialMissing
}
