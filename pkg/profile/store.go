// Package profile は AtelierProfile の永続化とセッション内共有を担当します。
// 1つの名前付きスロットに JSON で保存し、起動時に一度読み込み、保存操作のたびに書き戻します。
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/alevic/atelie-ai/pkg/domain"
)

// slotName は永続化スロットのファイル名です。
const slotName = "atelier_profile.json"

// Store はセッションで唯一のプロフィールを保持します。
// 読み取りは常に値のコピーを返すため、生成リクエストの途中で保存が走っても
// 取得済みのスナップショットが新旧混ざることはありません。
type Store struct {
	mu      sync.RWMutex
	current domain.AtelierProfile
	path    string
}

// NewStore は保存先ディレクトリを指定して Store を初期化し、既存データを読み込みます。
// データが無い・壊れている場合は既定のプロフィールにフォールバックします。
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}

	s := &Store{path: filepath.Join(dir, slotName)}
	s.current = s.load()
	return s, nil
}

func (s *Store) load() domain.AtelierProfile {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("プロフィールの読み込みに失敗したため既定値を使います", "path", s.path, "error", err)
		}
		return domain.DefaultProfile()
	}

	var p domain.AtelierProfile
	if err := json.Unmarshal(data, &p); err != nil {
		slog.Warn("プロフィールのパースに失敗したため既定値を使います", "path", s.path, "error", err)
		return domain.DefaultProfile()
	}
	return p
}

// Current は現在のプロフィールのスナップショット（値コピー）を返します。
func (s *Store) Current() domain.AtelierProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Save はプロフィールを更新してスロットに書き戻します。
// プロフィールを書き換える唯一の経路です。
func (s *Store) Save(p domain.AtelierProfile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("プロフィールのシリアライズに失敗しました: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("プロフィールの保存に失敗しました: %w", err)
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return nil
}

// DefaultDir は OS のユーザー設定ディレクトリ配下の保存先を返します。
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "atelie-ai"), nil
}
