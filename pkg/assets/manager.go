// Package assets はアップロード済み商品・参照画像の一覧を管理します。
// ローカルファイル、http(s) URL、gs:// URI からの取り込みに対応します。
package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/alevic/atelie-ai/pkg/domain"
	"github.com/alevic/atelie-ai/pkg/imgutil"
)

const (
	// UseImageCompression は取り込み時に JPEG へ再圧縮するかどうかです。
	UseImageCompression     = true
	ImageCompressionQuality = 75
)

// Manager はアップロード一覧の所有者です。識別子での削除に対応し、
// リモート取得分は TTL 付きキャッシュに保持します。
type Manager struct {
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
	cache      *gocache.Cache
	images     []domain.UploadedImage
}

// NewManager は依存関係を注入して Manager を初期化します。
func NewManager(httpClient httpkit.ClientInterface, reader remoteio.InputReader, cacheTTL time.Duration) (*Manager, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	// reader は nil を許容（gs:// 非対応で動作）

	return &Manager{
		httpClient: httpClient,
		reader:     reader,
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
	}, nil
}

// AddFromFile はローカルファイルを取り込んで一覧に追加します。
func (m *Manager) AddFromFile(path string) (domain.UploadedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.UploadedImage{}, fmt.Errorf("画像ファイルの読み込みに失敗しました: %w", err)
	}
	return m.add(path, data)
}

// AddFromURL はリモート画像を取り込んで一覧に追加します。
// http(s) は SSRF 検証の上でダウンロードし、gs:// はリーダー経由で読み込みます。
func (m *Manager) AddFromURL(ctx context.Context, rawURL string) (domain.UploadedImage, error) {
	data, err := m.fetchImageData(ctx, rawURL)
	if err != nil {
		return domain.UploadedImage{}, err
	}
	return m.add(rawURL, data)
}

// LoadFromFile は一覧に追加せずローカル画像を読み込みます。
// 柄やスタイルの参照画像など、商品一覧に混ぜたくない画像のための入口です。
func (m *Manager) LoadFromFile(path string) (domain.UploadedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.UploadedImage{}, fmt.Errorf("画像ファイルの読み込みに失敗しました: %w", err)
	}
	return m.build(path, data)
}

func (m *Manager) add(source string, data []byte) (domain.UploadedImage, error) {
	img, err := m.build(source, data)
	if err != nil {
		return domain.UploadedImage{}, err
	}
	m.images = append(m.images, img)
	return img, nil
}

func (m *Manager) build(source string, data []byte) (domain.UploadedImage, error) {
	finalData := data
	if UseImageCompression {
		if compressed, err := imgutil.CompressToJPEG(data, ImageCompressionQuality); err == nil {
			finalData = compressed
		}
	}

	mimeType := http.DetectContentType(finalData)
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.UploadedImage{}, fmt.Errorf("画像ではないデータです (detected: %s)", mimeType)
	}

	return domain.UploadedImage{
		ID:         uuid.NewString(),
		Path:       source,
		PreviewURI: imgutil.ToDataURI(mimeType, finalData),
		Base64:     base64.StdEncoding.EncodeToString(finalData),
		MimeType:   mimeType,
	}, nil
}

// Remove は識別子で一覧から取り除きます。見つからなければ false です。
func (m *Manager) Remove(id string) bool {
	for i, img := range m.images {
		if img.ID == id {
			m.images = append(m.images[:i], m.images[i+1:]...)
			return true
		}
	}
	return false
}

// List は現在の一覧のコピーを追加順で返します。
func (m *Manager) List() []domain.UploadedImage {
	out := make([]domain.UploadedImage, len(m.images))
	copy(out, m.images)
	return out
}

// fetchImageData は URI の種別に応じて画像バイト列を取得します。
func (m *Manager) fetchImageData(ctx context.Context, rawURL string) ([]byte, error) {
	if cached, found := m.cache.Get(rawURL); found {
		if data, ok := cached.([]byte); ok {
			return data, nil
		}
		slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", rawURL, "type", fmt.Sprintf("%T", cached))
	}

	if strings.HasPrefix(rawURL, "gs://") {
		if m.reader == nil {
			return nil, fmt.Errorf("gs:// の読み込みに必要なリーダーが設定されていません")
		}
		rc, err := m.reader.Open(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}
		m.cache.SetDefault(rawURL, data)
		return data, nil
	}

	if safe, err := isSafeURL(rawURL); err != nil || !safe {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}

	data, err := m.httpClient.FetchBytes(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	m.cache.SetDefault(rawURL, data)
	return data, nil
}

// isSafeURL は SSRF (Server-Side Request Forgery) 対策として URL を検証します。
// 許可されたスキーム (http, https) かつ、プライベートIPやループバックアドレスを
// ターゲットにしていないことを確認します。
func isSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolvedIPs, err := net.LookupIP(host)
		if err != nil {
			return false, fmt.Errorf("ホスト '%s' の名前解決に失敗しました: %w", host, err)
		}
		ips = resolvedIPs
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}

	return true, nil
}
