package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/netarmor/securenet"
	"golang.org/x/time/rate"

	"github.com/alevic/atelie-ai/pkg/assets"
	"github.com/alevic/atelie-ai/pkg/config"
	"github.com/alevic/atelie-ai/pkg/credential"
	"github.com/alevic/atelie-ai/pkg/generation"
	"github.com/alevic/atelie-ai/pkg/profile"
	"github.com/alevic/atelie-ai/pkg/workflow"
)

const (
	defaultRateBurst = 2
	assetCacheTTL    = 10 * time.Minute
	httpTimeout      = 2 * time.Minute
)

// app は CLI 全体で共有する組み立て済みコンポーネント一式です。
type app struct {
	cfg      config.Config
	studio   *workflow.Studio
	assets   *assets.Manager
	profiles *profile.Store
}

// buildApp は設定からコンポーネントを組み立てる唯一の場所です。
func buildApp(cfg config.Config) (*app, error) {
	dir, err := profile.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("falha ao resolver o diretório de configuração: %w", err)
	}
	profiles, err := profile.NewStore(dir)
	if err != nil {
		return nil, err
	}

	httpClient := newHTTPFetcher(httpTimeout)

	manager, err := assets.NewManager(httpClient, nil, assetCacheTTL)
	if err != nil {
		return nil, err
	}

	resolver := credential.NewResolver(credential.Config{DefaultAPIKey: cfg.DefaultAPIKey})

	client, err := generation.NewClient(generation.NewGenaiBackend, resolver, httpClient, cfg)
	if err != nil {
		return nil, err
	}

	studio, err := workflow.NewStudio(
		client,
		profiles,
		&stdinKeyReselector{in: os.Stdin, out: os.Stderr},
		&settingsAdvisor{out: os.Stderr},
		rate.NewLimiter(rate.Every(cfg.RateInterval), defaultRateBurst),
	)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, studio: studio, assets: manager, profiles: profiles}, nil
}

// stdinKeyReselector は動画権限エラー時のキー再選択を標準入力で行います。
// 空行はキャンセル扱いです。
type stdinKeyReselector struct {
	in  io.Reader
	out io.Writer
}

func (r *stdinKeyReselector) ReselectKey(ctx context.Context) (string, error) {
	fmt.Fprintln(r.out, "A chave atual não tem acesso ao modelo de vídeo.")
	fmt.Fprint(r.out, "Informe outra chave de API (Enter para cancelar): ")

	line, err := bufio.NewReader(r.in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("leitura da chave interrompida: %w", err)
	}
	key := strings.TrimSpace(line)
	if key == "" {
		return "", fmt.Errorf("seleção de chave cancelada")
	}
	return key, nil
}

// settingsAdvisor は「設定画面を開く」に相当する CLI 上の案内です。
type settingsAdvisor struct {
	out io.Writer
}

func (s *settingsAdvisor) OpenSettings(reason string) {
	fmt.Fprintln(s.out, reason)
	fmt.Fprintln(s.out, "Atualize a chave com: atelie profile save --video-api-key SUA_CHAVE")
}

// httpFetcher は httpkit.ClientInterface の net/http 実装です。
// ライブラリの具象クライアントの組み立てはどの利用側にも現れないため、
// 組成ルートであるここが同じ契約を満たす実装を提供します。
type httpFetcher struct {
	client *http.Client
}

var _ httpkit.ClientInterface = (*httpFetcher)(nil)

func newHTTPFetcher(timeout time.Duration) *httpFetcher {
	return &httpFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *httpFetcher) Do(req *http.Request) (*http.Response, error) {
	return f.client.Do(req)
}

func (f *httpFetcher) IsSafeURL(urlStr string) (bool, error) {
	return securenet.IsSafeURL(urlStr)
}

func (f *httpFetcher) IsSecureServiceURL(serviceURL string) bool {
	return securenet.IsSecureServiceURL(serviceURL)
}

func (f *httpFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return f.DoRequest(req)
}

func (f *httpFetcher) DoRequest(req *http.Request) ([]byte, error) {
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status inesperado %d de %s", resp.StatusCode, req.URL.Redacted())
	}
	return io.ReadAll(resp.Body)
}

func (f *httpFetcher) FetchAndDecodeJSON(ctx context.Context, url string, v any) error {
	data, err := f.FetchBytes(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (f *httpFetcher) PostJSONAndFetchBytes(ctx context.Context, url string, data any) ([]byte, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return f.PostRawBodyAndFetchBytes(ctx, url, body, "application/json")
}

func (f *httpFetcher) PostRawBodyAndFetchBytes(ctx context.Context, url string, body []byte, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return f.DoRequest(req)
}
