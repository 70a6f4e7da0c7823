package generation

import (
	"context"

	"google.golang.org/genai"
)

// Backend はリモート生成 API との通信面を抽象化するインターフェースです。
// モダリティごとに異なる応答形（candidates/parts、ジョブレコード）はこの境界の
// 向こう側にあり、Client が正規化を担当します。
type Backend interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
}

// BackendFactory は解決済みのキーで Backend を構築します。
// キーはプロフィールの専用キーか既定キーかで呼び出しごとに変わり得るため、
// クライアントを固定で持たず都度生成します。
type BackendFactory func(ctx context.Context, apiKey string) (Backend, error)

// genaiBackend は google.golang.org/genai クライアントによる Backend 実装です。
type genaiBackend struct {
	client *genai.Client
}

// NewGenaiBackend は Gemini API バックエンドの Backend を生成します。
func NewGenaiBackend(ctx context.Context, apiKey string) (Backend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &genaiBackend{client: client}, nil
}

func (b *genaiBackend) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return b.client.Models.GenerateContent(ctx, model, contents, cfg)
}

func (b *genaiBackend) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return b.client.Models.GenerateVideos(ctx, model, prompt, image, cfg)
}

func (b *genaiBackend) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	return b.client.Operations.GetVideosOperation(ctx, op, nil)
}
