// Package generation は4つの生成モダリティ（画像・キャプション・動画・音声）の
// リモート呼び出しを包み、形のばらばらな応答を素直な結果に正規化します。
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"google.golang.org/genai"

	"github.com/alevic/atelie-ai/pkg/audioutil"
	"github.com/alevic/atelie-ai/pkg/config"
	"github.com/alevic/atelie-ai/pkg/credential"
	"github.com/alevic/atelie-ai/pkg/domain"
	"github.com/alevic/atelie-ai/pkg/imgutil"
	"github.com/alevic/atelie-ai/pkg/prompt"
)

// キャプション生成が失敗したときのフォールバック文言。
// キャプションの失敗は画像の提供を止めてはならないため、エラーではなくこれを返します。
const (
	captionFallback      = "Erro ao gerar legendas."
	captionEmptyFallback = "Não foi possível gerar legendas."
)

// Client は4モダリティの窓口です。呼び出しごとに
// クレデンシャル解決 → ペイロード組み立て → リモート実行 → 応答の正規化を行います。
type Client struct {
	factory    BackendFactory
	resolver   *credential.Resolver
	httpClient httpkit.ClientInterface
	poller     *Poller
	cfg        config.Config
}

// NewClient は依存関係を注入して Client を初期化します。
func NewClient(factory BackendFactory, resolver *credential.Resolver, httpClient httpkit.ClientInterface, cfg config.Config) (*Client, error) {
	if factory == nil {
		return nil, fmt.Errorf("factory (BackendFactory) is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}

	return &Client{
		factory:    factory,
		resolver:   resolver,
		httpClient: httpClient,
		poller:     NewPoller(cfg.PollInterval, cfg.PollDeadline),
		cfg:        cfg,
	}, nil
}

// GenerateImage は商品画像群と設定から合成画像を生成し、data URI で返します。
func (c *Client) GenerateImage(ctx context.Context, images []domain.UploadedImage, gcfg domain.GenerationConfig, profile domain.AtelierProfile) (string, error) {
	backend, _, err := c.connect(ctx, profile)
	if err != nil {
		return "", err
	}

	parts, err := prompt.ComposeImageParts(images, gcfg)
	if err != nil {
		return "", err
	}

	resp, err := backend.GenerateContent(ctx, c.cfg.ImageModel,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(prompt.ImageSystemInstruction(), genai.RoleUser),
		})
	if err != nil {
		return "", fmt.Errorf("falha ao gerar a imagem: %w", err)
	}

	return extractImageDataURI(resp)
}

// RefineImage は生成済み画像1枚に自由記述の手直し指示を適用します。
func (c *Client) RefineImage(ctx context.Context, imageDataURI, instruction string, profile domain.AtelierProfile) (string, error) {
	backend, _, err := c.connect(ctx, profile)
	if err != nil {
		return "", err
	}

	raw, err := imgutil.DecodeDataURI(imageDataURI)
	if err != nil {
		return "", err
	}

	parts := prompt.ComposeRefineParts(raw, "image/png", instruction)
	resp, err := backend.GenerateContent(ctx, c.cfg.ImageModel,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(prompt.RefineSystemInstruction(), genai.RoleUser),
		})
	if err != nil {
		return "", fmt.Errorf("falha ao editar a imagem: %w", err)
	}

	return extractImageDataURI(resp)
}

// GenerateCaptions はキャプション3案を生成します。
// この操作は明示的に寛容で、いかなる失敗（通信・パース）もフォールバック1件に
// 置き換えて返します。キャプションの失敗が画像の提供を妨げてはならないためです。
func (c *Client) GenerateCaptions(ctx context.Context, gcfg domain.GenerationConfig, profile domain.AtelierProfile) []string {
	captions, err := c.generateCaptions(ctx, gcfg, profile)
	if err != nil {
		slog.WarnContext(ctx, "キャプション生成に失敗したためフォールバックを返します", "error", err)
		return []string{captionFallback}
	}
	return captions
}

func (c *Client) generateCaptions(ctx context.Context, gcfg domain.GenerationConfig, profile domain.AtelierProfile) ([]string, error) {
	backend, _, err := c.connect(ctx, profile)
	if err != nil {
		return nil, err
	}

	resp, err := backend.GenerateContent(ctx, c.cfg.CaptionModel,
		[]*genai.Content{genai.NewContentFromText(prompt.CaptionPrompt(gcfg), genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(prompt.CaptionSystemInstruction(profile), genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema: &genai.Schema{
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		})
	if err != nil {
		return nil, err
	}

	text := resp.Text()
	if text == "" {
		return []string{captionEmptyFallback}, nil
	}

	// スキーマで文字列配列に制約しているが、件数はサービスの返した数をそのまま通す。
	var captions []string
	if err := json.Unmarshal([]byte(text), &captions); err != nil {
		return nil, fmt.Errorf("キャプション応答のパースに失敗しました: %w", err)
	}
	return captions, nil
}

// GenerateVideo は静止画1枚から縦型ショート動画を生成し、ローカルに書き出したパスを返します。
// ジョブ投入 → 完了監視 → メディア取得の順で、取得時は解決済みキーをクエリに付与します。
func (c *Client) GenerateVideo(ctx context.Context, imageDataURI string, gcfg domain.GenerationConfig, profile domain.AtelierProfile) (string, error) {
	backend, key, err := c.connect(ctx, profile)
	if err != nil {
		return "", err
	}

	raw, err := imgutil.DecodeDataURI(imageDataURI)
	if err != nil {
		return "", err
	}

	op, err := backend.GenerateVideos(ctx, c.cfg.VideoModel,
		prompt.VideoPrompt(gcfg, profile.Name),
		&genai.Image{ImageBytes: raw, MIMEType: "image/png"},
		&genai.GenerateVideosConfig{
			NumberOfVideos: 1,
			Resolution:     "720p",
			AspectRatio:    "9:16", // Reels/Shorts 向けの縦型
		})
	if err != nil {
		if isEntitlementSignal(err) {
			return "", fmt.Errorf("%w: %v", ErrVideoEntitlement, err)
		}
		return "", fmt.Errorf("falha ao iniciar a geração do vídeo: %w", err)
	}

	slog.InfoContext(ctx, "動画生成ジョブを投入しました", "operation", op.Name, "model", c.cfg.VideoModel)

	op, err = c.poller.Await(ctx, backend, op)
	if err != nil {
		return "", err
	}

	videoURI := finalVideoURI(op)
	if videoURI == "" {
		return "", fmt.Errorf("nenhuma URI de vídeo foi retornada: %w", ErrEmptyResponse)
	}

	// 完成メディアの取得にはキーをクエリクレデンシャルとして付与する。
	data, err := c.httpClient.FetchBytes(ctx, videoURI+"&key="+key)
	if err != nil {
		return "", fmt.Errorf("falha ao baixar o vídeo gerado: %w", err)
	}

	return c.writeArtifact(fmt.Sprintf("atelie-video-%d.mp4", time.Now().UnixMilli()), data)
}

// GenerateSpeech はナレーション原稿から音声を合成し、WAV のパスを返します。
// リモートは 24kHz・16bit・モノラルの生 PCM を返すため、ここでコンテナ化します。
func (c *Client) GenerateSpeech(ctx context.Context, script string, profile domain.AtelierProfile) (string, error) {
	backend, _, err := c.connect(ctx, profile)
	if err != nil {
		return "", err
	}

	resp, err := backend.GenerateContent(ctx, c.cfg.SpeechModel,
		[]*genai.Content{genai.NewContentFromText(script, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.cfg.SpeechVoice},
				},
			},
		})
	if err != nil {
		return "", fmt.Errorf("falha ao gerar a narração: %w", err)
	}

	pcm := firstInlineData(resp)
	if len(pcm) == 0 {
		return "", ErrNoAudioData
	}

	wav := audioutil.EncodeWAV(pcm, audioutil.DefaultSampleRate)
	return c.writeArtifact(fmt.Sprintf("atelie-narracao-%d.wav", time.Now().UnixMilli()), wav)
}

// connect はクレデンシャルを解決して Backend を構築します。キー欠如はここで即座に失敗します。
func (c *Client) connect(ctx context.Context, profile domain.AtelierProfile) (Backend, string, error) {
	key, err := c.resolver.Resolve(profile)
	if err != nil {
		return nil, "", err
	}
	backend, err := c.factory(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("生成クライアントの初期化に失敗しました: %w", err)
	}
	return backend, key, nil
}

// writeArtifact は生成物を出力ディレクトリに書き出してパスを返します。
func (c *Client) writeArtifact(name string, data []byte) (string, error) {
	dir := c.cfg.OutputDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("生成物の書き出しに失敗しました: %w", err)
	}
	return path, nil
}

// extractImageDataURI は最初の候補のパーツ列から最初のバイナリ画像を取り出します。
// バイナリが無くテキストがある場合は「モデルが喋った」専用エラー、どちらも無ければ
// ErrEmptyResponse です。
func extractImageDataURI(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return imgutil.ToDataURI("image/png", part.InlineData.Data), nil
			}
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return "", newUnexpectedTextError(part.Text)
			}
		}
	}

	return "", ErrEmptyResponse
}

// firstInlineData は最初の候補から最初のバイナリパーツを取り出します。
func firstInlineData(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}

// finalVideoURI は完了済みジョブレコードからメディアロケーターを取り出します。
func finalVideoURI(op *genai.GenerateVideosOperation) string {
	if op == nil || op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return ""
	}
	video := op.Response.GeneratedVideos[0].Video
	if video == nil {
		return ""
	}
	return video.URI
}
