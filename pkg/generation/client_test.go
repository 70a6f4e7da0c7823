package generation

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/alevic/atelie-ai/pkg/config"
	"github.com/alevic/atelie-ai/pkg/credential"
	"github.com/alevic/atelie-ai/pkg/domain"
	"github.com/alevic/atelie-ai/pkg/imgutil"
)

func newTestClient(t *testing.T, backend Backend, httpClient *mockHTTPClient, usedKey *string) *Client {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.PollInterval = 0 // NewPoller が既定値を補う
	cfg.DefaultAPIKey = "default-key"

	if httpClient == nil {
		httpClient = &mockHTTPClient{}
	}

	client, err := NewClient(
		staticFactory(backend, usedKey),
		credential.NewResolver(credential.Config{DefaultAPIKey: cfg.DefaultAPIKey}),
		httpClient,
		cfg,
	)
	require.NoError(t, err)
	return client
}

func productImages() []domain.UploadedImage {
	return []domain.UploadedImage{{
		ID:       "p1",
		Base64:   "cHJvZHV0bw==", // "produto"
		MimeType: "image/png",
	}}
}

func TestClient_GenerateImage(t *testing.T) {
	ctx := context.Background()

	t.Run("成功: バイナリパーツが data URI になって返るのだ", func(t *testing.T) {
		backend := &mockBackend{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				if cfg.SystemInstruction == nil {
					t.Error("system instruction should be set")
				}
				return inlineDataResponse("image/png", []byte("png-bytes")), nil
			},
		}
		client := newTestClient(t, backend, nil, nil)

		uri, err := client.GenerateImage(ctx, productImages(), domain.GenerationConfig{}, domain.AtelierProfile{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

		decoded, err := imgutil.DecodeDataURI(uri)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(decoded))
	})

	t.Run("モデルが文章を返したら UnexpectedTextError になる", func(t *testing.T) {
		long := strings.Repeat("a", 150)
		backend := &mockBackend{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return textResponse(long), nil
			},
		}
		client := newTestClient(t, backend, nil, nil)

		_, err := client.GenerateImage(ctx, productImages(), domain.GenerationConfig{}, domain.AtelierProfile{})

		var textErr *UnexpectedTextError
		require.ErrorAs(t, err, &textErr)
		assert.Len(t, textErr.Snippet, 100, "snippet must be truncated to 100 chars")
	})

	t.Run("パーツが空なら ErrEmptyResponse", func(t *testing.T) {
		backend := &mockBackend{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return &genai.GenerateContentResponse{}, nil
			},
		}
		client := newTestClient(t, backend, nil, nil)

		_, err := client.GenerateImage(ctx, productImages(), domain.GenerationConfig{}, domain.AtelierProfile{})
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("プロフィール専用キーがファクトリに渡される", func(t *testing.T) {
		var usedKey string
		backend := &mockBackend{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return inlineDataResponse("image/png", []byte("x")), nil
			},
		}
		client := newTestClient(t, backend, nil, &usedKey)

		_, err := client.GenerateImage(ctx, productImages(), domain.GenerationConfig{},
			domain.AtelierProfile{VideoAPIKey: "chave-do-perfil"})
		require.NoError(t, err)
		assert.Equal(t, "chave-do-perfil", usedKey)
	})
}

func TestClient_GenerateCaptions(t *testing.T) {
	ctx := context.Background()

	t.Run("JSON配列がそのまま返る", func(t *testing.T) {
		backend := &mockBackend{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				if cfg.ResponseMIMEType != "application/json" {
					t.Errorf("expected JSON response mime, got %s", cfg.ResponseMIMEType)
				}
				return textResponse(`["uma","duas","três"]`), nil
			},
		}
		client := newTestClient(t, backend, nil, nil)

		captions := client.GenerateCaptions(ctx, domain.GenerationConfig{}, domain.AtelierProfile{})
		assert.Equal(t, []string{"uma", "duas", "três"}, captions)
	})

	t.Run("通信エラーでもフォールバック1件を返してエラーにしないのだ", func(t *testing.T) {
		backend := &mockBackend{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return nil, errors.New("boom")
			},
		}
		client := newTestClient(t, backend, nil, nil)

		captions := client.GenerateCaptions(ctx, domain.GenerationConfig{}, domain.AtelierProfile{})
		assert.Equal(t, []string{"Erro ao gerar legendas."}, captions)
	})

	t.Run("パース不能な応答もフォールバックに落ちる", func(t *testing.T) {
		backend := &mockBackend{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return textResponse("não é json"), nil
			},
		}
		client := newTestClient(t, backend, nil, nil)

		captions := client.GenerateCaptions(ctx, domain.GenerationConfig{}, domain.AtelierProfile{})
		assert.Equal(t, []string{"Erro ao gerar legendas."}, captions)
	})

	t.Run("空応答は専用のフォールバック文言", func(t *testing.T) {
		backend := &mockBackend{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return &genai.GenerateContentResponse{}, nil
			},
		}
		client := newTestClient(t, backend, nil, nil)

		captions := client.GenerateCaptions(ctx, domain.GenerationConfig{}, domain.AtelierProfile{})
		assert.Equal(t, []string{"Não foi possível gerar legendas."}, captions)
	})
}

func TestClient_GenerateVideo(t *testing.T) {
	ctx := context.Background()
	imageURI := imgutil.ToDataURI("image/png", []byte("quadro-inicial"))

	t.Run("成功: 完了したジョブの動画をキー付きで取得して保存する", func(t *testing.T) {
		var fetchedURL string
		backend := &mockBackend{
			generateVideosFunc: func(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
				assert.Equal(t, "quadro-inicial", string(image.ImageBytes))
				assert.Equal(t, "9:16", cfg.AspectRatio)
				return &genai.GenerateVideosOperation{
					Done: true,
					Response: &genai.GenerateVideosResponse{
						GeneratedVideos: []*genai.GeneratedVideo{
							{Video: &genai.Video{URI: "https://example.com/video.mp4?alt=media"}},
						},
					},
				}, nil
			},
		}
		httpClient := &mockHTTPClient{
			fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
				fetchedURL = url
				return []byte("mp4-data"), nil
			},
		}
		client := newTestClient(t, backend, httpClient, nil)

		path, err := client.GenerateVideo(ctx, imageURI, domain.GenerationConfig{}, domain.AtelierProfile{})
		require.NoError(t, err)

		assert.Equal(t, "https://example.com/video.mp4?alt=media&key=default-key", fetchedURL)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "mp4-data", string(data))
		assert.True(t, strings.HasSuffix(path, ".mp4"))
	})

	t.Run("投入時の not found は ErrVideoEntitlement に分類されるのだ", func(t *testing.T) {
		backend := &mockBackend{
			generateVideosFunc: func(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
				return nil, errors.New("models/veo-3.1 is not found for API version v1beta")
			},
		}
		client := newTestClient(t, backend, nil, nil)

		_, err := client.GenerateVideo(ctx, imageURI, domain.GenerationConfig{}, domain.AtelierProfile{})
		assert.ErrorIs(t, err, ErrVideoEntitlement)
	})

	t.Run("それ以外の投入エラーは通常のエラーのまま", func(t *testing.T) {
		backend := &mockBackend{
			generateVideosFunc: func(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
				return nil, errors.New("quota exceeded")
			},
		}
		client := newTestClient(t, backend, nil, nil)

		_, err := client.GenerateVideo(ctx, imageURI, domain.GenerationConfig{}, domain.AtelierProfile{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrVideoEntitlement)
	})

	t.Run("完了したのにURIが無ければ ErrEmptyResponse", func(t *testing.T) {
		backend := &mockBackend{
			generateVideosFunc: func(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
				return &genai.GenerateVideosOperation{Done: true}, nil
			},
		}
		client := newTestClient(t, backend, nil, nil)

		_, err := client.GenerateVideo(ctx, imageURI, domain.GenerationConfig{}, domain.AtelierProfile{})
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}

func TestClient_GenerateSpeech(t *testing.T) {
	ctx := context.Background()

	t.Run("成功: PCMがWAVコンテナで書き出されるのだ", func(t *testing.T) {
		backend := &mockBackend{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				require.Equal(t, []string{"AUDIO"}, cfg.ResponseModalities)
				require.NotNil(t, cfg.SpeechConfig)
				return inlineDataResponse("audio/pcm", []byte("pcm-data")), nil
			},
		}
		client := newTestClient(t, backend, nil, nil)

		path, err := client.GenerateSpeech(ctx, "Olá, bem-vindos ao ateliê!", domain.AtelierProfile{})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(path, ".wav"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Greater(t, len(data), 44)
		assert.Equal(t, "RIFF", string(data[0:4]))
		assert.Equal(t, "pcm-data", string(data[44:]))
	})

	t.Run("音声パーツが無ければ ErrNoAudioData", func(t *testing.T) {
		backend := &mockBackend{
			generateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return textResponse("desculpe, não consigo"), nil
			},
		}
		client := newTestClient(t, backend, nil, nil)

		_, err := client.GenerateSpeech(ctx, "roteiro", domain.AtelierProfile{})
		assert.ErrorIs(t, err, ErrNoAudioData)
	})
}

func TestClient_CredentialMissing(t *testing.T) {
	client, err := NewClient(
		staticFactory(&mockBackend{}, nil),
		credential.NewResolver(credential.Config{}),
		&mockHTTPClient{},
		config.DefaultConfig(),
	)
	require.NoError(t, err)

	_, genErr := client.GenerateImage(context.Background(), productImages(), domain.GenerationConfig{}, domain.AtelierProfile{})
	assert.ErrorIs(t, genErr, credential.ErrCredentialMissing)
}
