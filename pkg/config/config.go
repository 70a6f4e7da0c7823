// Package config はアプリケーション全体の設定を保持します。
package config

import (
	"os"
	"time"
)

// デフォルト値の定義
const (
	DefaultImageModel   = "gemini-2.5-flash-image"
	DefaultCaptionModel = "gemini-2.5-flash"
	DefaultVideoModel   = "veo-3.1-fast-generate-preview"
	DefaultSpeechModel  = "gemini-2.5-flash-preview-tts"
	DefaultSpeechVoice  = "Zephyr"
	DefaultPollInterval = 5 * time.Second
	DefaultPollDeadline = 10 * time.Minute
	DefaultRateInterval = 10 * time.Second
)

// Config は各コンポーネントを動作させるための基本設定です。
type Config struct {
	// --- AI Model Settings ---
	ImageModel   string
	CaptionModel string
	VideoModel   string
	SpeechModel  string
	SpeechVoice  string // ナレーターの音声は固定で1種類

	// --- Credential ---
	DefaultAPIKey string // 既定の API キー。プロフィール専用キーが無いときに使用

	// --- Async Job Polling ---
	PollInterval time.Duration // 動画ジョブの状態確認間隔
	PollDeadline time.Duration // これを超えたら Timeout として打ち切る

	// --- Generation Settings ---
	RateInterval time.Duration // 生成呼び出しのレート制限間隔
	OutputDir    string        // 動画・音声・画像の書き出し先。空なら一時ディレクトリ
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		ImageModel:   DefaultImageModel,
		CaptionModel: DefaultCaptionModel,
		VideoModel:   DefaultVideoModel,
		SpeechModel:  DefaultSpeechModel,
		SpeechVoice:  DefaultSpeechVoice,
		PollInterval: DefaultPollInterval,
		PollDeadline: DefaultPollDeadline,
		RateInterval: DefaultRateInterval,
	}
}

// FromEnv はデフォルト設定に環境変数を重ねた Config を返します。
// 環境変数の読み込みはこの組み立て地点に限定し、下層には値として渡します。
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.DefaultAPIKey = os.Getenv("GEMINI_API_KEY")
	if model := os.Getenv("ATELIE_IMAGE_MODEL"); model != "" {
		cfg.ImageModel = model
	}
	if model := os.Getenv("ATELIE_VIDEO_MODEL"); model != "" {
		cfg.VideoModel = model
	}
	if dir := os.Getenv("ATELIE_OUTPUT_DIR"); dir != "" {
		cfg.OutputDir = dir
	}
	return cfg
}
