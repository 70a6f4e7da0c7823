package domain

// GenerationConfig はユーザーが選択したシーン設定一式です。
// 生成リクエストのたびに UI 状態から新しく組み立てられ、以後は不変として扱います。
type GenerationConfig struct {
	Environment     string // 例: "garden", "living_room"
	Character       string // "none" で商品のみ
	CharacterStyle  string // Character が "none" 以外のときだけ意味を持つ自由記述
	Lighting        string // 例: "natural", "golden_hour"
	Style           string // 例: "social_media", "studio_clean"
	MotionStyle     string // 動画の動きの雰囲気。例: "slow_motion"
	NarrationScript string // 空ならナレーション音声は生成しない
	CustomPrompt    string // 追加の自由記述指示

	// 参照画像はそれぞれ最大1枚まで。nil は未指定です。
	PatternReference *UploadedImage
	StyleReference   *UploadedImage
}

// UploadedImage はアップロード済みアセット1件を表します。
// Base64 はそのまま API に渡せるペイロード、PreviewURI はローカル表示用の data URI です。
type UploadedImage struct {
	ID         string `json:"id"`
	Path       string `json:"path"`
	PreviewURI string `json:"preview_uri"`
	Base64     string `json:"base64"`
	MimeType   string `json:"mime_type"`
}

// AtelierProfile は全モダリティの生成を方向付けるブランド情報です。
// セッションごとに1インスタンスのみ存在し、保存操作以外では書き換えません。
type AtelierProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	VideoAPIKey string `json:"video_api_key,omitempty"` // 動画モダリティ専用の優先キー（任意）
}

// DefaultProfile は永続化データが無い初回起動時に使うブランド設定です。
func DefaultProfile() AtelierProfile {
	return AtelierProfile{
		Name: "Glorinha Ateliê",
		Description: "Ateliê de costura e artesanato tradicional comandado por Mãe e Filha, " +
			"juntas há mais de 40 anos. Tom de voz acolhedor, familiar e afetivo, " +
			"enfatizando o feito à mão, a tradição e o amor envolvido em cada peça.",
	}
}

// CreativeSet は画像＋キャプションの同時生成1回分の成果物です。
type CreativeSet struct {
	ImageDataURI string   // data:image/png;base64,... 形式
	Captions     []string // 通常3件。キャプション生成が失敗した場合はフォールバック1件
}

// VideoBundle は同一リクエストから生成された動画とナレーション音声の対です。
// 再生側の契約: 動画の再生開始時に音声も先頭から同時に開始し、一時停止も連動させること。
// 対応関係を壊さないため、動画と音声は必ずこのペアとして一緒に受け渡します。
type VideoBundle struct {
	VideoPath string // ローカルに書き出した MP4 のパス
	AudioPath string // ナレーション WAV のパス。未生成なら空
	// NarrationErr はナレーション生成だけが失敗したときのエラーです。
	// 完成済みの動画を黙って捨てないため、動画は届けた上でここに記録します。
	NarrationErr error
}
