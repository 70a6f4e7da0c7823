// Package prompt は各モダリティ向けのマルチパートペイロードと指示文を
// GenerationConfig から決定的に組み立てます。ネットワークや状態変更は行いません。
package prompt

import (
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/alevic/atelie-ai/pkg/domain"
)

// ImageSystemInstruction は画像生成モデルへの固定の役割指示です。
func ImageSystemInstruction() string {
	return `You are an expert UGC (User Generated Content) creator AI and professional product photographer.
Your SOLE task is to generate a photorealistic image based on the input images and configuration.

CRITICAL RULES:
1. You MUST generate an image. Do not simply describe the image or reply conversationally.
2. The FIRST image provided is always the PRODUCT (Subject).
3. If a PATTERN/TEXTURE image is provided, you must apply this pattern to the fabric/material of the product, maintaining the original folds, shadows, and draping.
4. If a STYLE REFERENCE image is provided, use its lighting, colors, and mood.
5. Blend everything seamlessly into the requested environment.
`
}

// RefineSystemInstruction は生成済み画像の手直し用の固定指示です。
func RefineSystemInstruction() string {
	return "You are a professional photo editor. Modify the image according to the instruction. Keep the main subject (product) identical."
}

// ComposeImageParts は画像生成リクエストの添付列を組み立てます。
// 並び順の契約: 商品画像（入力順）→ 柄画像（あれば）→ スタイル参照（あれば）→ 指示テキスト1つ。
// 指示テキストは必ず末尾の要素になります。
func ComposeImageParts(images []domain.UploadedImage, cfg domain.GenerationConfig) ([]*genai.Part, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("商品画像が1枚も指定されていません")
	}

	parts := make([]*genai.Part, 0, len(images)+3)

	// 1. 商品画像は常に先頭（最初の1枚が被写体の基準）
	for _, img := range images {
		part, err := inlinePart(img)
		if err != nil {
			return nil, fmt.Errorf("商品画像 %s の変換に失敗しました: %w", img.ID, err)
		}
		parts = append(parts, part)
	}

	var sb strings.Builder
	sb.WriteString("Generate a high-quality, photorealistic image.")

	// 2. 柄（テクスチャ）参照
	if cfg.PatternReference != nil {
		sb.WriteString("\nINSTRUCTION: The NEXT image is a PATTERN/TEXTURE. Apply this texture to the clothing/material of the product in the first image. Replace the original pattern but keep the object's shape perfectly.")
		part, err := inlinePart(*cfg.PatternReference)
		if err != nil {
			return nil, fmt.Errorf("柄参照画像の変換に失敗しました: %w", err)
		}
		parts = append(parts, part)
	}

	// 3. スタイル（ムードボード）参照
	if cfg.StyleReference != nil {
		sb.WriteString("\nINSTRUCTION: The NEXT image is a STYLE REFERENCE (Moodboard). Use its lighting, colors, and mood.")
		part, err := inlinePart(*cfg.StyleReference)
		if err != nil {
			return nil, fmt.Errorf("スタイル参照画像の変換に失敗しました: %w", err)
		}
		parts = append(parts, part)
	}

	// 4. シーン設定（環境 → 人物 → スタイル → 照明の固定順）
	sb.WriteString("\n\nSCENE CONFIGURATION:")
	if cfg.Environment != "" {
		sb.WriteString("\n- Environment: " + humanize(cfg.Environment))
	}
	if cfg.Character != domain.CharacterNone && cfg.Character != "" {
		sb.WriteString("\n- Character: " + cfg.Character)
		if cfg.CharacterStyle != "" {
			sb.WriteString(" (" + cfg.CharacterStyle + ")")
		}
	}
	if cfg.Style != "" {
		sb.WriteString("\n- Style: " + humanize(cfg.Style))
	}
	if cfg.Lighting != "" {
		sb.WriteString("\n- Lighting: " + humanize(cfg.Lighting))
	}

	// 5. クリーンスタジオ仕上げのときだけ背景分離の特別指示
	if cfg.Style == domain.StyleStudioClean {
		sb.WriteString("\n- SPECIAL INSTRUCTION: Isolate the product on a clean, solid white or neutral background. Professional e-commerce studio lighting. Sharp focus. No clutter.")
	}

	// 6. 自由記述の追加指示
	if cfg.CustomPrompt != "" {
		sb.WriteString("\n- Additional Instructions: " + cfg.CustomPrompt)
	}

	// 7. 最後は必ず「画像のみを出力せよ」の指示で締める
	sb.WriteString("\n\nACTION: Generate the image now. Output only the image, no commentary.")

	parts = append(parts, &genai.Part{Text: sb.String()})
	return parts, nil
}

// ComposeRefineParts は生成済み画像1枚と手直し指示からパーツ列を組み立てます。
func ComposeRefineParts(rawImage []byte, mimeType, instruction string) []*genai.Part {
	return []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: rawImage}},
		{Text: fmt.Sprintf("INSTRUCTION: %s. Maintain the product look and high quality.", instruction)},
	}
}

// CaptionPrompt は Instagram 向けキャプション3案を要求する指示文を組み立てます。
// 3案はそれぞれ固定のペルソナ（短く勢いよく / ストーリー仕立て / さりげない売り込み）を割り当てます。
func CaptionPrompt(cfg domain.GenerationConfig) string {
	environment := cfg.Environment
	if environment == "" {
		environment = "Estúdio do Ateliê"
	}
	character := "Foco no produto"
	if cfg.Character != domain.CharacterNone && cfg.Character != "" {
		character = cfg.Character
	}
	custom := cfg.CustomPrompt
	if custom == "" {
		custom = "Nenhum"
	}

	var sb strings.Builder
	sb.WriteString("Crie exatamente 3 opções de legendas para o Instagram para uma foto com as seguintes características:\n")
	sb.WriteString("- Ambiente: " + environment + "\n")
	sb.WriteString("- Personagem: " + character + "\n")
	sb.WriteString("- Estilo: " + humanize(cfg.Style) + "\n")
	sb.WriteString("- Detalhes extras: " + custom + "\n")
	if cfg.PatternReference != nil {
		sb.WriteString("- Destaque: A peça está com uma NOVA ESTAMPA exclusiva.\n")
	}
	sb.WriteString(`
Cada legenda deve seguir uma persona distinta:
1. Curta e impactante (direta, com energia).
2. Contação de história (narrativa afetiva sobre a peça).
3. Venda suave (convite delicado, sem pressão).

As legendas devem convidar o cliente a conhecer o ateliê ou encomendar a peça. Inclua hashtags relevantes.`)
	return sb.String()
}

// CaptionSystemInstruction はブランドの声でキャプションを書かせるための枠付けです。
func CaptionSystemInstruction(profile domain.AtelierProfile) string {
	return fmt.Sprintf(`Você é a gerente de mídias sociais do "%s".

CONTEXTO DA MARCA:
%s

REGRAS DE TOM:
- Use emojis adequados ao universo de costura/artesanato.
- Mantenha o tom descrito acima em todas as legendas.

OBJETIVO:
- Crie legendas engajadoras para o Instagram baseadas na descrição da imagem fornecida.`,
		profile.Name, profile.Description)
}

// VideoPrompt は動画生成用の1文プロンプトを組み立てます。
// 縦型（モバイルSNS向け）の構図と品質下限の指定を必ず含めます。
// 柄・スタイル参照画像は動画リクエストには含めません（静止画1枚＋この文のみ）。
func VideoPrompt(cfg domain.GenerationConfig, brandName string) string {
	motion := humanize(cfg.MotionStyle)
	if motion == "" {
		motion = "slow motion, elegant movement"
	}

	pieces := []string{"Cinematic product video for " + brandName, motion}
	if s := humanize(cfg.Style); s != "" {
		pieces = append(pieces, s)
	}
	if e := humanize(cfg.Environment); e != "" {
		pieces = append(pieces, e)
	}
	pieces = append(pieces,
		"vertical framing for mobile social media",
		"authentic UGC look, high resolution, smooth motion")

	return strings.Join(pieces, ", ") + "."
}

// inlinePart は UploadedImage を genai の InlineData パーツに変換します。
func inlinePart(img domain.UploadedImage) (*genai.Part, error) {
	data, err := base64.StdEncoding.DecodeString(img.Base64)
	if err != nil {
		return nil, err
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: img.MimeType, Data: data}}, nil
}

// humanize はタグ値のアンダースコアを空白に置き換えて人間可読にします。
func humanize(tag string) string {
	return strings.ReplaceAll(tag, "_", " ")
}
