package domain

// Option は選択肢の内部値と表示ラベルの組です。
type Option struct {
	Value string
	Label string
}

// StyleStudioClean は白背景の切り抜きスタジオ仕上げを指す特別なスタイル値です。
// プロンプト側でクリーン背景の追加指示に分岐します。
const StyleStudioClean = "studio_clean"

// CharacterNone は人物なし（商品のみ）を表すキャラクター値です。
const CharacterNone = "none"

var Environments = []Option{
	{Value: "living_room", Label: "Sala de Estar Aconchegante"},
	{Value: "kitchen", Label: "Cozinha Moderna"},
	{Value: "outdoor_park", Label: "Parque ao Ar Livre"},
	{Value: "studio_minimal", Label: "Estúdio Minimalista"},
	{Value: "beach", Label: "Praia Ensolarada"},
	{Value: "urban_street", Label: "Rua Urbana"},
	{Value: "luxury_bedroom", Label: "Quarto de Luxo"},
	{Value: "gym", Label: "Academia"},
	{Value: "garden", Label: "Jardim Florido"},
}

var Characters = []Option{
	{Value: CharacterNone, Label: "Apenas o Produto"},
	{Value: "woman", Label: "Mulher"},
	{Value: "man", Label: "Homem"},
	{Value: "child", Label: "Criança"},
	{Value: "dog", Label: "Cachorro"},
	{Value: "cat", Label: "Gato"},
	{Value: "hand_model", Label: "Mãos (Segurando o produto)"},
}

var Styles = []Option{
	{Value: "hyper_realistic", Label: "Hiper Realista (Foto)"},
	{Value: "social_media", Label: "Estilo Instagram/TikTok"},
	{Value: "cinematic", Label: "Cinematográfico"},
	{Value: "vintage", Label: "Vintage / Retrô"},
	{Value: "studio_product", Label: "Fotografia de Produto (Clean)"},
	{Value: "editorial", Label: "Editorial de Moda"},
	{Value: StyleStudioClean, Label: "✨ Estúdio Mágico (Fundo Branco/Limpo)"},
}

var Lighting = []Option{
	{Value: "natural", Label: "Luz Natural"},
	{Value: "golden_hour", Label: "Golden Hour (Pôr do sol)"},
	{Value: "studio_soft", Label: "Estúdio Suave"},
	{Value: "neon", Label: "Neon / Cyberpunk"},
	{Value: "moody", Label: "Dramático / Escuro"},
}

var MotionStyles = []Option{
	{Value: "slow_motion", Label: "Câmera Lenta Elegante"},
	{Value: "orbit", Label: "Giro Suave ao Redor"},
	{Value: "handheld", Label: "Câmera na Mão (UGC)"},
	{Value: "zoom_in", Label: "Aproximação Gradual"},
}
