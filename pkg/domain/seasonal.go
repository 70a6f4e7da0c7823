package domain

import "time"

// SeasonalTheme は時期に応じたおすすめシーン設定です。
// Config は GenerationConfig への部分適用（空フィールドは据え置き）を想定しています。
type SeasonalTheme struct {
	ID          string
	Name        string
	Description string
	StartMonth  time.Month
	StartDay    int
	EndMonth    time.Month
	EndDay      int
	Config      GenerationConfig
}

var seasonalThemes = []SeasonalTheme{
	{
		ID: "carnaval", Name: "Carnaval",
		Description: "Crie peças coloridas e vibrantes para a folia!",
		StartMonth:  time.January, StartDay: 15, EndMonth: time.February, EndDay: 28,
		Config: GenerationConfig{
			Environment:  "outdoor_park",
			Lighting:     "natural",
			Style:        "social_media",
			CustomPrompt: "Atmosfera de carnaval, confetes coloridos voando, fitas brilhantes, cores vibrantes, alegria, verão brasileiro.",
		},
	},
	{
		ID: "pascoa", Name: "Páscoa",
		Description: "Tons pastéis e coelhinhos para encantar.",
		StartMonth:  time.March, StartDay: 1, EndMonth: time.April, EndDay: 15,
		Config: GenerationConfig{
			Environment:  "living_room",
			Lighting:     "studio_soft",
			Style:        "studio_product",
			CustomPrompt: "Decoração de Páscoa, ovos de chocolate artesanais ao fundo, coelhinhos de pelúcia, flores de primavera, tons pastéis suaves (rosa, azul bebê, amarelo).",
		},
	},
	{
		ID: "dia_maes", Name: "Dia das Mães",
		Description: "A data mais importante do ano! Amor e carinho.",
		StartMonth:  time.April, StartDay: 16, EndMonth: time.May, EndDay: 15,
		Config: GenerationConfig{
			Environment:  "living_room",
			Lighting:     "natural",
			Style:        "social_media",
			CustomPrompt: "Cenário emocionante de Dia das Mães, buquê de rosas cor de rosa, cartão de presente, café da manhã na cama, iluminação suave e acolhedora, sentimento de amor familiar.",
		},
	},
	{
		ID: "festas_juninas", Name: "Festa Junina",
		Description: "Hora do Xadrez! Bandeirinhas e clima rústico.",
		StartMonth:  time.May, StartDay: 16, EndMonth: time.June, EndDay: 30,
		Config: GenerationConfig{
			Environment:  "outdoor_park",
			Lighting:     "golden_hour",
			Style:        "vintage",
			CustomPrompt: "Festa Junina tradicional, bandeirinhas coloridas penduradas, fogueira ao fundo (desfocada), tecido de chita, chapéu de palha, clima rústico e acolhedor de fazenda.",
		},
	},
	{
		ID: "dia_pais", Name: "Dia dos Pais",
		Description: "Estilo sóbrio e elegante para eles.",
		StartMonth:  time.August, StartDay: 1, EndMonth: time.August, EndDay: 15,
		Config: GenerationConfig{
			Environment:  "studio_minimal",
			Lighting:     "moody",
			Style:        "editorial",
			CustomPrompt: "Dia dos Pais, elementos em couro e madeira, ferramentas vintage decorativas, paleta de cores azul marinho e marrom, sofisticado.",
		},
	},
	{
		ID: "natal", Name: "Natal",
		Description: "A magia do Natal nas suas fotos.",
		StartMonth:  time.November, StartDay: 1, EndMonth: time.December, EndDay: 26,
		Config: GenerationConfig{
			Environment:  "living_room",
			Lighting:     "studio_soft",
			Style:        "cinematic",
			CustomPrompt: "Decoração de Natal clássica e luxuosa, árvore de natal iluminada ao fundo, luzes pisca-pisca (bokeh), presentes embrulhados em vermelho e dourado, neve artificial na janela, clima mágico.",
		},
	},
}

// CurrentSeason は指定日時に該当する季節テーマを返します。
// どの行事にも該当しない時期は汎用のコレクション紹介テーマを返すのだ。
func CurrentSeason(now time.Time) SeasonalTheme {
	for _, theme := range seasonalThemes {
		if themeContains(theme, now) {
			return theme
		}
	}
	return SeasonalTheme{
		ID: "default", Name: "Coleção Atual",
		Description: "Destaque seus produtos com luz natural.",
		Config: GenerationConfig{
			Environment:  "studio_minimal",
			Lighting:     "natural",
			Style:        "social_media",
			CustomPrompt: "Fundo clean e organizado, planta verde decorativa no canto, luz da manhã suave, foco total no produto.",
		},
	}
}

// themeContains は日付が期間内かを判定します。年跨ぎ（12月→1月）にも対応します。
func themeContains(theme SeasonalTheme, now time.Time) bool {
	month, day := now.Month(), now.Day()

	if theme.StartMonth <= theme.EndMonth {
		if month < theme.StartMonth || month > theme.EndMonth {
			return false
		}
		if month == theme.StartMonth && day < theme.StartDay {
			return false
		}
		if month == theme.EndMonth && day > theme.EndDay {
			return false
		}
		return true
	}

	afterStart := month > theme.StartMonth || (month == theme.StartMonth && day >= theme.StartDay)
	beforeEnd := month < theme.EndMonth || (month == theme.EndMonth && day <= theme.EndDay)
	return afterStart || beforeEnd
}

// ApplyTheme はテーマの設定を cfg に部分適用した新しい設定を返します。
// テーマ側が空のフィールドは元の値を保ちます。
func ApplyTheme(cfg GenerationConfig, theme SeasonalTheme) GenerationConfig {
	out := cfg
	if theme.Config.Environment != "" {
		out.Environment = theme.Config.Environment
	}
	if theme.Config.Lighting != "" {
		out.Lighting = theme.Config.Lighting
	}
	if theme.Config.Style != "" {
		out.Style = theme.Config.Style
	}
	if theme.Config.CustomPrompt != "" {
		out.CustomPrompt = theme.Config.CustomPrompt
	}
	return out
}
