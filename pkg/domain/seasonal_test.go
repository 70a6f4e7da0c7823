package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2026, month, day, 12, 0, 0, 0, time.UTC)
}

func TestCurrentSeason(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		wantID string
	}{
		{"1月下旬はカーニバルなのだ", date(time.January, 20), "carnaval"},
		{"2月末もまだカーニバル", date(time.February, 28), "carnaval"},
		{"3月はパスコア", date(time.March, 10), "pascoa"},
		{"5月上旬は母の日", date(time.May, 10), "dia_maes"},
		{"6月はフェスタ・ジュニーナ", date(time.June, 24), "festas_juninas"},
		{"8月上旬は父の日", date(time.August, 5), "dia_pais"},
		{"12月はナタール", date(time.December, 20), "natal"},
		{"行事の谷間は汎用テーマ", date(time.September, 15), "default"},
		{"1月上旬も汎用テーマ", date(time.January, 5), "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantID, CurrentSeason(tt.now).ID)
		})
	}
}

func TestApplyTheme(t *testing.T) {
	t.Run("テーマの空フィールドは元の値を保つ（部分適用）", func(t *testing.T) {
		base := GenerationConfig{
			Environment:     "garden",
			Character:       "woman",
			NarrationScript: "roteiro original",
		}
		theme := SeasonalTheme{Config: GenerationConfig{
			Environment:  "living_room",
			CustomPrompt: "clima natalino",
		}}

		got := ApplyTheme(base, theme)

		assert.Equal(t, "living_room", got.Environment, "theme overrides environment")
		assert.Equal(t, "woman", got.Character, "untouched fields survive")
		assert.Equal(t, "roteiro original", got.NarrationScript)
		assert.Equal(t, "clima natalino", got.CustomPrompt)
	})

	t.Run("全テーマはスタイルと照明と追加指示を持っている", func(t *testing.T) {
		for _, theme := range seasonalThemes {
			assert.NotEmpty(t, theme.Config.Style, "theme %s missing style", theme.ID)
			assert.NotEmpty(t, theme.Config.Lighting, "theme %s missing lighting", theme.ID)
			assert.NotEmpty(t, theme.Config.CustomPrompt, "theme %s missing prompt", theme.ID)
		}
	})
}
