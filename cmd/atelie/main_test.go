package main

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"アクセント付きブランド名", "Glorinha Ateliê", "glorinha-ateli"},
		{"空白は1つのハイフンに潰れる", "Meu   Ateliê  Novo", "meu-ateli-novo"},
		{"数字は残る", "Ateliê 2026", "ateli-2026"},
		{"空文字はフォールバックなのだ", "", "atelie"},
		{"記号だけでもフォールバック", "***", "atelie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slugify(tt.in); got != tt.want {
				t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRootCommand(t *testing.T) {
	t.Run("サブコマンドが登録されている", func(t *testing.T) {
		cmd := newRootCommand()
		var names []string
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		joined := strings.Join(names, ",")
		for _, want := range []string{"generate", "video", "refine", "profile", "options"} {
			if !strings.Contains(joined, want) {
				t.Errorf("missing subcommand %s (got %s)", want, joined)
			}
		}
	})
}
