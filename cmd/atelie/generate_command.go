package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alevic/atelie-ai/pkg/config"
	"github.com/alevic/atelie-ai/pkg/domain"
	"github.com/alevic/atelie-ai/pkg/imgutil"
)

func newGenerateCommand(loadConfig func() config.Config) *cobra.Command {
	var (
		imageFiles []string
		imageURLs  []string
		pattern    string
		styleRef   string
		gcfg       domain.GenerationConfig
		seasonal   bool
		autoVideo  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Gera a imagem do criativo e as legendas (e opcionalmente o vídeo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(imageFiles)+len(imageURLs) == 0 {
				return fmt.Errorf("informe pelo menos uma imagem do produto com --image ou --image-url")
			}

			cfg := loadConfig()
			a, err := buildApp(cfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			for _, path := range imageFiles {
				if _, err := a.assets.AddFromFile(path); err != nil {
					return err
				}
			}
			for _, rawURL := range imageURLs {
				if _, err := a.assets.AddFromURL(ctx, rawURL); err != nil {
					return err
				}
			}

			if pattern != "" {
				img, err := a.assets.LoadFromFile(pattern)
				if err != nil {
					return fmt.Errorf("falha ao carregar a estampa de referência: %w", err)
				}
				gcfg.PatternReference = &img
			}
			if styleRef != "" {
				img, err := a.assets.LoadFromFile(styleRef)
				if err != nil {
					return fmt.Errorf("falha ao carregar o estilo de referência: %w", err)
				}
				gcfg.StyleReference = &img
			}

			if seasonal {
				theme := domain.CurrentSeason(time.Now())
				gcfg = domain.ApplyTheme(gcfg, theme)
				fmt.Fprintf(cmd.OutOrStdout(), "Tema sazonal aplicado: %s — %s\n", theme.Name, theme.Description)
			}

			outcome, err := a.studio.GenerateCreative(ctx, a.assets.List(), gcfg, autoVideo)
			if err != nil {
				return err
			}

			imagePath, err := saveImage(cfg.OutputDir, a.profiles.Current().Name, outcome.Set.ImageDataURI)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imagem: %s\n", imagePath)

			fmt.Fprintln(cmd.OutOrStdout(), "Legendas:")
			for i, caption := range outcome.Set.Captions {
				fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, caption)
			}

			if outcome.Video != nil {
				printBundle(cmd, outcome.Video)
			}
			if outcome.VideoErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Vídeo não gerado: %v\n", outcome.VideoErr)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&imageFiles, "image", "i", nil, "Arquivo de imagem do produto (repetível)")
	cmd.Flags().StringArrayVar(&imageURLs, "image-url", nil, "URL (http/https/gs) de imagem do produto (repetível)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Arquivo da estampa de tecido a aplicar no produto")
	cmd.Flags().StringVar(&styleRef, "style-ref", "", "Arquivo de imagem com a estética desejada")
	cmd.Flags().StringVar(&gcfg.Environment, "env", "studio_minimal", "Ambiente da cena")
	cmd.Flags().StringVar(&gcfg.Character, "character", domain.CharacterNone, "Personagem da cena")
	cmd.Flags().StringVar(&gcfg.CharacterStyle, "character-style", "", "Descrição livre do personagem")
	cmd.Flags().StringVar(&gcfg.Lighting, "lighting", "natural", "Iluminação da cena")
	cmd.Flags().StringVar(&gcfg.Style, "style", "social_media", "Estilo visual")
	cmd.Flags().StringVar(&gcfg.MotionStyle, "motion", "slow_motion", "Movimento de câmera do vídeo")
	cmd.Flags().StringVar(&gcfg.NarrationScript, "narration", "", "Roteiro da narração (vazio = sem áudio)")
	cmd.Flags().StringVar(&gcfg.CustomPrompt, "prompt", "", "Instruções adicionais livres")
	cmd.Flags().BoolVar(&seasonal, "seasonal", false, "Aplica o tema sazonal da data atual")
	cmd.Flags().BoolVar(&autoVideo, "video", false, "Gera também o vídeo a partir da imagem nova")

	return cmd
}

// saveImage は data URI の画像をブランド名入りのファイル名で書き出します。
func saveImage(outputDir, brandName, dataURI string) (string, error) {
	data, err := imgutil.DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	dir := outputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s.png", slugify(brandName), time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("falha ao salvar a imagem: %w", err)
	}
	return path, nil
}

// slugify はブランド名をファイル名に使える形へ落とします。
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "atelie"
	}
	return out
}

func printBundle(cmd *cobra.Command, bundle *domain.VideoBundle) {
	fmt.Fprintf(cmd.OutOrStdout(), "Vídeo: %s\n", bundle.VideoPath)
	if bundle.AudioPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Narração: %s\n", bundle.AudioPath)
	}
	if bundle.NarrationErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Narração não gerada: %v\n", bundle.NarrationErr)
	}
}
