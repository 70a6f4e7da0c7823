package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alevic/atelie-ai/pkg/config"
	"github.com/alevic/atelie-ai/pkg/domain"
	"github.com/alevic/atelie-ai/pkg/imgutil"
)

func newVideoCommand(loadConfig func() config.Config) *cobra.Command {
	var gcfg domain.GenerationConfig

	cmd := &cobra.Command{
		Use:   "video IMAGEM",
		Short: "Anima uma imagem já gerada em um vídeo vertical curto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			a, err := buildApp(cfg)
			if err != nil {
				return err
			}

			dataURI, err := readImageAsDataURI(args[0])
			if err != nil {
				return err
			}

			bundle, err := a.studio.GenerateVideoBundle(cmd.Context(), dataURI, gcfg)
			if err != nil {
				return err
			}
			printBundle(cmd, bundle)
			return nil
		},
	}

	cmd.Flags().StringVar(&gcfg.Environment, "env", "", "Ambiente da cena (para o movimento)")
	cmd.Flags().StringVar(&gcfg.Style, "style", "", "Estilo visual")
	cmd.Flags().StringVar(&gcfg.MotionStyle, "motion", "slow_motion", "Movimento de câmera")
	cmd.Flags().StringVar(&gcfg.NarrationScript, "narration", "", "Roteiro da narração (vazio = sem áudio)")

	return cmd
}

// readImageAsDataURI はローカル画像を data URI に変換します。
func readImageAsDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("falha ao ler a imagem: %w", err)
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("o arquivo %s não é uma imagem (detectado: %s)", path, mimeType)
	}
	return imgutil.ToDataURI(mimeType, data), nil
}
