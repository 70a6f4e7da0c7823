package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alevic/atelie-ai/pkg/config"
)

func newRefineCommand(loadConfig func() config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refine IMAGEM INSTRUÇÃO...",
		Short: "Aplica um ajuste pontual em uma imagem já gerada",
		Args:  cobra.MinimumNArgs(2),
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
			instruction := strings.Join(args[1:], " ")

			refined, err := a.studio.RefineImage(cmd.Context(), dataURI, instruction)
			if err != nil {
				return err
			}

			path, err := saveImage(cfg.OutputDir, a.profiles.Current().Name, refined)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imagem ajustada: %s\n", path)
			return nil
		},
	}
	return cmd
}
