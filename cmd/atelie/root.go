package main

import (
	"github.com/spf13/cobra"

	"github.com/alevic/atelie-ai/pkg/config"
)

func newRootCommand() *cobra.Command {
	var verbose bool
	var outputDir string

	rootCmd := &cobra.Command{
		Use:           "atelie",
		Short:         "Gera criativos de marketing (imagem, legendas, vídeo e narração) para o ateliê",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Mostra logs de depuração")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Diretório de saída dos arquivos gerados")

	// 環境変数 → フラグの順で上書きし、下層には値として渡す
	loadConfig := func() config.Config {
		cfg := config.FromEnv()
		if outputDir != "" {
			cfg.OutputDir = outputDir
		}
		return cfg
	}

	rootCmd.AddCommand(newGenerateCommand(loadConfig))
	rootCmd.AddCommand(newVideoCommand(loadConfig))
	rootCmd.AddCommand(newRefineCommand(loadConfig))
	rootCmd.AddCommand(newProfileCommand())
	rootCmd.AddCommand(newOptionsCommand())

	return rootCmd
}
