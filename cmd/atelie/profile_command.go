package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alevic/atelie-ai/pkg/profile"
)

func newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Mostra ou atualiza o perfil do ateliê",
	}
	cmd.AddCommand(newProfileShowCommand())
	cmd.AddCommand(newProfileSaveCommand())
	return cmd
}

func newProfileShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Mostra o perfil atual",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openProfileStore()
			if err != nil {
				return err
			}
			p := store.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "Nome:       %s\n", p.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Descrição:  %s\n", p.Description)
			if p.VideoAPIKey != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Chave de vídeo: configurada")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Chave de vídeo: usando a chave padrão")
			}
			return nil
		},
	}
}

func newProfileSaveCommand() *cobra.Command {
	var name, description, videoKey string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Atualiza campos do perfil e persiste",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openProfileStore()
			if err != nil {
				return err
			}

			p := store.Current()
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("description") {
				p.Description = description
			}
			if cmd.Flags().Changed("video-api-key") {
				p.VideoAPIKey = videoKey
			}

			if err := store.Save(p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Perfil salvo.")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Nome do ateliê")
	cmd.Flags().StringVar(&description, "description", "", "Descrição da marca (guia o tom das legendas)")
	cmd.Flags().StringVar(&videoKey, "video-api-key", "", "Chave de API dedicada para geração de vídeo")

	return cmd
}

func openProfileStore() (*profile.Store, error) {
	dir, err := profile.DefaultDir()
	if err != nil {
		return nil, err
	}
	return profile.NewStore(dir)
}
