package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/alevic/atelie-ai/pkg/domain"
)

func newOptionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Lista os valores aceitos para cena, estilo e movimento",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			printCatalog(out, "Ambientes (--env)", domain.Environments)
			printCatalog(out, "Personagens (--character)", domain.Characters)
			printCatalog(out, "Estilos (--style)", domain.Styles)
			printCatalog(out, "Iluminação (--lighting)", domain.Lighting)
			printCatalog(out, "Movimentos (--motion)", domain.MotionStyles)

			theme := domain.CurrentSeason(time.Now())
			fmt.Fprintf(out, "Tema sazonal de hoje: %s — %s\n", theme.Name, theme.Description)
			return nil
		},
	}
}

func printCatalog(out io.Writer, title string, options []domain.Option) {
	fmt.Fprintf(out, "%s:\n", title)
	for _, opt := range options {
		fmt.Fprintf(out, "  %-16s %s\n", opt.Value, opt.Label)
	}
	fmt.Fprintln(out)
}
