package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umdev/infoeste/internal/http/policy"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Imprime la tabla de reglas de acceso en orden de evaluación",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, r := range policy.Default().Rules() {
				fmt.Fprintf(out, "%2d  %s\n", i+1, r)
			}
			fmt.Fprintf(out, "    %-7s %-28s %s\n", "*", "(sin regla)", policy.Authenticated)
			return nil
		},
	}
}
