package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwtx "github.com/umdev/infoeste/internal/jwt"
)

func newTokenCmd(g *globals) *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Emitir o verificar tokens con la clave configurada (debug de operador)",
	}

	issuer := func() (*jwtx.Issuer, error) {
		cfg, err := g.loadConfig()
		if err != nil {
			return nil, err
		}
		return jwtx.NewIssuer(cfg.JWT.Issuer, []byte(cfg.JWT.Secret), cfg.TokenTTL())
	}

	issueCmd := &cobra.Command{
		Use:   "issue <subject>",
		Short: "Emite un token para subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iss, err := issuer()
			if err != nil {
				return err
			}
			tk, err := iss.Issue(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tk.Raw)
			fmt.Fprintf(out, "sub=%s iat=%s exp=%s\n", tk.Subject, tk.IssuedAt.Format(time.RFC3339), tk.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}

	verifyCmd := &cobra.Command{
		Use:   "verify <token>",
		Short: "Verifica un token e imprime sus claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iss, err := issuer()
			if err != nil {
				return err
			}
			p, err := iss.Verify(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid sub=%s iat=%s exp=%s\n",
				p.Subject, p.IssuedAt.Format(time.RFC3339), p.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}

	tokenCmd.AddCommand(issueCmd, verifyCmd)
	return tokenCmd
}
