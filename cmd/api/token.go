package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	pkgjwt "github.com/jhoicas/estoque-api/pkg/jwt"
)

var (
	tokenSubject string
	tokenRole    string
)

// estoque-api token --subject ops --role operator
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un JWT firmado con JWT_SECRET para las rutas de escritura",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := boot()
		if err != nil {
			return err
		}
		if !cfg.JWT.Enabled() {
			return errors.New("JWT_SECRET no configurado")
		}
		tok, err := pkgjwt.Generate(cfg.JWT.Secret, tokenSubject, tokenRole, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "cli", "subject del token")
	tokenCmd.Flags().StringVar(&tokenRole, "role", pkgjwt.RoleOperator, "rol: admin u operator")
}
