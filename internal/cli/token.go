package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-pos/pkg/jwt"
)

// TokenOptions flags del comando token.
type TokenOptions struct {
	*RootOptions
	UserID    string
	CompanyID string
	Role      string
	ExpMin    int
}

// NewTokenCommand emite un JWT de desarrollo firmado con JWT_SECRET.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generar un token de acceso para desarrollo",
		Long: `Genera un Bearer token con los claims que espera la API.

Ejemplos:
  stockctl token --company empresa-1 --role vendedor
  stockctl token --company empresa-1 --role bodeguero --exp 15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.UserID, "user", "", "id de usuario (por defecto uno aleatorio)")
	cmd.Flags().StringVar(&opts.CompanyID, "company", "", "id de empresa (requerido)")
	_ = cmd.MarkFlagRequired("company")
	cmd.Flags().StringVar(&opts.Role, "role", jwt.RoleAdmin, "rol: admin, bodeguero o vendedor")
	cmd.Flags().IntVar(&opts.ExpMin, "exp", 0, "minutos de validez (por defecto JWT_EXPIRATION_MINUTES)")

	return cmd
}

func runToken(opts *TokenOptions, cmd *cobra.Command) error {
	cfg := opts.cfg
	if cfg.JWT.Secret == "" {
		return errors.New("JWT_SECRET no configurado")
	}
	userID := opts.UserID
	if userID == "" {
		userID = uuid.New().String()
	}
	exp := opts.ExpMin
	if exp <= 0 {
		exp = cfg.JWT.Expiration
	}
	token, err := jwt.Generate(cfg.JWT.Secret, userID, opts.CompanyID, opts.Role, cfg.JWT.Issuer, exp)
	if err != nil {
		return err
	}

	if opts.Format == FormatJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"token":      token,
			"user_id":    userID,
			"company_id": opts.CompanyID,
			"role":       opts.Role,
			"expires_in": exp * 60,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
