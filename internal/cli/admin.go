package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/auth"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/tlsutil"
)

var knownRoles = []string{auth.RoleAdmin, auth.RoleOperator, auth.RoleAnalyst, auth.RoleAPIClient}

func (a *App) certsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "certs",
		Short: "Manage development TLS material",
	}

	var (
		hosts  []string
		outDir string
	)
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Write a development CA and server certificate",
		Long: `Generate a self-signed CA and a server certificate for the given hosts.
Point sentineld at server.pem/server-key.pem via TLS_CERT_FILE and TLS_KEY_FILE,
and sentinelctl at ca.pem via --ca-file.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			bundle, err := tlsutil.GenerateSelfSignedCert(hosts, outDir)
			if err != nil {
				return err
			}
			return a.render(bundle, func(w io.Writer) error {
				return writeFields(w,
					field{"ca", bundle.CAFile},
					field{"ca key", bundle.CAKeyFile},
					field{"server cert", bundle.ServerFile},
					field{"server key", bundle.ServerKeyFile},
				)
			})
		},
	}
	generate.Flags().StringSliceVar(&hosts, "hosts", []string{"localhost", "127.0.0.1"}, "DNS names and IPs the server certificate covers")
	generate.Flags().StringVar(&outDir, "out", "certs", "output directory")

	cmd.AddCommand(generate)
	return cmd
}

// issuedToken is the result of token issue.
type issuedToken struct {
	ExpiresAt time.Time `json:"expires_at"`
	Token     string    `json:"token"`
	Subject   string    `json:"subject"`
	Roles     []string  `json:"roles"`
}

func (a *App) tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}

	var (
		subject, secret, keyFile, issuer string
		roles                            []string
		ttl                              time.Duration
	)
	issue := &cobra.Command{
		Use:     "issue",
		Short:   "Sign a bearer token for sentineld",
		Example: "  sentinelctl token issue --subject ops-1 --roles operator --secret \"$JWT_SECRET\"",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, role := range roles {
				if !slices.Contains(knownRoles, role) {
					return fmt.Errorf("unknown role %q (want one of %s)", role, strings.Join(knownRoles, ", "))
				}
			}

			jwtCfg := auth.JWTConfig{Secret: secret, Issuer: issuer, Expiration: ttl}
			if keyFile != "" {
				pem, err := auth.LoadKeyFromFile(keyFile)
				if err != nil {
					return err
				}
				jwtCfg.PrivateKeyPEM = string(pem)
			}
			if jwtCfg.Secret == "" && jwtCfg.PrivateKeyPEM == "" {
				return errors.New("either --secret or --private-key is required")
			}

			svc, err := auth.NewJWTService(jwtCfg)
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(subject, roles)
			if err != nil {
				return err
			}

			out := issuedToken{
				Token:     token,
				Subject:   subject,
				Roles:     roles,
				ExpiresAt: time.Now().UTC().Add(ttl).Truncate(time.Second),
			}
			return a.render(out, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, out.Token)
				return err
			})
		},
	}

	flags := issue.Flags()
	flags.StringVar(&subject, "subject", "", "token subject")
	flags.StringSliceVar(&roles, "roles", []string{auth.RoleOperator}, "granted roles")
	flags.StringVar(&secret, "secret", "", "HMAC signing secret (JWT_SECRET of the daemon)")
	flags.StringVar(&keyFile, "private-key", "", "PEM RSA private key for RS256 signing")
	flags.StringVar(&issuer, "issuer", "", "issuer claim")
	flags.DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = issue.MarkFlagRequired("subject")

	var keyDir string
	keygen := &cobra.Command{
		Use:   "keygen",
		Short: "Write an RSA key pair for RS256 tokens",
		Long: `Write jwt.pem (private, for token issue --private-key) and jwt.pub
(public, for the daemon's JWT_PUBLIC_KEY) to the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			keys, err := writeKeyPair(keyDir)
			if err != nil {
				return err
			}
			return a.render(keys, func(w io.Writer) error {
				return writeFields(w,
					field{"private key", keys.PrivateKeyFile},
					field{"public key", keys.PublicKeyFile},
				)
			})
		},
	}
	keygen.Flags().StringVar(&keyDir, "out", "keys", "output directory")

	cmd.AddCommand(issue, keygen)
	return cmd
}

// keyPair is the result of token keygen.
type keyPair struct {
	PrivateKeyFile string `json:"private_key_file"`
	PublicKeyFile  string `json:"public_key_file"`
}

func writeKeyPair(dir string) (keyPair, error) {
	privPEM, pubPEM, err := auth.GenerateKeyPair()
	if err != nil {
		return keyPair{}, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return keyPair{}, fmt.Errorf("create key directory: %w", err)
	}

	keys := keyPair{
		PrivateKeyFile: filepath.Join(dir, "jwt.pem"),
		PublicKeyFile:  filepath.Join(dir, "jwt.pub"),
	}
	if err := os.WriteFile(keys.PrivateKeyFile, privPEM, 0o600); err != nil {
		return keyPair{}, fmt.Errorf("write private key: %w", err)
	}
	if err := os.WriteFile(keys.PublicKeyFile, pubPEM, 0o644); err != nil {
		return keyPair{}, fmt.Errorf("write public key: %w", err)
	}
	return keys, nil
}
