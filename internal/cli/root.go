// Package cli implements sentinelctl, the operator client for sentineld.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	grpcpresentation "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/presentation/grpc"
)

// EnvPrefix is the prefix of environment variables read by sentinelctl.
const EnvPrefix = "SENTINEL"

// Settings are the connection and output options shared by all commands.
type Settings struct {
	Server             string        `yaml:"server"`
	Token              string        `yaml:"token,omitempty"`
	CAFile             string        `yaml:"ca-file,omitempty"`
	Output             string        `yaml:"output"`
	Timeout            time.Duration `yaml:"timeout"`
	TLS                bool          `yaml:"tls"`
	InsecureSkipVerify bool          `yaml:"insecure-skip-verify"`
}

// dialFunc opens a client for the sentinel service. The returned func
// releases the connection.
type dialFunc func(ctx context.Context, s Settings) (grpcpresentation.SentinelServiceClient, func() error, error)

// App carries the state shared by sentinelctl commands.
type App struct {
	v       *viper.Viper
	out     io.Writer
	dial    dialFunc
	cfgFile string
}

func newApp(out io.Writer) *App {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &App{v: v, out: out, dial: dialSentinel}
}

// NewRootCmd builds the sentinelctl command tree writing results to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	return newApp(out).rootCmd()
}

func (a *App) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sentinelctl",
		Short: "Operate a FinSentinel daemon",
		Long: `sentinelctl submits onboarding, transaction and SIM swap checks to a
sentineld instance over gRPC and inspects the decisions it records.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (SENTINEL_*)
3. Config file (~/.finsentinel/config.yaml)
4. Defaults`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.initConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.finsentinel/config.yaml)")
	flags.String("server", "localhost:9090", "sentineld gRPC address")
	flags.String("token", "", "bearer token sent with every call")
	flags.Bool("tls", false, "connect with TLS")
	flags.String("ca-file", "", "CA certificate used to verify the server")
	flags.Bool("insecure-skip-verify", false, "skip server certificate verification")
	flags.StringP("output", "o", "text", "output format (text, json, yaml)")
	flags.Duration("timeout", 30*time.Second, "per-call timeout")
	_ = a.v.BindPFlags(flags)

	root.AddCommand(
		a.onboardCmd(),
		a.monitorCmd(),
		a.simSwapCmd(),
		a.decisionsCmd(),
		a.controlsCmd(),
		a.eventsCmd(),
		a.certsCmd(),
		a.tokenCmd(),
		a.configCmd(),
	)
	return root
}

// initConfig reads the config file when one exists.
func (a *App) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".finsentinel"))
		}
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("config")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// settings resolves the effective connection options.
func (a *App) settings() Settings {
	return Settings{
		Server:             a.v.GetString("server"),
		Token:              a.v.GetString("token"),
		TLS:                a.v.GetBool("tls"),
		CAFile:             a.v.GetString("ca-file"),
		InsecureSkipVerify: a.v.GetBool("insecure-skip-verify"),
		Output:             a.v.GetString("output"),
		Timeout:            a.v.GetDuration("timeout"),
	}
}

// call dials the daemon and runs fn with a deadline-bound context.
func (a *App) call(ctx context.Context, fn func(ctx context.Context, client grpcpresentation.SentinelServiceClient) error) error {
	s := a.settings()
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	client, closeFn, err := a.dial(ctx, s)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	return fn(withToken(ctx, s.Token), client)
}
