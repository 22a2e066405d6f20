package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/mmcdole/htauth/pkg/authentication"
	"github.com/mmcdole/htauth/pkg/logging"
	"github.com/spf13/cobra"
)

var version = "dev" // Will be set during build

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cobra.CheckErr(newRootCmd().ExecuteContext(ctx))
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile      string
		htpasswdFile string
		username     string
		showVersion  bool
	)

	cmd := &cobra.Command{
		Use:           "htauth",
		Short:         "Verify a password against an htpasswd file",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Long: `htauth checks a username and password against an Apache htpasswd file.

The password is read from the first line of standard input. DES crypt, {SHA},
$apr1$ (MD5), bcrypt and argon2id entries are recognised.

Configuration file (optional) must be in JSON format:
{
    "htpasswd_file": "/etc/htauth/htpasswd",
    "auth_log_path": "/var/log/htauth/auth.log",
    "app_log_path": "",
    "log_level": "info"
}

Every setting may also be given as an HTAUTH_* environment variable,
e.g. HTAUTH_HTPASSWD_FILE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "htauth %s\n", version)
				return nil
			}

			if cfgFile != "" && !filepath.IsAbs(cfgFile) {
				abs, err := filepath.Abs(cfgFile)
				if err != nil {
					return fmt.Errorf("failed to get absolute path: %v", err)
				}
				cfgFile = abs
			}

			var config Config
			if err := LoadConfig(cfgFile, &config); err != nil {
				return fmt.Errorf("failed to load config: %v", err)
			}
			if htpasswdFile != "" {
				config.HtpasswdFile = htpasswdFile
			}
			if config.HtpasswdFile == "" {
				return fmt.Errorf("htpasswd file is required (use --file or htpasswd_file in --config)")
			}
			if username == "" {
				return fmt.Errorf("username is required (use --user)")
			}

			level, err := logging.ParseLevel(config.LogLevel)
			if err != nil {
				return err
			}
			if err := logging.Initialize(config.AuthLogPath, config.AppLogPath, level); err != nil {
				return fmt.Errorf("failed to initialize logging: %v", err)
			}
			defer logging.Close()

			password, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}

			return verify(cmd, config.HtpasswdFile, username, password)
		},
	}

	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "path to config file")
	cmd.Flags().StringVarP(&htpasswdFile, "file", "f", "", "path to htpasswd file (overrides config)")
	cmd.Flags().StringVarP(&username, "user", "u", "", "username to verify")
	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version information")

	return cmd
}

// verify authenticates one credential and reports the outcome without
// revealing whether the username exists.
func verify(cmd *cobra.Command, path, username, password string) error {
	auth, err := authentication.NewAuthenticator(authentication.NewFileSource(nil, path), nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create authenticator: %v", err)
	}

	identity, err := auth.Authenticate(cmd.Context(), authentication.Credential{
		Username: username,
		Password: password,
	})
	if err != nil {
		return authentication.PublicError(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "authenticated: %s\n", identity.Username)
	return nil
}

// readPassword returns the first line of r without its line terminator
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
