// Command criticalup is the thin CLI wiring surface over the core
// packages: it parses an invocation, builds a lifecycle.Core from
// configuration, and hands off to it. Subcommand parsing, TTY handling,
// and help text are deliberately minimal per the project's scope.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ferrocene/criticalup/internal/auth"
	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
	"github.com/ferrocene/criticalup/internal/hosttriple"
	"github.com/ferrocene/criticalup/internal/lifecycle"
	"github.com/ferrocene/criticalup/internal/logging"
	"github.com/ferrocene/criticalup/internal/path"
	"github.com/ferrocene/criticalup/internal/transport"
	"github.com/ferrocene/criticalup/internal/trust"
)

const version = "0.0.0-dev"

// noColorOutput is set from --no-color during command parsing and read by
// printError once Execute has returned.
var noColorOutput bool

type globalFlags struct {
	stateDir   string
	proxyDir   string
	server     string
	rootKey    string
	verbose    bool
	logLevel   string
	logFormat  string
	offline    bool
	projectDir string
}

func newRootCommand() *cobra.Command {
	var flags globalFlags

	var printVersion bool

	root := &cobra.Command{
		Use:           "criticalup",
		Short:         "Per-project toolchain manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&flags.stateDir, "state-dir", "", "override the state directory (default: OS-conventional app-data dir)")
	root.PersistentFlags().StringVar(&flags.proxyDir, "proxy-dir", "", "override the proxy binary directory")
	root.PersistentFlags().StringVar(&flags.server, "server", os.Getenv("CRITICALUP_SERVER"), "base URL of the artifact download server")
	root.PersistentFlags().StringVar(&flags.rootKey, "root-key", os.Getenv("CRITICALUP_ROOT_KEY"), "path to the pinned root public key (PEM)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "default", "log output format: default, pretty, tree, json")
	root.PersistentFlags().BoolVar(&noColorOutput, "no-color", false, "disable colored error output")
	root.Flags().BoolVarP(&printVersion, "version", "V", false, "print the version and exit")

	root.AddCommand(
		newAuthCommand(&flags),
		newInstallCommand(&flags),
		newRemoveCommand(&flags),
		newCleanCommand(&flags),
		newVerifyCommand(&flags),
		newArchiveCommand(&flags),
		newRunCommand(&flags),
		newWhichCommand(&flags),
		newLinkCommand(&flags),
		newInitCommand(&flags),
		newDocCommand(&flags),
	)

	return root
}

func setupLogging(flags *globalFlags) {
	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	} else {
		switch flags.logLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	out := logging.NewRedactingWriter(os.Stderr)

	var handler slog.Handler
	switch flags.logFormat {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	case "default", "pretty":
		handler = logging.NewPrettyHandler(out, opts)
	case "tree":
		handler = logging.NewTreeHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// buildPaths resolves the effective state/proxy directories for flags,
// applying the OS-conventional defaults where not overridden.
func buildPaths(flags *globalFlags) (*path.Paths, error) {
	var opts []path.Option
	if flags.stateDir != "" {
		opts = append(opts, path.WithStateRoot(flags.stateDir))
	}
	if flags.proxyDir != "" {
		opts = append(opts, path.WithProxyDir(flags.proxyDir))
	}
	return path.New(opts...)
}

// buildCore wires every lower layer into a lifecycle.Core: paths, the
// retry-aware HTTP client, the content-addressed cache, and a trust
// keychain rooted in the pinned root key.
func buildCore(flags *globalFlags) (*lifecycle.Core, error) {
	paths, err := buildPaths(flags)
	if err != nil {
		return nil, fmt.Errorf("resolving state directory: %w", err)
	}
	if err := path.EnsureDir(paths.StateRoot()); err != nil {
		return nil, err
	}
	if err := path.EnsureDir(paths.ProxyDir()); err != nil {
		return nil, err
	}

	if flags.server == "" {
		return nil, criticalerrors.New(criticalerrors.CategoryConfiguration,
			"no artifact server configured").
			WithHint("pass --server or set CRITICALUP_SERVER")
	}
	if flags.rootKey == "" {
		return nil, criticalerrors.New(criticalerrors.CategoryConfiguration,
			"no pinned root key configured").
			WithHint("pass --root-key or set CRITICALUP_ROOT_KEY to the operator-distributed root public key")
	}

	rootKeyPEM, err := os.ReadFile(flags.rootKey)
	if err != nil {
		return nil, fmt.Errorf("reading root key: %w", err)
	}
	rootKey := &trust.Key{ID: "root", Role: trust.RoleRoot, PublicKey: rootKeyPEM}
	kc, err := trust.NewKeychain(rootKey)
	if err != nil {
		return nil, err
	}

	token, err := auth.Load(paths.StateRoot())
	if err != nil {
		return nil, err
	}

	cache, err := transport.NewCache(paths.CacheRoot())
	if err != nil {
		return nil, err
	}

	triple, err := hosttriple.Detect()
	if err != nil {
		return nil, err
	}

	core := &lifecycle.Core{
		StateRoot:  paths.StateRoot(),
		ProxyDir:   paths.ProxyDir(),
		HostTriple: triple,
		Client:     transport.NewClient(token),
		Cache:      cache,
		Keychain:   kc,
		ManifestURL: func(product, release string) string {
			return fmt.Sprintf("%s/releases/%s/%s.json", flags.server, product, release)
		},
	}

	if err := loadRevocation(context.Background(), core, flags); err != nil {
		if errors.Is(err, criticalerrors.NewStaleRevocationError("")) {
			return nil, err
		}
		slog.Warn("revocation ledger unavailable, proceeding without it", "error", err)
	}

	return core, nil
}

// loadRevocation fetches and verifies the revocation ledger, tolerating
// absence (not every deployment publishes one). Per spec, an expired
// ledger is refreshed before proceeding in online mode; in offline mode a
// stale ledger is still honored against whatever was last cached.
func loadRevocation(ctx context.Context, core *lifecycle.Core, flags *globalFlags) error {
	url := fmt.Sprintf("%s/revocation.json", flags.server)

	ledger, err := fetchRevocationLedger(ctx, core, url, flags.offline)
	if err != nil {
		return err
	}

	if !flags.offline && ledger.Stale(time.Now()) {
		if err := core.Cache.Invalidate(transport.CategoryManifests, url); err != nil {
			return err
		}
		ledger, err = fetchRevocationLedger(ctx, core, url, false)
		if err != nil {
			return err
		}
		if ledger.Stale(time.Now()) {
			return criticalerrors.NewStaleRevocationError(ledger.ExpiresAt().Format(time.RFC3339))
		}
	}

	core.Revocation = ledger
	return nil
}

func fetchRevocationLedger(ctx context.Context, core *lifecycle.Core, url string, offline bool) (*trust.RevocationLedger, error) {
	entry, err := transport.Fetch(ctx, core.Client, core.Cache, transport.CategoryManifests, url, transport.FetchOptions{Offline: offline})
	if err != nil {
		return nil, err
	}
	var env trust.Envelope
	if err := json.Unmarshal(entry.Payload, &env); err != nil {
		return nil, err
	}
	return trust.NewRevocationLedger(core.Keychain, &env, time.Now())
}

func projectManifestPath(flags *globalFlags) string {
	if flags.projectDir != "" {
		return flags.projectDir
	}
	return "criticalup.toml"
}

// resolveWorkDir returns the directory proxy dispatch should start its
// upward manifest search from: the directory containing --project when
// set (whether --project names the manifest file or its directory), or
// the current working directory.
func resolveWorkDir(flags *globalFlags) (string, error) {
	if flags.projectDir == "" {
		return os.Getwd()
	}
	info, err := os.Stat(flags.projectDir)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return flags.projectDir, nil
	}
	return filepath.Dir(flags.projectDir), nil
}
