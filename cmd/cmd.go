package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/assetdesk/assetdesk/api"
	"github.com/assetdesk/assetdesk/config"
	"github.com/assetdesk/assetdesk/locator"
	"github.com/assetdesk/assetdesk/session"
	"github.com/assetdesk/assetdesk/stub"
	"github.com/assetdesk/assetdesk/utils"
)

var (
	cfgFile string
	verbose bool
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// runtime is what every networked command needs: resolved config, the
// session store, and a client bound to a reachable backend.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *session.FileStore
	client *api.Client
}

func (rt *runtime) Close() {
	if rt.store != nil {
		rt.store.Close()
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// setup runs the startup sequence shared by every networked command: load
// config, open the session store, probe for a reachable backend, and bind a
// client to it.
func setup(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg)

	sessionPath, err := cfg.SessionPath()
	if err != nil {
		return nil, err
	}
	store, err := session.Open(sessionPath)
	if err != nil {
		return nil, err
	}

	baseURL, err := locator.Select(cmd.Context(), logger, cfg.Candidates(), cfg.ProbeTimeoutDuration())
	if err != nil {
		store.Close()
		return nil, err
	}

	return &runtime{
		cfg:    cfg,
		logger: logger,
		store:  store,
		client: api.NewClient(baseURL, store, api.WithLogger(logger)),
	}, nil
}

// StatusHandler reports what the startup sequence would find, without
// failing the command when no backend answers.
func StatusHandler(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	var lines []string

	baseURL, err := locator.Select(cmd.Context(), logger, cfg.Candidates(), cfg.ProbeTimeoutDuration())
	if err != nil {
		lines = append(lines, "backend:  none reachable")
	} else {
		lines = append(lines, "backend:  "+baseURL)
	}

	sessionPath, err := cfg.SessionPath()
	if err != nil {
		return err
	}
	lines = append(lines, "session:  "+sessionPath)

	store, err := session.Open(sessionPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.AccessToken(); err == nil {
		lines = append(lines, "login:    active")
	} else {
		lines = append(lines, "login:    none")
	}

	fmt.Print(utils.RenderBox("assetdesk", lines))
	return nil
}

func StubHandler(cmd *cobra.Command, args []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}

	fmt.Printf("Serving stub AssetMart backend on %s\n", addr)
	return stub.ListenAndServe(addr)
}

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "assetdesk",
		Short:        "Command-line client for the AssetMart backend",
		SilenceUsage: true,
		RunE:         StatusHandler,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default ~/.assetdesk/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of assetdesk",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("assetdesk version %s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show backend reachability and session state",
		Args:  cobra.ExactArgs(0),
		RunE:  StatusHandler,
	}

	stubCmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local in-memory AssetMart backend",
		Args:  cobra.ExactArgs(0),
		RunE:  StubHandler,
	}
	stubCmd.Flags().String("addr", ":8000", "Address for the stub backend")

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session tokens",
		Args:  cobra.ExactArgs(0),
		RunE:  LoginHandler,
	}
	loginCmd.Flags().StringP("username", "u", "", "Username to log in with")
	loginCmd.Flags().StringP("email", "e", "", "Email to log in with")
	loginCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new AssetMart account",
		Args:  cobra.ExactArgs(0),
		RunE:  RegisterHandler,
	}
	registerCmd.Flags().String("fullname", "", "Full name for the account")
	registerCmd.Flags().StringP("email", "e", "", "Email for the account")
	registerCmd.Flags().StringP("username", "u", "", "Username for the account")
	registerCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session and drop the stored tokens",
		Args:  cobra.ExactArgs(0),
		RunE:  LogoutHandler,
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Renew the access token using the stored refresh token",
		Args:  cobra.ExactArgs(0),
		RunE:  RefreshHandler,
	}

	passwdCmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password",
		Args:  cobra.ExactArgs(0),
		RunE:  PasswdHandler,
	}
	passwdCmd.Flags().String("old", "", "Current password (prompted when omitted)")
	passwdCmd.Flags().String("new", "", "New password (prompted when omitted)")

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the current session",
		Args:  cobra.ExactArgs(0),
		RunE:  WhoamiHandler,
	}

	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage account details",
	}

	accountUpdateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update full name and email",
		Args:  cobra.ExactArgs(0),
		RunE:  AccountUpdateHandler,
	}
	accountUpdateCmd.Flags().String("fullname", "", "New full name")
	accountUpdateCmd.Flags().StringP("email", "e", "", "New email")

	avatarCmd := &cobra.Command{
		Use:   "avatar <file>",
		Short: "Upload a new avatar image",
		Args:  cobra.ExactArgs(1),
		RunE:  AvatarHandler,
	}

	coverCmd := &cobra.Command{
		Use:   "cover <file>",
		Short: "Upload a new profile cover image",
		Args:  cobra.ExactArgs(1),
		RunE:  CoverHandler,
	}

	accountCmd.AddCommand(accountUpdateCmd, avatarCmd, coverCmd)

	assetsCmd := &cobra.Command{
		Use:       "assets <domain>",
		Short:     "List assets from one domain: " + assetDomainList(),
		Args:      cobra.ExactArgs(1),
		ValidArgs: assetDomainNames,
		RunE:      AssetsHandler,
	}

	rootCmd.AddCommand(versionCmd, statusCmd, stubCmd,
		loginCmd, registerCmd, logoutCmd, refreshCmd, passwdCmd,
		whoamiCmd, accountCmd, assetsCmd)

	return rootCmd
}

// Execute runs the CLI. Called by main.
func Execute() {
	if err := NewCLI().Execute(); err != nil {
		os.Exit(1)
	}
}
