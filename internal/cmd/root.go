package cmd

import (
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"praia/internal/config"
	"praia/internal/logger"
	"praia/internal/storage/filesystem"
)

// AppProvider lazily initializes the App on first use, so commands that never
// touch the store (init, version, help) do not require a config file.
type AppProvider struct {
	once sync.Once
	app  *App
	err  error

	// Flags captured before Execute()
	ConfigPath string
	Dir        string
	Debug      bool
	Out        io.Writer
	Err        io.Writer
}

// Get returns the App, initializing it on first call.
func (p *AppProvider) Get() (*App, error) {
	p.once.Do(func() {
		if p.app == nil {
			p.app, p.err = p.init()
		}
	})
	return p.app, p.err
}

// NewTestProvider creates a provider pre-initialized with the given App.
// Used for testing commands against a store in a temp directory.
func NewTestProvider(app *App) *AppProvider {
	return &AppProvider{
		app: app,
		Out: app.Out,
		Err: app.Err,
	}
}

func (p *AppProvider) init() (*App, error) {
	log := p.newLogger()

	cfg, err := resolveConfig(p.ConfigPath, p.Dir)
	if err != nil {
		return nil, err
	}

	store, err := filesystem.Open(cfg.Root(), filesystem.WithLogger(log))
	if err != nil {
		return nil, err
	}

	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	return &App{
		Store:  store,
		Config: cfg,
		Log:    log,
		Out:    out,
		Err:    errOut,
	}, nil
}

func (p *AppProvider) newLogger() logger.Logger {
	opts := []logger.Option{logger.WithOutput(os.Stderr)}
	if p.Debug {
		opts = append(opts, logger.WithDebug())
	}
	return logger.New(opts...)
}

// Close releases the store if it was opened.
func (p *AppProvider) Close() error {
	if p.app != nil && p.app.Store != nil {
		return p.app.Store.Close()
	}
	return nil
}

// resolveConfig turns the --config/--dir flags into a Config. --dir bypasses
// config discovery and names the storage root directly.
func resolveConfig(configPath, dir string) (config.Config, error) {
	if dir != "" {
		return config.Config{DB: dir}, nil
	}

	path, err := config.Find(configPath)
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path)
}

// Execute runs the CLI.
func Execute() error {
	provider := &AppProvider{
		Out: os.Stdout,
		Err: os.Stderr,
	}

	rootCmd := newRootCmd(provider)
	err := rootCmd.Execute()
	if cerr := provider.Close(); err == nil {
		err = cerr
	}
	return err
}

// newRootCmd creates the root command with all subcommands. Running praia
// with no subcommand lists issues, like the bare `list`.
func newRootCmd(provider *AppProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "praia",
		Short: "A minimal issue tracker over flat files",
		Long: `Praia is a minimal issue tracker that stores each issue as a directory of
flat text files. Comment 0 of an issue is the issue body itself; an index.txt
file caches entity counts so the store opens without rescanning the tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			return listIssues(cmd.Context(), app)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&provider.ConfigPath, "config", "c", "", "Path to praia.yaml (default: search from cwd upward)")
	rootCmd.PersistentFlags().StringVarP(&provider.Dir, "dir", "d", "", "Storage directory, bypassing config discovery")
	rootCmd.PersistentFlags().BoolVar(&provider.Debug, "debug", false, "Enable debug logging")
	rootCmd.MarkFlagsMutuallyExclusive("config", "dir")

	rootCmd.AddCommand(newInitCmd(provider))
	rootCmd.AddCommand(newIssueCmd(provider))
	rootCmd.AddCommand(newCommentCmd(provider))
	rootCmd.AddCommand(newListCmd(provider))
	rootCmd.AddCommand(newShowCmd(provider))
	rootCmd.AddCommand(newReindexCmd(provider))
	rootCmd.AddCommand(newVersionCmd(provider))

	return rootCmd
}
