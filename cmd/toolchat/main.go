package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/atinylittleshell/toolchat/internal/core"
	"github.com/atinylittleshell/toolchat/internal/history"
	"github.com/atinylittleshell/toolchat/internal/provider"
	"github.com/atinylittleshell/toolchat/internal/repl"
	"github.com/atinylittleshell/toolchat/internal/repl/agent"
	"github.com/atinylittleshell/toolchat/internal/repl/config"
	"github.com/atinylittleshell/toolchat/internal/repl/render"
	"github.com/atinylittleshell/toolchat/internal/search"
	"github.com/atinylittleshell/toolchat/internal/styles"
	"github.com/atinylittleshell/toolchat/internal/ticker"
	"github.com/atinylittleshell/toolchat/internal/tools"
)

var BUILD_VERSION = "dev"

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")
var configFlag = flag.String("config", "", "path to a YAML config file (default ~/.toolchat/config.yaml)")

const helpText = `toolchat - A terminal chat agent that can search the web, do math and look up tickers

USAGE:
  toolchat [options]

ENVIRONMENT:
  OPENROUTER_API_KEY      key for the OpenRouter chat completions API
  TAVILY_API_KEY          key for the Tavily search API

  Both may also be set in a .env file in the current directory.

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	fmt.Println(styles.BANNER("toolchat " + BUILD_VERSION))

	if err := config.LoadDotEnv(core.DotEnvFile()); err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
	}

	if err := checkEnvironment(os.Stdout, os.LookupEnv); err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(fmt.Sprintf("Error: %v", err)))
		fmt.Fprintln(os.Stderr, styles.ERROR("Please check your .env file in the current directory"))
		os.Exit(1)
	}

	cfg := loadConfig(os.Stderr, configPath())

	logger, err := initializeLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // Flush any buffered log entries

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.ERROR(fmt.Sprintf("Fatal error: %v", err)))
		os.Exit(1)
	}
}

func configPath() string {
	if *configFlag != "" {
		return *configFlag
	}
	return core.ConfigFile()
}

// checkEnvironment reports every required credential and fails when any is
// missing.
func checkEnvironment(w io.Writer, lookup func(string) (string, bool)) error {
	fmt.Fprintln(w, styles.LOG("Checking environment variables..."))

	statuses, err := config.CheckCredentials(lookup)
	for _, status := range statuses {
		if status.Found {
			fmt.Fprintln(w, styles.SUCCESS(fmt.Sprintf("%s %s: %s", render.SymbolSuccess, status.Name, status.Masked)))
		} else {
			fmt.Fprintln(w, styles.ERROR(fmt.Sprintf("%s %s: NOT FOUND", render.SymbolError, status.Name)))
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, styles.LOG("All environment variables found!"))
	fmt.Fprintln(w)
	return nil
}

// loadConfig reads the config file. Problems are reported to w and the
// affected settings keep their defaults.
func loadConfig(w io.Writer, path string) *config.Config {
	result, err := config.NewLoader(nil).LoadFromFile(path)
	if err != nil {
		fmt.Fprintln(w, styles.ERROR(err.Error()))
		return config.DefaultConfig()
	}
	for _, loadErr := range result.Errors {
		fmt.Fprintln(w, styles.ERROR(fmt.Sprintf("%s: %v", path, loadErr)))
	}
	return result.Config
}

func parseLogLevel(level string) zap.AtomicLevel {
	if BUILD_VERSION == "dev" {
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return atomicLevel
}

func initializeLogger(cfg *config.Config) (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = parseLogLevel(cfg.LogLevel)
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	// Logs only go to file to avoid interfering with the chat output
	// Use `tail -f ~/.toolchat/toolchat.log` to monitor logs in real-time

	return loggerConfig.Build()
}

// buildRegistry wires the three tools against their backends.
func buildRegistry(cfg *config.Config, logger *zap.Logger) (*tools.Registry, error) {
	searchClient, err := search.NewClient(search.Options{
		APIKey:  os.Getenv(config.TavilyKeyEnv),
		BaseURL: cfg.SearchBaseURL,
		Timeout: cfg.SearchTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize search client: %w", err)
	}

	return tools.NewDefaultRegistry(search.NewGateway(searchClient, logger), ticker.Default())
}

func buildProvider(cfg *config.Config, logger *zap.Logger) (*provider.OpenAIProvider, error) {
	return provider.NewOpenAIProvider(provider.OpenAIOptions{
		APIKey:  os.Getenv(config.OpenRouterKeyEnv),
		BaseURL: cfg.BaseURL,
		Headers: map[string]string{
			"HTTP-Referer": cfg.Referer,
			"X-Title":      cfg.Title,
		},
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}

	modelProvider, err := buildProvider(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize model provider: %w", err)
	}

	journal, err := history.NewJournal()
	if err != nil {
		return fmt.Errorf("failed to initialize history journal: %w", err)
	}
	defer journal.Close()

	renderer := render.New(os.Stdout, terminalWidth)
	renderer.SetMarkdown(cfg.Markdown)
	renderer.SetAnimated(term.IsTerminal(int(os.Stdout.Fd())))

	session, err := agent.NewSession(agent.Options{
		Provider:      modelProvider,
		Registry:      registry,
		Model:         cfg.Model,
		Temperature:   cfg.Temperature,
		MaxIterations: cfg.MaxIterations,
		HistoryLimit:  cfg.HistoryLimit,
		Logger:        logger,
		Journal:       journal,
		Renderer:      renderer,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize agent: %w", err)
	}

	logger.Info("-------- new toolchat session --------",
		zap.Any("args", os.Args),
		zap.String("session", session.ID()),
		zap.String("model", cfg.Model),
	)

	r, err := repl.New(repl.Options{
		Conversation: session,
		Journal:      journal,
		Renderer:     renderer,
		Welcome: &render.WelcomeInfo{
			Model:   cfg.Model,
			Tools:   registry.Names(),
			Version: BUILD_VERSION,
		},
		Prompt: cfg.Prompt,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}

	return r.Run(ctx)
}
