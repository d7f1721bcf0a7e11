package main

import (
	"chat-server/auth"
	"chat-server/contract"
	"chat-server/internal"
	"chat-server/moderation"
	"chat-server/repositories"
	"chat-server/runtime"
	"chat-server/runtime/workers"
	"chat-server/services"
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Chat server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// Deferred cleanups (journal, listener) always run before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	censorChar, err := internal.CharacterRune(config.CensorCharacter)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Credential store, loaded once and never reloaded
	credentials, err := loadCredentials(config.UsersFilepath)
	if err != nil {
		return exitConfig, err
	}
	logger.Info("Credentials loaded", "path", config.UsersFilepath, "users", credentials.Len())

	// 3. Session journal (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("journal opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	journal := repositories.NewJournalRepository(db, logger)

	if logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		url := fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint)
		logger.Info("Debug Badger inspector available", "url", url)
		database.StartDebugServer(db, config.DebugPort, endpoint, repositories.JournalMapper)
	}

	// 4. Optional moderation
	var censor contract.Censor
	if config.CensoredWordsDir != "" {
		moderator, err := buildModerator(config.CensoredWordsDir, censorChar, logger)
		if err != nil {
			return exitConfig, err
		}
		censor = moderator
	}

	// 5. Shared state and services
	directory := runtime.NewDirectory()
	groups := runtime.NewGroupRegistry(logger)
	chatService := services.NewChatService(logger, directory, groups, censor)
	authService := services.NewAuthService(logger, credentials, directory, chatService, journal, config.ReadBufferSize)
	handler := services.NewSessionHandler(logger, authService, chatService, directory, groups, journal,
		config.ReadBufferSize, config.WriteTimeout)

	// 6. Listener. A bind failure is fatal.
	address := config.Address()
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	logger.Info("Chat server listening", "address", address)

	// 7. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup := workers.NewSupervisor(logger, config.RestartInterval)
	sup.Add(
		workers.NewListenerWorker(logger, listener, handler),
		workers.NewStatusWorker(logger, directory, groups, config.StatusInterval),
	)

	// 8. Run until a signal arrives. Every session is closed and cleaned up before Run returns.
	sup.Run(ctx)
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

func loadCredentials(path string) (*auth.Credentials, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open credential file: %w", err)
	}
	defer file.Close()
	return auth.LoadCredentials(file)
}

func buildModerator(dir string, censorChar rune, logger *slog.Logger) (*moderation.Moderator, error) {
	data, err := runtime.NewCensoredLoader(os.DirFS(dir)).LoadAll(".")
	if err != nil {
		return nil, fmt.Errorf("censored words loading failed: %w", err)
	}
	logger.Info("Censored words loaded", "words", len(data.Words), "languages", data.Languages)
	return moderation.NewModerator(data.Words, censorChar, logger)
}

// buildBadgerOpts keeps the journal in memory when no path is configured.
func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.JournalFilepath).
		WithLogger(repositories.NewBadgerLogger(logger))
	if config.JournalFilepath == "" {
		options = options.WithInMemory(true)
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}
	return options
}
