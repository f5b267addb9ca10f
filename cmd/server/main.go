package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"openchat/api"
	"openchat/auth"
	"openchat/internal"
	"openchat/moderation"
	"openchat/repositories"
	"openchat/runtime"
	"openchat/runtime/workers"
	"openchat/search"
	"openchat/services"
	"openchat/ws"
)

// Exit codes to provide meaningful status to the operating system or
// service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so that deferred cleanups (database close)
// always execute before the process exits.
func run() (int, error) {
	// 1. Configuration & logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Databases
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLogger(nil))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Moderation
	var moderator *moderation.Moderator
	if config.CensoredWordsFile != "" {
		words, err := moderation.LoadWordList(config.CensoredWordsFile)
		if err != nil {
			return exitConfig, fmt.Errorf("censored words: %w", err)
		}
		m, err := moderation.NewModerator(words, charReplacement)
		if err != nil {
			return exitConfig, fmt.Errorf("moderator: %w", err)
		}
		moderator = &m
	}

	// 4. Core wiring
	userIndex := search.NewUserIndex(blugeWriter)
	tokens := auth.NewTokenManager(config.JWTSecret, config.AuthTokenDuration)

	userRepo := repositories.NewUserRepository(db)
	chatRepo := repositories.NewChatRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	registry := runtime.NewRegistry()
	fanout := runtime.NewFanout(logger, registry)
	callBroker := runtime.NewCallBroker(logger, registry, config.CallRingTimeout)

	authService := services.NewAuthService(userRepo, userIndex, tokens)
	chatService := services.NewChatService(chatRepo, messageRepo, fanout, moderator)
	friendService := services.NewFriendService(userRepo)

	// 5. Transport
	gateway := ws.NewGateway(logger, registry, chatService, callBroker, tokens,
		config.ConnectionBufferSize, config.MaxMessageSize)
	handlers := api.NewHandlers(logger, authService, friendService, chatService, userRepo, userIndex, tokens)

	mux := http.NewServeMux()
	handlers.Routes(mux)
	mux.Handle("/ws", gateway)

	httpServer := api.NewHTTPServer(logger, config.Host, config.Port, mux)
	ringSweeper := workers.NewRingSweeper(logger, callBroker, config.CallSweepInterval)

	// 6. Lifecycle
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	supervisor := workers.NewSupervisor(logger)
	supervisor.Add(httpServer, ringSweeper)
	supervisor.Run(ctx)

	logger.Info("Shutdown complete")
	return exitOK, nil
}
