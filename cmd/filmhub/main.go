package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/GoncaloNogueira1/filmhub/internal/api"
	"github.com/GoncaloNogueira1/filmhub/internal/config"
	"github.com/GoncaloNogueira1/filmhub/internal/domain"
	"github.com/GoncaloNogueira1/filmhub/internal/log"
	"github.com/GoncaloNogueira1/filmhub/internal/service"
	"github.com/GoncaloNogueira1/filmhub/internal/store"
	"github.com/GoncaloNogueira1/filmhub/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("filmhub %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting filmhub", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	// Durable session state
	vault, err := store.OpenVault(config.DefaultDataPath())
	if err != nil {
		return fmt.Errorf("failed to open session storage: %w", err)
	}
	defer vault.Close()

	// Session first: the API client reads its tokens from it
	session := store.NewSessionStore(vault, nil, logger)
	client := api.NewClient(cfg.Server.URL, cfg.Catalog.PageSize, session, logger)
	session.SetAuthRepository(client)

	// Stores and services. The catalog's continuation arithmetic must use
	// the same page size the client requests, so it comes from the client
	// (which clamps out-of-range configured values), not from the config.
	catalog := store.NewCatalogStore(client, client.PageSize(), logger)
	watchlist := store.NewWatchlistStore(client, session, logger)
	ratingsSvc := service.NewRatingsService(client, logger)
	recsSvc := service.NewRecommendationsService(client, logger)

	// Create TUI model
	model := tui.NewModel(session, catalog, watchlist, client, client, ratingsSvc, recsSvc, logger)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Filmhub!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	vault, err := store.OpenVault(config.DefaultDataPath())
	if err != nil {
		return fmt.Errorf("failed to open session storage: %w", err)
	}
	defer vault.Close()

	// Loop until a server accepts our credentials
	for {
		fmt.Print("Enter your filmhub server URL (e.g., https://filmhub.example.com): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL := strings.TrimSpace(input)
		if serverURL == "" {
			fmt.Println("Server URL cannot be empty. Please try again.")
			continue
		}

		session := store.NewSessionStore(vault, nil, logger)
		client := api.NewClient(serverURL, 0, session, logger)
		session.SetAuthRepository(client)

		result, err := signIn(reader, client)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrServerOffline):
				fmt.Println()
				fmt.Println("✗ Could not reach the server. Please check the URL and try again.")
				fmt.Println()
				continue
			case errors.Is(err, domain.ErrAuthFailed):
				fmt.Println()
				fmt.Println("✗ Invalid email or password. Please try again.")
				fmt.Println()
				continue
			default:
				return fmt.Errorf("sign-in failed: %w", err)
			}
		}

		// Persist the session and the server URL
		session.Login(result.Profile, result.Tokens)
		cfg.Server.URL = serverURL
		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Println()
		fmt.Printf("✓ Signed in as %s\n", result.Profile.FullName())
		fmt.Println()
		fmt.Println("Run filmhub again to start the application.")
		return nil
	}
}

// signIn prompts for credentials and exchanges them with the backend.
// The password is read with echo off.
func signIn(reader *bufio.Reader, client *api.Client) (*domain.LoginResult, error) {
	fmt.Println()
	fmt.Println("Filmhub Sign-in")
	fmt.Println("━━━━━━━━━━━━━━━")

	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read email: %w", err)
	}
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println() // Add newline after hidden input

	fmt.Println()
	fmt.Println("Signing in...")

	return client.Login(context.Background(), email, string(passwordBytes))
}
