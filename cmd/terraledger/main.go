// ABOUTME: Entry point for the terraledger server and operator tooling
// ABOUTME: Serves the HTTP API and drives agent initialization from the CLI

package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/terraledger/terraledger/internal/api"
	"github.com/terraledger/terraledger/internal/config"
	"github.com/terraledger/terraledger/internal/credits"
	"github.com/terraledger/terraledger/internal/hcs"
	"github.com/terraledger/terraledger/internal/ledger"
	"github.com/terraledger/terraledger/internal/token"
	"github.com/terraledger/terraledger/internal/verifier"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
 _                     _          _
| |_ ___ _ __ _ __ __ _| | ___  __| | __ _  ___ _ __
| __/ _ \ '__| '__/ _' | |/ _ \/ _' |/ _' |/ _ \ '__|
| ||  __/ |  | | | (_| | |  __/ (_| | (_| |  __/ |
 \__\___|_|  |_|  \__,_|_|\___|\__,_|\__, |\___|_|
                                     |___/
`

// firstSimulatedTopic is where the in-process ledger starts numbering
// topics when no real network is configured.
const firstSimulatedTopic = 1000

// getConfigPath returns the path to the terraledger config file.
// Priority: TERRALEDGER_CONFIG env var > XDG_CONFIG_HOME/terraledger/terraledger.yaml > ~/.config/terraledger/terraledger.yaml
func getConfigPath() string {
	if envPath := os.Getenv("TERRALEDGER_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "terraledger.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "terraledger", "terraledger.yaml")
}

// getDataPath returns the path to the terraledger data directory.
// Priority: XDG_DATA_HOME/terraledger > ~/.local/share/terraledger
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "terraledger")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: terraledger <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve                 Start the API server")
		fmt.Println("  init                  Create a config file with sensible defaults")
		fmt.Println("  token --subject NAME  Mint an API bearer token")
		fmt.Println("  health                Check server health")
		fmt.Println("  status                Show the agent's topic status")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "token":
		err = runToken()
	case "health":
		err = runHealth(ctx)
	case "status":
		err = runStatus(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Print("    ▶ ")
	fmt.Printf("Config:   %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:     %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Network:  %s\n", cfg.Hedera.Network)
	if cfg.Hedera.OperatorID == "" || cfg.Hedera.OperatorKey == "" {
		yellow.Print("    ▶ ")
		fmt.Println("Ledger:   not configured (operations will be rejected)")
	}

	fmt.Println()

	logger.Info("starting terraledger",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"network", cfg.Hedera.Network,
	)

	// A configured operator gets the in-process simulated ledger. Without
	// credentials the HCS service runs with no client and every ledger
	// operation fails fast.
	var ledgerClient ledger.Client
	if cfg.Hedera.OperatorID != "" && cfg.Hedera.OperatorKey != "" {
		ledgerClient = ledger.NewMemoryLedger(firstSimulatedTopic, logger)
	}

	hcsSvc := hcs.NewService(ledgerClient, hcs.Config{
		OperatorID:      cfg.Hedera.OperatorID,
		Network:         cfg.Hedera.Network,
		RegistryTopicID: ledger.TopicID(cfg.Registry.TopicID),
		TopicTTL:        cfg.Hedera.TopicTTL,
	}, logger)

	store, err := credits.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	creditSvc := credits.NewService(store, verifier.NewSimulated(logger), token.NewMemoryService(firstSimulatedTopic, logger), logger)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           api.NewServer(hcsSvc, creditSvc, cfg.Auth.JWTSecret, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = &colorHandler{level: level}
	}

	return slog.New(handler)
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu    sync.Mutex
	level slog.Level
	attrs []slog.Attr
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder
	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
		return true
	})

	buf.WriteString("\n")
	fmt.Print(buf.String())
	return nil
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &colorHandler{level: h.level, attrs: newAttrs}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	return h
}

// runInit writes a starter config file with a random JWT secret.
func runInit() error {
	configPath := getConfigPath()
	dataPath := getDataPath()
	dbPath := filepath.Join(dataPath, "terraledger.db")

	green := color.New(color.FgGreen)

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists: %s", configPath)
	}

	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return fmt.Errorf("generating JWT secret: %w", err)
	}
	jwtSecret := base64.StdEncoding.EncodeToString(secretBytes)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	configContent := fmt.Sprintf(`# terraledger configuration
# Generated by terraledger init

hedera:
  network: "testnet"
  operator_id: "${HEDERA_OPERATOR_ID}"
  operator_key: "${HEDERA_OPERATOR_KEY}"
  topic_ttl_seconds: 60

registry:
  topic_id: ""

server:
  http_addr: ":8000"

database:
  path: "%s"

auth:
  jwt_secret: "%s"

logging:
  level: "info"
  format: "text"
`, dbPath, jwtSecret)

	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	green.Printf("  ✓ Created config: %s\n", configPath)
	fmt.Println()
	fmt.Println("  Set HEDERA_OPERATOR_ID and HEDERA_OPERATOR_KEY, then:")
	fmt.Println("    terraledger serve")
	return nil
}

// runToken mints a bearer token for API access and saves it next to the
// config file so the status command can pick it up.
func runToken() error {
	var subject string
	args := os.Args[2:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--subject" || arg == "-s":
			if i+1 >= len(args) {
				return fmt.Errorf("--subject requires a value")
			}
			subject = args[i+1]
			i++
		case strings.HasPrefix(arg, "--subject="):
			subject = strings.TrimPrefix(arg, "--subject=")
		default:
			return fmt.Errorf("unknown argument: %s", arg)
		}
	}
	if subject == "" {
		return fmt.Errorf("--subject flag is required")
	}

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret not configured")
	}

	ttl := 30 * 24 * time.Hour
	tok, err := api.IssueToken([]byte(cfg.Auth.JWTSecret), subject, ttl)
	if err != nil {
		return fmt.Errorf("minting token: %w", err)
	}

	tokenPath := filepath.Join(filepath.Dir(getConfigPath()), "token")
	if err := os.WriteFile(tokenPath, []byte(tok), 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Saved token: %s\n", tokenPath)
	fmt.Printf("  Expires: %s\n", time.Now().Add(ttl).UTC().Format("Jan 02, 2006"))
	return nil
}

func runHealth(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/health", hostAddr(cfg.Server.HTTPAddr))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

func runStatus(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/api/v1/hcs/agent/status", hostAddr(cfg.Server.HTTPAddr))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	tokenPath := filepath.Join(filepath.Dir(getConfigPath()), "token")
	if tok, err := os.ReadFile(tokenPath); err == nil {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(string(tok)))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var status hcs.Status
	if err := json.Unmarshal(body, &status); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	cyan := color.New(color.FgCyan)
	cyan.Println("  Agent Status")
	cyan.Println("  ------------")
	fmt.Printf("  Operator:  %s\n", status.OperatorID)
	fmt.Printf("  Network:   %s\n", status.Network)
	fmt.Printf("  Ledger:    %s\n", readiness(status.ClientInitialized))
	if status.InboundTopicID != "" {
		fmt.Printf("  Inbound:   %s\n", status.InboundTopicID)
		fmt.Printf("  Outbound:  %s\n", status.OutboundTopicID)
	} else {
		fmt.Println("  Topics:    not initialized")
	}
	if status.RegistryTopicID != "" {
		fmt.Printf("  Registry:  %s\n", status.RegistryTopicID)
	}
	return nil
}

func readiness(ok bool) string {
	if ok {
		return "connected"
	}
	return "not configured"
}

// hostAddr normalizes a listen address like ":8000" into something a
// client can dial.
func hostAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
