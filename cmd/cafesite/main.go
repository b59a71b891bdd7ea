// ABOUTME: Entry point for the cafe site server
// ABOUTME: Serves the public site and admin panel, writes starter configs, and probes health

package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/cafesite/internal/config"
	"github.com/2389/cafesite/internal/server"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                 __           _ _
  ___ __ _ / _| ___  ___(_) |_ ___
 / __/ _' | |_ / _ \/ __| | __/ _ \
| (_| (_| |  _|  __/\__ \ | ||  __/
 \___\__,_|_|  \___||___/_|\__\___|
`

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: cafesite <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve    Start the site and admin panel")
		fmt.Println("  init     Write a starter config file")
		fmt.Println("  health   Check server liveness")
		fmt.Println("  ready    Check that the server can read its store")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit(os.Stdin, os.Stdout)
	case "health":
		err = runProbe(ctx, "/health")
	case "ready":
		err = runProbe(ctx, "/health/ready")
	case "version":
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, string, error) {
	configPath, err := config.DefaultPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, configPath, fmt.Errorf("loading config: %w", err)
	}
	return cfg, configPath, nil
}

func runServe(ctx context.Context) error {
	// Print banner
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	// Version info
	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, configPath, err := loadConfig()
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Logging, os.Stdout)

	// Startup info
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("Database:  %s (%s)\n", cfg.Database.Path, cfg.Database.Driver)
	if cfg.Tailscale.Enabled {
		green.Print("    ▶ ")
		fmt.Printf("Tailscale: ")
		cyan.Print(cfg.Tailscale.Hostname)
		if cfg.Tailscale.HTTPS {
			yellow.Print(" [https]")
		}
		if cfg.Tailscale.Ephemeral {
			gray.Print(" (ephemeral)")
		}
		fmt.Println()
	} else {
		green.Print("    ▶ ")
		fmt.Printf("HTTP:      %s\n", cfg.Server.HTTPAddr)
	}
	if cfg.Admin.SessionSecret == "" {
		yellow.Println("    ! admin.session_secret is empty; admin logins will not survive a restart")
	}
	fmt.Println()

	logger.Info("starting cafesite",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"site", cfg.Site.Name,
	)

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	green.Print("    ▶ ")
	fmt.Printf("Site:      %s  (admin: %s/admin/)\n\n", srv.BaseURL(), srv.BaseURL())

	return srv.Run(ctx)
}

// runProbe requests a health endpoint of the configured server and prints the body.
func runProbe(ctx context.Context, path string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	base := cfg.Site.BaseURL
	if base == "" {
		base = "http://" + cfg.Server.HTTPAddr
	}
	url := strings.TrimSuffix(base, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	color.Green(strings.TrimSpace(string(body)))
	return nil
}

// runInit writes a starter config with a random session secret.
func runInit(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "cafesite configuration setup")
	fmt.Fprintln(out, "============================")
	fmt.Fprintln(out)

	defaultConfigPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	outputFile := prompt(reader, out, "Config file path", defaultConfigPath)

	if _, err := os.Stat(outputFile); err == nil {
		overwrite := strings.ToLower(prompt(reader, out, "File exists. Overwrite?", "no"))
		if overwrite != "yes" && overwrite != "y" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	dbPath := prompt(reader, out, "SQLite database path", config.DefaultDatabasePath())

	secret, err := randomSecret()
	if err != nil {
		return fmt.Errorf("generating session secret: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(outputFile, []byte(config.Starter(dbPath, secret)), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	fmt.Fprintf(out, "\nConfig written to %s\n", outputFile)
	fmt.Fprintf(out, "Database: %s\n", dbPath)
	fmt.Fprintln(out, "\nTo start the server:")
	fmt.Fprintln(out, "  cafesite serve")
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func prompt(reader *bufio.Reader, out io.Writer, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(out, "%s [%s]: ", question, defaultVal)
	} else {
		fmt.Fprintf(out, "%s: ", question)
	}

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		// On EOF or error, return default
		fmt.Fprintln(out)
		return defaultVal
	}
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}
