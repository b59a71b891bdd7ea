// ABOUTME: Operator CLI for the cafe site's durable store
// ABOUTME: Sets the admin password, inspects stored keys, exports/imports snapshots, and resets families to seed

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/2389/cafesite/internal/config"
	"github.com/2389/cafesite/internal/server"
	"github.com/2389/cafesite/internal/store"
)

const banner = `
                 __           _ _                  _           _
  ___ __ _ / _| ___  ___(_) |_ ___        __ _  __| |_ __ ___ (_)_ __
 / __/ _' | |_ / _ \/ __| | __/ _ \_____ / _' |/ _' | '_ ' _ \| | '_ \
| (_| (_| |  _|  __/\__ \ | ||  __/_____| (_| | (_| | | | | | | | | | |
 \___\__,_|_|  \___||___/_|\__\___|      \__,_|\__,_|_| |_| |_|_|_| |_|
`

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		return
	}

	ctx := context.Background()
	backend, err := openStore()
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()
	cs := store.NewContentStore(backend)

	switch cmd {
	case "password":
		err = cmdPassword(ctx, cs, args, os.Stdout)
	case "show":
		err = cmdShow(ctx, backend, os.Stdout)
	case "export":
		err = cmdExport(ctx, cs, args, os.Stdout)
	case "import":
		err = cmdImport(ctx, cs, args, os.Stdin, os.Stdout)
	case "reset":
		err = cmdReset(ctx, cs, args, os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		backend.Close()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		backend.Close()
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: cafesite-admin <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  password <new>          Set the admin panel password (at least 4 characters)")
	fmt.Println("  show                    List stored keys with size and last update")
	fmt.Println("  export [file]           Write all content as JSON (stdout if no file)")
	fmt.Println("  import <file|->         Replace all content from a JSON export")
	fmt.Println("  reset <key|all>         Delete stored values so seeds are served again")
	fmt.Println()
	yellow.Println("Keys:")
	for _, k := range store.Keys {
		fmt.Printf("  %s\n", k)
	}
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  CAFESITE_CONFIG          Config file (default: ~/.config/cafesite/site.yaml)")
	fmt.Println("  CAFESITE_DB_PATH         Overrides database.path")
	fmt.Println()
}

// openStore opens the database named by the server's config file
func openStore() (*store.SQLiteStore, error) {
	configPath, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return server.OpenBackend(cfg.Database)
}

func cmdPassword(ctx context.Context, cs *store.ContentStore, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: cafesite-admin password <new>")
	}
	if err := cs.SaveAdminPassword(ctx, args[0]); err != nil {
		return fmt.Errorf("setting password: %w", err)
	}
	fmt.Fprintln(out, color.GreenString("  ✓ Admin password updated"))
	return nil
}

// keyLister is the part of the backend that show needs
type keyLister interface {
	Keys(ctx context.Context) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

func cmdShow(ctx context.Context, backend keyLister, out io.Writer) error {
	keys, err := backend.Keys(ctx)
	if err != nil {
		return fmt.Errorf("listing keys: %w", err)
	}

	cyan := color.New(color.FgCyan)
	fmt.Fprintln(out)
	cyan.Fprintln(out, "  Stored Content")
	cyan.Fprintln(out, "  --------------")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  KEY\tBYTES\tUPDATED")
	fmt.Fprintln(w, "  ---\t-----\t-------")
	for _, key := range store.Keys {
		if !slices.Contains(keys, key) {
			fmt.Fprintf(w, "  %s\t-\t(seed)\n", key)
			continue
		}
		value, err := backend.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("reading %s: %w", key, err)
		}
		fmt.Fprintf(w, "  %s\t%d\t%s\n", key, len(value), updatedAt(ctx, backend, key))
	}
	for _, key := range keys {
		if !store.IsKnownKey(key) {
			fmt.Fprintf(w, "  %s\t?\t(unknown key)\n", key)
		}
	}
	return w.Flush()
}

func updatedAt(ctx context.Context, backend keyLister, key string) string {
	s, ok := backend.(*store.SQLiteStore)
	if !ok {
		return "-"
	}
	t, err := s.UpdatedAt(ctx, key)
	if err != nil {
		return "-"
	}
	return t.Local().Format("Jan 02 15:04")
}

func cmdExport(ctx context.Context, cs *store.ContentStore, args []string, out io.Writer) error {
	snap, err := cs.Export(ctx)
	if err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	data = append(data, '\n')

	if len(args) == 0 || args[0] == "-" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(args[0], data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	fmt.Fprintln(out, color.GreenString("  ✓ Exported to %s", args[0]))
	return nil
}

func cmdImport(ctx context.Context, cs *store.ContentStore, args []string, stdin io.Reader, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: cafesite-admin import <file|->")
	}

	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := cs.Import(ctx, &snap); err != nil {
		return err
	}

	fmt.Fprintln(out, color.GreenString("  ✓ Imported %d menu items, %d gallery images, %d posts",
		len(snap.Menu), len(snap.Gallery), len(snap.Posts)))
	return nil
}

func cmdReset(ctx context.Context, cs *store.ContentStore, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: cafesite-admin reset <key|all>")
	}

	keys := []string{args[0]}
	if args[0] == "all" {
		keys = store.Keys
	}
	for _, key := range keys {
		if err := cs.Reset(ctx, key); err != nil {
			return fmt.Errorf("resetting %s: %w", key, err)
		}
		fmt.Fprintln(out, color.GreenString("  ✓ Reset %s", key))
	}
	return nil
}
