package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"konnect-service-go/internal/client"
	"konnect-service-go/internal/config"
	"konnect-service-go/internal/logger"
)

const usage = `Usage: konnectctl [flags] <command> [args]

Commands:
  health                     check that the service is up
  users | alerts | signals   list all records of a resource
  user <userId>              show one user
  alert <id>                 show one alert
  signal <id>                show one signal
  interval                   show the refresh interval
  set-interval [-id N] <s>   create an interval, or update row N

Flags:
`

func main() {
	configPath := flag.String("config", "./configs", "directory containing config.yml")
	baseURL := flag.String("url", "", "service base URL (overrides client.base_url)")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.Client.BaseURL = *baseURL
	}

	// Only problems are worth printing next to command output.
	cfg.Logger.Level = "warn"
	cfg.Logger.File = ""
	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	c := client.NewClient(cfg.Client, log)
	if err := run(context.Background(), c, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Error("Command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, cmd string, args []string) error {
	switch cmd {
	case "health":
		if err := c.Health(ctx); err != nil {
			return err
		}
		return printJSON(map[string]string{"status": "ok"})
	case "users":
		return printResult(c.ListUsers(ctx))
	case "alerts":
		return printResult(c.ListAlerts(ctx))
	case "signals":
		return printResult(c.ListSignals(ctx))
	case "user":
		if len(args) != 1 {
			return fmt.Errorf("user takes exactly one userId")
		}
		return printResult(c.GetUser(ctx, args[0]))
	case "alert":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return printResult(c.GetAlert(ctx, id))
	case "signal":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return printResult(c.GetSignal(ctx, id))
	case "interval":
		seconds, configured, err := c.GetRefreshInterval(ctx)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{"interval_seconds": seconds, "configured": configured})
	case "set-interval":
		return setInterval(ctx, c, args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func setInterval(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("set-interval", flag.ContinueOnError)
	id := fs.Uint64("id", 0, "row id to update; 0 creates a new row")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("set-interval takes exactly one value in seconds")
	}
	seconds, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", fs.Arg(0), err)
	}
	if *id == 0 {
		return printResult(c.CreateRefreshInterval(ctx, seconds))
	}
	return printResult(c.UpdateRefreshInterval(ctx, *id, seconds))
}

func parseID(args []string) (uint64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one numeric id")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", args[0], err)
	}
	return id, nil
}

func printResult[T any](v T, err error) error {
	if err != nil {
		return err
	}
	return printJSON(v)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
