package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pawelkruzynski/gauges/internal/config"
	"github.com/pawelkruzynski/gauges/pkg/gauges"
	"github.com/pawelkruzynski/gauges/pkg/httpclient"
)

const usage = `usage: gauges <operation> [gauge-id]

operations:
  profile                      authenticated user info
  clients                      issued API clients
  gauges                       gauges on the account
  gauge <id>                   one gauge
  shares <id>                  people the gauge is shared with
  traffic|content|referrers|resolutions|technology|terms|engines|locations <id>
                               report payload for one gauge

GAUGES_TOKEN must be set (or configs/.env provided).`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "gauges: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("missing operation")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := gauges.New(gauges.Config{
		Token: cfg.Token,
		HTTP: httpclient.Defaults{
			Timeout: cfg.APITimeout,
			Proxy:   cfg.Proxy,
		},
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resp, err := dispatch(ctx, client, args)
	if err != nil {
		return err
	}

	if resp.StatusCode() != 200 {
		fmt.Fprintf(os.Stderr, "gauges: API returned status %d\n", resp.StatusCode())
	}
	os.Stdout.Write(resp.Body())
	fmt.Println()
	return nil
}

func dispatch(ctx context.Context, client *gauges.Client, args []string) (httpclient.Response, error) {
	op := args[0]

	switch op {
	case "profile":
		return client.Profile(ctx)
	case "clients":
		return client.ListClients(ctx)
	case "gauges":
		return client.ListGauges(ctx, gauges.ListGaugesOptions{})
	}

	if len(args) < 2 {
		return nil, fmt.Errorf("operation %q requires a gauge id", op)
	}
	id := args[1]
	opts := gauges.ReportOptions{}

	switch op {
	case "gauge":
		return client.Gauge(ctx, id)
	case "shares":
		return client.Shares(ctx, id)
	case "traffic":
		return client.Traffic(ctx, id, opts)
	case "content":
		return client.Content(ctx, id, opts)
	case "referrers":
		return client.Referrers(ctx, id, opts)
	case "resolutions":
		return client.Resolutions(ctx, id, opts)
	case "technology":
		return client.Technology(ctx, id, opts)
	case "terms":
		return client.Terms(ctx, id, opts)
	case "engines":
		return client.Engines(ctx, id, opts)
	case "locations":
		return client.Locations(ctx, id, opts)
	default:
		fmt.Fprintln(os.Stderr, usage)
		return nil, fmt.Errorf("unknown operation %q", op)
	}
}
