package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pawelkruzynski/gauges/internal/config"
	"github.com/pawelkruzynski/gauges/internal/logger"
	"github.com/pawelkruzynski/gauges/internal/storage"
	"github.com/pawelkruzynski/gauges/pkg/exporters"
	"github.com/pawelkruzynski/gauges/pkg/gauges"
	"github.com/pawelkruzynski/gauges/pkg/httpclient"
)

// Exporter is the snapshot exporter runtime. It polls the Gauges API for the
// configured report endpoints of every gauge on the account and fans the raw
// payloads out to the configured sinks, skipping payloads that have not
// changed since the previous poll.
type Exporter struct {
	cfg          *config.Config
	client       *gauges.Client
	fanout       *exporters.Fanout
	store        storage.Store
	pollInterval time.Duration
	log          logger.Logger
}

// gaugeRef is the slice of the gauges listing the runtime cares about.
type gaugeRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NewExporter builds an exporter runtime from config files.
func NewExporter(ctx context.Context, cfg *config.Config, log logger.Logger) (*Exporter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := gauges.New(gauges.Config{
		Token: cfg.Token,
		HTTP: httpclient.Defaults{
			Timeout: cfg.APITimeout,
			Proxy:   cfg.Proxy,
		},
		Logger: log,
	})
	if err != nil {
		return nil, fmt.Errorf("build gauges client: %w", err)
	}

	exporterReg, err := exporters.LoadRegistry(cfg.ExportersFile)
	if err != nil {
		return nil, fmt.Errorf("load exporters registry: %w", err)
	}
	enabled := exporterReg.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no exporters configured")
	}

	sinks, err := exporters.BuildAll(ctx, exporters.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build exporters: %w", err)
	}
	fanout := exporters.NewFanout(sinks)

	sinkSummaries := make([]map[string]string, 0, len(enabled))
	for _, sinkCfg := range enabled {
		sinkSummaries = append(sinkSummaries, map[string]string{
			"id":   sinkCfg.ID,
			"type": sinkCfg.Type,
		})
	}
	log.InfoObj("exporters registry loaded", "exporters_meta", map[string]any{
		"count":     len(sinkSummaries),
		"exporters": sinkSummaries,
	})

	storeOpts := storage.Options{
		SnapshotTTL:     cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"snapshot_ttl_seconds":     int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	return &Exporter{
		cfg:          cfg,
		client:       client,
		fanout:       fanout,
		store:        store,
		pollInterval: cfg.PollInterval,
		log:          log,
	}, nil
}

// Run starts the poll loop until the context is cancelled.
func (e *Exporter) Run(ctx context.Context) error {
	if e == nil || e.client == nil {
		return fmt.Errorf("exporter is not initialized")
	}
	defer e.closeStore()
	defer e.closeSinks()

	e.log.InfoObj("exporter loop starting", "exporter_state", map[string]any{
		"endpoints":       e.cfg.ReportEndpoints,
		"exporters_count": e.fanout.Size(),
		"poll_interval":   e.pollInterval.String(),
	})

	if err := e.runOnce(ctx); err != nil {
		e.log.ErrorObj("initial poll failed", "error", err)
	}

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.log.InfoObj("exporter loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := e.runOnce(ctx); err != nil {
				e.log.ErrorObj("scheduled poll failed", "error", err)
			}
		}
	}
}

// runOnce performs a single poll across all gauges and report endpoints.
func (e *Exporter) runOnce(ctx context.Context) error {
	start := time.Now()

	refs, err := e.listGauges(ctx)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		e.log.WarnObj("account has no gauges; nothing to export", "poll_meta", map[string]any{
			"started_at": start.UTC(),
		})
		return nil
	}

	exported := 0
	skipped := 0
	for _, ref := range refs {
		for _, endpoint := range e.cfg.ReportEndpoints {
			sent, err := e.exportReport(ctx, ref, endpoint)
			if err != nil {
				e.log.ErrorObj("report export failed", "report_error", map[string]any{
					"gauge_id": ref.ID,
					"endpoint": endpoint,
					"error":    err.Error(),
				})
				continue
			}
			if sent {
				exported++
			} else {
				skipped++
			}
		}
	}

	e.log.InfoObj("poll completed", "poll_meta", map[string]any{
		"gauges_count": len(refs),
		"exported":     exported,
		"skipped":      skipped,
		"elapsed_ms":   time.Since(start).Milliseconds(),
	})
	return nil
}

// listGauges fetches the account's gauges and decodes the ids and titles.
func (e *Exporter) listGauges(ctx context.Context) ([]gaugeRef, error) {
	resp, err := e.client.ListGauges(ctx, gauges.ListGaugesOptions{})
	if err != nil {
		return nil, fmt.Errorf("list gauges: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("list gauges: unexpected status %d", resp.StatusCode())
	}

	var listing struct {
		Gauges []gaugeRef `json:"gauges"`
	}
	if err := json.Unmarshal(resp.Body(), &listing); err != nil {
		return nil, fmt.Errorf("decode gauges listing: %w", err)
	}
	return listing.Gauges, nil
}

// exportReport fetches one report and fans it out unless it is unchanged.
// It reports whether a snapshot was actually exported.
func (e *Exporter) exportReport(ctx context.Context, ref gaugeRef, endpoint string) (bool, error) {
	resp, err := e.fetchReport(ctx, ref.ID, endpoint)
	if err != nil {
		return false, err
	}
	if resp.StatusCode() != 200 {
		return false, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}

	snap := exporters.NewSnapshot(ref.ID, ref.Title, endpoint, resp.StatusCode(), resp.Body())

	unchanged, err := e.store.Unchanged(snap.Key(), snap.Digest())
	if err != nil {
		return false, fmt.Errorf("check snapshot digest: %w", err)
	}
	if unchanged {
		return false, nil
	}

	if _, err := e.fanout.Export(ctx, snap); err != nil {
		return false, err
	}
	if err := e.store.Remember(snap.Key(), snap.Digest()); err != nil {
		return false, fmt.Errorf("remember snapshot digest: %w", err)
	}
	return true, nil
}

// fetchReport dispatches the client call matching the endpoint name.
func (e *Exporter) fetchReport(ctx context.Context, id, endpoint string) (httpclient.Response, error) {
	opts := gauges.ReportOptions{}
	switch strings.ToLower(strings.TrimSpace(endpoint)) {
	case "traffic":
		return e.client.Traffic(ctx, id, opts)
	case "content":
		return e.client.Content(ctx, id, opts)
	case "referrers":
		return e.client.Referrers(ctx, id, opts)
	case "resolutions":
		return e.client.Resolutions(ctx, id, opts)
	case "technology":
		return e.client.Technology(ctx, id, opts)
	case "terms":
		return e.client.Terms(ctx, id, opts)
	case "engines":
		return e.client.Engines(ctx, id, opts)
	case "locations":
		return e.client.Locations(ctx, id, opts)
	default:
		return nil, fmt.Errorf("unknown report endpoint %q", endpoint)
	}
}

// closeSinks flushes and releases exporters holding buffered clients.
func (e *Exporter) closeSinks() {
	if e == nil || e.fanout == nil {
		return
	}
	if err := e.fanout.Close(); err != nil {
		e.log.ErrorObj("exporters close failed", "error", err)
	}
}

// closeStore safely closes the storage backend, logging any errors encountered.
func (e *Exporter) closeStore() {
	if e == nil || e.store == nil {
		return
	}
	if err := e.store.Close(); err != nil {
		e.log.ErrorObj("storage close failed", "error", err)
	}
}
