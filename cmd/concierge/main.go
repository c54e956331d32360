// Package main is the concierge CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/agent"
	"github.com/grandplaza/concierge/internal/config"
	"github.com/grandplaza/concierge/internal/embedding"
	"github.com/grandplaza/concierge/internal/export"
	"github.com/grandplaza/concierge/internal/inventory"
	"github.com/grandplaza/concierge/internal/llm"
	"github.com/grandplaza/concierge/internal/media"
	"github.com/grandplaza/concierge/internal/meetings"
	"github.com/grandplaza/concierge/internal/server"
	"github.com/grandplaza/concierge/internal/transcript"
	"github.com/grandplaza/concierge/internal/watcher"
	"github.com/grandplaza/concierge/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/concierge/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "concierge server" from the project dir uses the
// project's config (including debug).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ingest":
		runIngest()
	case "export":
		runExport()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("concierge version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (ingestion, bookings, tool calls)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	mtg := components.Meetings
	watchSvc := watcher.New(
		cfg.Watch.Directories,
		cfg.Watch.Extensions,
		cfg.Watch.RecursiveOrDefault(),
		func(path string) {
			if _, err := mtg.IngestFile(context.Background(), path); err != nil {
				logger.Warn("inbox ingestion failed", zap.String("path", path), zap.Error(err))
			}
		},
		logger,
	)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if len(cfg.Watch.Directories) > 0 {
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start inbox watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
		watchSvc.SyncExistingFiles()
	}

	srv := server.NewServer(
		components.Agent,
		components.Tools,
		components.Inventory,
		components.Meetings,
		components.Minter,
		components.Recorder,
		components.Summarizer,
		&cfg.Server,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: concierge ingest [flags] <file-or-directory>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("Failed to stat path: %v\n", err)
		os.Exit(1)
	}
	if info.IsDir() {
		n, err := ingestDirectory(ctx, components.Meetings, path, cfg.Watch.Extensions)
		if err != nil {
			fmt.Printf("Ingesting directory failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Ingested %d file(s) from %s\n", n, path)
		return
	}
	fileID, err := components.Meetings.IngestFile(ctx, path)
	if err != nil {
		fmt.Printf("Ingestion failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Meeting file ingested: %s\n", fileID)
}

// ingestDirectory walks root and ingests every file matching one of the
// extensions. Duplicates are skipped, other failures are reported and counted
// out.
func ingestDirectory(ctx context.Context, store *meetings.Store, root string, extensions []string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if !matchExtension(path, extensions) {
			return nil
		}
		if _, ingestErr := store.IngestFile(ctx, path); ingestErr != nil {
			if errors.Is(ingestErr, meetings.ErrDuplicateFile) {
				return nil
			}
			fmt.Printf("Skipping %s: %v\n", path, ingestErr)
			return nil
		}
		count++
		return nil
	})
	return count, err
}

func matchExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outPath := fs.String("out", "", "output workbook path (default from config)")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	inv, err := inventory.NewStore(cfg.Storage.HotelDatabasePath, logger)
	if err != nil {
		fmt.Printf("Failed to open hotel database: %v\n", err)
		os.Exit(1)
	}
	defer inv.Close()

	path := cfg.Storage.ExportPath
	if *outPath != "" {
		path = *outPath
	}
	exporter := export.NewExporter(inv, path, logger)
	if err := exporter.Export(context.Background()); err != nil {
		fmt.Printf("Export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Workbook written: %s\n", path)
}

// statusResponse is the shape of the status command output.
type statusResponse struct {
	TotalRooms    int     `json:"total_rooms"`
	Available     int     `json:"available_rooms"`
	Occupied      int     `json:"occupied_rooms"`
	OccupancyRate float64 `json:"occupancy_rate"`
	MeetingFiles  int     `json:"meeting_files"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	ctx := context.Background()
	summary, err := components.Inventory.Summary(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Booking summary failed: %v\n", err)
		os.Exit(1)
	}
	fileCount, err := components.Meetings.Count(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Meeting file count failed: %v\n", err)
		os.Exit(1)
	}
	status := statusResponse{
		TotalRooms:    summary.TotalRooms,
		Available:     summary.Available,
		Occupied:      summary.Occupied,
		OccupancyRate: summary.OccupancyRate,
		MeetingFiles:  fileCount,
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("total_rooms:      %d\n", status.TotalRooms)
		fmt.Printf("available_rooms:  %d\n", status.Available)
		fmt.Printf("occupied_rooms:   %d\n", status.Occupied)
		fmt.Printf("occupancy_rate:   %.1f%%\n", status.OccupancyRate)
		fmt.Printf("meeting_files:    %d\n", status.MeetingFiles)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Inventory  *inventory.Store
	Meetings   *meetings.Store
	Embedder   embedding.Embedder
	Keyword    *meetings.KeywordIndex
	Exporter   *export.Exporter
	Minter     *media.TokenMinter
	Recorder   *transcript.Recorder
	Summarizer *transcript.Summarizer
	Agent      *agent.Agent
	Tools      *agent.Registry
}

func (c *Components) Close() {
	if c.Meetings != nil {
		_ = c.Meetings.Close()
	}
	if c.Inventory != nil {
		_ = c.Inventory.Close()
	}
	if c.Keyword != nil {
		_ = c.Keyword.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	var embedder embedding.Embedder
	onnxEmbedder, err := embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		logger.Warn("transformer embedder unavailable, using hash embedder",
			zap.String("model_path", cfg.Embedding.ModelPath), zap.Error(err))
		embedder = embedding.NewHashEmbedder(cfg.Embedding.Dimensions)
	} else {
		embedder = onnxEmbedder
	}

	keywordIndex, err := meetings.NewKeywordIndex(cfg.Storage.KeywordIndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keyword index: %w", err)
	}

	mtg, err := meetings.NewStore(cfg.Storage.MeetingDatabasePath, embedder, keywordIndex, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize meeting store: %w", err)
	}

	inv, err := inventory.NewStore(cfg.Storage.HotelDatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hotel store: %w", err)
	}

	exporter := export.NewExporter(inv, cfg.Storage.ExportPath, logger)
	inv.OnBooked(exporter.OnBooked)

	client := llm.NewHTTPClient(
		cfg.LLM.BaseURL,
		cfg.LLM.Model,
		os.Getenv(cfg.LLM.APIKeyEnv),
		cfg.LLM.Timeout,
	)

	var minter *media.TokenMinter
	apiKey := os.Getenv(cfg.Media.APIKeyEnv)
	apiSecret := os.Getenv(cfg.Media.APISecretEnv)
	if apiKey != "" && apiSecret != "" {
		minter, err = media.NewTokenMinter(apiKey, apiSecret, cfg.Media.TokenTTL, cfg.Media.DefaultRoom)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize token minter: %w", err)
		}
	} else {
		logger.Warn("media credentials not set, token endpoint disabled",
			zap.String("key_env", cfg.Media.APIKeyEnv),
			zap.String("secret_env", cfg.Media.APISecretEnv))
	}

	recorder, err := transcript.NewRecorder(cfg.Transcript.LogDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize transcript recorder: %w", err)
	}
	summarizer := transcript.NewSummarizer(recorder, client, mtg, cfg.Transcript.RendererURL, logger)

	ag := agent.New(mtg, client, logger)
	tools := agent.NewRegistry(inv, summarizer, logger)

	return &Components{
		Inventory:  inv,
		Meetings:   mtg,
		Embedder:   embedder,
		Keyword:    keywordIndex,
		Exporter:   exporter,
		Minter:     minter,
		Recorder:   recorder,
		Summarizer: summarizer,
		Agent:      ag,
		Tools:      tools,
	}, nil
}

func printUsage() {
	fmt.Println(`concierge - Grand Plaza Hotel voice concierge backend

Usage:
  concierge server [flags]            Start the HTTP server
  concierge ingest [flags] <path>     Ingest a meeting file or directory
  concierge export [flags]            Export rooms and bookings to a workbook
  concierge status [flags]            Show occupancy and meeting store status
  concierge version                   Show version
  concierge help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/concierge/config.yaml)
  --debug            Enable debug logging (ingestion, bookings, tool calls)

Ingest Flags:
  --config string    Config file path

Export Flags:
  --config string    Config file path
  --out string       Output workbook path (default from config)

Status Flags:
  --config string    Config file path
  --output string    Output format: text or json (default: text)

Examples:
  concierge server
  concierge ingest ./minutes/standup.pdf
  concierge ingest ./minutes
  concierge export --out bookings.xlsx
  concierge status --output json`)
}
