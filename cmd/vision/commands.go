package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Black-And-White-Club/scorecard-vision/app"
	visionservice "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application"
	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application/games"
	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application/parsers"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	visionmetrics "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/infrastructure/metrics"
	"github.com/Black-And-White-Club/scorecard-vision/app/observability"
	"github.com/Black-And-White-Club/scorecard-vision/config"
	"github.com/urfave/cli/v2"
)

const (
	flagConfig = "config"
	flagGame   = "game"
	flagRoster = "roster"
	flagItemID = "item-id"
)

func gameFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     flagGame,
		Aliases:  []string{"g"},
		Required: true,
		Usage:    "game id, see the games command",
	}
}

func rosterFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     flagRoster,
		Aliases:  []string{"r"},
		Required: true,
		Usage:    "roster file (.yaml, .csv or .xlsx)",
	}
}

func newCLI(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "vision",
		Usage:     "validate and score game results read from screenshots",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"VISION_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "games",
				Usage:  "list the supported games",
				Action: gamesAction,
			},
			{
				Name:      "process",
				Usage:     "process one extraction file",
				ArgsUsage: "EXTRACTION_FILE",
				Flags: []cli.Flag{
					gameFlag(),
					rosterFlag(),
					&cli.StringFlag{Name: flagItemID, Usage: "item id, defaults to the file name"},
				},
				Action: processAction,
			},
			{
				Name:      "bulk",
				Usage:     "process many extraction files of the same game",
				ArgsUsage: "EXTRACTION_FILE...",
				Flags:     []cli.Flag{gameFlag(), rosterFlag()},
				Action:    bulkAction,
			},
			{
				Name:   "serve",
				Usage:  "consume screenshot and batch requests from NATS",
				Action: serveAction,
			},
		},
	}
}

// localService builds a service for one-shot commands. Logs go to the CLI's error writer.
func localService(c *cli.Context) (visionservice.Service, error) {
	cfg, err := config.LoadConfig(c.String(flagConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	obs, err := observability.New(cfg.Observability, c.App.ErrWriter)
	if err != nil {
		return nil, err
	}
	metrics, err := visionmetrics.NewPrometheusMetrics(obs.Registry)
	if err != nil {
		return nil, err
	}
	registry := games.NewDefaultRegistry(games.Options{SuggestionLimit: cfg.Pipeline.SuggestionLimit})
	return visionservice.NewVisionService(registry, obs.Logger, metrics, obs.Tracer, visionservice.Config{Workers: cfg.Pipeline.Workers}), nil
}

func loadRoster(path string) ([]visiontypes.RosterPlayer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return parsers.NewFactory().LoadRoster(path, data)
}

func readExtraction(path string) (visiontypes.RawExtraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return visiontypes.RawExtraction{}, err
	}
	return parsers.DecodeExtraction(data)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func gamesAction(c *cli.Context) error {
	svc, err := localService(c)
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, svc.Games())
}

func processAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("process takes exactly one extraction file")
	}
	path := c.Args().First()

	svc, err := localService(c)
	if err != nil {
		return err
	}
	roster, err := loadRoster(c.String(flagRoster))
	if err != nil {
		return err
	}

	itemID := c.String(flagItemID)
	if itemID == "" {
		itemID = filepath.Base(path)
	}

	raw, err := readExtraction(path)
	if err != nil {
		return writeJSON(c.App.Writer, visionservice.ItemOutcome{ItemID: itemID, Outcome: visionservice.UnreadableOutcome(err)})
	}

	outcome := svc.ProcessScreenshot(c.Context, visionservice.ScreenshotRequest{
		ItemID:     itemID,
		Game:       visiontypes.GameID(c.String(flagGame)),
		Extraction: raw,
		Roster:     roster,
	})
	return writeJSON(c.App.Writer, visionservice.ItemOutcome{ItemID: itemID, Outcome: outcome})
}

func bulkAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("bulk needs at least one extraction file")
	}

	svc, err := localService(c)
	if err != nil {
		return err
	}
	roster, err := loadRoster(c.String(flagRoster))
	if err != nil {
		return err
	}

	paths := c.Args().Slice()
	ids := bulkItemIDs(paths)
	items := make([]visionservice.BulkItem, 0, len(paths))
	for i, path := range paths {
		raw, err := readExtraction(path)
		items = append(items, visionservice.BulkItem{ID: ids[i], Extraction: raw, ReadError: err})
	}

	result, err := svc.BulkImport(c.Context, visionservice.BulkRequest{
		Game:   visiontypes.GameID(c.String(flagGame)),
		Roster: roster,
		Items:  items,
	})
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, result)
}

// bulkItemIDs names items by file base name. Base names shared by several files fall back to
// the cleaned path so files from different directories stay distinct.
func bulkItemIDs(paths []string) []string {
	counts := make(map[string]int, len(paths))
	for _, p := range paths {
		counts[filepath.Base(p)]++
	}

	ids := make([]string, len(paths))
	for i, p := range paths {
		if base := filepath.Base(p); counts[base] == 1 {
			ids[i] = base
			continue
		}
		ids[i] = filepath.ToSlash(filepath.Clean(p))
	}
	return ids
}

func serveAction(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String(flagConfig))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg, c.App.ErrWriter)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}

