// Copyright 2025 The Pathfinder Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bikemaster2331/pathfinder"
	"github.com/bikemaster2331/pathfinder/config"
)

func main() {
	app := &cli.App{
		Name:  "pathfinder",
		Usage: "Offline-first tourism assistant for Catanduanes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a config file (defaults to config.yaml in . or ./configs)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Start an interactive chat session",
				Action: chatCommand,
			},
			{
				Name:   "rebuild",
				Usage:  "Rebuild the fact collection from the dataset file",
				Action: rebuildCommand,
			},
			{
				Name:   "status",
				Usage:  "Show fact and cache collection sizes",
				Action: statusCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func openPipeline(c *cli.Context) (*pathfinder.Pipeline, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	p, err := pathfinder.New(c.Context, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start pipeline: %w", err)
	}
	return p, nil
}

func chatCommand(c *cli.Context) error {
	p, err := openPipeline(c)
	if err != nil {
		return err
	}
	defer p.Close()

	fmt.Println("Pathfinder is ready. Ask about Catanduanes, or type /quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/quit" || input == "/exit" {
			break
		}

		answer, places := p.Ask(c.Context, input)
		fmt.Println(answer)
		for _, place := range places {
			fmt.Printf("  %s (%s, %s) %.4f,%.4f\n",
				place.Name, place.Category, place.Municipality, place.Lat, place.Lng)
		}
		fmt.Println()
	}
	return scanner.Err()
}

func rebuildCommand(c *cli.Context) error {
	p, err := openPipeline(c)
	if err != nil {
		return err
	}
	defer p.Close()

	n, err := p.Rebuild(context.Background())
	if err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Loaded %d records\n", n)
	return nil
}

func statusCommand(c *cli.Context) error {
	p, err := openPipeline(c)
	if err != nil {
		return err
	}
	defer p.Close()

	status, err := p.Status(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Facts:       %d\n", status.FactCount)
	fmt.Printf("Cache:       %d\n", status.CacheCount)
	fmt.Printf("Fingerprint: %s\n", status.DatasetFingerprint)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
