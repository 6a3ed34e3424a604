// Copyright 2025 Tessero
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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tessero/ragdesk/ingestion"
	"github.com/urfave/cli/v2"
)

func main() {
	// Pick up GEMINI_API_KEY and friends from a local .env if present.
	_ = godotenv.Load()

	if err := buildApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildApp() *cli.App {
	return &cli.App{
		Name:  "ragdesk",
		Usage: "Upload documents to a file-search store and query them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory for the local catalog and session state",
				Value:   "./ragdesk_data",
			},
			&cli.StringFlag{
				Name:    "store",
				Aliases: []string{"s"},
				Usage:   "Use this store instead of the persisted one",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "upload",
				Usage:     "Upload files and wait until they are searchable",
				ArgsUsage: "<file> [file...]",
				Action:    uploadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mime",
						Usage: "Explicit MIME type for all files (default: inferred per file)",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Maximum time to wait per remote phase",
						Value: ingestion.DefaultTimeout,
					},
					&cli.DurationFlag{
						Name:  "interval",
						Usage: "Pause between status fetches",
						Value: ingestion.DefaultInterval,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of files uploaded concurrently",
						Value: 2,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Ask a question grounded in the uploaded documents",
				ArgsUsage: "[question]",
				Action:    askCommand,
			},
			{
				Name:   "post",
				Usage:  "Draft social media posts from the uploaded documents",
				Action: postCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "topic",
						Usage:    "What the post is about",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "platform",
						Usage: "Target platform (LinkedIn, Instagram, X/Twitter, Facebook Page, Facebook Group)",
						Value: "LinkedIn",
					},
					&cli.StringFlag{
						Name:  "tone",
						Usage: "Desired tone of voice",
						Value: "professional",
					},
					&cli.IntFlag{
						Name:  "words",
						Usage: "Approximate words per variant",
						Value: 80,
					},
					&cli.BoolFlag{
						Name:  "hashtags",
						Usage: "Ask for 3-5 relevant hashtags",
						Value: true,
					},
					&cli.IntFlag{
						Name:  "variants",
						Usage: "Number of alternative drafts",
						Value: 2,
					},
					&cli.IntFlag{
						Name:  "images",
						Usage: "Also generate this many illustration images",
					},
				},
			},
			{
				Name:  "store",
				Usage: "Manage the active file-search store",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print the active store identifier",
						Action: storeShowCommand,
					},
					{
						Name:   "reset",
						Usage:  "Create a fresh store and make it the active one",
						Action: storeResetCommand,
					},
				},
			},
			{
				Name:   "docs",
				Usage:  "List documents ingested into the active store",
				Action: docsCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "all",
						Usage: "List documents of every store in the catalog",
					},
				},
			},
		},
	}
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
