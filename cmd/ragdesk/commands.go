package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tessero/ragdesk"
	"github.com/tessero/ragdesk/ingestion"
	"github.com/tessero/ragdesk/search"
	"github.com/urfave/cli/v2"
)

// openWorkspace builds the workspace from the global flags. The API
// credential comes from the environment; without one the session cannot
// start.
func openWorkspace(c *cli.Context) (*ragdesk.Workspace, error) {
	var opts []ragdesk.WorkspaceOption
	if store := c.String("store"); store != "" {
		opts = append(opts, ragdesk.WithStoreOverride(store))
	}

	w, err := ragdesk.NewWorkspace(c.String("data-dir"), opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot start session: %w", err)
	}
	return w, nil
}

func uploadCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file to upload is required")
	}

	w, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx := context.Background()
	storeName, err := w.Stores().Current(ctx)
	if err != nil {
		return err
	}

	poller, err := ingestion.NewPoller(w.Provider().FileSearch(),
		ingestion.WithTimeout(c.Duration("timeout")),
		ingestion.WithInterval(c.Duration("interval")),
	)
	if err != nil {
		return err
	}

	pipeline, err := w.NewIngestionPipeline(
		ingestion.WithPoller(poller),
		ingestion.WithPoolSize(c.Int("workers")),
	)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	results := pipeline.IngestAll(ctx, storeName, c.Args().Slice(), &ingestion.IngestOptions{
		MIMEType: c.String("mime"),
		Monitor:  newProgressMonitor(os.Stderr),
	})

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Printf("FAILED  %s: %v\n", res.Path, res.Err)
			continue
		}
		fmt.Printf("OK      %s -> %s\n", res.Path, res.Record.DocumentName)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(results))
	}
	fmt.Printf("All %d documents are searchable in %s\n", len(results), storeName)
	return nil
}

func askCommand(c *cli.Context) error {
	w, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx := context.Background()
	engine, err := w.NewEngine(ctx)
	if err != nil {
		return err
	}

	if question := strings.TrimSpace(strings.Join(c.Args().Slice(), " ")); question != "" {
		return askOnce(ctx, engine, question)
	}
	return askLoop(ctx, engine)
}

func askOnce(ctx context.Context, engine *search.Engine, question string) error {
	answer, err := engine.Ask(ctx, question)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

// askLoop reads questions from stdin until EOF or an exit keyword. A failed
// generation is reported and the loop continues; the session stays usable.
func askLoop(ctx context.Context, engine *search.Engine) error {
	fmt.Println("Ask questions about your documents. Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return nil
		}

		answer, err := engine.Ask(ctx, question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(answer)
		fmt.Println()
	}
}

func postCommand(c *cli.Context) error {
	w, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx := context.Background()
	engine, err := w.NewEngine(ctx)
	if err != nil {
		return err
	}

	posts, err := engine.DraftPosts(ctx, &search.PostRequest{
		Topic:    c.String("topic"),
		Platform: c.String("platform"),
		Tone:     c.String("tone"),
		Words:    c.Int("words"),
		Hashtags: c.Bool("hashtags"),
		Variants: c.Int("variants"),
	})
	if err != nil {
		return err
	}
	fmt.Println(posts)

	if count := c.Int("images"); count > 0 {
		return saveIllustrations(ctx, engine, c.String("topic"), c.String("tone"), count)
	}
	return nil
}

func saveIllustrations(ctx context.Context, engine *search.Engine, topic, tone string, count int) error {
	images, err := engine.Illustrate(ctx, topic, tone, count)
	if err != nil {
		return err
	}

	for i, data := range images {
		name := fmt.Sprintf("post-illustration-%d.png", i+1)
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		fmt.Printf("Saved %s\n", name)
	}
	return nil
}

func storeShowCommand(c *cli.Context) error {
	w, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer w.Close()

	storeName, err := w.Stores().Current(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(storeName)
	return nil
}

func storeResetCommand(c *cli.Context) error {
	w, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer w.Close()

	storeName, err := w.Stores().Reset(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Active store is now %s\n", storeName)
	fmt.Println("Documents in the previous store are no longer reachable from this session.")
	return nil
}

func docsCommand(c *cli.Context) error {
	w, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx := context.Background()
	scope := ""
	if !c.Bool("all") {
		scope, err = w.Stores().Current(ctx)
		if err != nil {
			return err
		}
	}

	records, err := w.Catalog().ListDocuments(ctx, scope)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No documents in the catalog.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%-12s %-30s %8d bytes  %s  %s\n",
			rec.State, rec.DisplayName, rec.SizeBytes,
			rec.IngestedAt.Format("2006-01-02 15:04"), rec.DocumentName)
	}
	return nil
}
