package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	err := godotenv.Load()
	if os.IsNotExist(err) {
		log.Printf("no .env file found, skipping")
	} else if err != nil {
		log.Fatalf("failed loading .env file: %s", err)
	}

	app := cli.NewApp()
	app.Name = "mood-server"
	app.Usage = "Mood-based music recommendation server and storage."
	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "port to run server on",
			EnvVars: []string{"MOOD_PORT"},
		},
		&cli.StringFlag{
			Name:    "database",
			Value:   "music.db",
			Usage:   "path to the sqlite database file",
			EnvVars: []string{"MOOD_DATABASE"},
		},
		&cli.StringFlag{
			Name:    "dataset",
			Value:   "features_30_sec.csv",
			Usage:   "path to the genre dataset csv",
			EnvVars: []string{"MOOD_DATASET"},
		},
		&cli.StringFlag{
			Name:    "audio-dir",
			Value:   "static/audio",
			Usage:   "directory containing the playable audio files",
			EnvVars: []string{"MOOD_AUDIO_DIR"},
		},
		&cli.StringFlag{
			Name:    "base-url",
			Value:   "http://localhost:8080",
			Usage:   "public base url used in song and share links",
			EnvVars: []string{"MOOD_BASE_URL"},
		},
		&cli.StringFlag{
			Name:    "matcher",
			Value:   "lexical",
			Usage:   "mood matching strategy: lexical or remote",
			EnvVars: []string{"MOOD_MATCHER"},
		},
		&cli.StringFlag{
			Name:    "similarity-url",
			Usage:   "base url of the similarity search service, required for the remote matcher",
			EnvVars: []string{"MOOD_SIMILARITY_URL"},
		},
		&cli.DurationFlag{
			Name:    "similarity-timeout",
			Value:   10 * time.Second,
			Usage:   "timeout for similarity search requests",
			EnvVars: []string{"MOOD_SIMILARITY_TIMEOUT"},
		},
	}
	app.Action = func(ctx *cli.Context) error {
		catalog, err := buildCatalog(ctx.String("dataset"), ctx.String("audio-dir"), ctx.String("base-url"))
		if err != nil {
			return fmt.Errorf("failed building song catalog: %w", err)
		}

		db, err := newDatabase(ctx.String("database"))
		if err != nil {
			return fmt.Errorf("failed opening database: %w", err)
		}

		var matcher MoodMatcher
		switch ctx.String("matcher") {
		case "lexical":
			matcher = newLexicalMatcher()
		case "remote":
			if ctx.String("similarity-url") == "" {
				return errors.New("similarity-url is required for the remote matcher")
			}
			matcher = newRemoteMatcher(ctx.String("similarity-url"), ctx.String("base-url"), ctx.Duration("similarity-timeout"))
		default:
			return fmt.Errorf("unknown matcher strategy: %s", ctx.String("matcher"))
		}

		handler := newServer(db, catalog, matcher, ctx.String("base-url"), ctx.String("audio-dir"))

		// Start HTTP handler.
		quit := make(chan os.Signal, 2)
		var wg sync.WaitGroup
		wg.Add(1)

		server := &http.Server{Addr: ":" + strconv.Itoa(ctx.Int("port")), Handler: handler}

		go func() {
			defer wg.Done()

			slog.Info("serving", "address", server.Addr)

			err := server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "failed to start server: %s\n", err)
				quit <- os.Interrupt
			}
		}()

		signal.Notify(
			quit,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGHUP,
		)
		<-quit

		slog.Info("Server shutting down...")

		go server.Close()

		wg.Wait()
		return nil
	}

	err = app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
