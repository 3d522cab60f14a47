package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/statblock"
)

// Manual debugging aid: import one page and print the record as JSON.
func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: debugimport <url>")
		os.Exit(2)
	}
	imp := statblock.New(statblock.Config{})
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	rec, err := imp.ImportFromLink(ctx, os.Args[1])
	if err != nil {
		log.Error().Err(err).Msg("import failed")
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(rec)
}
