// Command grouprank prints the standings of a group and predicts in which
// scenarios a team still reaches a rank.
//
//	grouprank -team Tigers -rank 2 group.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ezBadminton/grouprank/core"
	"github.com/ezBadminton/grouprank/groupfile"
	"github.com/ezBadminton/grouprank/internal/config"
)

func main() {
	team := flag.String("team", "", "the team to predict the rank of")
	rank := flag.Int("rank", 1, "the rank the team should reach (1 is first place)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s -team TEAM [-rank N] GROUP_FILE\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, logger, os.Stdout, flag.Arg(0), *team, *rank)
	if err != nil {
		logger.Error("grouprank failed", slog.Any("error", err))
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	out io.Writer,
	path, team string,
	rank int,
) error {
	doc, err := groupfile.Load(path)
	if err != nil {
		return err
	}
	group, err := doc.Group()
	if err != nil {
		return err
	}

	standings, err := group.Standings()
	if err != nil {
		return err
	}
	if err := printStandings(out, group, standings); err != nil {
		return err
	}

	if team == "" {
		return nil
	}

	remaining := len(group.Remaining())
	if err := cfg.CheckRemaining(remaining); err != nil {
		return err
	}

	settings := core.NewPredictSettings()
	settings.Logger = logger
	settings.Progress = func(percent int) {
		logger.Debug("predicting", slog.Int("progress", percent))
	}

	logger.Info("predicting", slog.String("team", team), slog.Int("rank", rank), slog.Int("remaining", remaining))
	prediction, err := group.PredictRank(ctx, team, rank, settings)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	return printPrediction(out, prediction)
}
