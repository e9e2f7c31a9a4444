// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/report"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

const promptText = "Enter a movie you like (Ctrl-D to quit): "

func (a *app) interactiveCommand() *cobra.Command {
	var (
		topN    int
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Prompt for titles and print recommendations until end of input",
		Long: `Read one title per line from standard input and print recommendations for each.
With --refresh the catalog file is watched and the index is rebuilt in the
background when it changes; queries keep using the previous index until the
new one is ready.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("refresh") {
				a.cfg.Refresh.Enabled = refresh
			}
			if err := a.revalidate(); err != nil {
				return err
			}
			return a.runInteractive(cmd, topN)
		},
	}

	cmd.Flags().IntVarP(&topN, "top", "n", 0, "number of recommendations (0 uses RECOMMEND_DEFAULT_TOP_N)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild the index when the catalog file changes (REFRESH_ENABLED)")
	return cmd
}

func (a *app) runInteractive(cmd *cobra.Command, topN int) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	logger := logging.WithComponent("interactive")

	engine, err := initEngine(ctx, a.cfg, logging.Logger())
	if err != nil {
		return err
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  5 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if a.cfg.Refresh.Enabled {
		tree.AddIndexService(services.NewCatalogRefreshService(engine, services.CatalogRefreshConfig{
			Path:        a.cfg.Catalog.Path,
			Interval:    a.cfg.Refresh.Interval,
			LoadOptions: buildLoadOptions(a.cfg),
		}, logger))
		logger.Info().Dur("interval", a.cfg.Refresh.Interval).Msg("catalog refresh enabled")
	}

	out := cmd.OutOrStdout()
	handler := promptHandler(engine, topN, out)
	tree.AddSessionService(services.NewPromptService(cmd.InOrStdin(), handler, logger))

	fmt.Fprint(out, promptText)
	err = tree.Serve(ctx)
	fmt.Fprintln(out)

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logger.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	// End of input and an interrupt both end the session cleanly.
	switch {
	case err == nil, errors.Is(err, suture.ErrTerminateSupervisorTree), errors.Is(err, context.Canceled):
		return nil
	default:
		return err
	}
}

// promptHandler answers one line of interactive input.
func promptHandler(engine *recommend.Engine, topN int, out io.Writer) services.LineHandler {
	return func(ctx context.Context, line string) error {
		title := strings.TrimSpace(line)
		if title == "" {
			if _, err := fmt.Fprintln(out, blankTitleMessage); err != nil {
				return err
			}
			_, err := fmt.Fprint(out, promptText)
			return err
		}

		ctx = logging.ContextWithNewCorrelationID(ctx)
		rec, err := engine.Recommend(ctx, title, topN)
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Str("query", title).Msg("recommendation failed")
			if _, werr := fmt.Fprintf(out, "Could not recommend for %q: %v\n", title, err); werr != nil {
				return werr
			}
		} else if err := report.WriteRecommendationTable(out, rec); err != nil {
			return err
		}

		_, err = fmt.Fprint(out, "\n"+promptText)
		return err
	}
}
