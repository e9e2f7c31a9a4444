// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// LineHandler processes one line of input. Returning an error stops the
// service, and the supervisor restarts it.
type LineHandler func(ctx context.Context, line string) error

// PromptService feeds lines from a reader to a handler.
//
// The reader is consumed by a single goroutine for the life of the service,
// so a restart after a handler error resumes at the next line.
type PromptService struct {
	handler LineHandler
	logger  zerolog.Logger
	name    string

	lines   chan string
	readErr chan error
	once    sync.Once
	reader  io.Reader
}

// NewPromptService creates a new prompt service reading from r.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPromptService(r io.Reader, handler LineHandler, logger zerolog.Logger) *PromptService {
	return &PromptService{
		handler: handler,
		logger:  logger.With().Str("service", "prompt").Logger(),
		name:    "prompt-service",
		lines:   make(chan string),
		readErr: make(chan error, 1),
		reader:  r,
	}
}

// startReader launches the line reader once. Blocking reads cannot be
// interrupted, so the goroutine outlives a canceled Serve.
func (s *PromptService) startReader() {
	s.once.Do(func() {
		go func() {
			scanner := bufio.NewScanner(s.reader)
			for scanner.Scan() {
				s.lines <- scanner.Text()
			}
			s.readErr <- scanner.Err()
		}()
	})
}

// Serve implements the suture.Service interface.
func (s *PromptService) Serve(ctx context.Context) error {
	s.startReader()
	s.logger.Debug().Msg("prompt service started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line := <-s.lines:
			if err := s.handler(ctx, line); err != nil {
				return fmt.Errorf("prompt handler: %w", err)
			}

		case err := <-s.readErr:
			if err != nil {
				s.logger.Error().Err(err).Msg("input read failed")
			} else {
				s.logger.Debug().Msg("end of input")
			}
			return suture.ErrTerminateSupervisorTree
		}
	}
}

// String implements fmt.Stringer for logging.
func (s *PromptService) String() string {
	return s.name
}
