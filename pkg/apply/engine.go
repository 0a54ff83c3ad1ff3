// Copyright 2025 walteh LLC
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

package apply

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/mods"
	"github.com/walteh/patchrc/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures the batch engine
type Options struct {
	// Config is the run configuration
	Config Config
	// Console receives per-record user output, may be nil
	Console *log.Logger
}

// 🏃 Engine applies an ordered batch of modification records. Failures are
// record-local: one bad record never aborts the batch, and there is no
// rollback or dependency ordering across records.
type Engine struct {
	applier *Applier
	console *log.Logger
}

// 🏭 NewEngine creates a batch engine
func NewEngine(opts Options) *Engine {
	applier := NewApplier(opts.Config)
	applier.console = opts.Console
	return &Engine{
		applier: applier,
		console: opts.Console,
	}
}

// 🏃 Apply processes every record strictly in the order supplied and returns
// the ordered outcome log. Each outcome is appended exactly once, when its
// record reaches a terminal state.
func (e *Engine) Apply(ctx context.Context, records []mods.Record) []report.Outcome {
	outcomes := make([]report.Outcome, 0, len(records))

	for i, rec := range records {
		logger := zerolog.Ctx(ctx).With().
			Int("record", i+1).
			Int("total", len(records)).
			Str("kind", rec.DisplayKind()).
			Str("path", rec.Path).
			Logger()
		rctx := logger.WithContext(ctx)

		logger.Debug().Msg("applying modification")

		detail, err := e.applyOne(rctx, rec)

		outcome := report.Outcome{
			Kind:   rec.DisplayKind(),
			Path:   displayPath(rec.Path),
			Status: report.StatusSuccess,
		}
		if err != nil {
			outcome.Status = report.StatusFailure
			outcome.Err = err.Error()
			logger.Error().Err(err).Msg("failed to apply modification")
		}
		outcomes = append(outcomes, outcome)

		if e.console != nil {
			op := log.RecordOp{
				Kind:   outcome.Kind,
				Path:   outcome.Path,
				Failed: err != nil,
				DryRun: e.applier.cfg.DryRun,
				Detail: detail,
			}
			if err != nil {
				op.Detail = err.Error()
			}
			e.console.LogRecordOp(rctx, op)
		}
	}

	return outcomes
}

// applyOne validates and dispatches a single record. Any panic inside an
// applier is captured here so an unexpected fault stays record-local.
func (e *Engine) applyOne(ctx context.Context, rec mods.Record) (detail string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("unexpected fault applying record: %v", r)
		}
	}()

	if err := rec.Validate(); err != nil {
		return "", err
	}

	switch rec.Kind {
	case mods.KindCreateFile:
		return e.applier.CreateFile(ctx, rec)
	case mods.KindDeleteFile:
		return e.applier.DeleteFile(ctx, rec)
	case mods.KindReplaceFile:
		return e.applier.ReplaceFile(ctx, rec)
	case mods.KindReplaceSection:
		return e.applier.ReplaceSection(ctx, rec)
	default:
		return "", errors.Errorf("unknown modification type: %q", rec.RawKind)
	}
}

// displayPath keeps outcome paths readable when a record omitted its path
func displayPath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}

// 📝 Describe summarizes the batch for log headers
func Describe(records []mods.Record) string {
	return fmt.Sprintf("%d modification(s)", len(records))
}
