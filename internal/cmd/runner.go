package cmd

import (
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"lambda/internal/context"
)

// MaxParallelFiles bounds how many files are lexed and parsed at once
const MaxParallelFiles = 8

// RunLexAndParsePhase tokenizes and parses all registered files in parallel.
// Each file gets its own lexers and parsers; nothing is shared but the
// diagnostic bag. The returned error lists each file FailFast stopped, in
// registration order.
func RunLexAndParsePhase(ctx *context.CompilerContext) error {
	ctx.Logger.Debug("lex + parse (parallel)")

	files := ctx.GetAllFiles()
	pipeline := context.NewPipeline(ctx)
	failures := make([]error, len(files))

	// g only bounds concurrency. Workers never return an error, so a failing
	// file cannot cancel the others; failures land in their own slot.
	var g errgroup.Group
	g.SetLimit(MaxParallelFiles)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			failures[i] = pipeline.ProcessFile(file)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	ctx.Logger.Debug("processed files", "count", len(files))

	return multierror.Append(nil, failures...).ErrorOrNil()
}

// RegisterFiles reads every path into the context. Unreadable files are
// reported in the diagnostic bag and collected into the returned error;
// readable ones are still registered.
func RegisterFiles(ctx *context.CompilerContext, paths []string) error {
	var errs *multierror.Error
	for _, path := range paths {
		if _, err := ctx.LoadFile(path); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// Run registers paths and runs the front end over all of them. The
// returned error aggregates I/O failures and, with FailFast, the first
// failure of each file; syntax errors are otherwise only in ctx.Diagnostics.
func Run(ctx *context.CompilerContext, paths []string) error {
	ctx.Logger.Debug("run started", "files", len(paths))

	var errs *multierror.Error
	if err := RegisterFiles(ctx, paths); err != nil {
		errs = multierror.Append(errs, err)
	}

	ctx.CurrentPhase = context.PhaseLexing
	if err := RunLexAndParsePhase(ctx); err != nil {
		errs = multierror.Append(errs, err)
	}
	ctx.CurrentPhase = context.PhaseComplete

	return errs.ErrorOrNil()
}
