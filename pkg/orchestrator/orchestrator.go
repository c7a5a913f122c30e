// Package orchestrator runs the launch flow: sync the packages, apply the
// overlay, run the game and remove the overlay again.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/errors"
	"github.com/glorpus-work/modlayer/pkg/hook"
	"github.com/glorpus-work/modlayer/pkg/syncer"
)

// Orchestrator ties the sync engine, the overlay manager and the launch
// hooks together.
type Orchestrator struct {
	Syncer  PackageSyncer
	Overlay Overlay
	Scripts hook.Manager // optional
	Hooks   Hooks        // Hooks for progress and event notifications
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Prepare syncs the packages and applies the overlay to the game dir.
// Nothing is done when mods are disabled. A failing pre-apply hook stops
// before the game dir is touched.
func (o *Orchestrator) Prepare(ctx context.Context, opts Options) (*PrepareResult, error) {
	result := &PrepareResult{}
	if !opts.ModsEnabled {
		logger.Debug("Mods disabled, skipping overlay")
		return result, nil
	}
	if opts.GameDir == "" {
		return nil, fmt.Errorf("game dir is not set: %w", errors.ErrInvalidPath)
	}
	if o.Overlay == nil {
		return nil, fmt.Errorf("overlay manager is not configured")
	}

	if !opts.SkipSync && len(opts.Packages) > 0 {
		synced, err := o.sync(ctx, opts)
		result.Synced = synced
		if err != nil {
			if !opts.AllowStale || !allInstalled(opts) {
				emit(o.Hooks, Event{Phase: "error", Msg: err.Error()})
				return nil, err
			}
			logger.Warn("Sync failed, using installed packages", logger.Fields{"error": err.Error()})
			result.SyncError = err
		}
	}

	hctx := o.hookContext(opts)
	if err := o.runHook(ctx, hook.PreApply, hctx); err != nil {
		emit(o.Hooks, Event{Phase: "error", Msg: err.Error()})
		return nil, err
	}

	emit(o.Hooks, Event{Phase: "applying", Msg: opts.GameDir})
	entries, err := o.Overlay.Apply(opts.SourceDir, opts.GameDir, opts.ModsDir)
	if err != nil {
		err = errors.Wrap(err, "failed to apply overlay")
		// A planning failure returns no entries and has not touched the game dir.
		if len(entries) > 0 {
			if cerr := o.Overlay.Cleanup(opts.GameDir); cerr != nil {
				err = multierror.Append(err, errors.Wrap(cerr, "failed to remove partial overlay"))
			}
		}
		emit(o.Hooks, Event{Phase: "error", Msg: err.Error()})
		return nil, err
	}
	result.Applied = entries

	if err := o.runHook(ctx, hook.PostApply, hctx); err != nil {
		emit(o.Hooks, Event{Phase: "error", Msg: err.Error()})
		return result, err
	}

	return result, nil
}

// Cleanup removes the overlay from the game dir. The cleanup hooks and the
// overlay removal are all attempted; their failures are returned together.
func (o *Orchestrator) Cleanup(ctx context.Context, opts Options) error {
	if !opts.ModsEnabled {
		return nil
	}
	if opts.GameDir == "" {
		return fmt.Errorf("game dir is not set: %w", errors.ErrInvalidPath)
	}
	if o.Overlay == nil {
		return fmt.Errorf("overlay manager is not configured")
	}

	var result *multierror.Error
	hctx := o.hookContext(opts)

	if err := o.runHook(ctx, hook.PreCleanup, hctx); err != nil {
		result = multierror.Append(result, err)
	}

	emit(o.Hooks, Event{Phase: "cleaning", Msg: opts.GameDir})
	if err := o.Overlay.Cleanup(opts.GameDir); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "failed to remove overlay"))
	}

	if err := o.runHook(ctx, hook.PostCleanup, hctx); err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		emit(o.Hooks, Event{Phase: "error", Msg: err.Error()})
		return err
	}
	return nil
}

// Launch prepares the overlay, runs the game and cleans up. Cleanup runs
// whenever the overlay was placed, even when the game fails or ctx is
// cancelled. The game is not started when Prepare fails.
func (o *Orchestrator) Launch(ctx context.Context, opts Options, launcher Launcher) error {
	if launcher == nil {
		return fmt.Errorf("launcher is not configured")
	}

	prepared, err := o.Prepare(ctx, opts)
	if err != nil {
		if prepared != nil {
			// Placed, but the post-apply hook failed.
			if cerr := o.Cleanup(context.WithoutCancel(ctx), opts); cerr != nil {
				return multierror.Append(err, cerr)
			}
		}
		return err
	}

	emit(o.Hooks, Event{Phase: "running", Msg: opts.GameDir})
	runErr := launcher.Run(ctx, opts.GameDir)
	if runErr != nil {
		runErr = errors.Wrap(runErr, "game exited with error")
	}

	// The game has exited; cleanup must not be skipped because ctx was cancelled.
	cleanErr := o.Cleanup(context.WithoutCancel(ctx), opts)

	if runErr != nil || cleanErr != nil {
		var result *multierror.Error
		if runErr != nil {
			result = multierror.Append(result, runErr)
		}
		if cleanErr != nil {
			result = multierror.Append(result, cleanErr)
		}
		return result.ErrorOrNil()
	}

	emit(o.Hooks, Event{Phase: "done", Msg: opts.GameDir})
	return nil
}

func (o *Orchestrator) sync(ctx context.Context, opts Options) ([]syncer.Result, error) {
	if o.Syncer == nil {
		return nil, fmt.Errorf("package syncer is not configured")
	}
	emit(o.Hooks, Event{Phase: "syncing", Msg: fmt.Sprintf("%d packages", len(opts.Packages))})
	return o.Syncer.EnsureAll(ctx, opts.Packages)
}

func (o *Orchestrator) hookContext(opts Options) hook.Context {
	return hook.Context{
		GameDir:   opts.GameDir,
		SourceDir: opts.SourceDir,
		ModsDir:   opts.ModsDir,
	}
}

func (o *Orchestrator) runHook(ctx context.Context, typ hook.Type, hctx hook.Context) error {
	if o.Scripts == nil {
		return nil
	}
	if err := o.Scripts.Execute(ctx, typ, hctx); err != nil {
		return errors.Wrapf(err, "%s hook failed", typ)
	}
	return nil
}

func allInstalled(opts Options) bool {
	for _, pkg := range opts.Packages {
		if _, ok := pkg.Installed(); !ok {
			return false
		}
	}
	return true
}
