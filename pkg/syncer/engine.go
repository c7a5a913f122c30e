// Package syncer keeps locally installed packages in step with their
// release feeds. The stamp file is written only after a successful
// extraction, so an interrupted sync is repaired by the next one.
package syncer

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/archive"
	"github.com/glorpus-work/modlayer/pkg/download"
	"github.com/glorpus-work/modlayer/pkg/errors"
	"github.com/glorpus-work/modlayer/pkg/release"
)

// Engine syncs any number of package kinds with one set of collaborators.
type Engine struct {
	Feed      release.Fetcher
	DL        download.Manager
	Extractor archive.Extractor
	Hooks     Hooks
}

// NewEngine creates an Engine.
func NewEngine(feed release.Fetcher, dl download.Manager, extractor archive.Extractor) *Engine {
	return &Engine{Feed: feed, DL: dl, Extractor: extractor}
}

// Installed returns the stamped tag of pkg.
func (e *Engine) Installed(pkg Package) (string, bool) {
	return pkg.Installed()
}

// Check compares the installed tag with the published one without touching
// the filesystem.
func (e *Engine) Check(ctx context.Context, pkg Package) (Status, error) {
	rel, asset, err := e.resolve(ctx, pkg)
	if err != nil {
		return Status{}, err
	}
	installed, _ := e.Installed(pkg)
	return Status{
		Kind:      pkg.Kind,
		Installed: installed,
		Latest:    rel.TagName,
		Asset:     asset.Name,
		UpToDate:  installed == rel.TagName,
	}, nil
}

// EnsureCurrent brings pkg to the latest published release.
//
// When the stamp already names the latest tag nothing is downloaded or
// written. Otherwise the asset is downloaded to the cache, the install
// directory is replaced by the archive contents and the new tag is stamped.
// A failed download leaves the previous install untouched; a failed
// extraction leaves no stamp, so the next call starts over.
func (e *Engine) EnsureCurrent(ctx context.Context, pkg Package) (Result, error) {
	if err := validate(pkg); err != nil {
		return Result{}, err
	}
	fields := logger.Fields{"kind": pkg.Kind}

	previous, _ := e.Installed(pkg)

	rel, asset, err := e.resolve(ctx, pkg)
	if err != nil {
		emit(e.Hooks, Event{Phase: "error", Kind: pkg.Kind, Msg: err.Error()})
		return Result{}, err
	}
	tag := rel.TagName
	fields["tag"] = tag

	if previous == tag {
		logger.Debug("Package is current", fields)
		emit(e.Hooks, Event{Phase: "done", Kind: pkg.Kind, Msg: tag})
		return Result{Kind: pkg.Kind, Tag: tag, Previous: previous, State: StateCurrent, Path: pkg.InstallDir}, nil
	}

	logger.Info("Updating package", logger.Fields{"kind": pkg.Kind, "from": previous, "to": tag})

	emit(e.Hooks, Event{Phase: "downloading", Kind: pkg.Kind, Msg: asset.Name})
	archivePath, err := e.download(ctx, pkg, tag, asset)
	if err != nil {
		emit(e.Hooks, Event{Phase: "error", Kind: pkg.Kind, Msg: err.Error()})
		return Result{}, err
	}

	emit(e.Hooks, Event{Phase: "extracting", Kind: pkg.Kind, Msg: pkg.InstallDir})
	if err := e.replace(ctx, pkg, archivePath); err != nil {
		emit(e.Hooks, Event{Phase: "error", Kind: pkg.Kind, Msg: err.Error()})
		return Result{}, err
	}

	emit(e.Hooks, Event{Phase: "stamping", Kind: pkg.Kind, Msg: tag})
	if err := writeStamp(pkg.StampPath(), tag); err != nil {
		emit(e.Hooks, Event{Phase: "error", Kind: pkg.Kind, Msg: err.Error()})
		return Result{}, err
	}

	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove cached archive", logger.Fields{"kind": pkg.Kind, "path": archivePath, "error": err.Error()})
	}

	result := Result{
		Kind:      pkg.Kind,
		Tag:       tag,
		Previous:  previous,
		State:     StateUpdated,
		Direction: directionOf(previous, tag),
		Path:      pkg.InstallDir,
	}
	logger.Success("Package updated", logger.Fields{"kind": pkg.Kind, "tag": tag, "direction": string(result.Direction)})
	emit(e.Hooks, Event{Phase: "done", Kind: pkg.Kind, Msg: tag})
	return result, nil
}

// EnsureAll syncs pkgs one after another. The first failure stops the loop;
// results of the packages synced before it are returned with the error and
// are not rolled back.
func (e *Engine) EnsureAll(ctx context.Context, pkgs []Package) ([]Result, error) {
	results := make([]Result, 0, len(pkgs))
	for _, pkg := range pkgs {
		result, err := e.EnsureCurrent(ctx, pkg)
		if err != nil {
			return results, errors.Wrapf(err, "failed to sync %s", pkg.Kind)
		}
		results = append(results, result)
	}
	return results, nil
}

func (e *Engine) resolve(ctx context.Context, pkg Package) (*release.Release, *release.Asset, error) {
	emit(e.Hooks, Event{Phase: "resolving", Kind: pkg.Kind, Msg: pkg.FeedURL})
	if e.Feed == nil {
		return nil, nil, fmt.Errorf("release feed is not configured")
	}
	rel, err := e.Feed.Latest(ctx, pkg.FeedURL)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to resolve latest release of %s", pkg.Kind)
	}
	asset, err := rel.SelectAsset(pkg.AssetPrefix, pkg.AssetSuffix)
	if err != nil {
		return nil, nil, err
	}
	return rel, asset, nil
}

func (e *Engine) download(ctx context.Context, pkg Package, tag string, asset *release.Asset) (string, error) {
	if e.DL == nil {
		return "", fmt.Errorf("download manager is not configured")
	}
	u, err := url.Parse(asset.BrowserDownloadURL)
	if err != nil {
		return "", errors.Kind(errors.ErrDownloadFailed, errors.Wrapf(err, "invalid asset url %s", asset.BrowserDownloadURL))
	}
	path, err := e.DL.Fetch(ctx, download.Item{
		ID:       pkg.Kind,
		URL:      u,
		Filename: pkg.ArchiveName(tag),
	}, download.Options{Dir: pkg.CacheDir})
	if err != nil {
		if !errors.Is(err, errors.ErrDownloadFailed) {
			err = errors.Kind(errors.ErrDownloadFailed, err)
		}
		return "", err
	}
	return path, nil
}

// replace removes the old install and extracts archivePath in its place.
func (e *Engine) replace(ctx context.Context, pkg Package, archivePath string) error {
	if e.Extractor == nil {
		return fmt.Errorf("extractor is not configured")
	}
	if err := os.RemoveAll(pkg.InstallDir); err != nil {
		return errors.NewFilesystemError("remove", pkg.InstallDir, err)
	}
	if err := e.Extractor.ExtractAll(ctx, archivePath, pkg.InstallDir); err != nil {
		return errors.Kind(errors.ErrExtractFailed, err)
	}
	return nil
}

func validate(pkg Package) error {
	switch {
	case pkg.Kind == "":
		return fmt.Errorf("package kind is empty: %w", errors.ErrInvalidPath)
	case pkg.InstallDir == "":
		return fmt.Errorf("install dir of %s is empty: %w", pkg.Kind, errors.ErrInvalidPath)
	case pkg.CacheDir == "":
		return fmt.Errorf("cache dir of %s is empty: %w", pkg.Kind, errors.ErrInvalidPath)
	}
	return nil
}
