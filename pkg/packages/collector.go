package packages

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cperrin88/vpmsync/internal/logger"
	"github.com/cperrin88/vpmsync/pkg/config"
	"github.com/cperrin88/vpmsync/pkg/model"
	"github.com/cperrin88/vpmsync/pkg/repository"
	"github.com/cperrin88/vpmsync/pkg/userpackage"
)

// Built-in repository display names.
const (
	OfficialName = "Official"
	CuratedName  = "Curated"
)

// source is a repository whose document contributes to a snapshot.
type source struct {
	id        string
	url       string
	name      string
	headers   model.Headers
	localPath string
}

// Collector builds snapshot entries from the document store, refreshing
// documents from the network when they are missing or stale.
type Collector struct {
	store   *repository.Store
	fetcher *repository.Fetcher
}

// NewCollector creates a collector reading and refreshing documents in store.
func NewCollector(store *repository.Store, fetcher *repository.Fetcher) *Collector {
	return &Collector{store: store, fetcher: fetcher}
}

// Collect returns the entries of every enabled repository followed by the
// local user packages. Within a repository packages are ordered by name and
// versions newest first. Yanked versions are left out, and prereleases unless
// the settings ask for them.
func (c *Collector) Collect(ctx context.Context, cfg *config.Config, force bool) ([]Entry, error) {
	sources := sourcesOf(cfg)
	docs := make([]*model.Document, len(sources))

	limit := cfg.Settings.MaxConcurrent
	if limit < 1 {
		limit = repository.DefaultMaxConcurrent
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs[i] = c.document(gctx, src, force, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	includePrerelease := cfg.ShowPrereleasePackages()
	entries := []Entry{}
	for i, src := range sources {
		doc := docs[i]
		if doc == nil {
			continue
		}
		ident := repository.Resolve(doc, src.url)
		id, name := ident.ID, ident.DisplayName
		if src.id != "" {
			id = src.id
		}
		if src.name != "" {
			name = src.name
		}
		origin := Remote(id, name)
		for _, pkgName := range doc.PackageNames() {
			for _, manifest := range doc.Packages[pkgName].Sorted(includePrerelease) {
				entries = append(entries, Entry{Manifest: manifest, Source: origin})
			}
		}
	}

	for _, pkg := range userpackage.Collect(cfg.UserPackages) {
		entries = append(entries, Entry{Manifest: pkg.Manifest, Source: LocalUser(pkg.Path)})
	}
	return entries, nil
}

// document returns the document of src, refreshed when needed. A failed
// refresh falls back to the cached copy; a repository with neither is
// skipped.
func (c *Collector) document(ctx context.Context, src source, force bool, cfg *config.Config) *model.Document {
	fields := logger.Fields{"id": src.id, "url": src.url}
	if force || c.store.IsStale(src.localPath, cfg.Settings.CacheTTL) {
		doc, err := c.refresh(ctx, src)
		if err == nil {
			return doc
		}
		if ctx.Err() != nil {
			return nil
		}
		logger.Warn("failed to refresh repository, using cached copy", fields, logger.Fields{"error": err.Error()})
	}

	doc, err := c.store.Read(src.localPath)
	if err != nil {
		logger.Warn("skipping repository", fields, logger.Fields{"error": err.Error()})
		return nil
	}
	return doc
}

func (c *Collector) refresh(ctx context.Context, src source) (*model.Document, error) {
	u, err := repository.ParseURL(src.url)
	if err != nil {
		return nil, err
	}
	doc, raw, err := c.fetcher.Download(ctx, u, src.headers)
	if err != nil {
		return nil, err
	}
	if err := c.store.Write(src.localPath, raw); err != nil {
		logger.Warn("failed to store repository document", logger.Fields{"id": src.id, "error": err.Error()})
	}
	logger.Debug("refreshed repository", logger.Fields{"url": src.url, "packages": len(doc.Packages)})
	return doc, nil
}

// sourcesOf lists the repositories of cfg: the official repository, the
// curated repository, then the user repositories in config order.
func sourcesOf(cfg *config.Config) []source {
	var sources []source
	if !cfg.IgnoreOfficialRepository() {
		sources = append(sources, source{
			id:        repository.OfficialID,
			url:       repository.OfficialURL,
			name:      OfficialName,
			localPath: repository.OfficialLocalPath,
		})
	}
	if !cfg.IgnoreCuratedRepository() {
		sources = append(sources, source{
			id:        repository.CuratedID,
			url:       repository.CuratedURL,
			name:      CuratedName,
			localPath: repository.CuratedLocalPath,
		})
	}
	for _, repo := range cfg.GetUserRepos() {
		localPath := repo.LocalPath
		if localPath == "" {
			localPath = repository.DerivedLocalPath(repo.URL)
		}
		sources = append(sources, source{
			id:        repo.ID,
			url:       repo.URL,
			name:      repo.Name,
			headers:   repo.Headers,
			localPath: localPath,
		})
	}
	return sources
}
