// Package templatecache provides commit-pinned retrieval of notification
// template content from a hosted repository, with a bounded in-memory cache.
//
// Notification records pin the template they were rendered from to a
// specific commit. Previewing such a record means fetching the template file
// as it existed at that commit, not at the current tip. Content at a fixed
// commit is immutable, so repeated previews of the same record can be served
// from memory; this package exists to make that cheap.
//
// # Architecture
//
// The library is built on a few key pieces:
//
//  1. Client, the main entry point: path resolution, cache consultation,
//     and fallback policy for records without a pinned commit.
//  2. ContentProvider, the transport abstraction, with three concrete
//     implementations (REST, SDK, CLI).
//  3. A bounded FIFO content cache (package cache).
//  4. Consistent error handling using the workspace errors package: every
//     failure carries a user-safe message retrievable with errors.GetMessage.
//
// # Providers
//
// ## REST Provider (providers/rest)
//
// Talks to the hosting REST API directly with a plain http.Client. Smallest
// dependency surface; full control over headers and transport caching.
//
// ## SDK Provider (providers/sdk)
//
// Uses the official google/go-github SDK. Best for applications already
// using go-github or needing advanced authentication.
//
// ## CLI Provider (providers/cli)
//
// Shells out to the gh CLI and inherits its authentication. Best for
// scripts and environments where gh is already configured.
//
// # Usage
//
//	cfg, err := templatecache.FromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	provider, err := rest.New(
//	    rest.WithToken(cfg.Token),
//	    rest.WithBaseURL(cfg.APIBaseURL),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := templatecache.NewClient(provider, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	content, err := client.TemplateContentByCommit(ctx, "emails/welcome.pug", sha)
//	if err != nil {
//	    // errors.GetMessage(err) is safe to show to end users.
//	    return err
//	}
//
// # Caching
//
// The cache is keyed by (repository, resolved path, commit) and holds a
// fixed number of entries, evicting the oldest-inserted entry under
// capacity pressure. Reads never refresh an entry's eviction position.
// Latest-commit lookups are never cached.
//
// Concurrent duplicate fetches for the same key may each hit the network
// before either populates the cache; the content is identical, so this is
// an inefficiency rather than a race.
//
// # Testing
//
// The mocks package provides a moq-generated ContentProvider mock:
//
//	mock := &mocks.ContentProviderMock{
//	    FileContentFunc: func(ctx context.Context, owner, name, path, ref string) (string, error) {
//	        return "<html>preview</html>", nil
//	    },
//	}
//	client, err := templatecache.NewClient(mock, cfg)
package templatecache
