package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fediwatch/reporter/internal/cache"
	"github.com/fediwatch/reporter/internal/common"
	"github.com/fediwatch/reporter/internal/config"
	"github.com/fediwatch/reporter/internal/observability"
	"github.com/fediwatch/reporter/internal/relation"
	"github.com/fediwatch/reporter/internal/report"
	"github.com/fediwatch/reporter/internal/services/mastodon"
	"github.com/fediwatch/reporter/internal/services/webhook"
	"github.com/fediwatch/reporter/pkg/fedi"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

func main() {
	env := flag.String("env", ".env", "path to .env file")

	verbose := flag.Bool("verbose", false, "enable debug logging")

	flag.Parse()

	logger := observability.NewLogger(*verbose)
	defer logger.Sync()

	ctx := context.Background()

	conf, err := config.New(ctx, *env)
	if err != nil {
		logger.Fatal("resolving config", zap.Error(err))
	}

	if conf.SentryURL != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn: conf.SentryURL,
			// Set TracesSampleRate to 1.0 to capture 100%
			// of transactions for performance monitoring.
			// We recommend adjusting this value in production,
			TracesSampleRate: 1.0,
		})
		if err != nil {
			logger.Fatal("sentry.Init failed", zap.Error(err))
		}
		// Flush buffered events before the program terminates.
		defer sentry.Flush(2 * time.Second)
	}

	logger.Info("starting report",
		zap.String("server", conf.Server),
		zap.String("token", common.ShortenName(conf.AccessToken, 4)),
		zap.String("cache_policy", conf.CachePolicy),
		zap.Duration("cache_ttl", conf.CacheTTL),
	)

	// one reference time for the whole run; every freshness check is
	// judged against it
	now := time.Now()

	store, err := cache.NewStore(conf.CacheDir, now, cache.Policy(conf.CachePolicy), conf.CacheTTL, logger)
	if err != nil {
		logger.Fatal("opening cache store", zap.Error(err))
	}

	client := mastodon.NewClient(conf.Server, conf.AccessToken, conf.Timeout)

	messager := webhook.NewMessager(conf.DiscordURL, conf.Server, conf.DiscordURL != "")

	// zap's Fatal exits without running defers, so sentry is flushed here
	fail := func(message string, err error) {
		nerr := messager.NotifyError(ctx, err)
		if nerr != nil {
			logger.Warn("webhook notify failed", zap.Error(nerr))
		}
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		logger.Fatal(message, zap.Error(err))
	}

	summary, err := cache.Through(store, fedi.OpInstanceSummary, func() (*fedi.InstanceSummary, error) {
		inst, err := client.Instance(ctx)
		if err != nil {
			return nil, err
		}
		return fedi.SummarizeInstance(inst), nil
	})
	if err != nil {
		fail("fetching instance summary", err)
	}

	logger.Debug("instance", zap.String("uri", summary.URI), zap.String("title", summary.Title))

	me, err := cache.Through(store, fedi.OpMyInfo, func() (*fedi.Account, error) {
		return client.VerifyCredentials(ctx)
	})
	if err != nil {
		fail("verifying credentials", err)
	}

	logger.Debug("authenticated", zap.String("id", me.ID), zap.String("acct", me.Acct))

	followers, err := cache.Through(store, fedi.OpFollowers, func() ([]fedi.Account, error) {
		return client.Followers(ctx, me.ID)
	})
	if err != nil {
		fail("fetching followers", err)
	}

	logger.Info("fetched followers", zap.Int("count", len(followers)))

	following, err := cache.Through(store, fedi.OpFollowing, func() ([]fedi.Account, error) {
		return client.Following(ctx, me.ID)
	})
	if err != nil {
		fail("fetching following", err)
	}

	logger.Info("fetched following", zap.Int("count", len(following)))

	suspended, err := cache.Through(store, fedi.OpSuspended, func() ([]fedi.RelatedAccount, error) {
		return relation.SuspendedAcquaintances(followers, following)
	})
	if err != nil {
		fail("reconciling acquaintances", err)
	}

	rows, err := cache.Through(store, fedi.OpTableRows, func() ([]report.Row, error) {
		return report.Rows(suspended), nil
	})
	if err != nil {
		fail("projecting table rows", err)
	}

	report.Render(os.Stdout, rows)

	logger.Info(fmt.Sprintf("%d accounts appear to be suspended", len(rows)))

	err = messager.Notify(ctx, fmt.Sprintf("%d of my acquaintances on %s appear to be suspended", len(rows), summary.URI))
	if err != nil {
		logger.Warn("webhook notify failed", zap.Error(err))
	}
}
