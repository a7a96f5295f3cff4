package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/myrjola/soverain/internal/e2etest"
	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/logging"
)

const smokeProfile = "Smoke Test"

// TestJournal creates a profile, saves a scenario from the catalog and checks that the dashboard counts it.
func TestJournal(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()
	var err error

	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return errors.Wrap(err, "wait for healthy")
	}
	if _, err = client.SelectProfile(ctx, smokeProfile, "Keep the site running"); err != nil {
		return errors.Wrap(err, "select profile")
	}
	if _, err = client.SubmitForm(ctx, "/catalog?entry=0", "/scenarios",
		url.Values{"entry": {"0"}, "c": {"0.9"}, "h": {"0.9"}, "f": {"0.9"}}); err != nil {
		return errors.Wrap(err, "save scenario")
	}

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "get dashboard")
	}
	if got := strings.TrimSpace(doc.Find("[data-testid='active-profile']").Text()); got != smokeProfile {
		return errors.New("unexpected active profile", slog.String("profile", got))
	}
	if got := strings.TrimSpace(doc.Find("[data-testid='scenario-count']").Text()); got != "1" {
		return errors.New("unexpected scenario count", slog.String("count", got))
	}
	if got := strings.TrimSpace(doc.Find("[data-testid='last-score']").Text()); got != "9" {
		return errors.New("unexpected last score", slog.String("score", got))
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		siteURL  = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	if strings.HasPrefix(hostname, "localhost") || strings.HasPrefix(hostname, "127.0.0.1") {
		siteURL = "http://" + hostname
	}
	ctx = logging.WithAttrs(ctx, slog.String("hostname", siteURL))

	if client, err = e2etest.NewClient(siteURL); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestJournal(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing journal", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
