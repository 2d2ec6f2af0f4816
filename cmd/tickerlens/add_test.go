package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tickerlens/tickerlens"
	main "github.com/tickerlens/tickerlens/cmd/tickerlens"
	"github.com/tickerlens/tickerlens/crawl"
	"github.com/tickerlens/tickerlens/mock"
)

func TestAddCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports crawl outcome counts", func(t *testing.T) {
		t.Parallel()

		crawler := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "<html></html>", nil
				},
			},
			Normalizer: &mock.Normalizer{
				NormalizeFn: func(_ string, sourceURL string) (*tickerlens.Document, error) {
					return &tickerlens.Document{
						URL:      sourceURL,
						Host:     "a.com",
						Title:    "t",
						BodyText: strings.Repeat("body text ", 20),
					}, nil
				},
			},
			Links: &mock.LinkExtractor{
				ExtractLinksFn: func(string, string) ([]string, error) {
					return nil, nil
				},
			},
			Documents: &mock.DocumentService{
				InsertDocumentFn: func(context.Context, *tickerlens.Document, bool) error {
					return nil
				},
			},
			RetryDelays: []time.Duration{0},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Crawler: crawler,
		}

		cmd := &main.AddCmd{URL: "https://a.com/news", Depth: 0}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved 1 articles")
	})

	t.Run("invalid seed URL is an error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Crawler: &crawl.Crawler{},
		}

		cmd := &main.AddCmd{URL: "not a url", Depth: 0}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.NotEmpty(t, stderr.String())
	})
}
