package fetchers

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"echolens/internal/logger"
)

// Options configures the classifier client
type Options struct {
	PredictURL string
	CSVURL     string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
}

// DataFetcher talks to the remote classification API and the optional fact feed
type DataFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
	log    *logger.Logger

	predictURL string
	csvURL     string

	classifier *ClassifierFetcher
	facts      *FactFetcher
}

// NewDataFetcher creates a new data fetcher instance
func NewDataFetcher(opts Options) *DataFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 2 * time.Second
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(opts.RetryCount)
	client.SetRetryWaitTime(opts.RetryWait)
	// rewind multipart files before each retry
	client.SetRetryResetReaders(true)
	client.SetHeader("User-Agent", "echolens")

	log := logger.GetGlobalLogger().WithComponent("fetchers")
	parser := gofeed.NewParser()

	return &DataFetcher{
		client:     client,
		parser:     parser,
		log:        log,
		predictURL: opts.PredictURL,
		csvURL:     opts.CSVURL,
		classifier: NewClassifierFetcher(client, log),
		facts:      NewFactFetcher(client, parser),
	}
}
