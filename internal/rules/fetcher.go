package rules

import (
	"context"
	"io"
	"net/http"
	"os"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fourthandlong/playoffpool/internal/config"
)

func Fetch(url string) (*Rulebook, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to fetch rulebook")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("Failed to fetch rulebook: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read response")
	}

	return Parse(body)
}

func Load(path string) (*Rulebook, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read rulebook")
	}
	return Parse(body)
}

// Fetcher keeps an atomically swapped rulebook snapshot, reloaded from the
// configured url or file on a timer. Without a source it serves the defaults.
type Fetcher struct {
	current atomic.Value

	config *config.Config
	logger *zap.Logger
}

func NewFetcher(config *config.Config, logger *zap.Logger) (*Fetcher, error) {
	fetcher := &Fetcher{
		config: config,
		logger: logger,
	}

	if err := fetcher.reload(); err != nil {
		return nil, err
	}

	if fetcher.current.Load() == nil {
		panic("No rulebook found after reload")
	}

	return fetcher, nil
}

func (f *Fetcher) Run(ctx context.Context) {
	if f.config.PullIntervals.Rules == nil {
		return
	}
	tick := time.Tick(*f.config.PullIntervals.Rules)

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			f.reload()
		}
	}
}

func (f *Fetcher) reload() error {
	f.logger.Debug("Start rulebook fetcher iteration")
	defer f.logger.Debug("Finish rulebook fetcher iteration")

	book, err := f.resolve()
	if err != nil {
		f.logger.Error("Failed to reload rulebook", zap.Error(err))
		return errors.Wrap(err, "Failed to reload rulebook")
	}

	prev := f.current.Swap(book)
	if !reflect.DeepEqual(prev, book) {
		f.logger.Info("Updated rulebook")
	}

	return nil
}

func (f *Fetcher) resolve() (*Rulebook, error) {
	switch {
	case f.config.Rules.URL != "":
		return Fetch(f.config.Rules.URL)
	case f.config.Rules.Path != "":
		return Load(f.config.Rules.Path)
	default:
		return Default(), nil
	}
}

func (f *Fetcher) Rulebook() *Rulebook {
	cur := f.current.Load()
	if cur == nil {
		return nil
	}
	return cur.(*Rulebook)
}
