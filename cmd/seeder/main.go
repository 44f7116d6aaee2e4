package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"travelguide/internal/adapters/apiclient"
	"travelguide/internal/adapters/observability"
	"travelguide/internal/domain"
	"travelguide/internal/shared"
)

// seedFile is the seeder's input. Comments point at destinations and users
// by their zero-based position in this file, since the server picks the ids.
type seedFile struct {
	Destinations []domain.Destination `json:"destinations"`
	Users        []domain.User        `json:"users"`
	Comments     []seedComment        `json:"comments"`
}

type seedComment struct {
	Destination *int    `json:"destination,omitempty"`
	User        *int    `json:"user,omitempty"`
	Text        *string `json:"text,omitempty"`
}

type creator interface {
	CreateDestination(ctx context.Context, d domain.Destination) (domain.Destination, error)
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error)
}

var _ creator = (*apiclient.Client)(nil)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	for _, k := range cfg.Ignored {
		log.Warn().Str("key", k).Msg("ignoring non-numeric setting")
	}

	log.Info().
		Str("base", cfg.APIBaseURL).
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("read seed file failed")
	}
	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}

	client, err := apiclient.New(cfg.APIBaseURL, cfg.SeedRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize API client")
	}

	if failed := seed(ctx, client, data, cfg.SeedWorkers); failed > 0 {
		log.Fatal().Int64("failed", failed).Msg("seeding finished with errors")
	}
	log.Info().Msg("seeding completed")
}

// seed posts destinations, then users, then comments with their file
// positions mapped to the ids the server assigned. It returns the number of
// records that could not be created.
func seed(ctx context.Context, c creator, data seedFile, workers int) int64 {
	destIDs, failed := run(ctx, workers, "destination", data.Destinations, func(ctx context.Context, d domain.Destination) (int64, error) {
		out, err := c.CreateDestination(ctx, d)
		return out.ID, err
	})
	userIDs, n := run(ctx, workers, "user", data.Users, func(ctx context.Context, u domain.User) (int64, error) {
		out, err := c.CreateUser(ctx, u)
		return out.ID, err
	})
	failed += n

	comments := make([]domain.Comment, 0, len(data.Comments))
	for i, sc := range data.Comments {
		destID, err := resolve(sc.Destination, destIDs)
		if err == nil {
			var userID *int64
			if userID, err = resolve(sc.User, userIDs); err == nil {
				comments = append(comments, domain.Comment{DestinationID: destID, UserID: userID, Text: sc.Text})
				continue
			}
		}
		failed++
		log.Warn().Int("comment", i).Err(err).Msg("skipping comment")
	}

	_, n = run(ctx, workers, "comment", comments, func(ctx context.Context, cm domain.Comment) (int64, error) {
		out, err := c.CreateComment(ctx, cm)
		return out.ID, err
	})
	return failed + n
}

// resolve maps a file position to the created record's id. A nil ref stays
// absent.
func resolve(ref *int, ids []int64) (*int64, error) {
	if ref == nil {
		return nil, nil
	}
	if *ref < 0 || *ref >= len(ids) {
		return nil, fmt.Errorf("reference %d out of range", *ref)
	}
	if ids[*ref] == 0 {
		return nil, fmt.Errorf("referenced record %d was not created", *ref)
	}
	id := ids[*ref]
	return &id, nil
}

// run posts every item with at most workers requests in flight. ids holds
// the id assigned to items[i], or 0 where the create failed.
func run[T any](ctx context.Context, workers int, kind string, items []T, create func(context.Context, T) (int64, error)) (ids []int64, failed int64) {
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var nfailed atomic.Int64
	ids = make([]int64, len(items))

	for i, it := range items {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Error().Err(err).Str("kind", kind).Msg("stopped before all creates were sent")
			nfailed.Add(int64(len(items) - i))
			break
		}
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			defer sem.Release(1)

			id, err := create(ctx, item)
			if err != nil {
				nfailed.Add(1)
				log.Warn().Str("kind", kind).Int("index", i).Err(err).Msg("create failed")
				return
			}
			ids[i] = id
			log.Debug().Str("kind", kind).Int64("id", id).Msg("created")
		}(i, it)
	}

	wg.Wait()
	failed = nfailed.Load()
	log.Info().Str("kind", kind).Int("total", len(items)).Int64("failed", failed).Msg("phase done")
	return ids, failed
}
