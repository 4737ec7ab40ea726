package jobs

import (
	"context"
	"fmt"
	"time"

	"folio/internal/db"
	"folio/internal/storage"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	taskPurgeDeleted = "maintenance:purge"
	taskMediaSweep   = "media:sweep"

	// Soft-deleted rows stay restorable for this long before the purge job
	// removes them for good.
	purgeRetention = 30 * 24 * time.Hour

	// Fresh uploads get this grace period before the sweep may collect them,
	// so an upload is never removed between storing it and saving the row
	// that references it.
	sweepGrace = 24 * time.Hour

	purgeInterval = 24 * time.Hour
	sweepInterval = 6 * time.Hour
)

// JobServer runs the background maintenance tasks: purging soft-deleted rows
// past retention and sweeping media no row references.
type JobServer struct {
	server *asynq.Server
	client *asynq.Client
	db     *db.Pool
	media  *storage.MediaStore
	log    *zap.Logger
}

func NewJobServer(redisAddr string, dbPool *db.Pool, media *storage.MediaStore, log *zap.Logger) (*JobServer, *asynq.Client) {
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 3,
				"low":     1,
			},
		},
	)

	client := asynq.NewClient(redisOpt)

	return &JobServer{
		server: server,
		client: client,
		db:     dbPool,
		media:  media,
		log:    log,
	}, client
}

func (js *JobServer) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(taskPurgeDeleted, js.handlePurge)
	mux.HandleFunc(taskMediaSweep, js.handleSweep)

	if err := js.server.Start(mux); err != nil {
		return err
	}

	// Kick off the recurring cycle; each handler re-enqueues itself.
	if err := SchedulePurge(js.client, time.Minute); err != nil {
		return fmt.Errorf("schedule purge: %w", err)
	}
	if err := ScheduleMediaSweep(js.client, time.Minute); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	return nil
}

func (js *JobServer) Stop() {
	js.server.Shutdown()
	js.client.Close()
}

func (js *JobServer) handlePurge(ctx context.Context, t *asynq.Task) error {
	removed, err := js.db.Queries.PurgeSoftDeleted(ctx, purgeRetention)
	if err != nil {
		return fmt.Errorf("failed to purge rows: %w", err)
	}
	js.log.Info("Purged soft-deleted rows", zap.Int64("rows", removed))

	return SchedulePurge(js.client, purgeInterval)
}

func (js *JobServer) handleSweep(ctx context.Context, t *asynq.Task) error {
	referenced, err := js.db.Queries.ListReferencedMediaURLs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list referenced media: %w", err)
	}
	inUse := make(map[string]bool, len(referenced))
	for _, u := range referenced {
		inUse[u] = true
	}

	objects, err := js.media.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stored media: %w", err)
	}

	var removed int
	for _, obj := range objects {
		if inUse[obj.URL] || time.Since(obj.ModTime) < sweepGrace {
			continue
		}
		if err := js.media.Delete(ctx, obj.Name); err != nil {
			js.log.Warn("Failed to remove orphaned media",
				zap.String("object", obj.Name), zap.Error(err))
			continue
		}
		removed++
	}
	js.log.Info("Swept orphaned media", zap.Int("removed", removed), zap.Int("total", len(objects)))

	return ScheduleMediaSweep(js.client, sweepInterval)
}

func SchedulePurge(client *asynq.Client, in time.Duration) error {
	task := asynq.NewTask(taskPurgeDeleted, nil)
	_, err := client.Enqueue(task, asynq.ProcessIn(in), asynq.Queue("low"))
	return err
}

func ScheduleMediaSweep(client *asynq.Client, in time.Duration) error {
	task := asynq.NewTask(taskMediaSweep, nil)
	_, err := client.Enqueue(task, asynq.ProcessIn(in), asynq.Queue("low"))
	return err
}
