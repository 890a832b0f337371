package workers

import (
	"context"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/pkg/logger"
	"go.uber.org/zap"
)

const (
	defaultQueueSize = 100
	jobTimeout       = 90 * time.Second
)

type MealStore interface {
	Get(ctx context.Context, id string) (*domain.MealProfile, error)
	AttachImage(ctx context.Context, id, imageURL string) (bool, error)
}

type ImageRenderer interface {
	Render(ctx context.Context, mealName string) (string, error)
}

type ImageJob struct {
	MealID string
}

// ImageWorker generates images for library meals in the background. Work is
// best effort: failures are logged and the meal keeps no image.
type ImageWorker struct {
	meals    MealStore
	renderer ImageRenderer
	jobs     chan ImageJob
	log      *zap.Logger

	wg sync.WaitGroup
}

func NewImageWorker(meals MealStore, renderer ImageRenderer, queueSize int, log *zap.Logger) *ImageWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &ImageWorker{
		meals:    meals,
		renderer: renderer,
		jobs:     make(chan ImageJob, queueSize),
		log:      logger.Named(log, "worker.images"),
	}
}

func (w *ImageWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.log.Info("image worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.log.Info("image worker shutting down", zap.Int("pending", len(w.jobs)))
				return
			}
		}
	}()
}

// Wait blocks until the worker loop has exited.
func (w *ImageWorker) Wait() {
	w.wg.Wait()
}

// Enqueue never blocks; when the queue is full the job is dropped.
func (w *ImageWorker) Enqueue(mealID string) {
	select {
	case w.jobs <- ImageJob{MealID: mealID}:
	default:
		w.log.Warn("image queue full, dropping job", zap.String("meal_id", mealID))
	}
}

func (w *ImageWorker) processJob(ctx context.Context, job ImageJob) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	meal, err := w.meals.Get(ctx, job.MealID)
	if err != nil {
		w.log.Debug("meal gone before image generation", zap.String("meal_id", job.MealID), zap.Error(err))
		return
	}
	if meal.ImageURL != "" {
		return
	}

	url, err := w.renderer.Render(ctx, meal.Name)
	if err != nil {
		w.log.Warn("image generation failed", zap.String("meal", meal.Name), zap.Error(err))
		return
	}

	attached, err := w.meals.AttachImage(ctx, job.MealID, url)
	if err != nil {
		w.log.Warn("failed to store meal image", zap.String("meal_id", job.MealID), zap.Error(err))
		return
	}
	if attached {
		w.log.Info("meal image stored", zap.String("meal", meal.Name))
	}
}
