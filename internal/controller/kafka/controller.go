package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/orsoie/gallery-service/internal/dto"
	kafkapc "github.com/orsoie/gallery-service/internal/infrastructure/kafka"
	"github.com/orsoie/gallery-service/internal/usecase"
	"github.com/orsoie/gallery-service/pkg/logger"
)

// ThumbnailController drains the thumbnail task topic with a small worker
// pool and commits offsets only after a task has been fully handled.
type ThumbnailController struct {
	thumbs usecase.ThumbnailerUseCase
	tc     *kafkapc.TaskConsumer
	logger logger.Interface

	commitTimeout  time.Duration
	processTimeout time.Duration

	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	started atomic.Bool
}

func New(
	thumbs usecase.ThumbnailerUseCase,
	tc *kafkapc.TaskConsumer,
	l logger.Interface,
	commitTimeout time.Duration,
	processTimeout time.Duration,
	workers int,
) *ThumbnailController {
	return &ThumbnailController{
		thumbs:         thumbs,
		tc:             tc,
		logger:         l,
		commitTimeout:  commitTimeout,
		processTimeout: processTimeout,
		workers:        workers,
	}
}

func (c *ThumbnailController) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return fmt.Errorf("ThumbnailController - Start - controller already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)

	tasks := make(chan kafka.Message, c.workers*2)

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker(tasks)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(tasks)

		for {
			select {
			case <-c.ctx.Done():
				return
			default:
				msg, err := c.tc.ReadTask(c.ctx)
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						c.logger.Error(err, "ThumbnailController - Start - c.tc.ReadTask")
					}
					continue
				}

				select {
				case tasks <- msg:
				case <-c.ctx.Done():
					return
				}
			}
		}
	}()

	return nil
}

func (c *ThumbnailController) generate(ctx context.Context, msg kafka.Message) error {
	var task dto.ThumbnailTask
	err := json.Unmarshal(msg.Value, &task)
	if err != nil {
		return fmt.Errorf("ThumbnailController - generate - json.Unmarshal: %w", err)
	}

	err = c.thumbs.Generate(ctx, task)
	if err != nil {
		return fmt.Errorf("ThumbnailController - generate - c.thumbs.Generate: %w", err)
	}

	return nil
}

func (c *ThumbnailController) worker(tasks <-chan kafka.Message) {
	defer c.wg.Done()

	for msg := range tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error(fmt.Errorf("panic %v", r), "ThumbnailController - worker - panic")
				}
			}()

			processCtx, processCancel := context.WithTimeout(c.ctx, c.processTimeout)
			err := c.generate(processCtx, msg)
			processCancel()
			if err != nil {
				c.logger.Error(err, "ThumbnailController - worker - c.generate")
			}

			// Commit either way: a task that cannot be generated (corrupt
			// payload, undecodable image) would fail identically on redelivery.
			commitCtx, commitCancel := context.WithTimeout(c.ctx, c.commitTimeout)
			err = c.tc.CommitTask(commitCtx, msg)
			commitCancel()
			if err != nil {
				c.logger.Error(err, "ThumbnailController - worker - c.tc.CommitTask")
			}
		}()
	}
}

func (c *ThumbnailController) Shutdown(ctx context.Context) error {
	if !c.started.Load() {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})

	go func() {
		c.wg.Wait()
		c.tc.Close()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	}
}
