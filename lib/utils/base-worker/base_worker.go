package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(WorkerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    WorkerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

// Run запускает jobFunc с периодом runInterval до отмены ctx
func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context)) {
	logger := i.GetLogger()
	timer := time.NewTimer(i.firstRunDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Задача остановлена")
			return
		case <-timer.C:
			i.runJob(ctx, jobFunc)
			timer.Reset(i.runInterval)
		}
	}
}

// runJob паника в задаче не останавливает воркер
func (i BaseImpl) runJob(ctx context.Context, jobFunc func(ctx context.Context)) {
	logger := i.GetLogger()
	defer func() {
		if r := recover(); r != nil {
			logger.
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	logger.Debug("Задача запущена")
	jobFunc(ctx)
	logger.Debug("Задача выполнена")
}
