package lock

import (
	"context"
	"sync"
	"time"
)

const retryDelay = 20 * time.Millisecond

var (
	lockMap sync.Map
)

// WithDelay выполняет safeCode под блокировкой ключа.
// Ожидает освобождения ключа не дольше wait, success=false если дождаться не удалось
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isTimeout := time.NewTimer(wait)
	defer isTimeout.Stop()
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			break
		}
		select {
		case <-isTimeout.C:
			return false, nil
		case <-ctx.Done():
			return false, nil
		case <-time.After(retryDelay):
		}
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}

func RoomKey(roomID string) string {
	return "room:" + roomID
}

func EmployeeKey(employeeID string) string {
	return "employee:" + employeeID
}
