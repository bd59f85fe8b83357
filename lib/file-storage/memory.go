package filestorage

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
)

const memoryURLPrefix = "memory://"

// Memory хранение файлов в памяти, когда s3 не настроен
type Memory struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{
		files: map[string][]byte{},
	}
}

func (m *Memory) Upload(ctx context.Context, vacationRequestID, fileName, contentType string, fileReader io.Reader, fileSize int64) (string, error) {
	body, err := io.ReadAll(io.LimitReader(fileReader, fileSize))
	if err != nil {
		return "", errors.Wrap(err, "ошибка чтения файла")
	}
	url := memoryURLPrefix + objectKey(vacationRequestID, fileName)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[url] = body
	return url, nil
}

func (m *Memory) Remove(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, url)
	return nil
}

func (m *Memory) Get(url string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.files[url]
	return body, ok
}
