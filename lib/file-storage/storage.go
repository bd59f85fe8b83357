package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type Provider interface {
	// Upload сохраняет файл вложения, возвращает ссылку на объект
	Upload(ctx context.Context, vacationRequestID, fileName, contentType string, fileReader io.Reader, fileSize int64) (url string, err error)
	Remove(ctx context.Context, url string) error
}

var Instance Provider

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func NewInstance(s3client *minio.Client, bucketName string) Provider {
	return &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

func (i impl) Upload(ctx context.Context, vacationRequestID, fileName, contentType string, fileReader io.Reader, fileSize int64) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := objectKey(vacationRequestID, fileName)
	_, err := i.s3client.PutObject(ctx, i.bucketName, key, fileReader, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}
	return i.urlPrefix() + key, nil
}

func (i impl) Remove(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, i.urlPrefix())
	if !ok {
		// внешняя ссылка, объект не наш
		return nil
	}
	err := i.s3client.RemoveObject(ctx, i.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления файла из хранилища")
	}
	return nil
}

func (i impl) urlPrefix() string {
	return i.s3client.EndpointURL().String() + "/" + i.bucketName + "/"
}

func objectKey(vacationRequestID, fileName string) string {
	return fmt.Sprintf("vacation/%s/%s%s", vacationRequestID, uuid.NewString(), strings.ToLower(path.Ext(fileName)))
}
