package initializers

import (
	"booking-backend/config"
	filestorage "booking-backend/lib/file-storage"
	s3client "booking-backend/s3"
	"context"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 не настроен, вложения хранятся в памяти")
		filestorage.Instance = filestorage.NewMemory()
		return
	}
	minioClient, err := s3client.NewClient(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		panic(err.Error())
	}
	filestorage.Instance = filestorage.NewInstance(minioClient, config.Conf.S3.BucketName)
	log.Info("S3 клиент успешно инициализирован")
}
