package minio

import (
	"Inkstone/internal/api/config"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
)

// UploadFile 上传文件到MinIO
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, MainBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, MainBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// CleanTempObjects 删除临时桶中早于截止时间的对象，返回删除数
func CleanTempObjects(ctx context.Context, before time.Time) (int, error) {
	if Client == nil {
		return 0, fmt.Errorf("minio client is not initialized")
	}

	removed := 0
	for obj := range Client.ListObjects(ctx, TempBucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return removed, fmt.Errorf("failed to list temp objects: %w", obj.Err)
		}
		if !obj.LastModified.Before(before) {
			continue
		}
		if err := Client.RemoveObject(ctx, TempBucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to delete temp object: %w", err)
		}
		removed++
	}
	return removed, nil
}

// GetPublicURL 获取文件的公共访问URL
func GetPublicURL(objectName string) string {
	if objectName == "" {
		return ""
	}
	cfg := config.Cfg.MinIO

	return fmt.Sprintf("https://%s/%s/%s", cfg.ExternalEndpoint, MainBucket, objectName)
}
