package minio

import (
	"Inkstone/internal/api/config"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

var (
	// Client 全局 MinIO 客户端实例
	Client *minio.Client
	// MainBucket 主要存储桶
	MainBucket string
	// TempBucket 临时存储桶
	TempBucket string
)

// Init 初始化 MinIO 客户端
func Init() error {
	cfg := config.Cfg.MinIO

	var endpoint string
	var useSSL bool
	if cfg.InternalEndpoint != "" {
		endpoint = cfg.InternalEndpoint
		useSSL = cfg.InternalUseSSL
	} else {
		endpoint = cfg.ExternalEndpoint
		useSSL = true
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	if _, err = client.ListBuckets(ctx); err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	Client = client
	MainBucket = cfg.MainBucket
	TempBucket = cfg.TempBucket
	return ensureTempBucketLifecycle(ctx)
}

// ensureTempBucketLifecycle 临时桶一天后自动过期
func ensureTempBucketLifecycle(ctx context.Context) error {
	lcConfig := lifecycle.NewConfiguration()
	lcConfig.Rules = []lifecycle.Rule{
		{
			ID:     "expire-temp-uploads",
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: 1,
			},
		},
	}
	return Client.SetBucketLifecycle(ctx, TempBucket, lcConfig)
}
