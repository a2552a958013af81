package es

import (
	"Inkstone/internal/api/config"
	"context"
	log "log/slog"

	"github.com/elastic/go-elasticsearch/v8"
)

var Client *elasticsearch.TypedClient

var PostIndex string

// InitClient 初始化 Elasticsearch 客户端
func InitClient() error {
	elasticCfg := config.Cfg.Elastic

	PostIndex = elasticCfg.PostIndex

	cfg := elasticsearch.Config{
		Addresses: []string{elasticCfg.Address},
		Username:  elasticCfg.Username,
		Password:  elasticCfg.Password,
	}

	var err error
	Client, err = elasticsearch.NewTypedClient(cfg)
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return err
	}

	info, err := Client.Info().Do(context.Background())
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return err
	}

	log.Info("Connected to Elasticsearch", "version", info.Version.Int)
	return nil
}
