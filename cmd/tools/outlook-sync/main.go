// cmd/tools/outlook-sync/main.go
//
// One-shot Outlook mailbox sweep. Fetches unread messages, ingests resume
// attachments and exits. Intended for cron or manual runs; the API server
// exposes the same operation behind an admin endpoint.
package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"talenthub/internal/common/config"
	"talenthub/internal/common/database"
	"talenthub/internal/common/logger"
	"talenthub/internal/common/msgraph"
	"talenthub/internal/outlook"
	"talenthub/internal/resume"
	"talenthub/internal/search"
	"talenthub/internal/store"
)

func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "overall run deadline")
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}
	if !cfg.Integrations.Outlook.Enabled {
		zapLog.Fatal("outlook integration is disabled in config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pg.Close()

	var esClient *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled {
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Fatal("elasticsearch connection failed", zap.Error(err))
		}
	}

	resumes := store.NewResumeStore(pg.DB, log)
	index := search.NewResumeIndex(esClient, log)
	parser := resume.NewParser()

	graph := msgraph.NewClient(
		cfg.Integrations.Outlook.TenantID,
		cfg.Integrations.Outlook.ClientID,
		cfg.Integrations.Outlook.ClientSecret,
	)

	// SNS notification is skipped for manual runs.
	svc := outlook.NewService(graph, cfg.Integrations.Outlook.Mailbox,
		cfg.Integrations.Outlook.MaxMessages, parser, resumes, index, nil, "", log)

	result, err := svc.Sync(ctx)
	if err != nil {
		zapLog.Fatal("sync failed", zap.Error(err))
	}
	zapLog.Info("sync completed",
		zap.Int("messagesSeen", result.MessagesSeen),
		zap.Int("messagesMatched", result.MessagesMatched),
		zap.Int("resumesIngested", result.ResumesIngested),
		zap.Int("attachmentsFailed", result.AttachmentsFailed),
	)
}
