package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"offerte-engine-backend/internal/email"
	"offerte-engine-backend/internal/exports"
	offertesrepo "offerte-engine-backend/internal/offertes/repository"
	"offerte-engine-backend/internal/storage"
	"offerte-engine-backend/platform/config"
	"offerte-engine-backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WorkerConfig bundles the configuration surfaces the worker needs.
type WorkerConfig interface {
	config.SchedulerConfig
	config.PublicLinkConfig
	config.SMTPConfig
	config.StorageConfig
}

type Worker struct {
	server      *asynq.Server
	mux         *asynq.ServeMux
	quotes      *offertesrepo.Repo
	exports     *exports.Repository
	sender      email.Sender
	store       storage.ArchiveStore
	bucket      string
	baseURL     string
	companyName string
	officeEmail string
	log         *logger.Logger
}

func NewWorker(cfg WorkerConfig, pool *pgxpool.Pool, sender email.Sender, store storage.ArchiveStore, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:      server,
		mux:         mux,
		quotes:      offertesrepo.New(pool),
		exports:     exports.NewRepository(pool),
		sender:      sender,
		store:       store,
		bucket:      cfg.GetMinioBucketOfferteExports(),
		baseURL:     strings.TrimRight(cfg.GetAppBaseURL(), "/"),
		companyName: cfg.GetEmailFromName(),
		officeEmail: cfg.GetEmailFromAddress(),
		log:         log,
	}

	mux.HandleFunc(TaskQuoteSendEmail, w.handleQuoteSendEmail)
	mux.HandleFunc(TaskQuoteAcceptedEmail, w.handleQuoteAcceptedEmail)
	mux.HandleFunc(TaskQuoteArchive, w.handleQuoteArchive)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleQuoteSendEmail mails the customer the magic link to the public
// proposal page. Quotes that moved on from verzonden are skipped.
func (w *Worker) handleQuoteSendEmail(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseQuoteSendEmailPayload(task)
	if err != nil {
		return err
	}

	quoteID, orgID, err := parseIDs(payload.QuoteID, payload.OrganizationID)
	if err != nil {
		return err
	}

	quote, err := w.quotes.GetByID(ctx, quoteID, orgID)
	if err != nil {
		return err
	}

	if quote.Status != "verzonden" {
		return nil
	}
	if quote.PublicToken == nil || *quote.PublicToken == "" {
		w.log.Warn("quote has no public token, skipping proposal mail",
			"quoteId", quote.ID, "quoteNumber", quote.QuoteNumber)
		return nil
	}

	proposalURL := fmt.Sprintf("%s/offerte/%s", w.baseURL, *quote.PublicToken)
	if err := w.sender.SendQuoteProposalEmail(ctx, quote.CustomerEmail, quote.CustomerName, w.companyName, quote.QuoteNumber, proposalURL); err != nil {
		return err
	}

	w.log.Info("quote proposal mail sent",
		"quoteId", quote.ID,
		"quoteNumber", quote.QuoteNumber,
	)
	return nil
}

// handleQuoteAcceptedEmail notifies the office and thanks the customer.
// The thank-you carries the quote workbook when it can be rendered.
func (w *Worker) handleQuoteAcceptedEmail(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseQuoteAcceptedEmailPayload(task)
	if err != nil {
		return err
	}

	quoteID, orgID, err := parseIDs(payload.QuoteID, payload.OrganizationID)
	if err != nil {
		return err
	}

	quote, err := w.exports.GetQuoteForExport(ctx, quoteID, orgID)
	if err != nil {
		return err
	}
	if quote.Status != "geaccepteerd" {
		return nil
	}

	if w.officeEmail != "" {
		if err := w.sender.SendQuoteAcceptedEmail(ctx, w.officeEmail, quote.QuoteNumber, quote.CustomerName, quote.InclVat); err != nil {
			return err
		}
	}

	var attachments []email.Attachment
	if content, err := exports.BuildQuoteWorkbook(quote); err == nil {
		attachments = append(attachments, email.Attachment{
			Content:  content,
			FileName: fmt.Sprintf("offerte-%s.xlsx", quote.QuoteNumber),
			MIMEType: xlsxContentType,
		})
	} else {
		w.log.Warn("workbook render failed, thank-you mail goes without attachment",
			"quoteId", quote.ID, "error", err)
	}

	if err := w.sender.SendQuoteThankYouEmail(ctx, quote.CustomerEmail, quote.CustomerName, w.companyName, quote.QuoteNumber, attachments...); err != nil {
		return err
	}

	w.log.Info("quote accepted mails sent",
		"quoteId", quote.ID,
		"quoteNumber", quote.QuoteNumber,
	)
	return nil
}

// handleQuoteArchive renders the workbook and stores it in object storage.
func (w *Worker) handleQuoteArchive(ctx context.Context, task *asynq.Task) error {
	if w.store == nil {
		return nil
	}

	payload, err := ParseQuoteArchivePayload(task)
	if err != nil {
		return err
	}

	quoteID, orgID, err := parseIDs(payload.QuoteID, payload.OrganizationID)
	if err != nil {
		return err
	}

	quote, err := w.exports.GetQuoteForExport(ctx, quoteID, orgID)
	if err != nil {
		return err
	}

	content, err := exports.BuildQuoteWorkbook(quote)
	if err != nil {
		return err
	}

	fileName := exports.ArchiveFileName(quote.QuoteNumber, quote.CreatedAt)
	fileKey, err := w.store.UploadFile(ctx, w.bucket, orgID.String(), fileName, xlsxContentType, bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return err
	}

	if err := w.exports.SetArchiveKey(ctx, quoteID, orgID, fileKey); err != nil {
		return err
	}

	w.log.Info("quote archived",
		"quoteId", quote.ID,
		"quoteNumber", quote.QuoteNumber,
		"fileKey", fileKey,
	)
	return nil
}

func parseIDs(quoteID, organizationID string) (uuid.UUID, uuid.UUID, error) {
	id, err := uuid.Parse(quoteID)
	if err != nil {
		return uuid.UUID{}, uuid.UUID{}, err
	}
	orgID, err := uuid.Parse(organizationID)
	if err != nil {
		return uuid.UUID{}, uuid.UUID{}, err
	}
	return id, orgID, nil
}
