package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskQuoteSendEmail = "offerte:send_email"

const TaskQuoteAcceptedEmail = "offerte:accepted_email"

const TaskQuoteArchive = "offerte:archive"

type QuoteSendEmailPayload struct {
	QuoteID        string `json:"quoteId"`
	OrganizationID string `json:"organizationId"`
}

type QuoteAcceptedEmailPayload struct {
	QuoteID        string `json:"quoteId"`
	OrganizationID string `json:"organizationId"`
}

type QuoteArchivePayload struct {
	QuoteID        string `json:"quoteId"`
	OrganizationID string `json:"organizationId"`
}

func NewQuoteSendEmailTask(payload QuoteSendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuoteSendEmail, data), nil
}

func ParseQuoteSendEmailPayload(task *asynq.Task) (QuoteSendEmailPayload, error) {
	var payload QuoteSendEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QuoteSendEmailPayload{}, err
	}
	return payload, nil
}

func NewQuoteAcceptedEmailTask(payload QuoteAcceptedEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuoteAcceptedEmail, data), nil
}

func ParseQuoteAcceptedEmailPayload(task *asynq.Task) (QuoteAcceptedEmailPayload, error) {
	var payload QuoteAcceptedEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QuoteAcceptedEmailPayload{}, err
	}
	return payload, nil
}

func NewQuoteArchiveTask(payload QuoteArchivePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuoteArchive, data), nil
}

func ParseQuoteArchivePayload(task *asynq.Task) (QuoteArchivePayload, error) {
	var payload QuoteArchivePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QuoteArchivePayload{}, err
	}
	return payload, nil
}
