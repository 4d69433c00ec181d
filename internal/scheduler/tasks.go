// Package scheduler owns the asynq email queue: task definitions, the
// enqueue client, and the worker that delivers queued mail.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadWelcomeEmail = "emails.lead_welcome"

const TaskSalesAlertEmail = "emails.sales_alert"

type LeadWelcomePayload struct {
	LeadID          string `json:"leadId"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	PropertyAddress string `json:"propertyAddress"`
}

type SalesAlertPayload struct {
	LeadID          string `json:"leadId"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	PropertyAddress string `json:"propertyAddress"`
}

func NewLeadWelcomeTask(payload LeadWelcomePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadWelcomeEmail, data), nil
}

func ParseLeadWelcomePayload(task *asynq.Task) (LeadWelcomePayload, error) {
	var payload LeadWelcomePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadWelcomePayload{}, err
	}
	return payload, nil
}

func NewSalesAlertTask(payload SalesAlertPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSalesAlertEmail, data), nil
}

func ParseSalesAlertPayload(task *asynq.Task) (SalesAlertPayload, error) {
	var payload SalesAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SalesAlertPayload{}, err
	}
	return payload, nil
}
