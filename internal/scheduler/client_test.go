package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type fakeSchedulerConfig struct {
	redisURL string
}

func (f fakeSchedulerConfig) GetRedisURL() string       { return f.redisURL }
func (f fakeSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (f fakeSchedulerConfig) GetAsynqQueueName() string { return "emails" }
func (f fakeSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(fakeSchedulerConfig{}); err == nil {
		t.Fatal("want error when redis url is empty")
	}
}

func TestClientEnqueuesEmailTasks(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(fakeSchedulerConfig{redisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	err = client.EnqueueLeadWelcome(ctx, LeadWelcomePayload{
		LeadID:          "lead-1",
		Email:           "ava@example.com",
		FirstName:       "Ava",
		PropertyAddress: "1 Sunny Rd, AZ, 85001, Phoenix, USA",
	})
	if err != nil {
		t.Fatalf("EnqueueLeadWelcome failed: %v", err)
	}

	err = client.EnqueueSalesAlert(ctx, SalesAlertPayload{
		LeadID:   "lead-1",
		FullName: "Ava Nguyen",
		Email:    "ava@example.com",
		Phone:    "+16025550134",
	})
	if err != nil {
		t.Fatalf("EnqueueSalesAlert failed: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks("emails")
	if err != nil {
		t.Fatalf("ListPendingTasks failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending tasks = %d, want 2", len(pending))
	}

	types := map[string]int{}
	for _, task := range pending {
		types[task.Type]++
		if task.MaxRetry != maxEmailRetries {
			t.Fatalf("task %s MaxRetry = %d, want %d", task.Type, task.MaxRetry, maxEmailRetries)
		}
	}
	if types[TaskLeadWelcomeEmail] != 1 || types[TaskSalesAlertEmail] != 1 {
		t.Fatalf("unexpected task types: %v", types)
	}
}

func TestEmailRetryDelaySchedule(t *testing.T) {
	cases := []struct {
		attempt int
		want    string
	}{
		{1, "30s"},
		{2, "1m0s"},
		{3, "2m0s"},
		{7, "2m0s"},
	}
	for _, tc := range cases {
		if got := emailRetryDelay(tc.attempt, nil, nil); got.String() != tc.want {
			t.Fatalf("emailRetryDelay(%d) = %s, want %s", tc.attempt, got, tc.want)
		}
	}
}
