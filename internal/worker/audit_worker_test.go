package worker

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/hr-service/internal/events"
)

func TestAuditWorkerLogsEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	StartAuditWorker(dispatcher, zap.New(core))

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:         "evt-1",
		Type:       events.EventEmployeeDeleted,
		ResourceID: 7,
		Actor:      events.Actor{Username: "admin"},
	})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	entries := logs.FilterMessage("audit event").All()
	if len(entries) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event"] != "employee_deleted" || fields["resource_id"] != int64(7) || fields["actor"] != "admin" {
		t.Errorf("unexpected fields %v", fields)
	}
}
