package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versecrew/versecrew-backend-go/internal/domain/notification"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/sse"
)

type batchingRepo struct {
	notification.Repository

	mu       sync.Mutex
	inserted []*notification.Notification
}

func (r *batchingRepo) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserted = append(r.inserted, notifications...)
	return nil
}

func (r *batchingRepo) Create(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserted = append(r.inserted, n)
	return nil
}

func (r *batchingRepo) IsNotificationEnabled(ctx context.Context, userID string, notifType notification.NotificationType) (bool, error) {
	return true, nil
}

func (r *batchingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inserted)
}

func TestStopFlushesQueuedNotifications(t *testing.T) {
	repo := &batchingRepo{}
	svc := NewNotificationService(repo, sse.NewHub(), Config{
		BatchSize:     100,
		FlushInterval: time.Minute, // the ticker must not beat Stop to the flush
		WorkerCount:   1,
		QueueSize:     100,
	})

	ctx := context.Background()
	const queued = 25
	for i := 0; i < queued; i++ {
		err := svc.QueueNotification(ctx, notification.CreateNotificationRequest{
			OrganizationID: "org-1",
			RecipientID:    fmt.Sprintf("user-%d", i),
			Type:           notification.TypeDocumentPublished,
			Title:          "Doc published",
			Message:        "Read it.",
		})
		require.NoError(t, err)
	}

	svc.Stop()

	assert.Equal(t, queued, repo.count(), "buffered requests must be persisted on shutdown")
}
