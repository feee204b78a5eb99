package notification

import (
	"context"
	"strings"
	"sync"
	"time"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/features/user"
	"amigo-admin/internal/realtime"

	"go.uber.org/zap"
)

// Recipients resolves push tokens from user records
type Recipients interface {
	FindByID(ctx context.Context, uid string) (*user.User, error)
	FindByIDs(ctx context.Context, uids []string) (map[string]*user.User, error)
	FindByPushToken(ctx context.Context, token string) (*user.User, error)
}

type recipient struct {
	uid   string
	token string
}

// Dispatcher sends one notification to many users, tolerating partial failure
type Dispatcher struct {
	recipients Recipients
	gateway    PushGateway
	logs       LogRepository
	feed       realtime.Publisher
	log        *zap.Logger
	now        func() time.Time
}

func NewDispatcher(recipients Recipients, gateway PushGateway, logs LogRepository, feed realtime.Publisher, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		recipients: recipients,
		gateway:    gateway,
		logs:       logs,
		feed:       feed,
		log:        log,
		now:        time.Now,
	}
}

// DispatchBulk runs exclusion, token resolution, concurrent delivery and
// aggregation, then appends the log entry. Individual send failures are
// reported in the outcome, never as an error.
func (d *Dispatcher) DispatchBulk(ctx context.Context, sentBy string, req BulkRequest) (*BulkOutcome, error) {
	title, body := strings.TrimSpace(req.Notification.Title), strings.TrimSpace(req.Notification.Body)
	if title == "" || body == "" {
		return nil, apperr.New(apperr.InvalidArgument, "notification title and body are required")
	}
	payload := Payload{Title: title, Body: body}
	data := stringifyData(req.Data)

	targets := exclude(req.UserIDs, req.ExcludeUserID)
	if len(targets) == 0 {
		return trivial("No users to notify"), nil
	}

	users, err := d.recipients.FindByIDs(ctx, targets)
	if err != nil {
		d.appendLog(ctx, LogEntry{
			SentBy:       sentBy,
			SentTo:       targets,
			Notification: payload,
			Data:         data,
			Error:        err.Error(),
			Status:       StatusBulkError,
			Timestamp:    d.now(),
		})
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to resolve push tokens", err)
	}

	recipients := make([]recipient, 0, len(targets))
	for _, uid := range targets {
		if u, ok := users[uid]; ok && u.FCMToken != "" {
			recipients = append(recipients, recipient{uid: uid, token: u.FCMToken})
		}
	}
	if len(recipients) == 0 {
		return trivial("No users have FCM tokens"), nil
	}

	results := d.fanOut(ctx, recipients, payload, data)

	outcome := &BulkOutcome{
		Message:    "Bulk notifications sent",
		TotalUsers: len(recipients),
		Results:    results,
	}
	for _, r := range results {
		if r.Success {
			outcome.SuccessfulSends++
		} else {
			outcome.FailedSends++
		}
	}
	outcome.SentCount = outcome.SuccessfulSends

	logID := d.appendLog(ctx, LogEntry{
		SentBy:          sentBy,
		SentTo:          targets,
		Notification:    payload,
		Data:            data,
		TotalUsers:      outcome.TotalUsers,
		SuccessfulSends: outcome.SuccessfulSends,
		FailedSends:     outcome.FailedSends,
		Results:         results,
		Status:          StatusBulkSuccess,
		Timestamp:       d.now(),
	})

	d.feed.Publish(realtime.EventNotificationDispatched, map[string]interface{}{
		"logId":           logID,
		"sentBy":          sentBy,
		"title":           payload.Title,
		"totalUsers":      outcome.TotalUsers,
		"successfulSends": outcome.SuccessfulSends,
		"failedSends":     outcome.FailedSends,
	})
	return outcome, nil
}

// fanOut sends to every recipient concurrently and waits for all of them.
// Sends are detached from the request so an abandoned caller does not
// cancel deliveries already under way.
func (d *Dispatcher) fanOut(ctx context.Context, recipients []recipient, payload Payload, data map[string]string) []Result {
	sendCtx := context.WithoutCancel(ctx)
	results := make([]Result, len(recipients))

	var wg sync.WaitGroup
	for i, rcpt := range recipients {
		wg.Add(1)
		go func(i int, rcpt recipient) {
			defer wg.Done()
			results[i] = d.send(sendCtx, rcpt, payload, data)
		}(i, rcpt)
	}
	wg.Wait()
	return results
}

func (d *Dispatcher) send(ctx context.Context, rcpt recipient, payload Payload, data map[string]string) Result {
	msgData := make(map[string]string, len(data)+3)
	for k, v := range data {
		msgData[k] = v
	}
	msgData["recipientId"] = rcpt.uid
	msgData["userId"] = rcpt.uid
	msgData["timestamp"] = d.now().UTC().Format(time.RFC3339)

	id, err := d.gateway.Send(ctx, PushMessage{
		Token: rcpt.token,
		Title: payload.Title,
		Body:  payload.Body,
		Data:  msgData,
	})
	if err != nil {
		d.log.Warn("push send failed", zap.String("recipient_id", rcpt.uid), zap.Error(err))
		return Result{RecipientID: rcpt.uid, UserID: rcpt.uid, Error: err.Error()}
	}
	return Result{RecipientID: rcpt.uid, UserID: rcpt.uid, Success: true, MessageID: id}
}

// appendLog never fails the caller. When the entry cannot be written a
// second, smaller entry records the failure.
func (d *Dispatcher) appendLog(ctx context.Context, entry LogEntry) string {
	ctx = context.WithoutCancel(ctx)
	id, err := d.logs.Append(ctx, entry)
	if err == nil {
		return id
	}
	d.log.Error("notification log write failed", zap.String("status", string(entry.Status)), zap.Error(err))

	fallback := LogEntry{
		SentBy:       entry.SentBy,
		SentTo:       entry.SentTo,
		Notification: entry.Notification,
		Error:        "log write failed: " + err.Error(),
		Status:       StatusBulkError,
		Timestamp:    d.now(),
	}
	if entry.Status == StatusBulkSuccess {
		fallback.TotalUsers = entry.TotalUsers
		fallback.SuccessfulSends = entry.SuccessfulSends
		fallback.FailedSends = entry.FailedSends
	}
	id, err = d.logs.Append(ctx, fallback)
	if err != nil {
		d.log.Error("notification error log write failed", zap.Error(err))
		return ""
	}
	return id
}

// appendSingle writes a single-send entry; failures are only logged
func (d *Dispatcher) appendSingle(ctx context.Context, entry LogEntry) {
	if _, err := d.logs.Append(context.WithoutCancel(ctx), entry); err != nil {
		d.log.Error("notification log write failed", zap.String("status", string(entry.Status)), zap.Error(err))
	}
}

func trivial(message string) *BulkOutcome {
	return &BulkOutcome{Message: message, Results: []Result{}}
}

// exclude drops excludeID and duplicates, keeping first-seen order
func exclude(ids []string, excludeID string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || id == excludeID || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
