package notification

import (
	"context"
	"time"

	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/common/export"
	"amigo-admin/internal/common/models"
	"amigo-admin/internal/features/audit"
	"amigo-admin/internal/realtime"

	"go.uber.org/zap"
)

// Caller is the verified sender; Grant is nil for non-admin users
type Caller struct {
	UID   string
	Grant *access.Grant
}

func (c Caller) isAdmin() bool {
	return c.Grant != nil
}

func (c Caller) role() string {
	if c.Grant != nil {
		return c.Grant.Role
	}
	return access.RoleUser
}

type NotificationService interface {
	SendBulk(ctx context.Context, sentBy string, req BulkRequest) (*BulkOutcome, error)
	Send(ctx context.Context, caller Caller, req SendRequest) (string, error)
	ListLogs(ctx context.Context, q LogQuery) ([]LogEntry, error)
	ExportLogs(ctx context.Context, q LogQuery) ([]byte, string, error)
}

type NotificationServiceImpl struct {
	Dispatcher   *Dispatcher
	LogRepo      LogRepository
	AuditService audit.AuditService
	log          *zap.Logger
	now          func() time.Time
}

func NewNotificationService(dispatcher *Dispatcher, logRepo LogRepository, auditService audit.AuditService, log *zap.Logger) NotificationService {
	return &NotificationServiceImpl{
		Dispatcher:   dispatcher,
		LogRepo:      logRepo,
		AuditService: auditService,
		log:          log,
		now:          time.Now,
	}
}

func (s *NotificationServiceImpl) SendBulk(ctx context.Context, sentBy string, req BulkRequest) (*BulkOutcome, error) {
	outcome, err := s.Dispatcher.DispatchBulk(ctx, sentBy, req)
	if err != nil {
		return nil, err
	}
	if outcome.TotalUsers > 0 {
		_ = s.AuditService.LogChange(ctx, models.AuditActionNotification, "notifications", "bulk", map[string]models.Change{
			"title":           {New: req.Notification.Title},
			"successfulSends": {New: outcome.SuccessfulSends},
			"failedSends":     {New: outcome.FailedSends},
		})
	}
	return outcome, nil
}

// Send delivers to one user id or raw device token
func (s *NotificationServiceImpl) Send(ctx context.Context, caller Caller, req SendRequest) (string, error) {
	if req.Notification.Title == "" || req.Notification.Body == "" {
		return "", apperr.New(apperr.InvalidArgument, "notification title and body are required")
	}
	target, err := ClassifyTarget(req.To, req.ToType)
	if err != nil {
		return "", err
	}

	d := s.Dispatcher
	var token, targetUID string
	switch target.Kind {
	case TargetUser:
		targetUID = target.Value
		if !caller.isAdmin() && targetUID == caller.UID {
			return "", apperr.New(apperr.PermissionDenied, "Users cannot send notifications to themselves")
		}
		u, err := d.recipients.FindByID(ctx, targetUID)
		if err != nil {
			return "", apperr.Wrap(apperr.Unavailable, "Failed to look up user", err)
		}
		if u == nil {
			return "", apperr.New(apperr.NotFound, "User not found")
		}
		if u.FCMToken == "" {
			return "", apperr.New(apperr.InvalidArgument, "User has no FCM token")
		}
		token = u.FCMToken

	case TargetToken:
		token = target.Value
		targetUID = "unknown"
		// the owner is only needed for the log and the self-send rule
		if u, err := d.recipients.FindByPushToken(ctx, token); err != nil {
			s.log.Debug("push token owner lookup failed", zap.Error(err))
		} else if u != nil {
			targetUID = u.UID
		}
		if !caller.isAdmin() && targetUID == caller.UID {
			return "", apperr.New(apperr.PermissionDenied, "Users cannot send notifications to themselves")
		}
	}

	payload := Payload{Title: req.Notification.Title, Body: req.Notification.Body}
	data := stringifyData(req.Data)
	msgData := make(map[string]string, len(data)+2)
	for k, v := range data {
		msgData[k] = v
	}
	msgData["recipientId"] = targetUID
	msgData["timestamp"] = s.now().UTC().Format(time.RFC3339)

	messageID, err := d.gateway.Send(context.WithoutCancel(ctx), PushMessage{
		Token: token,
		Title: payload.Title,
		Body:  payload.Body,
		Data:  msgData,
	})
	if err != nil {
		d.appendSingle(ctx, LogEntry{
			SentBy:       caller.UID,
			SentTo:       []string{targetUID},
			Notification: payload,
			Data:         data,
			UserRole:     caller.role(),
			Error:        err.Error(),
			Status:       StatusError,
			Timestamp:    s.now(),
		})
		d.feed.Publish(realtime.EventNotificationFailed, map[string]interface{}{
			"sentBy": caller.UID,
			"sentTo": targetUID,
		})
		return "", apperr.Wrap(apperr.Unavailable, "Failed to send notification", err)
	}

	d.appendSingle(ctx, LogEntry{
		SentBy:         caller.UID,
		SentTo:         []string{targetUID},
		Notification:   payload,
		Data:           data,
		MessageID:      messageID,
		UserRole:       caller.role(),
		FCMTokenLength: len(token),
		Status:         StatusSuccess,
		Timestamp:      s.now(),
	})
	d.feed.Publish(realtime.EventNotificationSent, map[string]interface{}{
		"sentBy":    caller.UID,
		"sentTo":    targetUID,
		"messageId": messageID,
	})
	return messageID, nil
}

func (s *NotificationServiceImpl) ListLogs(ctx context.Context, q LogQuery) ([]LogEntry, error) {
	logs, err := s.LogRepo.List(ctx, q.normalized())
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to fetch notification logs", err)
	}
	return logs, nil
}

var logColumns = []export.Column{
	{Key: "timestamp", Header: "Timestamp", Width: 20},
	{Key: "status", Header: "Status"},
	{Key: "sentBy", Header: "Sent By", Width: 30},
	{Key: "sentTo", Header: "Sent To", Width: 40},
	{Key: "title", Header: "Title", Width: 30},
	{Key: "body", Header: "Body", Width: 40},
	{Key: "totalUsers", Header: "Total Users"},
	{Key: "successfulSends", Header: "Successful"},
	{Key: "failedSends", Header: "Failed"},
	{Key: "messageId", Header: "Message ID", Width: 30},
	{Key: "error", Header: "Error", Width: 40},
}

func (s *NotificationServiceImpl) ExportLogs(ctx context.Context, q LogQuery) ([]byte, string, error) {
	q.Limit = maxLogLimit
	logs, err := s.ListLogs(ctx, q)
	if err != nil {
		return nil, "", err
	}

	rows := make([]map[string]any, 0, len(logs))
	for _, e := range logs {
		rows = append(rows, map[string]any{
			"timestamp":       e.Timestamp,
			"status":          string(e.Status),
			"sentBy":          e.SentBy,
			"sentTo":          e.SentTo,
			"title":           e.Notification.Title,
			"body":            e.Notification.Body,
			"totalUsers":      e.TotalUsers,
			"successfulSends": e.SuccessfulSends,
			"failedSends":     e.FailedSends,
			"messageId":       e.MessageID,
			"error":           e.Error,
		})
	}

	data, filename, err := export.ToExcel("Notification Logs", logColumns, rows, s.now())
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "Failed to build export", err)
	}
	return data, filename, nil
}
