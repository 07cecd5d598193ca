package famtask

import "context"

type notificationListResponse struct {
	Data []Notification `json:"data"`
}

// Notifications lists the reminders delivered to the authenticated account.
func (e *Engine) Notifications(ctx context.Context) ([]Notification, error) {
	var resp notificationListResponse
	if err := e.apiGet(ctx, "/api/user/notification", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SendReminder delivers a reminder from the parent to the child accounts
// listed in req.SendTo. The backend fans it out to each recipient's saved
// device tokens.
func (e *Engine) SendReminder(ctx context.Context, req ReminderRequest) error {
	return e.apiPost(ctx, "/api/parent/sendNotification", req, nil)
}

// ReminderHistory lists the reminders the parent has sent.
func (e *Engine) ReminderHistory(ctx context.Context) ([]Notification, error) {
	var resp notificationListResponse
	if err := e.apiGet(ctx, "/api/parent/sendNotificationHistory", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
