package famtask

import "context"

type saveTokenRequest struct {
	UserID   string `json:"userId"`
	FCMToken string `json:"fcmToken"`
}

// SaveDeviceToken persists a device push token for a user on the backend.
// The save is an upsert; [Engine.RegisterPush] is the usual caller and
// already dedupes per engine lifetime.
func (e *Engine) SaveDeviceToken(ctx context.Context, userID, token string) error {
	return e.apiPost(ctx, "/api/token/save", saveTokenRequest{UserID: userID, FCMToken: token}, nil)
}
