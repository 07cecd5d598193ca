package famtask

import "context"

type profileResponse struct {
	Data Profile `json:"data"`
}

// Profile fetches the authenticated account's own profile.
func (e *Engine) Profile(ctx context.Context) (*Profile, error) {
	var resp profileResponse
	if err := e.apiGet(ctx, "/api/user/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
