package famtask

import (
	"context"
	"net/url"
)

type childrenResponse struct {
	Data []ChildSummary `json:"data"`
}

type childDetailsResponse struct {
	Data ChildDetails `json:"data"`
}

type statsResponse struct {
	Data Stats `json:"data"`
}

// Children lists the parent's children with their aggregate todo counts.
func (e *Engine) Children(ctx context.Context) ([]ChildSummary, error) {
	var resp childrenResponse
	if err := e.apiGet(ctx, "/api/parent/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ChildDetails fetches one child account plus its current todos.
func (e *Engine) ChildDetails(ctx context.Context, userID string) (*ChildDetails, error) {
	query := url.Values{"userId": {userID}}

	var resp childDetailsResponse
	if err := e.apiGet(ctx, "/api/parent/details/", query, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ChildTodoHistory fetches a child's historical todos.
func (e *Engine) ChildTodoHistory(ctx context.Context, userID string) ([]Todo, error) {
	query := url.Values{"userId": {userID}}

	var resp todoListResponse
	if err := e.apiGet(ctx, "/api/parent/todoHistory/", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ParentProfile fetches the parent's own profile.
func (e *Engine) ParentProfile(ctx context.Context) (*Profile, error) {
	var resp profileResponse
	if err := e.apiGet(ctx, "/api/parent/parentProfile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ChildStats fetches the per-child aggregate series for the stats screen.
// statsType selects the backend aggregation window.
func (e *Engine) ChildStats(ctx context.Context, userID, statsType string) (*Stats, error) {
	query := url.Values{
		"userId": {userID},
		"type":   {statsType},
	}

	var resp statsResponse
	if err := e.apiGet(ctx, "/api/parent/stats", query, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
