package famtask

import (
	"context"
	"net/url"
)

type todoListResponse struct {
	Data []Todo `json:"data"`
}

type todoResponse struct {
	Data Todo `json:"data"`
}

type todoIDRequest struct {
	TodoID string `json:"todoId"`
}

// CreateTodo creates a task for the authenticated child account.
func (e *Engine) CreateTodo(ctx context.Context, title string) (*Todo, error) {
	var resp todoResponse
	if err := e.apiPost(ctx, "/api/user/create", map[string]string{"title": title}, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// TodosByDay lists the account's todos for one day bucket. The backend
// defaults day to "today"; an empty day is forwarded as that default.
func (e *Engine) TodosByDay(ctx context.Context, day string) ([]Todo, error) {
	if day == "" {
		day = "today"
	}
	query := url.Values{"day": {day}}

	var resp todoListResponse
	if err := e.apiGet(ctx, "/api/user/todo", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// AllTodos lists every todo for the account.
func (e *Engine) AllTodos(ctx context.Context) ([]Todo, error) {
	var resp todoListResponse
	if err := e.apiGet(ctx, "/api/user/todo", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// DeleteTodo removes one todo. The wire shape follows the deployed client:
// DELETE /api/user/ with the id in the body, not a path parameter.
func (e *Engine) DeleteTodo(ctx context.Context, todoID string) error {
	return e.apiDelete(ctx, "/api/user/", todoIDRequest{TodoID: todoID}, nil)
}

// MarkTodoDone flags one todo as completed.
func (e *Engine) MarkTodoDone(ctx context.Context, todoID string) error {
	return e.apiPost(ctx, "/api/user/done", todoIDRequest{TodoID: todoID}, nil)
}
