package famtask

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

func newRecordingEngine(t *testing.T, respond string) (*Engine, *recordedRequest) {
	t.Helper()

	var rec recordedRequest
	engine, _ := newTestEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec = recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
		}
		_, _ = w.Write([]byte(respond))
	}))
	return engine, &rec
}

func TestCreateTodo(t *testing.T) {
	engine, rec := newRecordingEngine(t, `{"data":{"_id":"t1","title":"dishes","done":false}}`)

	todo, err := engine.CreateTodo(context.Background(), "dishes")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if todo.ID != "t1" || todo.Title != "dishes" {
		t.Fatalf("unexpected todo: %+v", todo)
	}
	if rec.Method != http.MethodPost || rec.Path != "/api/user/create" {
		t.Fatalf("unexpected request %s %s", rec.Method, rec.Path)
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(rec.Body), &payload); err != nil || payload["title"] != "dishes" {
		t.Fatalf("unexpected payload: %s", rec.Body)
	}
}

func TestTodosByDayDefaultsToToday(t *testing.T) {
	engine, rec := newRecordingEngine(t, `{"data":[{"_id":"t1","title":"dishes","done":true}]}`)

	todos, err := engine.TodosByDay(context.Background(), "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(todos) != 1 || !todos[0].Done {
		t.Fatalf("unexpected todos: %+v", todos)
	}
	if rec.Path != "/api/user/todo" || rec.Query != "day=today" {
		t.Fatalf("unexpected request %s?%s", rec.Path, rec.Query)
	}
}

func TestDeleteTodoSendsIDInBody(t *testing.T) {
	engine, rec := newRecordingEngine(t, `{"message":"deleted"}`)

	if err := engine.DeleteTodo(context.Background(), "t1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rec.Method != http.MethodDelete || rec.Path != "/api/user/" {
		t.Fatalf("unexpected request %s %s", rec.Method, rec.Path)
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(rec.Body), &payload); err != nil || payload["todoId"] != "t1" {
		t.Fatalf("unexpected payload: %s", rec.Body)
	}
}

func TestMarkTodoDone(t *testing.T) {
	engine, rec := newRecordingEngine(t, `{"data":{"_id":"t1","done":true}}`)

	if err := engine.MarkTodoDone(context.Background(), "t1"); err != nil {
		t.Fatalf("mark done failed: %v", err)
	}
	if rec.Method != http.MethodPost || rec.Path != "/api/user/done" {
		t.Fatalf("unexpected request %s %s", rec.Method, rec.Path)
	}
}

func TestChildDetailsQuery(t *testing.T) {
	engine, rec := newRecordingEngine(t,
		`{"data":{"child":{"_id":"c1","name":"Charlie","todoCount":3,"doneCount":1},"todos":[]}}`)

	details, err := engine.ChildDetails(context.Background(), "c1")
	if err != nil {
		t.Fatalf("details failed: %v", err)
	}
	if details.Child.ID != "c1" || details.Child.TodoCount != 3 {
		t.Fatalf("unexpected details: %+v", details)
	}
	if rec.Path != "/api/parent/details/" || rec.Query != "userId=c1" {
		t.Fatalf("unexpected request %s?%s", rec.Path, rec.Query)
	}
}

func TestChildStatsQuery(t *testing.T) {
	engine, rec := newRecordingEngine(t, `{"data":{"userId":"c1","type":"weekly","series":[1,2,3]}}`)

	stats, err := engine.ChildStats(context.Background(), "c1", "weekly")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.UserID != "c1" || stats.Type != "weekly" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if rec.Query != "type=weekly&userId=c1" {
		t.Fatalf("unexpected query %q", rec.Query)
	}
}

func TestSendReminderPayload(t *testing.T) {
	engine, rec := newRecordingEngine(t, `{"message":"sent"}`)

	req := ReminderRequest{
		Title:        "homework",
		Description:  "math due tomorrow",
		ForChild:     true,
		ReminderType: "task",
		SendTo:       []string{"c1", "c2"},
	}
	if err := engine.SendReminder(context.Background(), req); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if rec.Method != http.MethodPost || rec.Path != "/api/parent/sendNotification" {
		t.Fatalf("unexpected request %s %s", rec.Method, rec.Path)
	}

	var decoded ReminderRequest
	if err := json.Unmarshal([]byte(rec.Body), &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.Title != req.Title || len(decoded.SendTo) != 2 || !decoded.ForChild {
		t.Fatalf("unexpected payload: %s", rec.Body)
	}
}

func TestProfileEndpoints(t *testing.T) {
	engine, rec := newRecordingEngine(t, `{"data":{"_id":"u1","name":"Pat","email":"p@e.com","role":"parent"}}`)

	profile, err := engine.Profile(context.Background())
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if profile.ID != "u1" || profile.Role != "parent" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if rec.Path != "/api/user/profile" {
		t.Fatalf("unexpected path %s", rec.Path)
	}

	if _, err := engine.ParentProfile(context.Background()); err != nil {
		t.Fatalf("parent profile failed: %v", err)
	}
	if rec.Path != "/api/parent/parentProfile" {
		t.Fatalf("unexpected path %s", rec.Path)
	}
}
