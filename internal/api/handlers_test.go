package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qinwen/learning-buddy-api/internal/platform/memory"
	"github.com/qinwen/learning-buddy-api/internal/progress"
	"github.com/qinwen/learning-buddy-api/internal/service"
)

// cannedResponder satisfies service.Responder with a fixed reply.
type cannedResponder struct {
	reply string
}

func (r *cannedResponder) Respond(ctx context.Context, message string) (string, error) {
	return r.reply, nil
}

// testEnv wires handlers onto in-memory stores for HTTP-level tests.
type testEnv struct {
	goals    *memory.GoalStore
	sessions *memory.SessionStore

	goalService  service.GoalService
	studyService service.StudyService

	goalHandler  *GoalHandler
	studyHandler *StudyHandler
	chatHandler  *ChatHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	goals := memory.NewGoalStore()
	sessions := memory.NewSessionStore()
	chats := memory.NewChatStore()

	goalService, err := service.NewGoalService(goals, nil, nil)
	require.NoError(t, err)
	studyService, err := service.NewStudyService(sessions, goals, nil, nil)
	require.NoError(t, err)
	chatService, err := service.NewChatService(chats, &cannedResponder{reply: "Keep going!"}, nil)
	require.NoError(t, err)

	aggregator, err := progress.NewAggregator(goals, sessions, 365, nil)
	require.NoError(t, err)

	return &testEnv{
		goals:        goals,
		sessions:     sessions,
		goalService:  goalService,
		studyService: studyService,
		goalHandler:  NewGoalHandler(goalService, aggregator),
		studyHandler: NewStudyHandler(studyService, aggregator, 3),
		chatHandler:  NewChatHandler(chatService, 2),
	}
}

// doJSON invokes a handler with an optional JSON body and returns the recorder.
func doJSON(
	t *testing.T,
	handler http.HandlerFunc,
	method, target string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

// decodeBody unmarshals a response envelope into a generic map.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}
