package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mahideveloper1/Video-editor-assignment/internal/config"
	"github.com/mahideveloper1/Video-editor-assignment/internal/logging"
	"github.com/mahideveloper1/Video-editor-assignment/internal/nlu"
	"github.com/mahideveloper1/Video-editor-assignment/internal/session"
	"github.com/mahideveloper1/Video-editor-assignment/internal/silence"
	"github.com/mahideveloper1/Video-editor-assignment/internal/timeline"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeOracle returns a scripted interpretation.
type fakeOracle struct {
	result nlu.Result
	err    error
}

func (f *fakeOracle) Interpret(_ context.Context, _, _ string) (nlu.Result, error) {
	return f.result, f.err
}

func defaultStyle() timeline.Style {
	return timeline.Style{
		FontFamily: "Arial",
		FontSize:   32,
		FontColor:  "#FFFFFF",
		Position:   timeline.PositionBottom,
	}
}

func newTestServer(t *testing.T, oracle nlu.Oracle) (*Server, *session.MemoryStore) {
	t.Helper()
	cfg := &config.Config{
		UploadDir:    t.TempDir(),
		OutputDir:    t.TempDir(),
		Provider:     "openai",
		DefaultStyle: defaultStyle(),
	}
	store := session.NewMemoryStore(time.Hour)
	return New(cfg, logging.NewNop(), store, oracle, nil), store
}

func seedSession(t *testing.T, store *session.MemoryStore, subs []timeline.Subtitle) *session.Session {
	t.Helper()
	sess := session.New("/tmp/video.mp4", session.VideoMetadata{Duration: 60})
	sess.Subtitles = subs
	if err := store.Put(context.Background(), sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return sess
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeOracle{})
	w := getPath(srv.Router(), "/health")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestChatAddSubtitle(t *testing.T) {
	oracle := &fakeOracle{result: nlu.Result{
		Intent:    "add_subtitle",
		RawParams: `{"text": "Hello World", "start_time": "1:30", "end_time": "95"}`,
	}}
	srv, store := newTestServer(t, oracle)
	sess := seedSession(t, store, nil)
	router := srv.Router()

	w := postJSON(router, "/api/chat", gin.H{
		"session_id": sess.ID,
		"message":    "Add subtitle 'Hello World' from 1:30 to 95 seconds",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	updated, err := store.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if len(updated.Subtitles) != 1 {
		t.Fatalf("expected 1 subtitle, got %d", len(updated.Subtitles))
	}
	sub := updated.Subtitles[0]
	if sub.Text != "Hello World" || sub.StartTime != 90 || sub.EndTime != 95 {
		t.Errorf("unexpected subtitle %+v", sub)
	}
	if len(updated.Chat) != 2 {
		t.Errorf("expected 2 chat messages, got %d", len(updated.Chat))
	}
	if !strings.Contains(w.Body.String(), "Added subtitle") {
		t.Errorf("missing confirmation: %s", w.Body.String())
	}
}

func TestChatHelpLeavesTimelineUntouched(t *testing.T) {
	oracle := &fakeOracle{result: nlu.Result{Intent: "help"}}
	srv, store := newTestServer(t, oracle)
	sess := seedSession(t, store, []timeline.Subtitle{
		{ID: "sub_1", Text: "Hi", StartTime: 0, EndTime: 3, Style: defaultStyle()},
	})

	w := postJSON(srv.Router(), "/api/chat", gin.H{
		"session_id": sess.ID,
		"message":    "what can you do?",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	updated, _ := store.Get(context.Background(), sess.ID)
	if len(updated.Subtitles) != 1 {
		t.Errorf("help should not modify subtitles, got %d", len(updated.Subtitles))
	}
	if !strings.Contains(w.Body.String(), "add and style subtitles") {
		t.Errorf("expected help text: %s", w.Body.String())
	}
}

func TestChatOutOfRangeIndex(t *testing.T) {
	oracle := &fakeOracle{result: nlu.Result{
		Intent:    "modify_subtitle",
		RawParams: `{"subtitle_index": 5, "text": "changed"}`,
	}}
	srv, store := newTestServer(t, oracle)
	sess := seedSession(t, store, []timeline.Subtitle{
		{ID: "sub_1", Text: "Hi", StartTime: 0, EndTime: 3, Style: defaultStyle()},
	})

	w := postJSON(srv.Router(), "/api/chat", gin.H{
		"session_id": sess.ID,
		"message":    "change subtitle 6",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	updated, _ := store.Get(context.Background(), sess.ID)
	if updated.Subtitles[0].Text != "Hi" {
		t.Errorf("failed edit must not modify the timeline: %+v", updated.Subtitles[0])
	}
}

func TestChatConcurrentEditsBothApply(t *testing.T) {
	oracle := &fakeOracle{result: nlu.Result{
		Intent:    "add_subtitle",
		RawParams: `{"text": "Hello", "start_time": "1", "end_time": "4"}`,
	}}
	srv, store := newTestServer(t, oracle)
	sess := seedSession(t, store, nil)
	router := srv.Router()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := postJSON(router, "/api/chat", gin.H{
				"session_id": sess.ID,
				"message":    "Add subtitle 'Hello' from 1 to 4 seconds",
			})
			if w.Code != http.StatusOK {
				t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
		}()
	}
	wg.Wait()

	updated, err := store.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if len(updated.Subtitles) != 2 {
		t.Errorf("got %d subtitles after 2 concurrent edits, want 2", len(updated.Subtitles))
	}
}

func TestChatSessionNotFound(t *testing.T) {
	srv, _ := newTestServer(t, &fakeOracle{})
	w := postJSON(srv.Router(), "/api/chat", gin.H{
		"session_id": "sess_missing",
		"message":    "hello",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetAndClearSubtitles(t *testing.T) {
	srv, store := newTestServer(t, &fakeOracle{})
	sess := seedSession(t, store, []timeline.Subtitle{
		{ID: "sub_1", Text: "One", StartTime: 0, EndTime: 3, Style: defaultStyle()},
		{ID: "sub_2", Text: "Two", StartTime: 4, EndTime: 7, Style: defaultStyle()},
	})
	router := srv.Router()

	w := getPath(router, "/api/subtitles/"+sess.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var subs []timeline.Subtitle
	if err := json.Unmarshal(w.Body.Bytes(), &subs); err != nil {
		t.Fatalf("decode subtitles: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subtitles, got %d", len(subs))
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/subtitles/"+sess.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	updated, _ := store.Get(context.Background(), sess.ID)
	if len(updated.Subtitles) != 0 {
		t.Errorf("expected cleared subtitles, got %d", len(updated.Subtitles))
	}
}

func TestExportWithoutSubtitles(t *testing.T) {
	srv, store := newTestServer(t, &fakeOracle{})
	sess := seedSession(t, store, nil)

	w := postJSON(srv.Router(), "/api/export", gin.H{"session_id": sess.ID})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestApplySilenceRemovalRewritesSession(t *testing.T) {
	sess := session.New("/tmp/video.mp4", session.VideoMetadata{Duration: 60})
	sess.Subtitles = []timeline.Subtitle{
		{ID: "sub_1", Text: "Hi", StartTime: 5, EndTime: 8, Style: defaultStyle()},
	}

	remapped := []timeline.Subtitle{
		{ID: "sub_1", Text: "Hi", StartTime: 3, EndTime: 6, Style: defaultStyle()},
	}
	stats := silence.Summarize([]silence.Interval{{Start: 0, End: 2}}, 60)

	applySilenceRemoval(sess, remapped, stats, "/tmp/video_no_silence.mp4")

	if sess.VideoPath != "/tmp/video_no_silence.mp4" {
		t.Errorf("VideoPath = %s, want compacted output", sess.VideoPath)
	}
	if sess.Metadata.Duration != 58 {
		t.Errorf("Duration = %v, want 58 after removing 2s", sess.Metadata.Duration)
	}
	if sess.Subtitles[0].StartTime != 3 {
		t.Errorf("subtitles not replaced with remapped set: %+v", sess.Subtitles[0])
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"video.mp4", "video.mp4"},
		{"../../etc/passwd", "passwd"},
		{"my video (1).mp4", "my_video__1_.mp4"},
	}

	for _, tc := range tests {
		if got := sanitizeFilename(tc.input); got != tc.want {
			t.Errorf("sanitizeFilename(%q): expected %q, got %q", tc.input, tc.want, got)
		}
	}
}
