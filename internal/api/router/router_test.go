package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/portfolio/config"
	"github.com/d60-Lab/portfolio/internal/api/handler"
	"github.com/d60-Lab/portfolio/internal/repository"
	"github.com/d60-Lab/portfolio/internal/service"
	"github.com/d60-Lab/portfolio/pkg/database"
	"github.com/d60-Lab/portfolio/pkg/mailer"
)

type env struct {
	t      *testing.T
	engine http.Handler
	db     *gorm.DB
	dials  int
}

func newEnv(t *testing.T, mailCfg mailer.Config) *env {
	t.Helper()
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "routine.db")), config.DatabaseConfig{})
	require.NoError(t, err)
	require.NoError(t, repository.InitSchema(db))
	t.Cleanup(func() { _ = database.Close(db) })

	e := &env{t: t, db: db}
	m := mailer.New(mailCfg, mailer.WithDialer(func(context.Context, string) (mailer.Client, error) {
		e.dials++
		return nil, assert.AnError
	}))

	h := handler.New(
		service.NewRoutineService(repository.NewPostRepository(db), repository.NewReplyRepository(db), nil),
		service.NewBlogService(repository.NewBlogRepository(db), nil),
		service.NewContactService(m),
		db,
	)
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "style.css"), []byte("body{}"), 0o600))
	engine, err := New(h, Options{Mode: "test", StaticDir: static, Swagger: true})
	require.NoError(t, err)
	e.engine = engine
	return e
}

func (e *env) do(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var rdr *bytes.Reader
	switch b := body.(type) {
	case nil:
		rdr = bytes.NewReader(nil)
	case string:
		rdr = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type postJSON struct {
	ID        int64       `json:"id"`
	Message   string      `json:"message"`
	Timestamp string      `json:"timestamp"`
	Replies   []replyJSON `json:"replies"`
}

type replyJSON struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func TestCreatePostAndList(t *testing.T) {
	e := newEnv(t, mailer.Config{})

	w := e.do(http.MethodPost, "/api/routine/post", map[string]string{"message": "wake up"})
	require.Equal(t, http.StatusOK, w.Code)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.ElementsMatch(t, []string{"id", "message", "timestamp", "replies"}, keys(raw))
	assert.JSONEq(t, `[]`, string(raw["replies"]))

	first := decode[postJSON](t, w)
	second := decode[postJSON](t, e.do(http.MethodPost, "/api/routine/post", map[string]string{"message": ""}))
	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, "", second.Message)

	w = e.do(http.MethodPost, "/api/routine/reply/"+itoa(first.ID), map[string]string{"message": "r1"})
	require.Equal(t, http.StatusOK, w.Code)
	var replyRaw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &replyRaw))
	assert.ElementsMatch(t, []string{"id", "message", "timestamp"}, keys(replyRaw))

	e.do(http.MethodPost, "/api/routine/reply/"+itoa(first.ID), map[string]string{"message": "r2"})

	w = e.do(http.MethodGet, "/api/routine/posts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	posts := decode[[]postJSON](t, w)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.NotNil(t, posts[0].Replies)
	assert.Empty(t, posts[0].Replies)
	require.Len(t, posts[1].Replies, 2)
	assert.Equal(t, "r1", posts[1].Replies[0].Message)
	assert.Equal(t, "r2", posts[1].Replies[1].Message)
}

func TestEmptyListsAreArrays(t *testing.T) {
	e := newEnv(t, mailer.Config{})
	for _, path := range []string{"/api/routine/posts", "/api/blogs"} {
		w := e.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String(), path)
	}
}

func TestReplyToMissingPostSucceeds(t *testing.T) {
	e := newEnv(t, mailer.Config{})
	w := e.do(http.MethodPost, "/api/routine/reply/777", map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidation(t *testing.T) {
	e := newEnv(t, mailer.Config{})

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		loc    []string
	}{
		{"missing message", http.MethodPost, "/api/routine/post", map[string]string{}, []string{"body", "message"}},
		{"wrong type", http.MethodPost, "/api/routine/post", `{"message": 5}`, []string{"body", "message"}},
		{"missing blog field", http.MethodPost, "/api/blogs", map[string]string{"title": "t", "category": "c"}, []string{"body", "content"}},
		{"missing fullname", http.MethodPost, "/api/contact", map[string]string{"email": "a@b.c", "message": "m"}, []string{"body", "fullname"}},
		{"bad post id", http.MethodPost, "/api/routine/reply/abc", map[string]string{"message": "m"}, []string{"path", "post_id"}},
		{"bad blog id", http.MethodDelete, "/api/blogs/x1", nil, []string{"path", "blog_id"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := e.do(tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			var res struct {
				Detail []struct {
					Loc []string `json:"loc"`
				} `json:"detail"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			require.NotEmpty(t, res.Detail)
			assert.Equal(t, tc.loc, res.Detail[0].Loc)
		})
	}

	w := e.do(http.MethodPost, "/api/routine/post", "not json")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var cnt int64
	require.NoError(t, e.db.Table("posts").Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestValidationReportsPathAndBodyTogether(t *testing.T) {
	e := newEnv(t, mailer.Config{})

	for _, tc := range []struct {
		method, path, param string
	}{
		{http.MethodPost, "/api/routine/reply/abc", "post_id"},
		{http.MethodPut, "/api/blogs/abc", "blog_id"},
	} {
		w := e.do(tc.method, tc.path, map[string]string{})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		var res struct {
			Detail []struct {
				Loc  []string `json:"loc"`
				Type string   `json:"type"`
			} `json:"detail"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.GreaterOrEqual(t, len(res.Detail), 2, tc.path)
		assert.Equal(t, []string{"path", tc.param}, res.Detail[0].Loc)
		assert.Equal(t, "int_parsing", res.Detail[0].Type)
		assert.Equal(t, "body", res.Detail[1].Loc[0])
		assert.Equal(t, "missing", res.Detail[1].Type)
	}
}

func TestBlogLifecycle(t *testing.T) {
	e := newEnv(t, mailer.Config{})

	w := e.do(http.MethodPost, "/api/blogs", map[string]string{"title": "T", "category": "C", "content": "Ct"})
	require.Equal(t, http.StatusOK, w.Code)
	created := decode[map[string]any](t, w)
	id := int64(created["id"].(float64))

	w = e.do(http.MethodPut, "/api/blogs/"+itoa(id), map[string]string{"title": "T2", "category": "C2", "content": "Ct2"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[map[string]any](t, w)
	assert.Equal(t, float64(id), updated["id"])
	assert.Equal(t, "T2", updated["title"])

	list := decode[[]map[string]any](t, e.do(http.MethodGet, "/api/blogs", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "Ct2", list[0]["content"])
	assert.Equal(t, updated["timestamp"], list[0]["timestamp"])

	w = e.do(http.MethodDelete, "/api/blogs/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","message":"Blog deleted successfully!"}`, w.Body.String())

	assert.JSONEq(t, `[]`, e.do(http.MethodGet, "/api/blogs", nil).Body.String())
}

func TestBlogMissingIDsAreSilent(t *testing.T) {
	e := newEnv(t, mailer.Config{})
	e.do(http.MethodPost, "/api/blogs", map[string]string{"title": "keep", "category": "c", "content": "x"})

	w := e.do(http.MethodPut, "/api/blogs/5", map[string]string{"title": "T", "category": "C", "content": "Ct"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]any](t, w)
	assert.Equal(t, float64(5), got["id"])
	assert.NotEmpty(t, got["timestamp"])

	w = e.do(http.MethodDelete, "/api/blogs/999", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", decode[map[string]any](t, w)["status"])

	var cnt int64
	require.NoError(t, e.db.Table("blogs").Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestContactWithoutCredentials(t *testing.T) {
	e := newEnv(t, mailer.Config{})
	w := e.do(http.MethodPost, "/api/contact", map[string]string{"fullname": "Ann", "email": "ann@example.com", "message": "hi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Failed to send email. Please try again."}`, w.Body.String())
	assert.Zero(t, e.dials)
}

func TestContactSendFailure(t *testing.T) {
	e := newEnv(t, mailer.Config{User: "me@example.com", Password: "pw"})
	w := e.do(http.MethodPost, "/api/contact", map[string]string{"fullname": "Ann", "email": "ann@example.com", "message": "hi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "error", decode[map[string]string](t, w)["status"])
	assert.Equal(t, 1, e.dials)
}

func TestPages(t *testing.T) {
	e := newEnv(t, mailer.Config{})
	e.do(http.MethodPost, "/api/routine/post", map[string]string{"message": "stretch"})

	w := e.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = e.do(http.MethodGet, "/daily-routine", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stretch")

	w = e.do(http.MethodGet, "/static/style.css", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthAndStorageFailure(t *testing.T) {
	e := newEnv(t, mailer.Config{})
	w := e.do(http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, w)["status"])

	require.NoError(t, e.db.Migrator().DropTable("blogs"))
	w = e.do(http.MethodGet, "/api/blogs", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, w.Body.String())
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
