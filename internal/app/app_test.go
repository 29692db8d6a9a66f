package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"taskFileTracker/internal/app"
	"taskFileTracker/internal/config"
	"taskFileTracker/internal/handlers/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// AppTestSuite гоняет запросы через весь роутер с настоящими хранилищами
type AppTestSuite struct {
	suite.Suite
	app    *app.App
	server *httptest.Server
}

func (s *AppTestSuite) SetupTest() {
	cfg := config.Default()
	cfg.Logging.Development = false
	cfg.RateLimit.RequestsPerMinute = 0

	a, err := app.New(cfg).Init(context.Background())
	s.Require().NoError(err)

	s.app = a
	s.server = httptest.NewServer(a.Handler())
}

func (s *AppTestSuite) TearDownTest() {
	s.server.Close()
	s.NoError(s.app.Close())
}

func (s *AppTestSuite) do(method, path string, body io.Reader, contentType string) *http.Response {
	req, err := http.NewRequest(method, s.server.URL+path, body)
	s.Require().NoError(err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *AppTestSuite) doJSON(method, path string, payload any) *http.Response {
	data, err := json.Marshal(payload)
	s.Require().NoError(err)
	return s.do(method, path, bytes.NewReader(data), "application/json")
}

func (s *AppTestSuite) doMultipart(method, path string, fields map[string]string, filename string) *http.Response {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		s.Require().NoError(writer.WriteField(key, value))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		s.Require().NoError(err)
		_, err = part.Write([]byte("ignored bytes"))
		s.Require().NoError(err)
	}
	s.Require().NoError(writer.Close())
	return s.do(method, path, body, writer.FormDataContentType())
}

func decode[T any](s *AppTestSuite, resp *http.Response) T {
	var out T
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *AppTestSuite) TestHealth() {
	resp := s.do("GET", "/health", nil, "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotEmpty(resp.Header.Get("X-Request-ID"))
}

func (s *AppTestSuite) TestTaskLifecycle() {
	resp := s.doJSON("POST", "/tasks/", map[string]string{"title": "Buy milk", "description": "2%"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	created := decode[dto.TaskResponse](s, resp)
	s.NotEmpty(created.ID)
	s.Equal("Buy milk", created.Title)
	s.Equal("2%", created.Description)
	s.False(created.CreationDate.IsZero())

	// второй задаче без id выдаётся свой id
	resp = s.doJSON("POST", "/tasks", map[string]string{"title": "Walk", "description": "dog"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	second := decode[dto.TaskResponse](s, resp)
	s.NotEqual(created.ID, second.ID)

	resp = s.do("GET", "/tasks/"+created.ID, nil, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	got := decode[dto.TaskResponse](s, resp)
	s.Equal(created.ID, got.ID)
	s.True(created.CreationDate.Equal(got.CreationDate))

	resp = s.do("GET", "/tasks/", nil, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	list := decode[[]dto.TaskResponse](s, resp)
	s.Require().Len(list, 2)
	s.Equal(created.ID, list[0].ID)
	s.Equal(second.ID, list[1].ID)

	resp = s.doJSON("PUT", "/tasks/"+created.ID, map[string]string{})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	unchanged := decode[dto.TaskResponse](s, resp)
	s.Equal("Buy milk", unchanged.Title)
	s.Equal("2%", unchanged.Description)

	resp = s.doJSON("PUT", "/tasks/"+created.ID, map[string]string{"description": "skimmed"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	updated := decode[dto.TaskResponse](s, resp)
	s.Equal("Buy milk", updated.Title)
	s.Equal("skimmed", updated.Description)

	resp = s.do("DELETE", "/tasks/"+created.ID, nil, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	deleted := decode[dto.TaskResponse](s, resp)
	s.Equal("skimmed", deleted.Description)

	resp = s.do("GET", "/tasks/"+created.ID, nil, "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	body := decode[map[string]any](s, resp)
	s.Equal("Task not found", body["detail"])
}

func (s *AppTestSuite) TestTaskNeverCreated() {
	s.Equal(http.StatusNotFound, s.do("GET", "/tasks/nope", nil, "").StatusCode)
	s.Equal(http.StatusNotFound, s.doJSON("PUT", "/tasks/nope", map[string]string{"title": "x"}).StatusCode)
	s.Equal(http.StatusNotFound, s.do("DELETE", "/tasks/nope", nil, "").StatusCode)
	s.Equal(http.StatusNotFound, s.do("GET", "/tasks_with_file/nope", nil, "").StatusCode)
	s.Equal(http.StatusNotFound, s.doJSON("PUT", "/tasks_with_file/nope", map[string]string{"category": "x"}).StatusCode)
	s.Equal(http.StatusNotFound, s.do("DELETE", "/tasks_with_file/nope", nil, "").StatusCode)
}

func (s *AppTestSuite) TestTaskValidation() {
	resp := s.doJSON("POST", "/tasks/", map[string]string{"title": "only title"})
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)

	resp = s.do("POST", "/tasks/", bytes.NewBufferString(`{"title": 1, "description": "d"}`), "application/json")
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func (s *AppTestSuite) TestCreationDateWithoutTimezone() {
	naive := `{"title": "t", "description": "d", "creation_date": "2024-01-01T10:00:00"}`
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	resp := s.do("POST", "/tasks/", bytes.NewBufferString(naive), "application/json")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.True(decode[dto.TaskResponse](s, resp).CreationDate.Equal(want))

	resp = s.do("POST", "/tasks_with_file/", bytes.NewBufferString(naive), "application/json")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.True(decode[dto.TaskWithFileResponse](s, resp).CreationDate.Equal(want))

	resp = s.do("POST", "/tasks/", bytes.NewBufferString(`{"title": "t", "description": "d"}trailing`), "application/json")
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

// сценарий: файл, категория, удаление
func (s *AppTestSuite) TestTaskWithFileScenario() {
	resp := s.doMultipart("POST", "/tasks_with_file/", map[string]string{
		"id":          "x",
		"title":       "Groceries",
		"description": "weekly",
	}, "a.txt")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	created := decode[dto.TaskWithFileResponse](s, resp)
	s.Equal("x", created.ID)
	s.Require().NotNil(created.FileURL)
	s.Equal("/files/x/a.txt", *created.FileURL)

	resp = s.doJSON("PUT", "/tasks_with_file/x", map[string]string{"category": "errands"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	categorized := decode[dto.TaskWithFileResponse](s, resp)
	s.Require().NotNil(categorized.Category)
	s.Equal("errands", *categorized.Category)
	s.Equal("Groceries", categorized.Title)
	s.Equal("weekly", categorized.Description)
	s.Equal("/files/x/a.txt", *categorized.FileURL)

	// пустые строки в патче полей ничего не меняют
	resp = s.doJSON("PUT", "/tasks_with_file/x", map[string]string{"title": "", "description": "monthly"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	patched := decode[dto.TaskWithFileResponse](s, resp)
	s.Equal("Groceries", patched.Title)
	s.Equal("monthly", patched.Description)
	s.Equal("errands", *patched.Category)

	resp = s.doMultipart("PUT", "/tasks_with_file/x", map[string]string{"category": ""}, "b.pdf")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	withNewFile := decode[dto.TaskWithFileResponse](s, resp)
	s.Equal("/files/x/b.pdf", *withNewFile.FileURL)
	s.Require().NotNil(withNewFile.Category)
	s.Equal("", *withNewFile.Category)

	resp = s.do("DELETE", "/tasks_with_file/x", nil, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.do("GET", "/tasks_with_file/x", nil, "")
	s.Equal(http.StatusNotFound, resp.StatusCode)

	// хранилища независимы
	resp = s.do("GET", "/tasks/x", nil, "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *AppTestSuite) TestTaskWithFileFilter() {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	resp := s.doJSON("POST", "/tasks_with_file/", map[string]any{"id": "a", "title": "alpha", "description": "first", "creation_date": t1})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp = s.doJSON("POST", "/tasks_with_file/", map[string]any{"id": "b", "title": "beta", "description": "second", "creation_date": t2})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	list := func(query url.Values) []dto.TaskWithFileResponse {
		resp := s.do("GET", "/tasks_with_file/?"+query.Encode(), nil, "")
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		return decode[[]dto.TaskWithFileResponse](s, resp)
	}

	s.Len(list(url.Values{}), 2)

	byTitle := list(url.Values{"title": {"al"}})
	s.Require().Len(byTitle, 1)
	s.Equal("alpha", byTitle[0].Title)

	byDate := list(url.Values{"min_creation_date": {t2.Format(time.RFC3339)}})
	s.Require().Len(byDate, 1)
	s.Equal("beta", byDate[0].Title)

	s.Empty(list(url.Values{"title": {"al"}, "min_creation_date": {t2.Format(time.RFC3339)}}))

	byDay := list(url.Values{"max_creation_date": {"2024-01-15"}})
	s.Require().Len(byDay, 1)
	s.Equal("alpha", byDay[0].Title)

	resp = s.do("GET", "/tasks_with_file/?min_creation_date=soon", nil, "")
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Development = false
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"

	a, err := app.New(cfg).Init(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("сервер не остановился")
	}
	assert.NoError(t, a.Close())
}

func TestApp_Tracing(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Development = false
	cfg.Tracing.Enabled = true

	a, err := app.New(cfg).Init(context.Background())
	require.NoError(t, err)
	defer a.Close()

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/tasks/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
