package http_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	handler "github.com/vncsmyrnk/polls/internal/adapters/handler/http"
	"github.com/vncsmyrnk/polls/internal/adapters/repository/sqldb"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/services"
)

type TestApp struct {
	DB     *sql.DB
	Server *httptest.Server
	Client *http.Client
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", filepath.Join(t.TempDir(), "polls.db"))
	db, err := sqldb.Open(ctx, sqldb.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, sqldb.Migrate(ctx, db, sqldb.DriverSQLite))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	pollRepo := sqldb.NewPollRepository(db)
	optionRepo := sqldb.NewOptionRepository(db)
	voteRepo := sqldb.NewVoteRepository(db)
	resultRepo := sqldb.NewPollResultRepository(db)

	router := handler.NewHandler(
		log,
		db,
		handler.NewPollHandler(services.NewPollService(pollRepo, resultRepo), log),
		handler.NewOptionHandler(services.NewOptionService(pollRepo, optionRepo), log),
		handler.NewVoteHandler(services.NewVoteService(pollRepo, optionRepo, voteRepo), log),
	)

	server := httptest.NewServer(router)
	app := &TestApp{
		DB:     db,
		Server: server,
		Client: server.Client(),
	}
	t.Cleanup(app.Teardown)
	return app
}

func (app *TestApp) Teardown() {
	app.Server.Close()
	app.DB.Close()
}

// do sends body as JSON and decodes the response into out when out is non-nil.
func (app *TestApp) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (app *TestApp) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, app.DB.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func tomorrow() string {
	return time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
}

func (app *TestApp) createPoll(t *testing.T, question string, options ...string) domain.Poll {
	t.Helper()

	payload := map[string]any{
		"question_text": question,
		"pub_date":      tomorrow(),
	}
	if len(options) > 0 {
		payload["options"] = options
	}

	var poll domain.Poll
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/polls/", payload, &poll))
	return poll
}
