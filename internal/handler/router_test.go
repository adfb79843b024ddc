package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/todo-list/internal/model"
	"github.com/BuzzLyutic/todo-list/internal/view"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(NewRouter(setupHandler(t)))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_Health(t *testing.T) {
	server := setupServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestRouter_FullWorkflow(t *testing.T) {
	server := setupServer(t)
	api := server.URL + "/api/tasks"

	// 1. Создаем две задачи
	resp := doJSON(t, http.MethodPost, api, createRequest{Title: "Buy milk", Description: "2%"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var milk model.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&milk))
	assert.Equal(t, int64(1), milk.ID)

	resp = doJSON(t, http.MethodPost, api, createRequest{Title: "Clean house"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var house model.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&house))
	assert.Equal(t, int64(2), house.ID)

	// 2. Отмечаем первую выполненной
	resp = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/%d", api, milk.ID), map[string]bool{"completed": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// 3. Удаляем вторую
	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/%d", api, house.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// 4. Проверяем список
	resp = doJSON(t, http.MethodGet, api, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snap view.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, int64(1), snap.Tasks[0].ID)
	assert.Equal(t, "Buy milk", snap.Tasks[0].Title)
	assert.True(t, snap.Tasks[0].Completed)

	// 5. Новая задача не получает удаленный id
	resp = doJSON(t, http.MethodPost, api, createRequest{Title: "Walk dog"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var dog model.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dog))
	assert.Equal(t, int64(3), dog.ID)

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/%d", api, house.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_View(t *testing.T) {
	server := setupServer(t)

	for _, title := range []string{"one", "two", "three"} {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/tasks", createRequest{Title: title})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp := doJSON(t, http.MethodPatch, server.URL+"/api/tasks/2", map[string]bool{"completed": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, server.URL+"/api/view", map[string]string{"filter": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/view", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var v viewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	assert.Equal(t, view.Counters{Total: 3, Completed: 1, Visible: 1}, v.Counters)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "two", v.Rows[0].Title)
	assert.Equal(t, view.StatusCompleted, v.Rows[0].Status)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/stats", nil)
	var stats view.Counters
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, v.Counters, stats)
}
