package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeImages generates deterministic URLs without touching the network.
type fakeImages struct {
	calls int
	fail  bool
}

func (f *fakeImages) Generate(_ context.Context, prompt string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("provider unavailable")
	}
	f.calls++
	return fmt.Sprintf("https://images.test/%d", f.calls), nil
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func createGame(t *testing.T, ts *httptest.Server, mode string) (string, string) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/games", map[string]any{
		"name": "Ada",
		"mode": mode,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["room_code"].(string), body["player_id"].(string)
}

func joinPlayer(t *testing.T, ts *httptest.Server, roomCode, name string) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/games/"+roomCode+"/players", map[string]string{
		"name": name,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["player_id"].(string)
}

func startGameRequest(t *testing.T, ts *httptest.Server, roomCode, playerID string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/games/"+roomCode+"/start", map[string]string{
		"player_id": playerID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func submitPrompt(t *testing.T, ts *httptest.Server, roomCode, playerID, prompt string) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/games/"+roomCode+"/prompts", map[string]string{
		"player_id": playerID,
		"prompt":    prompt,
	})
	if resp.StatusCode != http.StatusOK {
		body := decodeBody(t, resp)
		t.Fatalf("submit prompt failed: %d %v", resp.StatusCode, body)
	}
}

func generateImage(t *testing.T, ts *httptest.Server, roomCode, playerID string) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/games/"+roomCode+"/generate-image", map[string]string{
		"player_id": playerID,
	})
	if resp.StatusCode != http.StatusOK {
		body := decodeBody(t, resp)
		t.Fatalf("generate image failed: %d %v", resp.StatusCode, body)
	}
}

func fetchSnapshot(t *testing.T, ts *httptest.Server, roomCode string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/games/"+roomCode, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}
