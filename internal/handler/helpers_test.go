package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/msomdec/kennel/internal/handler"
	"github.com/msomdec/kennel/internal/repository/memory"
	"github.com/msomdec/kennel/internal/service"
)

const (
	testJWTSecret = "test-secret-for-handler-tests-0123456789"
	testPassword  = "correct-horse-battery"
)

type testServer struct {
	*httptest.Server
	auth *service.AuthService
	dogs *service.DogService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLimit(t, 100)
}

func newTestServerWithLimit(t *testing.T, loginBurst float64) *testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hash, err := service.HashPassword(testPassword, 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	auth := service.NewAuthService(hash, testJWTSecret)

	dogs := service.NewDogService(memory.NewDogRepository())
	if err := dogs.CreateTable(ctx); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}

	srv := httptest.NewServer(handler.NewRouter(dogs, auth, service.NewTokenBucket(ctx, 0, loginBurst)))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, auth: auth, dogs: dogs}
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	token, err := s.auth.Login(testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return token
}

// do sends a request with an optional JSON body and bearer token and returns
// the status code and raw body.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, s.URL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func decodeDog(t *testing.T, data []byte) handler.DogDTO {
	t.Helper()
	var dog handler.DogDTO
	if err := json.Unmarshal(data, &dog); err != nil {
		t.Fatalf("decode dog %s: %v", data, err)
	}
	return dog
}
