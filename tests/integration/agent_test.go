//go:build integration

// Package integration_test runs API-level tests against a fully wired agent:
// chi router, middleware, processor, and in-memory task store.
// Run with: go test -tags=integration ./tests/integration/...
package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/poforge/poforge/internal/adapter/memstore"
	"github.com/poforge/poforge/internal/adapter/ristretto"
	"github.com/poforge/poforge/internal/config"
	pfmw "github.com/poforge/poforge/internal/middleware"
	"github.com/poforge/poforge/internal/port/a2a"
	"github.com/poforge/poforge/internal/service"
)

var testServer *httptest.Server

func TestMain(m *testing.M) {
	cfg := config.Defaults()

	store := memstore.New()
	processor := service.NewProcessor(store, nil)
	card := a2a.BuildAgentCard(a2a.CardConfig{
		Name:        cfg.Agent.Name,
		Description: cfg.Agent.Description,
		URL:         cfg.Agent.URL,
		Version:     cfg.Agent.Version,
	})
	handler := a2a.NewHandler(card, processor)

	replayCache, err := ristretto.New(cfg.Idempotency.MaxSizeMB << 20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "idempotency cache: %v\n", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(pfmw.RequestID)
	r.Use(pfmw.Idempotency(replayCache, cfg.Idempotency.TTL))
	handler.MountRoutes(r)

	testServer = httptest.NewServer(r)

	code := m.Run()

	testServer.Close()
	replayCache.Close()
	os.Exit(code)
}

func validEnvelope() []byte {
	return []byte(`{
		"role": "user",
		"parts": [{
			"kind": "data",
			"data": {
				"purchaseOrder": {
					"supplierName": "Acme",
					"supplierAddressLine1": "1 Main St",
					"supplierCity": "Springfield",
					"supplierState": "CA",
					"supplierPostalCode": "90210",
					"supplierCountry": "USA",
					"items": [{
						"itemCode": "IT-1",
						"description": "Widget",
						"quantity": 2,
						"unitPrice": 10.0,
						"lineTotal": 20.0
					}],
					"poNumber": "PO-1",
					"createdBy": "J. Doe",
					"buyerDepartment": "Finance",
					"taxRate": 0.07,
					"subTotal": 20.0,
					"tax": 1.4,
					"grandTotal": 21.4,
					"isApproved": true
				}
			}
		}]
	}`)
}

func submitTask(t *testing.T) a2a.Task {
	t.Helper()

	resp, err := http.Post(testServer.URL+"/a2a/tasks", "application/json", bytes.NewReader(validEnvelope()))
	if err != nil {
		t.Fatalf("POST /a2a/tasks: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var task a2a.Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		t.Fatalf("decode task: %v", err)
	}
	return task
}

func TestAgentCardServed(t *testing.T) {
	resp, err := http.Get(testServer.URL + "/.well-known/agent.json")
	if err != nil {
		t.Fatalf("GET agent card: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var card a2a.AgentCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		t.Fatalf("decode card: %v", err)
	}
	if card.Name == "" || card.Version == "" || len(card.Skills) == 0 {
		t.Fatalf("incomplete card: %+v", card)
	}
}

func TestSubmitFetchCancel(t *testing.T) {
	task := submitTask(t)

	if task.Status.State != a2a.TaskStateCompleted {
		t.Fatalf("expected completed, got %s", task.Status.State)
	}
	if got := task.Status.Message.Parts[0].Text; got != `PO-1,20,1.4,21.4,Acme,Finance,""` {
		t.Fatalf("unexpected CSV line: %q", got)
	}

	resp, err := http.Get(testServer.URL + "/a2a/tasks/" + task.ID)
	if err != nil {
		t.Fatalf("GET task: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cancelResp, err := http.Post(testServer.URL+"/a2a/tasks/"+task.ID+"/cancel", "application/json", http.NoBody)
	if err != nil {
		t.Fatalf("POST cancel: %v", err)
	}
	defer func() { _ = cancelResp.Body.Close() }()
	if cancelResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", cancelResp.StatusCode)
	}

	var cancelled a2a.Task
	if err := json.NewDecoder(cancelResp.Body).Decode(&cancelled); err != nil {
		t.Fatalf("decode cancelled task: %v", err)
	}
	if cancelled.Status.State != a2a.TaskStateFailed {
		t.Fatalf("expected failed, got %s", cancelled.Status.State)
	}
}

func TestSubmitRejectsGarbage(t *testing.T) {
	body := []byte(`{"role":"user","parts":[{"kind":"text","text":"hello there"}]}`)
	resp, err := http.Post(testServer.URL+"/a2a/tasks", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestIdempotentSubmission(t *testing.T) {
	key := fmt.Sprintf("it-%d", time.Now().UnixNano())

	ids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		req, err := http.NewRequest(http.MethodPost, testServer.URL+"/a2a/tasks", bytes.NewReader(validEnvelope()))
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", key)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("POST: %v", err)
		}

		var task a2a.Task
		if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_ = resp.Body.Close()
		ids = append(ids, task.ID)

		// Give the ristretto write buffer time to drain before the replay.
		time.Sleep(50 * time.Millisecond)
	}

	if ids[0] != ids[1] {
		t.Fatalf("idempotent submissions created distinct tasks: %v", ids)
	}
}
