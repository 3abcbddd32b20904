package validator

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.vocdoni.io/dvote/log"
)

func TestMain(m *testing.M) {
	log.Init("error", "stdout", nil)
	os.Exit(m.Run())
}

// customerPayload mirrors the create-customer request shape used by the API.
type customerPayload struct {
	Email       string            `json:"email,omitempty" validate:"omitempty,email"`
	Name        string            `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Phone       string            `json:"phone,omitempty" validate:"omitempty,phone"`
	Description string            `json:"description,omitempty" validate:"omitempty,max=500"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// TestInputValidator tests the model-in-context validation middleware.
func TestInputValidator(t *testing.T) {
	v := New()

	// Create a test handler that checks the validated model is in context
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		model, ok := GetValidatedModel(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if _, ok := model.(*customerPayload); !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	})

	handler := v.AddModelMiddleware(customerPayload{})(v.InputValidator(testHandler))

	do := func(body []byte) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Result()
	}

	// Valid request
	validJSON, _ := json.Marshal(customerPayload{
		Email: "john@example.com",
		Name:  "John Doe",
		Phone: "+1234567890",
	})
	resp := do(validJSON)
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if string(body) != "success" {
		t.Errorf("Expected body %q, got %q", "success", string(body))
	}

	// Invalid email
	invalidJSON, _ := json.Marshal(customerPayload{Email: "invalid-email"})
	resp = do(invalidJSON)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Invalid phone
	invalidJSON2, _ := json.Marshal(customerPayload{Phone: "555-1234"})
	resp = do(invalidJSON2)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Invalid JSON
	resp = do([]byte("invalid json"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// GET requests skip body validation entirely
	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Result().StatusCode != http.StatusInternalServerError {
		// The test handler requires a validated model, so a skipped
		// validation surfaces as its 500.
		t.Errorf("Expected the handler to run without a validated model")
	}
}
