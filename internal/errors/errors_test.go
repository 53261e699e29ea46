package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_New(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
}

func TestAppError_Unauthorized_DefaultMessage(t *testing.T) {
	err := Unauthorized("")
	if err.Code != ErrCodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", err.HTTPStatus)
	}
	if err.Message == "" {
		t.Error("expected non-empty default message")
	}
}

func TestAppError_InvalidCredentials_SameShape(t *testing.T) {
	// Unknown-user and wrong-password paths both produce this error; the
	// response shape must carry nothing that lets a caller tell them apart.
	a := InvalidCredentials()
	b := InvalidCredentials()
	if a.Code != b.Code || a.Message != b.Message || a.HTTPStatus != b.HTTPStatus {
		t.Error("InvalidCredentials must be indistinguishable across call sites")
	}
	if a.Details != nil {
		t.Error("InvalidCredentials must not carry details")
	}
}

func TestAppError_DatabaseError_DistinctFromAuth(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := DatabaseError(cause)
	if err.Code == ErrCodeUnauthorized {
		t.Error("store failure must not be reported as an auth failure")
	}
	if err.HTTPStatus < 500 {
		t.Errorf("expected 5xx, got %d", err.HTTPStatus)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be wrapped")
	}
}

func TestAppError_NotFound_Details(t *testing.T) {
	err := NotFound("quote", "123")
	if err.Details["resource"] != "quote" {
		t.Errorf("expected resource=quote, got %v", err.Details["resource"])
	}
	if err.Details["id"] != "123" {
		t.Errorf("expected id=123, got %v", err.Details["id"])
	}

	noID := NotFound("quote", "")
	if _, ok := noID.Details["id"]; ok {
		t.Error("expected no 'id' key when id is empty")
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := Validation("bad input").
		WithDetail("fields", []string{"author"}).
		WithDetail("hint", "see docs")

	if len(err.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(err.Details))
	}
	if err.Details["hint"] != "see docs" {
		t.Errorf("expected hint detail, got %v", err.Details["hint"])
	}
	if err.ToResponse().Error.Details["hint"] != "see docs" {
		t.Error("details must survive into the response envelope")
	}
}

func TestAppError_ToResponse_OmitsCause(t *testing.T) {
	err := Internal(fmt.Errorf("secret internal detail"))
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", resp.Error.Code)
	}
	if resp.Error.Message != err.Message {
		t.Error("response message should match error message")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Validation("bad input")
	wrapped := fmt.Errorf("handler: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to unwrap")
	}
	if got.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", got.Code)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error should not convert")
	}
}
