package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeContextMissing, status: http.StatusInternalServerError, publicMsg: "cart provider missing"},
		{code: CodeStorageRead, status: http.StatusServiceUnavailable, publicMsg: "cart storage unavailable", retryable: true},
		{code: CodeStorageWrite, status: http.StatusServiceUnavailable, publicMsg: "cart storage unavailable", retryable: true},
		{code: CodeMalformedSnapshot, status: http.StatusInternalServerError, publicMsg: "stored cart is unreadable"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing id")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing id" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "id"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("connection refused")
	wrapped := Wrap(CodeStorageWrite, cause, "persist cart snapshot")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeStorageWrite {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
	if got := wrapped.Error(); got != "STORAGE_WRITE_ERROR: persist cart snapshot: connection refused" {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestAsAndHasCodeSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeContextMissing, "no provider"))
	if got := As(err); got == nil || got.Code() != CodeContextMissing {
		t.Fatalf("As failed to return typed error")
	}
	if !HasCode(err, CodeContextMissing) {
		t.Fatalf("HasCode should match wrapped code")
	}
	if HasCode(err, CodeStorageRead) {
		t.Fatalf("HasCode matched the wrong code")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestDumpCollectsChainAndPostgresDetails(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "cart_snapshots_pkey", TableName: "cart_snapshots", Message: "duplicate key"}
	err := Wrap(CodeStorageWrite, pgErr, "persist cart snapshot")

	d := Dump(err)
	if d.Code != CodeStorageWrite {
		t.Fatalf("expected code in dump, got %q", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected wrapped chain entries, got %v", d.Chain)
	}
	if d.PGCode != "23505" || d.PGTable != "cart_snapshots" {
		t.Fatalf("postgres details missing: %+v", d)
	}
	fields := d.Fields()
	if fields["pg_constraint"] != "cart_snapshots_pkey" {
		t.Fatalf("fields missing constraint: %v", fields)
	}

	if got := Dump(nil); got.TopMessage != "" {
		t.Fatalf("Dump(nil) should be empty")
	}
}
