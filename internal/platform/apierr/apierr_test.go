package apierr

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
)

func TestFromAggregateStatuses(t *testing.T) {
	cases := []struct {
		code   domainagg.ErrorCode
		status int
	}{
		{domainagg.CodeNotFound, http.StatusNotFound},
		{domainagg.CodeConflict, http.StatusConflict},
		{domainagg.CodeValidation, http.StatusBadRequest},
		{domainagg.CodeRetryable, http.StatusServiceUnavailable},
		{domainagg.CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		got := FromAggregate(domainagg.NewError(tc.code, "op", "msg", nil))
		if got.Status != tc.status {
			t.Fatalf("%s: want=%d got=%d", tc.code, tc.status, got.Status)
		}
	}
}

func TestFromAggregateHidesInternalCause(t *testing.T) {
	err := domainagg.Wrap(domainagg.CodeInternal, "op", errors.New("pq: relation does not exist"))
	got := FromAggregate(err)
	if got.Err.Error() != "unexpected error" {
		t.Fatalf("cause leaked: %q", got.Err.Error())
	}
}

func TestFromAggregateConflictCarriesNoDriverText(t *testing.T) {
	err := domainagg.Wrap(domainagg.CodeConflict, "op", errors.New("UNIQUE constraint failed: certificate.appointment_id"))
	got := FromAggregate(err)
	if got.Status != http.StatusConflict {
		t.Fatalf("status: want=409 got=%d", got.Status)
	}
	if msg := got.Err.Error(); strings.Contains(msg, "certificate") || strings.Contains(msg, "UNIQUE") {
		t.Fatalf("driver text reached the response: %q", msg)
	}
}

func TestFromAggregatePlainErrorIsInternal(t *testing.T) {
	got := FromAggregate(errors.New("boom"))
	if got.Status != http.StatusInternalServerError || got.Code != "internal" {
		t.Fatalf("got %+v", got)
	}
	if FromAggregate(nil) != nil {
		t.Fatalf("nil in, nil out")
	}
}

func TestFromAggregatePassesAPIErrorThrough(t *testing.T) {
	in := New(http.StatusBadRequest, "invalid_appointment_id", errors.New("bad id"))
	if got := FromAggregate(in); got != in {
		t.Fatalf("api error should pass through")
	}
}
