package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tally/internal/core"
)

func TestJSONResponseBuilder(t *testing.T) {
	rr := httptest.NewRecorder()
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/expenses/1").
		Body(map[string]int{"n": 1}).
		Write(rr)

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("content type = %q", rr.Header().Get("Content-Type"))
	}
	if rr.Header().Get("Location") != "/api/expenses/1" {
		t.Errorf("location = %q", rr.Header().Get("Location"))
	}
	if rr.Body.String() != "{\"n\":1}\n" {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestJSONResponseBuilder_NoBody(t *testing.T) {
	rr := httptest.NewRecorder()
	NewJSONResponse().Status(http.StatusNoContent).Write(rr)

	if rr.Code != http.StatusNoContent || rr.Body.Len() != 0 {
		t.Errorf("got %d %q", rr.Code, rr.Body.String())
	}
}

func TestJSONResponseBuilder_EncodeFailure(t *testing.T) {
	rr := httptest.NewRecorder()
	NewJSONResponse().Body(make(chan int)).Write(rr)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		builder *JSONResponseBuilder
		code    int
		body    string
	}{
		{"bad request", BadRequestError("nope"), http.StatusBadRequest, `{"error":"nope"}`},
		{"internal", InternalServerError(saveFailedMessage), http.StatusInternalServerError, `{"error":"Could not add expense. Please try again."}`},
		{"too many", TooManyRequestsError(), http.StatusTooManyRequests, `{"error":"Rate limit exceeded. Please try again later."}`},
		{
			"validation",
			ValidationErrorResponse(&core.ValidationError{Fields: map[string]string{"title": "required"}}),
			http.StatusUnprocessableEntity,
			`{"error":"validation failed","fields":{"title":"required"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.builder.Write(rr)
			if rr.Code != tt.code {
				t.Errorf("status = %d, want %d", rr.Code, tt.code)
			}
			if rr.Body.String() != tt.body+"\n" {
				t.Errorf("body = %q, want %q", rr.Body.String(), tt.body)
			}
		})
	}
}
