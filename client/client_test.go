package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DecodesTypedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/persons/per-1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":            "per-1",
			"first_name":    "Ada",
			"last_name":     "Lovelace",
			"birth_date":    "1974-07-02",
			"filing_status": "SINGLE",
			"age":           50,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	p, err := c.GetPerson(context.Background(), "per-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "1974-07-02", p.BirthDate)
	assert.Equal(t, 50, p.Age)
}

func TestClient_ErrorMapping_JSONBody(t *testing.T) {
	// A 404 with a JSON error body surfaces the body's message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "not found", "detail": "no such person"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetPerson(context.Background(), "missing")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "not found", apiErr.Message)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Not Found", apiErr.StatusText)
	assert.Equal(t, "no such person", apiErr.Body["detail"])
}

func TestClient_ErrorMapping_NonJSONBody(t *testing.T) {
	// A non-JSON error body falls back to the generic message and an
	// empty body map
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetPerson(context.Background(), "missing")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Request failed: 404", apiErr.Message)
	assert.Empty(t, apiErr.Body)
}

func TestClient_NoContentResolvesToAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.DeleteMarriage(context.Background(), "mar-1")
	assert.NoError(t, err)
}

func TestClient_MutationSetsContentType(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		var req EmployerRequest
		json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Employer{ID: "emp-1", Name: req.Name})
	}))
	defer srv.Close()

	c := New(srv.URL)
	e, err := c.CreateEmployer(context.Background(), EmployerRequest{Name: "Initech"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Initech", e.Name)
}

func TestClient_PaginationQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]Person{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListPersons(context.Background(), Page{Number: 2, Size: 25, Sort: "last_name,desc"})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "size=25")
	assert.Contains(t, gotQuery, "sort=last_name%2Cdesc")

	// A page index is sent even without an explicit size
	_, err = c.ListPersons(context.Background(), Page{Number: 2})
	require.NoError(t, err)
	assert.Equal(t, "page=2", gotQuery)

	// The zero Page sends no pagination at all
	_, err = c.ListPersons(context.Background(), Page{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}
