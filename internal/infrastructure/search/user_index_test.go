package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-member-portal/internal/domain/entity"
)

type recorded struct {
	method, path, body string
}

func fakeES(t *testing.T, status int, reply string) (*elasticsearch.Client, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{r.Method, r.URL.Path, string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, &reqs
}

func TestIndexOmitsPasswordHash(t *testing.T) {
	es, reqs := fakeES(t, http.StatusCreated, `{"result":"created"}`)
	idx := NewUserIndex(es, "users", nil)

	err := idx.Index(context.Background(), &entity.User{Email: "a@x.com", Name: "Ann", PasswordHash: "$2a$12$secret", Role: entity.RoleUser})
	require.NoError(t, err)

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/users/_doc/a@x.com", got.path)
	assert.NotContains(t, got.body, "secret")
	assert.Contains(t, got.body, `"role":"user"`)
}

func TestRemoveMissingDocument(t *testing.T) {
	es, _ := fakeES(t, http.StatusNotFound, `{"result":"not_found"}`)
	assert.NoError(t, NewUserIndex(es, "users", nil).Remove(context.Background(), "a@x.com"))
}

func TestSearchParsesHits(t *testing.T) {
	reply := `{"hits":{"hits":[{"_id":"a@x.com","_source":{"email":"a@x.com","name":"Ann","role":"admin"}}]}}`
	es, reqs := fakeES(t, http.StatusOK, reply)

	hits, err := NewUserIndex(es, "users", nil).Search(context.Background(), "ann", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Ann", hits[0].Name)
	assert.Equal(t, entity.RoleAdmin, hits[0].Role)

	var body map[string]any
	require.NoError(t, json.NewDecoder(strings.NewReader((*reqs)[0].body)).Decode(&body))
	assert.EqualValues(t, 5, body["size"])
	assert.Equal(t, "/users/_search", (*reqs)[0].path)
}

func TestSearchErrorStatus(t *testing.T) {
	es, _ := fakeES(t, http.StatusInternalServerError, `{"error":"boom"}`)
	_, err := NewUserIndex(es, "users", nil).Search(context.Background(), "ann", 5)
	assert.Error(t, err)
}
