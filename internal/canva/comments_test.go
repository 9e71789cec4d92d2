package canva

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentThread_Body(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /designs/DAF1/comments", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			assert.Equal(t, "looks great", body["content"])
			assert.Equal(t, "page-2", body["page_id"])
		}
		fmt.Fprint(w, `{"comment":{"id":"KeAbiEAjZEj"}}`)
	})
	c, _, _ := newTestClient(t, mux)

	raw, err := c.CreateCommentThread(context.Background(), "DAF1", "looks great", "page-2")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "KeAbiEAjZEj")
}

func TestCreateCommentReply_Body(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /designs/DAF1/comments/KeAbiEAjZEj/replies", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			assert.Equal(t, "agreed", body["content"])
		}
		fmt.Fprint(w, `{"comment":{"id":"reply-1"}}`)
	})
	c, _, _ := newTestClient(t, mux)

	_, err := c.CreateCommentReply(context.Background(), "DAF1", "KeAbiEAjZEj", "agreed")
	require.NoError(t, err)
}

func TestListCommentReplies_Pagination(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /designs/DAF1/comments/KeAbiEAjZEj/replies", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "next-page", r.URL.Query().Get("continuation"))
		fmt.Fprint(w, `{"items":[],"continuation":""}`)
	})
	c, _, _ := newTestClient(t, mux)

	raw, err := c.ListCommentReplies(context.Background(), "DAF1", "KeAbiEAjZEj", 25, "next-page")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "items")
}

func TestListCommentReplies_OmitsEmptyParams(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /designs/DAF1/comments/KeAbiEAjZEj/replies", func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("limit"))
		assert.False(t, r.URL.Query().Has("continuation"))
		fmt.Fprint(w, `{"items":[]}`)
	})
	c, _, _ := newTestClient(t, mux)

	_, err := c.ListCommentReplies(context.Background(), "DAF1", "KeAbiEAjZEj", 0, "")
	require.NoError(t, err)
}
