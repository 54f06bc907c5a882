package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/portfolioapp/tweet-service/internal/dto"
	"github.com/portfolioapp/tweet-service/internal/mocks"
	"github.com/portfolioapp/tweet-service/internal/model"
	"github.com/portfolioapp/tweet-service/internal/moderation"
	"github.com/portfolioapp/tweet-service/internal/service"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	viper.Set("client.origin", "http://localhost:3000")

	repo := mocks.NewRepository()
	gate := moderation.New(moderation.LoadWordList(""))
	services := service.New(zap.NewNop(), repo, gate)

	return New(services, repo.Redis.Default).InitRoutes()
}

func doJSON(t *testing.T, router *gin.Engine, method string, url string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T) string {
	t.Helper()
	os.Setenv("ACCESS_SECRET", "test-secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"}).
		SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func TestCreateTweetRejected(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/tweets", dto.CreateTweetRequest{
		Content: "buy now!!! limited stock",
		Author:  "Clean User",
		Handle:  "@clean",
	}, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (%s)", w.Code, w.Body.String())
	}
	var resp dto.BasicResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Ok || resp.Details == "" {
		t.Fatalf("rejection must carry the reason, got %+v", resp)
	}
}

func TestCreateThenList(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/tweets", dto.CreateTweetRequest{
		Content: "Hello world",
		Author:  "Clean User",
		Handle:  "@clean",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/tweets", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var page dto.TweetsPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !page.Success || page.Total != 1 || len(page.Tweets) != 1 || page.Tweets[0].Content != "Hello world" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Limit != 50 || page.Offset != 0 {
		t.Fatalf("default pagination wrong: limit=%d offset=%d", page.Limit, page.Offset)
	}
}

func TestAdminCreateRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/tweets", dto.CreateTweetRequest{
		Content: "site update",
		Author:  "Admin",
		Handle:  "@admin",
		IsAdmin: true,
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("admin post without token: status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/tweets", dto.CreateTweetRequest{
		Content: "site update",
		Author:  "Admin",
		Handle:  "@admin",
		IsAdmin: true,
	}, map[string]string{"Authorization": adminToken(t)})
	if w.Code != http.StatusCreated {
		t.Fatalf("admin post with token: status = %d (%s)", w.Code, w.Body.String())
	}
	var tweet model.Tweet
	if err := json.Unmarshal(w.Body.Bytes(), &tweet); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !tweet.IsAdmin() {
		t.Fatalf("admin tweet must carry the admin id prefix, got %s", tweet.ID)
	}
}

func TestAdminReplyFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/tweets", dto.CreateTweetRequest{
		Content: "Hello world",
		Author:  "Clean User",
		Handle:  "@clean",
	}, nil)
	var tweet model.Tweet
	if err := json.Unmarshal(w.Body.Bytes(), &tweet); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	// visitor comments through the same PUT path
	w = doJSON(t, router, http.MethodPut, "/api/v1/tweets/"+tweet.ID, dto.UpdateTweetRequest{
		Comments: []dto.CommentPayload{{Author: "alice", Content: "nice one"}},
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("comment status = %d (%s)", w.Code, w.Body.String())
	}

	// admin reply to comment 0 needs a token
	idx := 0
	body := dto.UpdateTweetRequest{
		IsAdminReply: true,
		CommentIndex: &idx,
		Comments:     []dto.CommentPayload{{Author: "Admin", Content: "thanks alice"}},
	}
	w = doJSON(t, router, http.MethodPut, "/api/v1/tweets/"+tweet.ID, body, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("admin reply without token: status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodPut, "/api/v1/tweets/"+tweet.ID, body,
		map[string]string{"Authorization": adminToken(t)})
	if w.Code != http.StatusOK {
		t.Fatalf("admin reply status = %d (%s)", w.Code, w.Body.String())
	}

	// the composed detail view shows the reply nested under comment 0
	w = doJSON(t, router, http.MethodGet, "/api/v1/tweets/"+tweet.ID, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var composed model.Tweet
	if err := json.Unmarshal(w.Body.Bytes(), &composed); err != nil {
		t.Fatalf("decode composed: %v", err)
	}
	if len(composed.Comments) != 1 || len(composed.Comments[0].Replies) != 1 {
		t.Fatalf("unexpected composition: %+v", composed.Comments)
	}
	reply := composed.Comments[0].Replies[0]
	if reply.Content != "thanks alice" || !reply.Admin {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestDeleteTweet(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/tweets", dto.CreateTweetRequest{
		Content: "Hello world",
		Author:  "Clean User",
		Handle:  "@clean",
	}, nil)
	var tweet model.Tweet
	if err := json.Unmarshal(w.Body.Bytes(), &tweet); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/v1/tweets/"+tweet.ID, dto.DeleteTweetRequest{}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/tweets/"+tweet.ID, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted tweet GET status = %d, want 404", w.Code)
	}
}

func TestModerationEndpointsGated(t *testing.T) {
	router := newTestRouter(t)
	os.Setenv("MODERATION_SECRET", "sweep-key")

	w := doJSON(t, router, http.MethodPost, "/api/v1/moderation", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("sweep without key: status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/auto-moderate", nil,
		map[string]string{"X-Moderation-Key": "sweep-key"})
	if w.Code != http.StatusOK {
		t.Fatalf("sweep with key: status = %d (%s)", w.Code, w.Body.String())
	}
	var result dto.ModerationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Success || result.Removed != 0 {
		t.Fatalf("empty store sweep: %+v", result)
	}
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(t)
	viper.Set("rate.limit", 2)
	defer viper.Set("rate.limit", 0)

	var last int
	for i := 0; i < 3; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/v1/newsletter/subscribe", dto.SubscribeRequest{
			Email: fmt.Sprintf("reader%d@example.com", i),
		}, nil)
		last = w.Code
	}

	if last != http.StatusTooManyRequests {
		t.Fatalf("third request in the window: status = %d, want 429", last)
	}
}
