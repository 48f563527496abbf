package endpoints

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/http/api"
	"github.com/callboard-app/callboard/internal/jobs"
	"github.com/callboard-app/callboard/internal/model"
	"github.com/callboard-app/callboard/internal/redis"
)

const testSecret = "test-secret"

// stubStore overrides only the Store methods the endpoints under test
// touch; anything else panics via the embedded nil interface.
type stubStore struct {
	db.Store
	participants map[int]model.Participant
}

func (s *stubStore) GetParticipantByEmail(email string) (*model.Participant, error) {
	for _, p := range s.participants {
		if strings.EqualFold(p.Email, email) {
			out := p
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubStore) GetParticipantByID(id int) (*model.Participant, error) {
	p, ok := s.participants[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := p
	return &out, nil
}

// stubTokens is an in-memory single-use token store.
type stubTokens struct {
	tokens map[string]int
}

func (s *stubTokens) StoreMagicToken(ctx context.Context, token string, participantID int, ttl time.Duration) error {
	s.tokens[token] = participantID
	return nil
}

func (s *stubTokens) RedeemMagicToken(ctx context.Context, token string) (int, error) {
	id, ok := s.tokens[token]
	if !ok {
		return 0, redis.ErrTokenNotFound
	}
	delete(s.tokens, token)
	return id, nil
}

// stubQueue records enqueued payloads instead of touching redis.
type stubQueue struct {
	magicLinks  []jobs.MagicLinkPayload
	schedules   []jobs.ScheduleEmailPayload
	outstanding []jobs.OutstandingEmailPayload
}

func (q *stubQueue) EnqueueMagicLink(p jobs.MagicLinkPayload) error {
	q.magicLinks = append(q.magicLinks, p)
	return nil
}

func (q *stubQueue) EnqueueScheduleEmail(p jobs.ScheduleEmailPayload) error {
	q.schedules = append(q.schedules, p)
	return nil
}

func (q *stubQueue) EnqueueOutstandingEmail(p jobs.OutstandingEmailPayload) error {
	q.outstanding = append(q.outstanding, p)
	return nil
}

func authTestRig() (*gin.Engine, *stubTokens, *stubQueue) {
	gin.SetMode(gin.TestMode)

	phone := "0400 000 000"
	store := &stubStore{participants: map[int]model.Participant{
		1: {ID: 1, Name: "Alice Adams", Email: "alice@example.com", Phone: &phone, Approved: true},
		2: {ID: 2, Name: "Bob Brown", Email: "bob@example.com", Approved: false},
	}}
	tokens := &stubTokens{tokens: map[string]int{}}
	queue := &stubQueue{}

	router := gin.New()
	api.MountGroup(router, api.GroupConfig{Prefix: "/api/volunteer"},
		AuthPublicModule(testSecret, "https://callboard.example.com", store, tokens, queue),
	)
	return router, tokens, queue
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestLink_ApprovedParticipant(t *testing.T) {
	router, tokens, queue := authTestRig()

	w := postJSON(router, "/api/volunteer/auth/request_link", gin.H{"email": "alice@example.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, queue.magicLinks, 1)
	assert.Equal(t, "alice@example.com", queue.magicLinks[0].Email)
	assert.Contains(t, queue.magicLinks[0].Link, "https://callboard.example.com/volunteer/redeem?token=")
	assert.Len(t, tokens.tokens, 1)
}

// Unknown and unapproved addresses get the same 200 so the endpoint
// cannot be used to probe the volunteer list.
func TestRequestLink_QuietForUnknownAndUnapproved(t *testing.T) {
	router, tokens, queue := authTestRig()

	for _, email := range []string{"nobody@example.com", "bob@example.com"} {
		w := postJSON(router, "/api/volunteer/auth/request_link", gin.H{"email": email})
		assert.Equal(t, http.StatusOK, w.Code, email)
	}
	assert.Empty(t, queue.magicLinks)
	assert.Empty(t, tokens.tokens)
}

func TestRedeem_SingleUse(t *testing.T) {
	router, tokens, _ := authTestRig()
	tokens.tokens["good-token"] = 1

	w := postJSON(router, "/api/volunteer/auth/redeem", gin.H{"token": "good-token"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Alice Adams", resp.Name)

	// a second redemption of the same link must fail
	w = postJSON(router, "/api/volunteer/auth/redeem", gin.H{"token": "good-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRedeem_UnknownToken(t *testing.T) {
	router, _, _ := authTestRig()

	w := postJSON(router, "/api/volunteer/auth/redeem", gin.H{"token": "never-issued"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRedeem_UnapprovedParticipant(t *testing.T) {
	router, tokens, _ := authTestRig()
	tokens.tokens["bob-token"] = 2

	w := postJSON(router, "/api/volunteer/auth/redeem", gin.H{"token": "bob-token"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
