package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"Valo_Party/internal/model"
	"Valo_Party/internal/service"
)

// ── 测试辅助 ──

type fakePartyRepo struct {
	mu      sync.Mutex
	nextID  uint64
	parties map[uint64]*model.Party
	listErr error
}

func newFakePartyRepo() *fakePartyRepo {
	return &fakePartyRepo{parties: make(map[uint64]*model.Party)}
}

func (r *fakePartyRepo) Create(_ context.Context, p *model.Party) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now().UTC()
	cp := *p
	r.parties[p.ID] = &cp
	return nil
}

func (r *fakePartyRepo) ListActive(_ context.Context) ([]model.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var list []model.Party
	for _, p := range r.parties {
		if !p.IsDeleted {
			list = append(list, *p)
		}
	}
	return list, nil
}

func (r *fakePartyRepo) MarkExpired(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.parties[id]; ok {
		p.Expired = true
	}
	return nil
}

func (r *fakePartyRepo) MarkDeleted(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.parties[id]; ok {
		p.IsDeleted = true
	}
	return nil
}

type recordPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordPublisher) Publish(_ context.Context, event string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.events...)
}

type fakeChecker struct{}

func (fakeChecker) Check(text string) bool {
	return strings.Contains(strings.ToLower(text), "badword")
}

func setupPartyRouter() (*gin.Engine, *fakePartyRepo, *recordPublisher) {
	gin.SetMode(gin.TestMode)

	repo := newFakePartyRepo()
	pub := &recordPublisher{}
	sched := service.NewLifecycleScheduler(clockwork.NewFakeClock(), repo, pub, zap.NewNop())
	svc := service.NewPartyService(repo, pub, sched, fakeChecker{}, zap.NewNop())
	h := NewPartyHandler(svc)

	r := gin.New()
	r.GET("/api/parties", h.ListParties)
	r.POST("/api/parties", h.CreateParty)
	return r, repo, pub
}

func postParty(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/parties", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ── 创建接口 ──

func TestCreateParty_HTTP_OK(t *testing.T) {
	r, _, pub := setupPartyRouter()

	w := postParty(t, r, `{
		"partyCode": "ABC123",
		"description": "chill squad",
		"serverTag": "SG",
		"add_tags": ["mic"],
		"rank": "gold",
		"gamemode": "unrated"
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d: %s", w.Code, w.Body.String())
	}

	var party model.Party
	if err := json.Unmarshal(w.Body.Bytes(), &party); err != nil {
		t.Fatalf("响应应是完整记录: %v", err)
	}
	if party.ID == 0 || party.PartyCode != "ABC123" {
		t.Errorf("记录字段不完整: %+v", party)
	}
	if party.Expired || party.IsDeleted {
		t.Errorf("新记录两个标志都应为 false: %+v", party)
	}

	found := false
	for _, name := range pub.names() {
		if name == service.EventPartyCreated {
			found = true
		}
	}
	if !found {
		t.Errorf("应广播 newParty，实际: %v", pub.names())
	}
}

func TestCreateParty_HTTP_TagsNormalization(t *testing.T) {
	r, _, _ := setupPartyRouter()

	// add_tags 传了字符串而不是数组
	w := postParty(t, r, `{"partyCode": "ABC123", "description": "chill squad", "add_tags": "solo"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d: %s", w.Code, w.Body.String())
	}

	var party model.Party
	if err := json.Unmarshal(w.Body.Bytes(), &party); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if party.AddTags == nil || len(party.AddTags) != 0 {
		t.Errorf("非数组 add_tags 应归一化为空数组，实际: %#v", party.AddTags)
	}
}

func TestCreateParty_HTTP_CodeTooLong(t *testing.T) {
	r, _, pub := setupPartyRouter()

	w := postParty(t, r, `{"partyCode": "toolongcode", "description": "chill squad"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp["error"] != "PartyCode must be 6 characters or less" {
		t.Errorf("拒绝原因不对: %q", resp["error"])
	}
	if len(pub.names()) != 0 {
		t.Errorf("拒绝后不应广播任何事件，实际: %v", pub.names())
	}
}

func TestCreateParty_HTTP_Profanity(t *testing.T) {
	r, _, pub := setupPartyRouter()

	w := postParty(t, r, `{"partyCode": "ABC", "description": "badword inside"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp["error"] != "Profanity is not allowed" {
		t.Errorf("拒绝原因不对: %q", resp["error"])
	}
	if len(pub.names()) != 0 {
		t.Errorf("拒绝后不应广播任何事件，实际: %v", pub.names())
	}
}

func TestCreateParty_HTTP_InvalidJSON(t *testing.T) {
	r, _, _ := setupPartyRouter()

	w := postParty(t, r, `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d", w.Code)
	}
}

// ── 列表接口 ──

func TestListParties_HTTP_Empty(t *testing.T) {
	r, _, _ := setupPartyRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/parties", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("空结果是提示不是错误，期望 200，实际 %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp["msg"] != "No parties found" {
		t.Errorf("期望空结果提示，实际: %s", w.Body.String())
	}
}

func TestListParties_HTTP_ExcludesDeleted(t *testing.T) {
	r, repo, _ := setupPartyRouter()

	postParty(t, r, `{"partyCode": "AAA", "description": "one"}`)
	postParty(t, r, `{"partyCode": "BBB", "description": "two"}`)
	if err := repo.MarkDeleted(context.Background(), 2); err != nil {
		t.Fatalf("MarkDeleted 应成功: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/parties", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	var list []model.Party
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(list) != 1 || list[0].PartyCode != "AAA" {
		t.Errorf("已删除的记录不应出现，实际: %#v", list)
	}
}

func TestListParties_HTTP_StorageError(t *testing.T) {
	r, repo, _ := setupPartyRouter()
	repo.listErr = errors.New("storage unavailable")

	req := httptest.NewRequest(http.MethodGet, "/api/parties", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("存储故障应返回 500，实际 %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp["error"] != "Internal server error" {
		t.Errorf("读故障只暴露通用错误，实际: %q", resp["error"])
	}
}
