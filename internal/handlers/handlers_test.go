package handlers_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/docs"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/checkout"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/dto"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/handlers"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/hashing"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/lifecycle"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/pricing"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/router"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/service"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MockOrderService
type MockOrderService struct {
	SubmitOrderFunc   func(ctx context.Context, req checkout.CreateOrderRequest) (*models.Order, error)
	TrackOrderFunc    func(ctx context.Context, trackingID string) (*models.Order, error)
	ListOrdersFunc    func(ctx context.Context, f service.ListFilter) (*service.OrderPage, error)
	UpdateStatusFunc  func(ctx context.Context, id uuid.UUID, to models.OrderStatus, force bool) (*models.Order, error)
	ValidatePromoFunc func(ctx context.Context, code string, subtotal int64) (*service.PromoPreview, error)
	QuoteFunc         func(ctx context.Context, in service.QuoteInput) (pricing.Quote, error)
}

func (m *MockOrderService) SubmitOrder(ctx context.Context, req checkout.CreateOrderRequest) (*models.Order, error) {
	if m.SubmitOrderFunc != nil {
		return m.SubmitOrderFunc(ctx, req)
	}
	return &models.Order{ID: uuid.New(), TrackingID: "TRXNEWORDER", Status: models.OrderStatusPending}, nil
}

func (m *MockOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, service.ErrOrderNotFound
}

func (m *MockOrderService) TrackOrder(ctx context.Context, trackingID string) (*models.Order, error) {
	if m.TrackOrderFunc != nil {
		return m.TrackOrderFunc(ctx, trackingID)
	}
	return nil, service.ErrOrderNotFound
}

func (m *MockOrderService) ListOrders(ctx context.Context, f service.ListFilter) (*service.OrderPage, error) {
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx, f)
	}
	return &service.OrderPage{}, nil
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus, force bool) (*models.Order, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, to, force)
	}
	return nil, service.ErrOrderNotFound
}

func (m *MockOrderService) ResolvePromo(ctx context.Context, code string) (*models.PromoCode, error) {
	return nil, nil
}

func (m *MockOrderService) ValidatePromo(ctx context.Context, code string, subtotal int64) (*service.PromoPreview, error) {
	if m.ValidatePromoFunc != nil {
		return m.ValidatePromoFunc(ctx, code, subtotal)
	}
	return nil, service.ErrPromoNotFound
}

func (m *MockOrderService) Quote(ctx context.Context, in service.QuoteInput) (pricing.Quote, error) {
	if m.QuoteFunc != nil {
		return m.QuoteFunc(ctx, in)
	}
	return pricing.NewCalculator(nil).ComputeTotal(in.Items, in.District, nil, time.Now())
}

func (m *MockOrderService) InvalidateOrderLists(ctx context.Context) error { return nil }

func (m *MockOrderService) DeliveryTable() *pricing.DeliveryTable {
	return pricing.DefaultDeliveryTable()
}

type env struct {
	engine *gin.Engine
	svc    *MockOrderService
	tokens *token.HSProvider
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	svc := &MockOrderService{}
	tokens := token.NewHSProvider("secret", "trynex", "admin")

	hasher := hashing.NewBcrypt(4)
	hash, err := hasher.Hash("owner-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	auth := service.NewAdminAuth("owner", hash, hasher, tokens, time.Hour, log)

	co := checkout.New(checkout.NewMemoryStore(), checkout.NewAssembler(pricing.NewCalculator(nil)), svc, svc, svc, time.Second, log)
	engine := router.Router(router.Deps{
		Orders: handlers.NewOrderHandler(svc, handlers.WatchOptions{
			Interval:        5 * time.Second,
			NotFoundRetries: 1,
			BaseBackoff:     time.Millisecond,
			MaxBackoff:      5 * time.Millisecond,
		}, log),
		Checkout: handlers.NewCheckoutHandler(co, log),
		Auth:     handlers.NewAuthHandler(auth, log),
		Tokens:   tokens,
	}, log)
	return &env{engine: engine, svc: svc, tokens: tokens}
}

func (e *env) do(method, path string, body any, authz string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *env) admin(t *testing.T) string {
	t.Helper()
	tok, _, err := e.tokens.Sign("owner", string(service.RoleAdmin), time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + tok
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	if w := e.do(http.MethodGet, "/health", nil, ""); w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
}

func TestCreateOrder_WireFormat(t *testing.T) {
	e := newEnv(t)
	var got checkout.CreateOrderRequest
	e.svc.SubmitOrderFunc = func(ctx context.Context, req checkout.CreateOrderRequest) (*models.Order, error) {
		got = req
		return &models.Order{ID: uuid.New(), TrackingID: "TRXABCDEFGH", Status: models.OrderStatusPending, Total: 660}, nil
	}

	body := map[string]any{
		"items":               `[{"product_id":"p-mug","name":"Mug","unit_price":"300","quantity":2}]`,
		"customer_name":       "Rahim",
		"phone":               "01712345678",
		"district":            "ঢাকা",
		"thana":               "ধানমন্ডি",
		"address":             "Road 5",
		"total":               "660",
		"payment_info":        `{"method":"cod"}`,
		"custom_instructions": "",
		"custom_images":       nil,
		"status":              "pending",
	}
	w := e.do(http.MethodPost, "/api/v1/orders", body, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	items := got.Items.Get()
	if len(items) != 1 || items[0].Quantity != 2 || got.PaymentInfo.Get().Method != models.PaymentCOD {
		t.Fatalf("request not decoded: %+v", got)
	}
	if !got.CustomImages.IsZero() {
		t.Fatalf("null custom_images must stay empty")
	}
	ord := decode[models.Order](t, w)
	if ord.TrackingID != "TRXABCDEFGH" {
		t.Fatalf("response: %+v", ord)
	}
}

func TestCreateOrder_ValidationMapsTo422(t *testing.T) {
	e := newEnv(t)
	e.svc.SubmitOrderFunc = func(ctx context.Context, req checkout.CreateOrderRequest) (*models.Order, error) {
		return nil, checkout.ValidationErrors{{Step: checkout.StepReview, Field: "total", Tag: "eq", Message: "mismatch"}}
	}
	w := e.do(http.MethodPost, "/api/v1/orders", map[string]any{"items": "[]"}, "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	resp := decode[dto.BaseError](t, w)
	if resp.Code != "validation_error" || len(resp.Fields) != 1 || resp.Fields[0].Field != "total" || resp.Fields[0].Step != "review" {
		t.Fatalf("response: %+v", resp)
	}

	w = e.do(http.MethodPost, "/api/v1/orders", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty body: %d", w.Code)
	}
}

func TestTrackOrder(t *testing.T) {
	e := newEnv(t)
	e.svc.TrackOrderFunc = func(ctx context.Context, id string) (*models.Order, error) {
		if id == "TRXABCDEFGH" {
			return &models.Order{TrackingID: id, Status: models.OrderStatusShipped}, nil
		}
		return nil, service.ErrOrderNotFound
	}

	w := e.do(http.MethodGet, "/api/v1/orders/track/TRXABCDEFGH", nil, "")
	resp := decode[dto.TrackResponse](t, w)
	if w.Code != http.StatusOK || !resp.Success || resp.Order.Status != models.OrderStatusShipped {
		t.Fatalf("track: %d %+v", w.Code, resp)
	}

	w = e.do(http.MethodGet, "/api/v1/orders/track/BOGUS123", nil, "")
	resp = decode[dto.TrackResponse](t, w)
	if w.Code != http.StatusNotFound || resp.Success {
		t.Fatalf("bogus: %d %+v", w.Code, resp)
	}
}

func TestUpdateStatus(t *testing.T) {
	e := newEnv(t)
	id := uuid.New()
	e.svc.UpdateStatusFunc = func(ctx context.Context, got uuid.UUID, to models.OrderStatus, force bool) (*models.Order, error) {
		if role, _ := service.RoleFromContext(ctx); role != service.RoleAdmin {
			t.Fatalf("admin role must reach the service")
		}
		switch to {
		case models.OrderStatusConfirmed:
			return &models.Order{ID: got, Status: to}, nil
		case models.OrderStatusDelivered:
			return nil, &lifecycle.TransitionError{From: models.OrderStatusPending, To: to, Kind: lifecycle.KindIllegal}
		case models.OrderStatusProcessing:
			return nil, &lifecycle.TransitionError{From: models.OrderStatusPending, To: to, Kind: lifecycle.KindConflict}
		default:
			return nil, &lifecycle.TransitionError{To: to, Kind: lifecycle.KindUnknownStatus}
		}
	}
	path := "/api/v1/orders/" + id.String()

	if w := e.do(http.MethodPatch, path, map[string]any{"status": "confirmed"}, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", w.Code)
	}
	if w := e.do(http.MethodPatch, path, map[string]any{"status": "confirmed"}, e.admin(t)); w.Code != http.StatusOK {
		t.Fatalf("confirm: %d %s", w.Code, w.Body.String())
	}

	w := e.do(http.MethodPatch, path, map[string]any{"status": "delivered"}, e.admin(t))
	illegal := decode[dto.ConflictErrorResponse](t, w)
	if w.Code != http.StatusConflict || illegal.Details != "illegal" {
		t.Fatalf("illegal: %d %s", w.Code, w.Body.String())
	}
	if len(illegal.Allowed) != 2 || illegal.Allowed[0] != "confirmed" || illegal.Allowed[1] != "cancelled" {
		t.Fatalf("allowed targets from pending: %v", illegal.Allowed)
	}
	w = e.do(http.MethodPatch, path, map[string]any{"status": "processing"}, e.admin(t))
	concurrent := decode[dto.ConflictErrorResponse](t, w)
	if w.Code != http.StatusConflict || concurrent.Details != "conflict" {
		t.Fatalf("conflict: %d %s", w.Code, w.Body.String())
	}
	if len(concurrent.Allowed) != 0 {
		t.Fatalf("stale status must not advertise targets: %v", concurrent.Allowed)
	}
	if w := e.do(http.MethodPatch, path, map[string]any{"status": "lost"}, e.admin(t)); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: %d", w.Code)
	}
	if w := e.do(http.MethodPatch, "/api/v1/orders/not-a-uuid", map[string]any{"status": "confirmed"}, e.admin(t)); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", w.Code)
	}
}

func TestListOrders_RequiresAdmin(t *testing.T) {
	e := newEnv(t)
	var got service.ListFilter
	e.svc.ListOrdersFunc = func(ctx context.Context, f service.ListFilter) (*service.OrderPage, error) {
		got = f
		return &service.OrderPage{Total: 0}, nil
	}
	if w := e.do(http.MethodGet, "/api/v1/orders", nil, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", w.Code)
	}
	w := e.do(http.MethodGet, "/api/v1/orders?status=shipped&limit=5&offset=10", nil, e.admin(t))
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	if got.Status == nil || *got.Status != models.OrderStatusShipped || got.Limit != 5 || got.Offset != 10 {
		t.Fatalf("filter: %+v", got)
	}
	if w := e.do(http.MethodGet, "/api/v1/orders?limit=x", nil, e.admin(t)); w.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: %d", w.Code)
	}
}

func TestValidatePromoAndQuote(t *testing.T) {
	e := newEnv(t)
	e.svc.ValidatePromoFunc = func(ctx context.Context, code string, subtotal int64) (*service.PromoPreview, error) {
		if code != "WELCOME10" {
			return nil, service.ErrPromoNotFound
		}
		return &service.PromoPreview{Code: code, Status: models.PromoActive, Subtotal: subtotal, Discount: subtotal / 10}, nil
	}

	w := e.do(http.MethodGet, "/api/v1/promo-codes/WELCOME10/validate?subtotal=600", nil, "")
	if w.Code != http.StatusOK || decode[service.PromoPreview](t, w).Discount != 60 {
		t.Fatalf("promo: %d %s", w.Code, w.Body.String())
	}
	if w := e.do(http.MethodGet, "/api/v1/promo-codes/NOPE/validate", nil, ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown promo: %d", w.Code)
	}

	w = e.do(http.MethodPost, "/api/v1/checkout/quote", map[string]any{
		"items":    []map[string]any{{"product_id": "p-mug", "name": "Mug", "unit_price": "300", "quantity": 2}},
		"district": "ঢাকা",
	}, "")
	q := decode[pricing.Quote](t, w)
	if w.Code != http.StatusOK || q.Total != 660 || q.Provisional {
		t.Fatalf("quote: %d %+v", w.Code, q)
	}

	w = e.do(http.MethodGet, "/api/v1/reference/districts", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ঢাকা") {
		t.Fatalf("districts: %d", w.Code)
	}
}

func TestCheckoutSessionFlow(t *testing.T) {
	e := newEnv(t)
	var submitted checkout.CreateOrderRequest
	e.svc.SubmitOrderFunc = func(ctx context.Context, req checkout.CreateOrderRequest) (*models.Order, error) {
		submitted = req
		return &models.Order{ID: uuid.New(), TrackingID: "TRXSESSION1", Status: models.OrderStatusPending}, nil
	}

	cart := []models.CartLineItem{{ProductID: "p-mug", Name: "Mug", UnitPrice: decimal.NewFromInt(300), Quantity: 2}}
	w := e.do(http.MethodPost, "/api/v1/checkout/sessions", dto.StartSessionRequest{Cart: cart}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("start: %d %s", w.Code, w.Body.String())
	}
	sess := decode[checkout.Session](t, w)
	base := "/api/v1/checkout/sessions/" + sess.ID

	w = e.do(http.MethodPost, base+"/steps/identity/validate", nil, "")
	if w.Code != http.StatusUnprocessableEntity || len(decode[dto.BaseError](t, w).Fields) != 2 {
		t.Fatalf("empty identity must list both errors: %d %s", w.Code, w.Body.String())
	}

	form := checkout.FormState{
		CustomerName:  "Rahim",
		Phone:         "01712345678",
		District:      "ঢাকা",
		Thana:         "ধানমন্ডি",
		AddressLine:   "Road 5",
		PaymentMethod: models.PaymentCOD,
	}
	if w := e.do(http.MethodPut, base, checkout.SessionUpdate{Form: &form}, ""); w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}

	w = e.do(http.MethodPost, base+"/steps/identity/validate", nil, "")
	step := decode[dto.StepValidationResponse](t, w)
	if w.Code != http.StatusOK || !step.Valid || step.Next != "address" {
		t.Fatalf("identity: %d %+v", w.Code, step)
	}
	if w := e.do(http.MethodPost, base+"/steps/bogus/validate", nil, ""); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown step: %d", w.Code)
	}

	w = e.do(http.MethodGet, base+"/quote", nil, "")
	if q := decode[pricing.Quote](t, w); q.Total != 660 {
		t.Fatalf("session quote: %+v", q)
	}

	w = e.do(http.MethodPost, base+"/submit", nil, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: %d %s", w.Code, w.Body.String())
	}
	if submitted.Total != "660" || submitted.Status != models.OrderStatusPending {
		t.Fatalf("submitted: %+v", submitted)
	}
	if w := e.do(http.MethodGet, base, nil, ""); w.Code != http.StatusNotFound {
		t.Fatalf("session must be cleared after submit: %d", w.Code)
	}
}

func TestCheckoutSubmitFailureKeepsDraft(t *testing.T) {
	e := newEnv(t)
	e.svc.SubmitOrderFunc = func(ctx context.Context, req checkout.CreateOrderRequest) (*models.Order, error) {
		return nil, errors.New("db down")
	}
	cart := []models.CartLineItem{{ProductID: "p-mug", Name: "Mug", UnitPrice: decimal.NewFromInt(300), Quantity: 2}}
	sess := decode[checkout.Session](t, e.do(http.MethodPost, "/api/v1/checkout/sessions", dto.StartSessionRequest{Cart: cart}, ""))
	base := "/api/v1/checkout/sessions/" + sess.ID

	form := checkout.FormState{CustomerName: "Rahim", Phone: "01712345678", District: "ঢাকা", Thana: "ধানমন্ডি", AddressLine: "Road 5", PaymentMethod: models.PaymentCOD}
	e.do(http.MethodPut, base, checkout.SessionUpdate{Form: &form}, "")

	w := e.do(http.MethodPost, base+"/submit", nil, "")
	resp := decode[dto.BaseError](t, w)
	if w.Code != http.StatusBadGateway || resp.Code != "submission_failed" || !resp.Retryable {
		t.Fatalf("submit failure: %d %+v", w.Code, resp)
	}
	if w := e.do(http.MethodGet, base, nil, ""); w.Code != http.StatusOK {
		t.Fatalf("draft must survive a failed submit: %d", w.Code)
	}
	if w := e.do(http.MethodDelete, base, nil, ""); w.Code != http.StatusNoContent {
		t.Fatalf("cancel: %d", w.Code)
	}
}

func TestWatchOrder_StreamsUntilTerminal(t *testing.T) {
	e := newEnv(t)
	e.svc.TrackOrderFunc = func(ctx context.Context, id string) (*models.Order, error) {
		return &models.Order{TrackingID: id, Status: models.OrderStatusDelivered}, nil
	}

	srv := httptest.NewServer(e.engine)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/orders/track/TRXABCDEFGH/watch")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("content type: %s", ct)
	}

	var data string
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		if line := sc.Text(); strings.HasPrefix(line, "data:") {
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
	var ev dto.WatchEvent
	if err := json.Unmarshal([]byte(data), &ev); err != nil {
		t.Fatalf("event %q: %v", data, err)
	}
	if ev.Order == nil || ev.Order.Status != models.OrderStatusDelivered {
		t.Fatalf("event: %+v", ev)
	}
}

func TestWatchOrder_NotFoundTerminates(t *testing.T) {
	e := newEnv(t)
	srv := httptest.NewServer(e.engine)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/orders/track/BOGUS123/watch")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer resp.Body.Close()

	var events []dto.WatchEvent
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		if line := sc.Text(); strings.HasPrefix(line, "data:") {
			var ev dto.WatchEvent
			if err := json.Unmarshal([]byte(strings.TrimSpace(strings.TrimPrefix(line, "data:"))), &ev); err != nil {
				t.Fatalf("decode: %v", err)
			}
			events = append(events, ev)
		}
	}
	if len(events) == 0 || !events[len(events)-1].Terminal {
		t.Fatalf("stream must end with a terminal event: %+v", events)
	}
}

func TestAdminLogin(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodPost, "/api/v1/admin/login", map[string]string{"username": "owner", "password": "wrong-password"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: %d %s", w.Code, w.Body.String())
	}

	w = e.do(http.MethodPost, "/api/v1/admin/login", map[string]string{"username": "owner"}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing password: %d", w.Code)
	}

	w = e.do(http.MethodPost, "/api/v1/admin/login", map[string]string{"username": "owner", "password": "owner-password"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	tok := decode[service.AdminToken](t, w)
	claims, err := e.tokens.Parse(tok.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Role != string(service.RoleAdmin) || claims.Subject != "owner" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestCheckoutSessionRejectsBadCart(t *testing.T) {
	e := newEnv(t)
	bad := []models.CartLineItem{{ProductID: "p-mug", Name: "Mug", UnitPrice: decimal.NewFromInt(300), Quantity: 0}}

	w := e.do(http.MethodPost, "/api/v1/checkout/sessions", dto.StartSessionRequest{Cart: bad}, "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("start with bad cart: %d %s", w.Code, w.Body.String())
	}
	body := decode[dto.ValidationErrorResponse](t, w)
	if len(body.Fields) == 0 || body.Fields[0].Field != "items" {
		t.Fatalf("expected items field error: %+v", body)
	}

	good := []models.CartLineItem{{ProductID: "p-mug", Name: "Mug", UnitPrice: decimal.NewFromInt(300), Quantity: 1}}
	sess := decode[checkout.Session](t, e.do(http.MethodPost, "/api/v1/checkout/sessions", dto.StartSessionRequest{Cart: good}, ""))
	w = e.do(http.MethodPut, "/api/v1/checkout/sessions/"+sess.ID, map[string]any{"cart": bad}, "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("update with bad cart: %d %s", w.Code, w.Body.String())
	}
}

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	e := newEnv(t)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("swagger template is not valid JSON: %v", err)
	}

	param := regexp.MustCompile(`:(\w+)`)
	for _, rt := range e.engine.Routes() {
		if !strings.HasPrefix(rt.Path, "/api/v1/") {
			continue
		}
		path := param.ReplaceAllString(rt.Path, "{$1}")
		if _, ok := doc.Paths[path][strings.ToLower(rt.Method)]; !ok {
			t.Errorf("%s %s missing from swagger doc", rt.Method, path)
		}
	}
}
