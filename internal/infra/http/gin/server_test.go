package ginserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"festiloc/internal/app/commands"
	"festiloc/internal/app/dto"
	calendarapp "festiloc/internal/app/handlers/calendarview"
	reservationapp "festiloc/internal/app/handlers/reservations"
	stockapp "festiloc/internal/app/handlers/stock"
	"festiloc/internal/app/policies"
	"festiloc/internal/app/queries"
	domainarticle "festiloc/internal/domain/article"
	domainclient "festiloc/internal/domain/client"
	"festiloc/internal/domain/shared/money"
	"festiloc/internal/infra/config"
	"festiloc/internal/infra/obs"
	"festiloc/internal/infra/storage/memory"
)

// newTestServer wires the full stack on in-memory storage, mirroring the
// production composition.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	reservations := memory.NewReservationRepository()
	articles := memory.NewArticleRepository()
	clients := memory.NewClientRepository()

	for _, a := range []*domainarticle.Article{
		{ID: "chairs", Name: "Chaise Napoléon", QuantityTotal: 5, PricePerDay: money.DZD(150), Active: true},
		{ID: "tables", Name: "Table ronde", QuantityTotal: 2, PricePerDay: money.DZD(800), Active: true},
	} {
		if err := articles.Save(ctx, a); err != nil {
			t.Fatal(err)
		}
	}
	if err := clients.Save(ctx, &domainclient.Client{ID: "cli-1", Name: "Karim Benali", Active: true}); err != nil {
		t.Fatal(err)
	}

	queryBus := queries.NewInMemoryBus()
	commandBus := commands.NewInMemoryBus()

	monthHandler := &calendarapp.GetMonthHandler{Reservations: reservations, Clients: clients, Logger: logger}
	queries.Register(queryBus, calendarapp.GetMonthQuery{}.Key(), monthHandler)
	queries.Register(queryBus, calendarapp.GetStatsQuery{}.Key(), &calendarapp.GetStatsHandler{Reservations: reservations, Logger: logger})
	queries.Register(queryBus, calendarapp.UpcomingQuery{}.Key(), &calendarapp.UpcomingHandler{Reservations: reservations, Clients: clients, Logger: logger})
	queries.Register(queryBus, stockapp.AvailabilityQuery{}.Key(), &stockapp.AvailabilityHandler{Reservations: reservations, Articles: articles, Logger: logger})
	queries.Register(queryBus, reservationapp.ListQuery{}.Key(), &reservationapp.ListHandler{Reservations: reservations, Clients: clients})
	queries.Register(queryBus, reservationapp.ByMonthQuery{}.Key(), &reservationapp.ByMonthHandler{Reservations: reservations, Clients: clients})
	queries.Register(queryBus, reservationapp.ByClientQuery{}.Key(), &reservationapp.ByClientHandler{Reservations: reservations, Clients: clients})
	queries.Register(queryBus, reservationapp.GetQuery{}.Key(), &reservationapp.GetHandler{Reservations: reservations, Clients: clients})

	commands.Register(commandBus, reservationapp.CreateCommand{}.Key(), &reservationapp.CreateHandler{
		Reservations: reservations,
		Articles:     articles,
		Clients:      clients,
		Publisher:    policies.NopPublisher{},
	})
	commands.Register(commandBus, reservationapp.UpdateCommand{}.Key(), &reservationapp.UpdateHandler{
		Reservations: reservations,
		Publisher:    policies.NopPublisher{},
	})
	commands.Register(commandBus, reservationapp.DeleteCommand{}.Key(), &reservationapp.DeleteHandler{
		Reservations: reservations,
		Publisher:    policies.NopPublisher{},
	})

	navigator := calendarapp.NewNavigator(func(ctx context.Context, year int, month time.Month, now time.Time) (dto.Month, error) {
		return monthHandler.Handle(ctx, calendarapp.GetMonthQuery{Year: year, Month: month, Now: now})
	}, nil)

	cfg := config.Config{Env: "test", HTTPAddr: ":0"}
	server := NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{}, Handlers{
		Calendar:     CalendarHandler{Queries: queryBus, Navigator: navigator},
		Reservation:  ReservationHandler{Commands: commandBus, Queries: queryBus},
		Availability: AvailabilityHandler{Queries: queryBus},
		Article:      ArticleHandler{Articles: articles},
		Client:       ClientHandler{Clients: clients},
	})
	return server.Handler
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response not JSON: %v: %s", err, rec.Body.String())
		}
	}
	return rec, decoded
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestServer(t)
	for _, path := range []string{"/livez", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s = %d, want 200", path, rec.Code)
		}
	}
}

func TestReservationLifecycleOverHTTP(t *testing.T) {
	h := newTestServer(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/reservations", map[string]any{
		"client_id":  "cli-1",
		"start_date": "2024-06-10",
		"end_date":   "2024-06-12",
		"items":      []map[string]any{{"article_id": "chairs", "quantity": 4}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %v", rec.Code, body)
	}
	id, _ := body["reservation_id"].(string)
	if id == "" {
		t.Fatalf("create returned no reservation_id: %v", body)
	}

	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/reservations/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get = %d: %v", rec.Code, body)
	}
	if body["client_name"] != "Karim Benali" {
		t.Errorf("client_name = %v", body["client_name"])
	}
	if body["days"] != float64(3) {
		t.Errorf("days = %v, want 3", body["days"])
	}

	rec, body = doJSON(t, h, http.MethodPut, "/api/v1/reservations/"+id, map[string]any{"status": "CONFIRMED"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d: %v", rec.Code, body)
	}

	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/calendar/month/2024/6", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("month = %d: %v", rec.Code, body)
	}
	days, _ := body["days"].([]any)
	if len(days) == 0 || len(days)%7 != 0 {
		t.Errorf("month grid cells = %d", len(days))
	}

	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/calendar/month/2024/6/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats = %d: %v", rec.Code, body)
	}
	if body["total_reservations"] != float64(1) {
		t.Errorf("stats count = %v", body["total_reservations"])
	}

	rec, body = doJSON(t, h, http.MethodDelete, "/api/v1/reservations/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete = %d: %v", rec.Code, body)
	}
	rec, _ = doJSON(t, h, http.MethodGet, "/api/v1/reservations/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", rec.Code)
	}
}

func TestCreateReservationConflicts(t *testing.T) {
	h := newTestServer(t)

	book := func(qty int) (*httptest.ResponseRecorder, map[string]any) {
		return doJSON(t, h, http.MethodPost, "/api/v1/reservations", map[string]any{
			"client_id":  "cli-1",
			"start_date": "2024-06-10",
			"end_date":   "2024-06-11",
			"items":      []map[string]any{{"article_id": "tables", "quantity": qty}},
		})
	}

	if rec, body := book(2); rec.Code != http.StatusCreated {
		t.Fatalf("first booking = %d: %v", rec.Code, body)
	}
	rec, body := book(1)
	if rec.Code != http.StatusConflict {
		t.Fatalf("overbooking = %d, want 409: %v", rec.Code, body)
	}
	if body["article_id"] != "tables" || body["remaining"] != float64(0) {
		t.Errorf("conflict detail = %v", body)
	}
}

func TestCreateReservationValidation(t *testing.T) {
	h := newTestServer(t)

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{
			"missing items",
			map[string]any{"client_id": "cli-1", "start_date": "2024-06-10", "end_date": "2024-06-11"},
			http.StatusBadRequest,
		},
		{
			"bad date format",
			map[string]any{"client_id": "cli-1", "start_date": "10/06/2024", "end_date": "2024-06-11",
				"items": []map[string]any{{"article_id": "chairs", "quantity": 1}}},
			http.StatusBadRequest,
		},
		{
			"unknown client",
			map[string]any{"client_id": "ghost", "start_date": "2024-06-10", "end_date": "2024-06-11",
				"items": []map[string]any{{"article_id": "chairs", "quantity": 1}}},
			http.StatusNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := doJSON(t, h, http.MethodPost, "/api/v1/reservations", tc.body)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d: %v", rec.Code, tc.want, body)
			}
		})
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	h := newTestServer(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/reservations", map[string]any{
		"client_id":  "cli-1",
		"start_date": "2024-06-10",
		"end_date":   "2024-06-12",
		"items":      []map[string]any{{"article_id": "chairs", "quantity": 3}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("booking = %d: %v", rec.Code, body)
	}

	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/availability?from=2024-06-10&to=2024-06-12&ids=chairs,lanterns", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("availability = %d: %v", rec.Code, body)
	}
	entries, _ := body["articles"].([]any)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	chairs, _ := entries[0].(map[string]any)
	if chairs["known"] != true || chairs["remaining"] != float64(2) {
		t.Errorf("chairs entry = %v", chairs)
	}
	lanterns, _ := entries[1].(map[string]any)
	if lanterns["known"] != false || lanterns["remaining"] != nil {
		t.Errorf("lanterns entry = %v", lanterns)
	}

	rec, _ = doJSON(t, h, http.MethodGet, "/api/v1/availability?from=2024-06-12&to=2024-06-10", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("inverted span = %d, want 400", rec.Code)
	}
}

func TestCalendarNavigateEndpoint(t *testing.T) {
	h := newTestServer(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/calendar/navigate/next", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("navigate next = %d: %v", rec.Code, body)
	}
	wantYear, wantMonth := time.Now().Year(), int(time.Now().Month())+1
	if wantMonth == 13 {
		wantYear, wantMonth = wantYear+1, 1
	}
	if body["year"] != float64(wantYear) || body["month"] != float64(wantMonth) {
		t.Errorf("navigated to %v-%v, want %d-%d", body["year"], body["month"], wantYear, wantMonth)
	}

	rec, body = doJSON(t, h, http.MethodPost, "/api/v1/calendar/navigate/today", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("navigate today = %d: %v", rec.Code, body)
	}
	if body["month"] != float64(int(time.Now().Month())) {
		t.Errorf("today month = %v", body["month"])
	}

	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/calendar/navigate/sideways", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown direction = %d, want 400", rec.Code)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	h := newTestServer(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/articles", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("articles = %d", rec.Code)
	}
	items, _ := body["items"].([]any)
	if len(items) != 2 {
		t.Errorf("articles = %d, want 2", len(items))
	}

	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/articles/chairs", nil)
	if rec.Code != http.StatusOK || body["name"] != "Chaise Napoléon" {
		t.Errorf("article get = %d %v", rec.Code, body)
	}
	rec, _ = doJSON(t, h, http.MethodGet, "/api/v1/articles/zeppelin", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown article = %d, want 404", rec.Code)
	}

	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/clients/cli-1", nil)
	if rec.Code != http.StatusOK || body["name"] != "Karim Benali" {
		t.Errorf("client get = %d %v", rec.Code, body)
	}
}

func TestMonthParamValidation(t *testing.T) {
	h := newTestServer(t)

	for _, path := range []string{
		"/api/v1/calendar/month/abcd/6",
		"/api/v1/calendar/month/2024/13",
		"/api/v1/calendar/month/2024/0",
	} {
		rec, _ := doJSON(t, h, http.MethodGet, path, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s = %d, want 400", path, rec.Code)
		}
	}
}

func TestRequestIDPropagation(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("request id echoed as %q", got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("request id should be generated when absent")
	}
}
