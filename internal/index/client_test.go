package index

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"liquidityDesk/internal/model"
)

var testOwner = common.HexToAddress("0x00000000000000000000000000000000000000aa")

func makeRecords(ids ...uint64) []model.PositionRecord {
	records := make([]model.PositionRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, model.PositionRecord{
			ID:        id,
			Bounds:    model.Bounds{Lower: -100, Upper: 100},
			Liquidity: "1000",
		})
	}
	return records
}

func pagedServer(t *testing.T, pages [][]model.PositionRecord, pageSize int) *httptest.Server {
	t.Helper()
	total := 0
	for _, page := range pages {
		total += len(page)
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/positions" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("owner"); got != testOwner.Hex() {
			t.Errorf("owner query = %q, want %q", got, testOwner.Hex())
		}
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			http.Error(w, "bad page", http.StatusBadRequest)
			return
		}
		var data []model.PositionRecord
		if page <= len(pages) {
			data = pages[page-1]
		}
		resp := Page{
			Data:       data,
			Pagination: Pagination{Page: page, PageSize: pageSize, Total: total},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
}

func TestFetchPositions(t *testing.T) {
	server := pagedServer(t, [][]model.PositionRecord{makeRecords(1, 2, 3)}, 100)
	defer server.Close()

	client := NewClient(server.URL, server.Client(), 0, time.Millisecond, nil)
	result, err := client.FetchPositions(context.Background(), testOwner, 1, 100, "")
	if err != nil {
		t.Fatalf("FetchPositions failed: %v", err)
	}
	if len(result.Data) != 3 {
		t.Fatalf("got %d records, want 3", len(result.Data))
	}
	if result.Data[0].ID != 1 || result.Data[2].ID != 3 {
		t.Errorf("unexpected ids: %+v", result.Data)
	}
	if result.Pagination.Total != 3 {
		t.Errorf("total = %d, want 3", result.Pagination.Total)
	}
}

func TestFetchPositionsStateFilter(t *testing.T) {
	var gotState string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotState = r.URL.Query().Get("state")
		json.NewEncoder(w).Encode(Page{})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), 0, time.Millisecond, nil)
	if _, err := client.FetchPositions(context.Background(), testOwner, 1, 10, "open"); err != nil {
		t.Fatalf("FetchPositions failed: %v", err)
	}
	if gotState != "open" {
		t.Errorf("state query = %q, want %q", gotState, "open")
	}
}

func TestFetchPositionsRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(Page{Data: makeRecords(7), Pagination: Pagination{Page: 1, PageSize: 100, Total: 1}})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), 3, time.Millisecond, nil)
	result, err := client.FetchPositions(context.Background(), testOwner, 1, 100, "")
	if err != nil {
		t.Fatalf("FetchPositions failed after retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if len(result.Data) != 1 || result.Data[0].ID != 7 {
		t.Errorf("unexpected result: %+v", result.Data)
	}
}

func TestFetchPositionsExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), 2, time.Millisecond, nil)
	if _, err := client.FetchPositions(context.Background(), testOwner, 1, 100, ""); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
}

func TestFindPositionWalksPages(t *testing.T) {
	server := pagedServer(t, [][]model.PositionRecord{
		makeRecords(1, 2),
		makeRecords(3, 4),
	}, 2)
	defer server.Close()

	client := NewClient(server.URL, server.Client(), 0, time.Millisecond, nil)
	record, err := client.FindPosition(context.Background(), testOwner, 4)
	if err != nil {
		t.Fatalf("FindPosition failed: %v", err)
	}
	if record.ID != 4 {
		t.Errorf("record.ID = %d, want 4", record.ID)
	}
}

func TestFindPositionTerminatesOnZeroPageSize(t *testing.T) {
	// A server echoing page_size 0 must not keep the walk alive past the
	// reported total.
	pages := [][]model.PositionRecord{makeRecords(1, 2), makeRecords(3, 4)}
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		var data []model.PositionRecord
		if page >= 1 && page <= len(pages) {
			data = pages[page-1]
		}
		json.NewEncoder(w).Encode(Page{
			Data:       data,
			Pagination: Pagination{Page: page, PageSize: 0, Total: 4},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), 0, time.Millisecond, nil)

	record, err := client.FindPosition(context.Background(), testOwner, 3)
	if err != nil {
		t.Fatalf("FindPosition failed: %v", err)
	}
	if record.ID != 3 {
		t.Errorf("record.ID = %d, want 3", record.ID)
	}

	requests = 0
	_, err = client.FindPosition(context.Background(), testOwner, 99)
	if !errors.Is(err, model.ErrPositionNotFound) {
		t.Fatalf("err = %v, want ErrPositionNotFound", err)
	}
	if requests != 2 {
		t.Errorf("walk made %d requests, want 2", requests)
	}
}

func TestFindPositionNotFound(t *testing.T) {
	server := pagedServer(t, [][]model.PositionRecord{makeRecords(1, 2)}, 100)
	defer server.Close()

	client := NewClient(server.URL, server.Client(), 0, time.Millisecond, nil)
	_, err := client.FindPosition(context.Background(), testOwner, 99)
	if !errors.Is(err, model.ErrPositionNotFound) {
		t.Fatalf("err = %v, want ErrPositionNotFound", err)
	}
}
