package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zenwen/ainews/internal/database"
	"github.com/zenwen/ainews/internal/news"
	"github.com/zenwen/ainews/internal/validate"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedArticle(t *testing.T, db *database.DB) *news.Item {
	t.Helper()
	item := news.New("GPT-5 released", "Detailed original content about the release.",
		"https://example.com/gpt5", "feed_test",
		time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC), []string{"ai"}, 0.85)
	if err := db.UpsertItem(item); err != nil {
		t.Fatalf("seeding item: %v", err)
	}

	rewritten := news.New("🤖 GPT-5来了", "# 🤖 GPT-5来了\n\n**导读**通俗版内容。",
		item.URL, item.Source, item.PublishedDate, item.Tags, item.Score)
	rwID, err := db.InsertRewrite(item.ID, rewritten, "通俗易懂", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("seeding rewrite: %v", err)
	}
	if err := db.InsertValidation(rwID, &validate.Result{IsValid: true, Score: 0.9}); err != nil {
		t.Fatalf("seeding validation: %v", err)
	}
	return item
}

func TestIndexRoute(t *testing.T) {
	db := openTestDB(t)
	seedArticle(t, db)

	srv, err := New(db)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "GPT-5来了") {
		t.Error("expected rewritten title on the index page")
	}
	if !strings.Contains(body, "1 publishable") {
		t.Error("expected stats line in response body")
	}
}

func TestIndexEmpty(t *testing.T) {
	db := openTestDB(t)
	srv, err := New(db)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No publishable articles yet") {
		t.Error("expected empty-state message")
	}
}

func TestArticleRoute(t *testing.T) {
	db := openTestDB(t)
	item := seedArticle(t, db)

	srv, err := New(db)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/article/"+item.ID, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "通俗版内容") {
		t.Error("expected rendered rewrite content")
	}
	if !strings.Contains(body, "https://example.com/gpt5") {
		t.Error("expected source link")
	}
}

func TestArticleNotFound(t *testing.T) {
	db := openTestDB(t)
	srv, err := New(db)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/article/deadbeefdeadbeef", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestUnknownPathIs404(t *testing.T) {
	db := openTestDB(t)
	srv, err := New(db)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestRenderMarkdown(t *testing.T) {
	html := string(renderMarkdown("# Title\n\n**bold** text"))
	if !strings.Contains(html, "<h1") {
		t.Errorf("expected heading element, got %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("expected bold element, got %q", html)
	}
}
