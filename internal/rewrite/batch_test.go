package rewrite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zenwen/ainews/internal/news"
)

type fakeRewriter struct {
	failOn string
}

func (f *fakeRewriter) RewriteItem(_ context.Context, item *news.Item) (*news.Item, error) {
	if item.Title == f.failOn {
		return nil, errors.New("simulated API failure")
	}
	return news.New("改写: "+item.Title, "通俗版: "+item.Content,
		item.URL, item.Source, item.PublishedDate, item.Tags, item.Score), nil
}

func TestBatchPairsOriginals(t *testing.T) {
	items := []*news.Item{
		news.New("First", "content one", "https://a.example/1", "feed_a", time.Time{}, nil, 0.7),
		news.New("Second", "content two", "https://a.example/2", "feed_a", time.Time{}, nil, 0.8),
	}

	pairs := Batch(context.Background(), &fakeRewriter{}, items, 0)
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}

	for i, p := range pairs {
		if p.Original != items[i] {
			t.Errorf("pair %d: original not preserved", i)
		}
		if p.Rewritten.Title != "改写: "+items[i].Title {
			t.Errorf("pair %d: rewritten title = %q", i, p.Rewritten.Title)
		}
		if p.Rewritten.URL != items[i].URL {
			t.Errorf("pair %d: URL changed", i)
		}
	}
}

func TestBatchKeepsOriginalOnFailure(t *testing.T) {
	items := []*news.Item{
		news.New("Breaks", "content", "https://a.example/1", "feed_a", time.Time{}, nil, 0.7),
		news.New("Works", "content", "https://a.example/2", "feed_a", time.Time{}, nil, 0.7),
	}

	pairs := Batch(context.Background(), &fakeRewriter{failOn: "Breaks"}, items, 0)
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}

	if pairs[0].Rewritten != pairs[0].Original {
		t.Error("failed rewrite should pair the item with itself")
	}
	if pairs[1].Rewritten == pairs[1].Original {
		t.Error("successful rewrite should produce a new item")
	}
}

func TestBatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []*news.Item{
		news.New("First", "content", "https://a.example/1", "feed_a", time.Time{}, nil, 0.7),
		news.New("Second", "content", "https://a.example/2", "feed_a", time.Time{}, nil, 0.7),
	}

	pairs := Batch(ctx, &fakeRewriter{}, items, 10*time.Millisecond)
	if len(pairs) != 1 {
		t.Errorf("got %d pairs, want 1 (cancel before second delay)", len(pairs))
	}
}
