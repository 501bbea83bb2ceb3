package database

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/zenwen/ainews/internal/news"
	"github.com/zenwen/ainews/internal/validate"
)

// UpsertItem stores an item, replacing any existing row with the same
// ID so updated content and scores win.
func (db *DB) UpsertItem(item *news.Item) error {
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return err
	}

	_, err = db.conn.Exec(
		`INSERT INTO news_items (id, title, content, url, source, published_date, tags, score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			tags = excluded.tags,
			score = excluded.score`,
		item.ID, item.Title, item.Content, item.URL, item.Source,
		item.PublishedDate.Format(time.RFC3339), string(tags), item.Score,
	)
	return err
}

// GetItem returns a stored item by ID, or nil if absent.
func (db *DB) GetItem(id string) (*StoredItem, error) {
	row := db.conn.QueryRow(
		`SELECT id, title, content, url, source, published_date, tags, score, collected_at
		FROM news_items WHERE id = ?`, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns stored items ordered by score descending.
func (db *DB) ListItems(limit int) ([]StoredItem, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.Query(
		`SELECT id, title, content, url, source, published_date, tags, score, collected_at
		FROM news_items ORDER BY score DESC, published_date DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []StoredItem
	for rows.Next() {
		item, err := scanItemRows(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// InsertRewrite stores a rewritten rendition and returns its row ID.
func (db *DB) InsertRewrite(itemID string, rewritten *news.Item, style, model string) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO rewrites (item_id, title, content, style, model)
		VALUES (?, ?, ?, ?, ?)`,
		itemID, rewritten.Title, rewritten.Content, style, model,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// InsertValidation stores the verdict for a rewrite, replacing any
// earlier verdict for the same rewrite.
func (db *DB) InsertValidation(rewriteID int64, result *validate.Result) error {
	issues, err := json.Marshal(result.Issues)
	if err != nil {
		return err
	}
	suggestions, err := json.Marshal(result.Suggestions)
	if err != nil {
		return err
	}

	_, err = db.conn.Exec(
		`INSERT OR REPLACE INTO validations (rewrite_id, score, is_valid, issues, suggestions)
		VALUES (?, ?, ?, ?, ?)`,
		rewriteID, result.Score, boolToInt(result.IsValid), string(issues), string(suggestions),
	)
	return err
}

// GetValidation returns the verdict for a rewrite, or nil if absent.
func (db *DB) GetValidation(rewriteID int64) (*Validation, error) {
	row := db.conn.QueryRow(
		`SELECT rewrite_id, score, is_valid, issues, suggestions, validated_at
		FROM validations WHERE rewrite_id = ?`, rewriteID,
	)

	var v Validation
	var isValid int
	var issues, suggestions string
	err := row.Scan(&v.RewriteID, &v.Score, &isValid, &issues, &suggestions, &v.ValidatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v.IsValid = isValid != 0
	if err := json.Unmarshal([]byte(issues), &v.Issues); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(suggestions), &v.Suggestions); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetArticle returns the joined view for one item: the item, its
// latest rewrite, and that rewrite's validation.
func (db *DB) GetArticle(itemID string) (*Article, error) {
	item, err := db.GetItem(itemID)
	if err != nil || item == nil {
		return nil, err
	}

	article := &Article{Item: *item}

	row := db.conn.QueryRow(
		`SELECT id, item_id, title, content, style, model, created_at
		FROM rewrites WHERE item_id = ? ORDER BY id DESC LIMIT 1`, itemID,
	)
	var rw Rewrite
	err = row.Scan(&rw.ID, &rw.ItemID, &rw.Title, &rw.Content, &rw.Style, &rw.Model, &rw.CreatedAt)
	if err == sql.ErrNoRows {
		return article, nil
	}
	if err != nil {
		return nil, err
	}
	article.Rewrite = &rw

	v, err := db.GetValidation(rw.ID)
	if err != nil {
		return nil, err
	}
	article.Validation = v
	return article, nil
}

// ListPublishable returns articles whose latest rewrite passed
// validation, best scores first.
func (db *DB) ListPublishable(limit int) ([]Article, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(
		`SELECT n.id
		FROM news_items n
		JOIN rewrites r ON r.item_id = n.id
		JOIN validations v ON v.rewrite_id = r.id
		WHERE v.is_valid = 1
			AND r.id = (SELECT MAX(id) FROM rewrites WHERE item_id = n.id)
		ORDER BY n.score DESC, n.published_date DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var articles []Article
	for _, id := range ids {
		a, err := db.GetArticle(id)
		if err != nil {
			return nil, err
		}
		if a != nil {
			articles = append(articles, *a)
		}
	}
	return articles, nil
}

// GetStats summarizes database contents.
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{BySource: make(map[string]int)}

	if err := db.conn.QueryRow("SELECT COUNT(*) FROM news_items").Scan(&stats.Items); err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM rewrites").Scan(&stats.Rewrites); err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM validations").Scan(&stats.Validations); err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM validations WHERE is_valid = 1").Scan(&stats.ValidCount); err != nil {
		return nil, err
	}

	rows, err := db.conn.Query("SELECT source, COUNT(*) FROM news_items GROUP BY source")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, err
		}
		stats.BySource[source] = count
	}
	return stats, rows.Err()
}

func scanItem(row *sql.Row) (*StoredItem, error) {
	var item StoredItem
	var published, tags string
	if err := row.Scan(&item.ID, &item.Title, &item.Content, &item.URL, &item.Source,
		&published, &tags, &item.Score, &item.CollectedAt); err != nil {
		return nil, err
	}
	return finishItem(&item, published, tags)
}

func scanItemRows(rows *sql.Rows) (*StoredItem, error) {
	var item StoredItem
	var published, tags string
	if err := rows.Scan(&item.ID, &item.Title, &item.Content, &item.URL, &item.Source,
		&published, &tags, &item.Score, &item.CollectedAt); err != nil {
		return nil, err
	}
	return finishItem(&item, published, tags)
}

func finishItem(item *StoredItem, published, tags string) (*StoredItem, error) {
	if t, err := time.Parse(time.RFC3339, published); err == nil {
		item.PublishedDate = t
	}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// Item converts a stored row back into the pipeline's item type,
// preserving the stored ID-determining fields.
func (s *StoredItem) Item() *news.Item {
	return news.New(s.Title, s.Content, s.URL, s.Source, s.PublishedDate, s.Tags, s.Score)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
