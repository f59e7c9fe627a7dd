package database

import (
	"context"
	"path/filepath"
	"testing"
)

type scholarshipRow struct {
	ID       int64
	Name     string
	Amount   int
	Status   string
}

func openScholarshipsDB(t *testing.T) Database {
	t.Helper()
	ctx := context.Background()

	url := "sqlite:///" + filepath.Join(t.TempDir(), "query.db")
	db, err := NewDatabase(ctx, url)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	err = db.Session(ctx).Exec(`
		CREATE TABLE scholarships (
			id INTEGER PRIMARY KEY,
			name TEXT,
			amount INTEGER,
			status TEXT
		)
	`).Error
	if err != nil {
		t.Fatalf("create table: %v", err)
	}

	err = db.Session(ctx).Exec(`
		INSERT INTO scholarships (name, amount, status) VALUES
		('Merit Award', 5000, 'open'),
		('Need Grant', 2500, 'closed'),
		('Research Stipend', 8000, 'open'),
		('Travel Grant', 1200, 'open')
	`).Error
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	return db
}

func findScholarships(t *testing.T, db Database, q Query) []scholarshipRow {
	t.Helper()
	var rows []scholarshipRow
	result := q.Apply(db.Session(context.Background()).Table("scholarships")).Find(&rows)
	if result.Error != nil {
		t.Fatalf("query: %v", result.Error)
	}
	return rows
}

func TestQuery_Apply_ConditionsAndOrder(t *testing.T) {
	db := openScholarshipsDB(t)

	q := NewQuery().
		Equal("status", "open").
		GreaterThan("amount", 2000).
		OrderDesc("amount")

	rows := findScholarships(t, db, q)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Name != "Research Stipend" || rows[1].Name != "Merit Award" {
		t.Errorf("order: got %q, %q", rows[0].Name, rows[1].Name)
	}
}

func TestQuery_Apply_In(t *testing.T) {
	db := openScholarshipsDB(t)

	q := NewQuery().In("name", []string{"Need Grant", "Travel Grant"}).OrderAsc("name")

	rows := findScholarships(t, db, q)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Name != "Need Grant" {
		t.Errorf("rows[0] = %q, want Need Grant", rows[0].Name)
	}
}

func TestQuery_Apply_LikeAndBounds(t *testing.T) {
	db := openScholarshipsDB(t)

	rows := findScholarships(t, db, NewQuery().Like("name", "%Grant%"))
	if len(rows) != 2 {
		t.Errorf("like: len(rows) = %d, want 2", len(rows))
	}

	rows = findScholarships(t, db, NewQuery().
		GreaterThanOrEqual("amount", 1200).
		LessThanOrEqual("amount", 2500).
		NotEqual("status", "closed"))
	if len(rows) != 1 || rows[0].Name != "Travel Grant" {
		t.Errorf("bounds: got %+v, want only Travel Grant", rows)
	}
}

func TestQuery_Apply_LimitOffset(t *testing.T) {
	db := openScholarshipsDB(t)

	base := NewQuery().OrderAsc("amount")

	first := findScholarships(t, db, base.Limit(2))
	if len(first) != 2 || first[0].Name != "Travel Grant" {
		t.Fatalf("limit: got %+v", first)
	}

	next := findScholarships(t, db, base.Limit(2).Offset(2))
	if len(next) != 2 || next[0].Name != "Merit Award" {
		t.Fatalf("offset: got %+v", next)
	}
}

func TestQuery_BaseReuse(t *testing.T) {
	db := openScholarshipsDB(t)

	base := NewQuery().Equal("status", "open")

	high := findScholarships(t, db, base.GreaterThan("amount", 4000))
	low := findScholarships(t, db, base.LessThan("amount", 4000))

	if len(high) != 2 {
		t.Errorf("high: len = %d, want 2", len(high))
	}
	if len(low) != 1 || low[0].Name != "Travel Grant" {
		t.Errorf("low: got %+v, want only Travel Grant", low)
	}
}

func TestQuery_Apply_IsNull(t *testing.T) {
	db := openScholarshipsDB(t)
	ctx := context.Background()

	if err := db.Session(ctx).Exec("INSERT INTO scholarships (name, amount, status) VALUES ('Draft', 0, NULL)").Error; err != nil {
		t.Fatalf("insert: %v", err)
	}

	rows := findScholarships(t, db, NewQuery().IsNull("status"))
	if len(rows) != 1 || rows[0].Name != "Draft" {
		t.Errorf("got %+v, want only Draft", rows)
	}
}
