package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revelaction/tdsent/storage"
	"github.com/revelaction/tdsent/target"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// TargetStore persists collections in a SQLite targets table. Insertion
// order is the rowid order, so a read returns the collection exactly as it
// was parsed.
type TargetStore struct {
	pool *sqlitex.Pool
}

var _ storage.TargetRepository = (*TargetStore)(nil)

func NewTargetStore(pool *sqlitex.Pool) *TargetStore {
	return &TargetStore{pool: pool}
}

func (s *TargetStore) Collections() ([]string, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var names []string
	err = sqlitex.Execute(conn, "SELECT DISTINCT collection FROM targets ORDER BY collection", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			names = append(names, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *TargetStore) Read(name string) (*target.Collection, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var targets []target.Target
	err = sqlitex.Execute(conn, "SELECT target_id, sentence_id, surface, sentiment, text, spans FROM targets WHERE collection = ? ORDER BY rowid", &sqlitex.ExecOptions{
		Args: []interface{}{name},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			t := target.Target{
				ID:         stmt.ColumnText(0),
				SentenceID: stmt.ColumnText(1),
				Surface:    stmt.ColumnText(2),
				Sentiment:  stmt.ColumnInt(3),
				Text:       stmt.ColumnText(4),
			}

			spansJSON := stmt.ColumnText(5)
			if spansJSON != "" {
				if err := json.Unmarshal([]byte(spansJSON), &t.Spans); err != nil {
					return fmt.Errorf("target %s: %w", t.ID, err)
				}
			}

			targets = append(targets, t)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("collection not found: %s", name)
	}

	return target.NewCollection(targets...)
}

func (s *TargetStore) Write(name string, c *target.Collection) (err error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "DELETE FROM targets WHERE collection = ?", &sqlitex.ExecOptions{
		Args: []interface{}{name},
	})
	if err != nil {
		return err
	}

	for _, t := range c.Targets() {
		spansJSON, err := json.Marshal(t.Spans)
		if err != nil {
			return err
		}

		err = sqlitex.Execute(conn,
			"INSERT INTO targets (collection, target_id, sentence_id, surface, sentiment, text, spans) VALUES (?, ?, ?, ?, ?, ?, ?)",
			&sqlitex.ExecOptions{
				Args: []interface{}{name, t.ID, t.SentenceID, t.Surface, t.Sentiment, t.Text, string(spansJSON)},
			})
		if err != nil {
			return fmt.Errorf("target %s: %w", t.ID, err)
		}
	}

	return nil
}
