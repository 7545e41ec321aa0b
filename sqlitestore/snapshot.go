package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/build-aau/typed-graph/generic"
)

// ErrNotFound indicates no snapshot with the requested id exists.
var ErrNotFound = errors.New("snapshot not found")

// Info describes a stored snapshot.
type Info struct {
	ID        string
	Name      string
	CreatedAt time.Time
	NodeCount int
	EdgeCount int
}

// Save stores a snapshot of g under a caller-chosen name and returns the
// generated snapshot id. The graph is not modified.
func (s *Store) Save(ctx context.Context, name string, g *generic.StringGraph) (string, error) {
	schemaJSON, err := json.Marshal(g.Schema())
	if err != nil {
		return "", fmt.Errorf("save snapshot: marshaling schema: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, schema_json, created_at)
		VALUES (?, ?, ?, ?)
	`, id, name, string(schemaJSON), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}

	for pos, n := range g.Nodes() {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO snapshot_nodes (snapshot_id, id, type, position)
			VALUES (?, ?, ?, ?)
		`, id, n.ID, n.Type, pos)
		if err != nil {
			return "", fmt.Errorf("save snapshot: node %q: %w", n.ID, err)
		}
	}

	// Edge rows follow outgoing-adjacency order so replay reproduces the
	// per-node edge ordering exactly.
	pos := 0
	for _, nodeID := range g.NodeIDs() {
		refs, err := g.Outgoing(nodeID)
		if err != nil {
			return "", fmt.Errorf("save snapshot: %w", err)
		}
		for _, ref := range refs {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO snapshot_edges (snapshot_id, id, type, source, target, position)
				VALUES (?, ?, ?, ?, ?, ?)
			`, id, ref.Weight.ID, ref.Weight.Type, ref.Source(), ref.Target(), pos)
			if err != nil {
				return "", fmt.Errorf("save snapshot: edge %q: %w", ref.Weight.ID, err)
			}
			pos++
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	return id, nil
}

// Load rebuilds the graph stored under the given snapshot id.
func (s *Store) Load(ctx context.Context, id string) (*generic.StringGraph, error) {
	var schemaJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT schema_json FROM snapshots WHERE id = ?
	`, id).Scan(&schemaJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load snapshot %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", id, err)
	}

	var schema generic.StringSchema
	if err := json.Unmarshal([]byte(schemaJSON), &schema); err != nil {
		return nil, fmt.Errorf("load snapshot %q: decoding schema: %w", id, err)
	}
	g := generic.NewStringGraph(schema)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type FROM snapshot_nodes
		WHERE snapshot_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var nodeID, nodeType string
		if err := rows.Scan(&nodeID, &nodeType); err != nil {
			return nil, fmt.Errorf("load snapshot %q: %w", id, err)
		}
		if _, err := g.AddNode(generic.W(nodeID, nodeType)); err != nil {
			return nil, fmt.Errorf("load snapshot %q: node %q: %w", id, nodeID, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", id, err)
	}

	edgeRows, err := s.db.QueryContext(ctx, `
		SELECT id, type, source, target FROM snapshot_edges
		WHERE snapshot_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", id, err)
	}
	defer edgeRows.Close()
	for edgeRows.Next() {
		var edgeID, edgeType, source, target string
		if err := edgeRows.Scan(&edgeID, &edgeType, &source, &target); err != nil {
			return nil, fmt.Errorf("load snapshot %q: %w", id, err)
		}
		if _, err := g.AddEdge(source, target, generic.W(edgeID, edgeType)); err != nil {
			return nil, fmt.Errorf("load snapshot %q: edge %q: %w", id, edgeID, err)
		}
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", id, err)
	}

	return g, nil
}

// List returns every stored snapshot, newest first.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.created_at,
		       (SELECT COUNT(*) FROM snapshot_nodes n WHERE n.snapshot_id = s.id),
		       (SELECT COUNT(*) FROM snapshot_edges e WHERE e.snapshot_id = s.id)
		FROM snapshots s
		ORDER BY s.created_at DESC, s.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		if err := rows.Scan(&info.ID, &info.Name, &info.CreatedAt, &info.NodeCount, &info.EdgeCount); err != nil {
			return nil, fmt.Errorf("list snapshots: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return infos, nil
}

// Delete removes a snapshot and its rows.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete snapshot %q: %w", id, ErrNotFound)
	}
	return nil
}
