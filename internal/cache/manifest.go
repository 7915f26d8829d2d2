package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Key identifies one generation: an input rendered by a target into a
// directory.
type Key struct {
	Input     string
	Target    string
	OutputDir string
}

// Fingerprint is everything that determines the generated bytes.
type Fingerprint struct {
	InputDigest     string
	ConstantsDigest string
	Options         string
	ToolVersion     string
}

// Artifact is a recorded output file.
type Artifact struct {
	Name   string
	Digest string
}

// Generation is one manifest entry.
type Generation struct {
	Key
	Fingerprint

	RunID       string
	GeneratedAt time.Time
	Artifacts   []Artifact
}

// Digest returns the hex sha256 of data, the format the manifest stores.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Lookup returns the generation recorded for key. The boolean is false when
// there is none.
func (c *Cache) Lookup(ctx context.Context, key Key) (*Generation, bool, error) {
	g := &Generation{Key: key}
	var generatedAt string
	err := c.db.QueryRowContext(ctx, `
		SELECT run_id, input_digest, constants_digest, options, tool_version, generated_at
		FROM generations
		WHERE input_path = ? AND target = ? AND output_dir = ?
	`, key.Input, key.Target, key.OutputDir).Scan(
		&g.RunID,
		&g.InputDigest,
		&g.ConstantsDigest,
		&g.Options,
		&g.ToolVersion,
		&generatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup generation: %w", err)
	}

	if g.GeneratedAt, err = time.Parse(time.RFC3339Nano, generatedAt); err != nil {
		return nil, false, fmt.Errorf("lookup generation: bad timestamp %q: %w", generatedAt, err)
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT name, digest
		FROM artifacts
		WHERE input_path = ? AND target = ? AND output_dir = ?
		ORDER BY name COLLATE BINARY ASC
	`, key.Input, key.Target, key.OutputDir)
	if err != nil {
		return nil, false, fmt.Errorf("lookup artifacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.Name, &a.Digest); err != nil {
			return nil, false, fmt.Errorf("scan artifact: %w", err)
		}
		g.Artifacts = append(g.Artifacts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate artifacts: %w", err)
	}

	return g, true, nil
}

// Record stores g, replacing any earlier generation with the same key.
// A zero GeneratedAt is stamped from the cache clock.
func (c *Cache) Record(ctx context.Context, g Generation) error {
	if g.RunID == "" {
		return fmt.Errorf("record generation %s: empty run id", g.Input)
	}
	if g.GeneratedAt.IsZero() {
		g.GeneratedAt = c.now()
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record generation: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO generations
		(input_path, target, output_dir, run_id, input_digest, constants_digest, options, tool_version, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(input_path, target, output_dir) DO UPDATE SET
			run_id = excluded.run_id,
			input_digest = excluded.input_digest,
			constants_digest = excluded.constants_digest,
			options = excluded.options,
			tool_version = excluded.tool_version,
			generated_at = excluded.generated_at
	`,
		g.Input,
		g.Target,
		g.OutputDir,
		g.RunID,
		g.InputDigest,
		g.ConstantsDigest,
		g.Options,
		g.ToolVersion,
		g.GeneratedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record generation: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM artifacts
		WHERE input_path = ? AND target = ? AND output_dir = ?
	`, g.Input, g.Target, g.OutputDir)
	if err != nil {
		return fmt.Errorf("record generation: clear artifacts: %w", err)
	}

	for _, a := range g.Artifacts {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO artifacts (input_path, target, output_dir, name, digest)
			VALUES (?, ?, ?, ?, ?)
		`, g.Input, g.Target, g.OutputDir, a.Name, a.Digest)
		if err != nil {
			return fmt.Errorf("record artifact %s: %w", a.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record generation: commit: %w", err)
	}
	return nil
}

// Forget removes the generation recorded for key, if any.
func (c *Cache) Forget(ctx context.Context, key Key) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM generations
		WHERE input_path = ? AND target = ? AND output_dir = ?
	`, key.Input, key.Target, key.OutputDir)
	if err != nil {
		return fmt.Errorf("forget generation: %w", err)
	}
	return nil
}

// Fresh reports whether the generation recorded for key was produced from
// want and all of its artifacts are unchanged on disk.
func (c *Cache) Fresh(ctx context.Context, key Key, want Fingerprint) (bool, error) {
	g, ok, err := c.Lookup(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if g.Fingerprint != want {
		return false, nil
	}
	return VerifyArtifacts(g)
}

// VerifyArtifacts reports whether every artifact of g exists under
// g.OutputDir with the recorded digest. A generation without artifacts is
// never considered verified.
func VerifyArtifacts(g *Generation) (bool, error) {
	if len(g.Artifacts) == 0 {
		return false, nil
	}
	for _, a := range g.Artifacts {
		data, err := os.ReadFile(filepath.Join(g.OutputDir, a.Name))
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("verify artifact %s: %w", a.Name, err)
		}
		if Digest(data) != a.Digest {
			return false, nil
		}
	}
	return true, nil
}

// List returns every recorded generation without artifacts, ordered by
// input, target and output directory.
func (c *Cache) List(ctx context.Context) ([]Generation, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT input_path, target, output_dir, run_id, input_digest, constants_digest, options, tool_version, generated_at
		FROM generations
		ORDER BY input_path COLLATE BINARY ASC, target ASC, output_dir COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	out := []Generation{}
	for rows.Next() {
		var (
			g           Generation
			generatedAt string
		)
		if err := rows.Scan(&g.Input, &g.Target, &g.OutputDir, &g.RunID,
			&g.InputDigest, &g.ConstantsDigest, &g.Options, &g.ToolVersion, &generatedAt); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		if g.GeneratedAt, err = time.Parse(time.RFC3339Nano, generatedAt); err != nil {
			return nil, fmt.Errorf("list generations: bad timestamp %q: %w", generatedAt, err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generations: %w", err)
	}
	return out, nil
}
