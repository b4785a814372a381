// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package sqlstore

import (
	"context"
)

// inTx runs fn inside one transaction. fn's error, or a failed commit,
// rolls everything back.
func (s *Store) inTx(ctx context.Context, fn func(executor) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.classify(err, "BEGIN")
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(s.exec(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return s.classify(err, "COMMIT")
	}
	return nil
}
