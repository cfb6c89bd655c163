package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartOrphanSweeper periodically deletes set rows and quantity entries whose
// collection no longer exists. The collection deletion cascade is not
// transactional, so a crash mid-cascade can leave rows behind; the sweeper is
// the safety net that reclaims them.
func StartOrphanSweeper(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweep(ctx, db, log)
			}
		}
	}()
}

func sweep(ctx context.Context, db *sql.DB, log *zap.Logger) {
	res, err := db.ExecContext(ctx, `
        DELETE FROM set_quantities
         WHERE collection_id NOT IN (SELECT id FROM collections)
    `)
	if err != nil {
		log.Error("failed to sweep orphaned quantity entries", zap.Error(err))
		return
	}
	if rows, _ := res.RowsAffected(); rows > 0 {
		log.Info("swept orphaned quantity entries", zap.Int64("removed", rows))
	}

	res, err = db.ExecContext(ctx, `
        DELETE FROM sets
         WHERE collection_id IS NOT NULL
           AND collection_id NOT IN (SELECT id FROM collections)
    `)
	if err != nil {
		log.Error("failed to sweep orphaned sets", zap.Error(err))
		return
	}
	if rows, _ := res.RowsAffected(); rows > 0 {
		log.Info("swept orphaned sets", zap.Int64("removed", rows))
	}
}
