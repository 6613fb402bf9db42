// Package pg bootstraps the PostgreSQL pool (pgx/v5) used by the subscriber
// store: connection with retry, goose migrations, a readiness check and
// helpers for classifying driver errors.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, db.Migrations, cfg, log); err != nil {
//		return err
//	}
package pg
