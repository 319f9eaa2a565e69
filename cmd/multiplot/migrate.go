// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/aclements/smallmultiples/migrate"
	"github.com/aclements/smallmultiples/settings"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [flags] store...",
	Short: "Upgrade stored chart properties to the current version",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().Bool("check", false, "only report which stores need migrating")
	migrateCmd.Flags().IntP("jobs", "j", 0, "migrate up to `n` stores at once (default GOMAXPROCS)")
}

// migrateResult is the outcome for one store.
type migrateResult struct {
	Path     string
	Migrated bool
	Err      error
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	check, _ := cmd.Flags().GetBool("check")
	jobs, _ := cmd.Flags().GetInt("jobs")
	target := settings.DefaultConstants().TargetObjectVersion

	status := NewStatusReporter()
	results, err := migrateStores(cmd.Context(), args, target, check, jobs, status)
	status.Stop()
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			warn.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
		case r.Migrated && check:
			fmt.Printf("%s: needs migrating\n", r.Path)
		case r.Migrated:
			fmt.Printf("%s: migrated to version %d\n", r.Path, target)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d stores failed", failed, len(results))
	}
	return nil
}

// migrateStores migrates the msgpack property stores at paths in
// parallel. If check is set, stores are read but never written and
// Migrated reports whether they would have been.
func migrateStores(ctx context.Context, paths []string, target int, check bool, jobs int, status *StatusReporter) ([]migrateResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if len(paths) == 0 {
		return nil, nil
	}
	results := make([]migrateResult, len(paths))

	var mu sync.Mutex
	done := 0
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		i, path := i, path // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = migrateStore(path, target, check)

			mu.Lock()
			done++
			status.Progress(fmt.Sprintf("%d/%d stores", done, len(paths)), float64(done)/float64(len(paths)))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func migrateStore(path string, target int, check bool) migrateResult {
	r := migrateResult{Path: path}
	store := &migrate.FileStore{Path: path}
	objs, err := store.Load()
	if err != nil {
		r.Err = err
		return r
	}
	if objs == nil {
		r.Err = fmt.Errorf("no such store")
		return r
	}
	if check {
		r.Migrated = migrate.Needed(objs, target)
		return r
	}
	_, r.Migrated, r.Err = migrate.Migrate(objs, migrate.V1ToV2, target, store)
	return r
}
