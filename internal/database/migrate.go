package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"warbler/internal/middleware"

	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrationLog records an applied migration.
type MigrationLog struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the database table name for MigrationLog.
func (MigrationLog) TableName() string {
	return "migration_logs"
}

// script pairs the up and down SQL of one numbered migration.
type script struct {
	version int
	name    string
	up      string
	down    string
}

// loadScripts parses embedded migrations named NNNNNN_name.up.sql, each
// requiring a matching .down.sql. Sorted ascending by version.
var loadScripts = sync.OnceValues(func() ([]script, error) {
	ups, err := fs.Glob(migrationFS, "migrations/*.up.sql")
	if err != nil {
		return nil, err
	}

	scripts := make([]script, 0, len(ups))
	for _, upPath := range ups {
		base := strings.TrimSuffix(strings.TrimPrefix(upPath, "migrations/"), ".up.sql")
		versionStr, name, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migration %q does not match NNNNNN_name.up.sql", upPath)
		}
		version, err := strconv.Atoi(versionStr)
		if err != nil {
			return nil, fmt.Errorf("migration %q has a non-numeric version: %w", upPath, err)
		}

		up, err := migrationFS.ReadFile(upPath)
		if err != nil {
			return nil, err
		}
		downPath := "migrations/" + base + ".down.sql"
		down, err := migrationFS.ReadFile(downPath)
		if err != nil {
			return nil, fmt.Errorf("migration %q is missing its down script: %w", upPath, err)
		}

		scripts = append(scripts, script{
			version: version,
			name:    name,
			up:      string(up),
			down:    string(down),
		})
	}

	sort.Slice(scripts, func(i, j int) bool { return scripts[i].version < scripts[j].version })
	return scripts, nil
})

func appliedVersions(ctx context.Context, db *gorm.DB) (map[int]bool, error) {
	var versions []int
	err := db.WithContext(ctx).Model(&MigrationLog{}).Pluck("version", &versions).Error
	if err != nil {
		if isMissingTableError(err) {
			return map[int]bool{}, nil
		}
		return nil, fmt.Errorf("read migration log: %w", err)
	}
	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func isMissingTableError(err error) bool {
	msg := err.Error()
	return (strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist")) ||
		strings.Contains(msg, "no such table")
}

// RunMigrations ensures the migration log table exists and applies every
// pending migration in version order.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	scripts, err := loadScripts()
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).AutoMigrate(&MigrationLog{}); err != nil {
		return fmt.Errorf("ensure migration log table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, s := range scripts {
		if applied[s.version] {
			continue
		}
		middleware.Logger.Info("applying migration",
			slog.Int("version", s.version), slog.String("name", s.name))
		if err := db.WithContext(ctx).Exec(s.up).Error; err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", s.version, s.name, err)
		}
		if err := db.WithContext(ctx).Create(&MigrationLog{Version: s.version, Name: s.name}).Error; err != nil {
			return fmt.Errorf("record migration %d: %w", s.version, err)
		}
	}
	return nil
}

// RollbackMigration reverts one applied migration by version number.
func RollbackMigration(ctx context.Context, db *gorm.DB, version int) error {
	scripts, err := loadScripts()
	if err != nil {
		return err
	}
	var target *script
	for i := range scripts {
		if scripts[i].version == version {
			target = &scripts[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration version %d not found", version)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}
	if !applied[version] {
		return fmt.Errorf("migration %d has not been applied", version)
	}

	middleware.Logger.Info("rolling back migration",
		slog.Int("version", version), slog.String("name", target.name))
	if err := db.WithContext(ctx).Exec(target.down).Error; err != nil {
		return fmt.Errorf("roll back migration %d (%s): %w", version, target.name, err)
	}
	return db.WithContext(ctx).Where("version = ?", version).Delete(&MigrationLog{}).Error
}
