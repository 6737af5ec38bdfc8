package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tmms/tailor-master-service/internal/logger"
	"github.com/tmms/tailor-master-service/internal/storage"
)

const (
	backupPrefix = "tmms_backup_"
	autoPrefix   = "tmms_autobackup_"
	backupExt    = ".db"
	stampLayout  = "20060102_150405"
)

type Info struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Service snapshots the database file into the backup directory and swaps
// backups back in on restore.
type Service struct {
	store *storage.Store
	dir   string
}

func NewService(store *storage.Store, dir string) *Service {
	return &Service{store: store, dir: dir}
}

// Create takes a snapshot and returns its file name.
func (s *Service) Create(ctx context.Context) (string, error) {
	return s.create(ctx, backupPrefix)
}

func (s *Service) create(ctx context.Context, prefix string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	stamp := time.Now().Format(stampLayout)
	name := prefix + stamp + backupExt
	dst := filepath.Join(s.dir, name)

	// VACUUM INTO refuses to overwrite; stamps are second-granular
	for i := 2; ; i++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			break
		}
		name = fmt.Sprintf("%s%s_%d%s", prefix, stamp, i, backupExt)
		dst = filepath.Join(s.dir, name)
	}
	if err := s.store.BackupTo(ctx, dst); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	return name, nil
}

// List returns available backups, newest first.
func (s *Service) List() ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := []Info{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), backupExt) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{Name: e.Name(), Size: fi.Size(), CreatedAt: fi.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Restore swaps the named backup in as the live database. A safety backup of
// the current state is taken first.
func (s *Service) Restore(ctx context.Context, name string) error {
	// no path traversal out of the backup dir
	if name != filepath.Base(name) || !strings.HasSuffix(name, backupExt) {
		return fmt.Errorf("invalid backup name %q", name)
	}
	src := filepath.Join(s.dir, name)
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("backup %q: %w", name, err)
	}

	safety, err := s.Create(ctx)
	if err != nil {
		return fmt.Errorf("pre-restore backup: %w", err)
	}
	logger.Info("pre-restore backup taken", "name", safety)

	if err := s.store.Restore(src); err != nil {
		return err
	}
	logger.Info("database restored", "from", name)
	return nil
}

// StartAuto runs periodic backups until ctx is cancelled, keeping at most
// keep files in the directory.
func (s *Service) StartAuto(ctx context.Context, interval time.Duration, keep int) {
	if interval <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				name, err := s.create(ctx, autoPrefix)
				if err != nil {
					logger.Warn("auto-backup failed", "err", err)
					continue
				}
				logger.Info("auto-backup done", "name", name)
				s.prune(keep)
			}
		}
	}()
}

// prune deletes the oldest backups beyond keep.
func (s *Service) prune(keep int) {
	if keep <= 0 {
		return
	}
	list, err := s.List()
	if err != nil {
		logger.Warn("backup prune: list failed", "err", err)
		return
	}
	for _, b := range list[min(keep, len(list)):] {
		if err := os.Remove(filepath.Join(s.dir, b.Name)); err != nil {
			logger.Warn("backup prune: remove failed", "name", b.Name, "err", err)
		}
	}
}
