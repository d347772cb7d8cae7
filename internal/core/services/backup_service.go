package services

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// Exporter is a collection that can stream a point-in-time copy of itself.
// The CSV stores implement it with their read lock held, so a snapshot never
// observes a half-written collection.
type Exporter interface {
	Name() string
	Export(w io.Writer) error
}

// BackupService periodically snapshots every collection into a timestamped
// directory.
type BackupService struct {
	dir      string
	schedule string
	stores   []Exporter
	cron     *cron.Cron
}

// NewBackupService creates a new backup service. schedule is a cron
// expression (e.g. "30 2 * * *" for 02:30 daily).
func NewBackupService(dir, schedule string, stores ...Exporter) *BackupService {
	return &BackupService{
		dir:      dir,
		schedule: schedule,
		stores:   stores,
		cron:     cron.New(),
	}
}

// Start registers the snapshot job and launches the scheduler.
func (s *BackupService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.Snapshot(); err != nil {
			log.Printf("backup snapshot failed: %v", err)
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("backup scheduler started (%s -> %s)", s.schedule, s.dir)
	return nil
}

// Stop stops the scheduler, waiting for a running snapshot to finish.
func (s *BackupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("backup scheduler stopped")
}

// Snapshot copies every collection into a fresh timestamped directory.
func (s *BackupService) Snapshot() error {
	dest := filepath.Join(s.dir, time.Now().Format("20060102-150405"))
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	for _, store := range s.stores {
		if err := s.snapshotOne(dest, store); err != nil {
			return err
		}
	}
	log.Printf("backup snapshot written to %s", dest)
	return nil
}

func (s *BackupService) snapshotOne(dest string, store Exporter) error {
	f, err := os.Create(filepath.Join(dest, store.Name()))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := store.Export(f); err != nil {
		return err
	}
	return f.Sync()
}
