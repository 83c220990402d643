package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/justsurfingit/voice-job-matcher/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRunServiceWithoutDatabase(t *testing.T) {
	svc := NewRunService(nil)

	if err := svc.Record(&models.PipelineRun{ID: "r1", State: string(models.StateCompleted)}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	runs, err := svc.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if runs == nil || len(runs) != 0 {
		t.Fatalf("runs = %v, want empty non-nil slice", runs)
	}
}

// sqlRecorder keeps every statement gorm builds.
type sqlRecorder struct {
	mu   sync.Mutex
	sqls []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface     { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, _ := fc()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sqls = append(r.sqls, sql)
}

func (r *sqlRecorder) last(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sqls) == 0 {
		t.Fatal("no SQL was built")
	}
	return r.sqls[len(r.sqls)-1]
}

// newDryRunDB builds SQL for the postgres dialect without connecting.
func newDryRunDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	db, err := gorm.Open(postgres.Open("host=localhost user=jobs dbname=jobs sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	if err != nil {
		t.Fatalf("opening dry-run db: %v", err)
	}
	return db, rec
}

func TestRunServiceRecordInsertsRun(t *testing.T) {
	db, rec := newDryRunDB(t)
	svc := NewRunService(db)

	run := &models.PipelineRun{
		ID:             "run-1",
		State:          string(models.StateCompleted),
		Function:       "Metser",
		Location:       "Gent",
		ExtractOutcome: string(ExtractionParsed),
		DurationMs:     42,
	}
	if err := svc.Record(run); err != nil {
		t.Fatalf("Record: %v", err)
	}

	sql := rec.last(t)
	for _, want := range []string{`INSERT INTO "pipeline_runs"`, `'run-1'`, `'Metser'`, `'Gent'`, `'COMPLETED'`} {
		if !strings.Contains(sql, want) {
			t.Errorf("insert %q does not contain %s", sql, want)
		}
	}
}

func TestRunServiceRecentQuery(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit string
	}{
		{"explicit limit", 5, "LIMIT 5"},
		{"zero uses default", 0, "LIMIT 20"},
		{"negative uses default", -3, "LIMIT 20"},
		{"above max uses default", 500, "LIMIT 20"},
		{"max allowed", 100, "LIMIT 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, rec := newDryRunDB(t)
			svc := NewRunService(db)

			runs, err := svc.Recent(tt.limit)
			if err != nil {
				t.Fatalf("Recent: %v", err)
			}
			if runs == nil {
				t.Error("runs should be a non-nil slice")
			}

			sql := rec.last(t)
			if !strings.HasPrefix(sql, `SELECT * FROM "pipeline_runs"`) {
				t.Errorf("query = %q, want select from pipeline_runs", sql)
			}
			if !strings.Contains(sql, "ORDER BY created_at desc") {
				t.Errorf("query = %q, want newest first", sql)
			}
			if !strings.HasSuffix(sql, tt.wantLimit) {
				t.Errorf("query = %q, want suffix %q", sql, tt.wantLimit)
			}
		})
	}
}
