package db

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/pestops-backend/internal/domain"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

func TestWithPragmas(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"pestops.db", "pestops.db?_busy_timeout=5000&_foreign_keys=1"},
		{"file:x?mode=memory", "file:x?mode=memory&_busy_timeout=5000&_foreign_keys=1"},
		{"x.db?_busy_timeout=100", "x.db?_busy_timeout=100&_foreign_keys=1"},
		{"x.db?_foreign_keys=1&_busy_timeout=1", "x.db?_foreign_keys=1&_busy_timeout=1"},
	}
	for _, tc := range cases {
		if got := withPragmas(tc.in); got != tc.want {
			t.Fatalf("withPragmas(%q): want=%q got=%q", tc.in, tc.want, got)
		}
	}
}

func TestSQLiteServiceEnforcesForeignKeys(t *testing.T) {
	svc, err := NewSQLiteService(logger.Nop(), "file:pestops_fk_"+uuid.NewString()[:8]+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("NewSQLiteService: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	g := svc.DB()
	if err := AutoMigrateAll(g); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}

	orphan := &types.Appointment{ProjectID: uuid.New(), Number: 1, DueDate: time.Now().UTC()}
	err = g.Create(orphan).Error
	if err == nil {
		t.Fatalf("appointment for unknown project must be rejected")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed") {
		t.Fatalf("unexpected error: %v", err)
	}

	project := &types.Project{Name: "Bakery"}
	if err := g.Create(project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	appt := &types.Appointment{ProjectID: project.ID, Number: 1, DueDate: time.Now().UTC()}
	if err := g.Create(appt).Error; err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if err := g.Create(&types.Certificate{AppointmentID: appt.ID}).Error; err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	if err := g.Delete(&types.Appointment{}, "id = ?", appt.ID).Error; err != nil {
		t.Fatalf("delete appointment: %v", err)
	}
	var left int64
	g.Model(&types.Certificate{}).Where("appointment_id = ?", appt.ID).Count(&left)
	if left != 0 {
		t.Fatalf("certificate must cascade with its appointment, %d left", left)
	}
}
