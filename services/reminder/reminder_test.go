package reminder

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prathameshp107/ClinLabOps-sub003/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	db, err := gorm.Open(dsn, &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Project{}, &models.Task{},
		&models.Notification{}, &models.EmailLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, emailEnabled bool) models.User {
	t.Helper()
	u := models.User{
		Name:               name,
		Email:              name + "@lab.example.com",
		EmailNotifications: emailEnabled,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func seedTask(t *testing.T, db *gorm.DB, title, assignee, createdBy string, due *time.Time) models.Task {
	t.Helper()
	task := models.Task{Title: title, Assignee: assignee, CreatedBy: createdBy, DueDate: due}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("seed task %s: %v", title, err)
	}
	return task
}

func seedProject(t *testing.T, db *gorm.DB, name, createdBy string, end *time.Time, team ...models.User) models.Project {
	t.Helper()
	p := models.Project{Name: name, CreatedBy: createdBy, EndDate: end, Team: team}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed project %s: %v", name, err)
	}
	return p
}

func countNotifications(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Notification{}).Count(&count).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	return count
}

func testLogger() *zap.Logger { return zap.NewNop() }
