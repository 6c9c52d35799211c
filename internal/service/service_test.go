package service

import (
	"testing"
	"time"

	"pushup-club/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Member{},
		&model.CompletionRecord{},
		&model.StockHolding{},
		&model.CashBalance{},
		&model.SiteConfig{},
		&model.Event{},
		&model.EventParticipant{},
	))
	return db
}

func fixedClock(iso string) func() time.Time {
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", iso, time.Local)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts }
}

func addMember(t *testing.T, db *gorm.DB, name, role string) model.Member {
	t.Helper()
	m := model.Member{Name: name, Role: role}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func addCompletion(t *testing.T, db *gorm.DB, memberID uint, date string, at time.Time) {
	t.Helper()
	rec := model.CompletionRecord{MemberID: memberID, Date: date, Completed: true, CreatedAt: at}
	require.NoError(t, db.Create(&rec).Error)
}
