package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/lib/pq"
	"github.com/map-mark/api-go/models"
	"github.com/map-mark/api-go/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func newTestStore(t *testing.T) *GormStore {
	t.Helper()

	// A named shared-cache memory DB keeps gorm's pooled connections
	// on the same database; the unique name isolates tests.
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Profile{}, &models.Settings{}, &models.Pin{}, &models.Report{}))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return New(db)
}

func seedProfile(t *testing.T, s *GormStore, id, role, status string) {
	t.Helper()
	require.NoError(t, s.DB.Create(&models.Profile{
		ID:       id,
		Username: "user-" + id,
		Email:    id + "@example.com",
		Password: "x",
		Role:     role,
		Status:   status,
	}).Error)
}

func seedPin(t *testing.T, s *GormStore, id, ownerID string, urls ...string) {
	t.Helper()
	require.NoError(t, s.DB.Create(&models.Pin{
		ID:        id,
		ProfileID: ownerID,
		Status:    models.PinStatusPublic,
		Title:     "pin " + id,
		Latitude:  52.52,
		Longitude: 13.405,
		ImgURLs:   pq.StringArray(urls),
	}).Error)
}

func TestProfileRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedProfile(t, s, "u1", models.RoleUser, models.StatusPublic)

	profile, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, profile.Role)

	_, err = s.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, moderation.ErrNotFound)

	require.NoError(t, s.UpdateProfileStatus(ctx, "u1", models.StatusWarning))
	profile, err = s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusWarning, profile.Status)
}

func TestPinQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedProfile(t, s, "u1", models.RoleUser, models.StatusPublic)
	seedPin(t, s, "p1", "u1", "https://img.example.com/pins/u1/a.jpg")
	seedPin(t, s, "p2", "u1")
	seedPin(t, s, "p3", "other")

	pins, err := s.ListPinsByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, pins, 2)

	pin, err := s.GetPin(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example.com/pins/u1/a.jpg"}, []string(pin.ImgURLs))

	require.NoError(t, s.UpdatePinStatus(ctx, "p1", models.PinStatusReported))
	pin, err = s.GetPin(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.PinStatusReported, pin.Status)

	require.NoError(t, s.DeletePin(ctx, "p1"))
	_, err = s.GetPin(ctx, "p1")
	assert.ErrorIs(t, err, moderation.ErrNotFound)

	require.NoError(t, s.DeletePinsByOwner(ctx, "u1"))
	pins, err = s.ListPinsByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, pins)

	// other owners untouched
	pins, err = s.ListPinsByOwner(ctx, "other")
	require.NoError(t, err)
	assert.Len(t, pins, 1)
}

func TestReportQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	reports := []models.Report{
		{ID: "r1", ProfileID: "u1", Text: "spam", ReportedUserID: "u2", Active: true},
		{ID: "r2", ProfileID: "u1", Text: "spam", ReportedPinID: "p1", Active: true},
		{ID: "r3", ProfileID: "u3", Text: "spam", ReportedUserID: "u2", Active: false},
		{ID: "r4", ProfileID: "u3", Text: "spam", ReportedPinID: "p2", Active: true},
	}
	for i := range reports {
		require.NoError(t, s.InsertReport(ctx, &reports[i]))
	}

	t.Run("get and list", func(t *testing.T) {
		report, err := s.GetReport(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, "u2", report.ReportedUserID)

		_, err = s.GetReport(ctx, "missing")
		assert.ErrorIs(t, err, moderation.ErrNotFound)

		all, err := s.ListReports(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 4)

		mine, err := s.ListReportsByReporter(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, mine, 2)
	})

	t.Run("count only active", func(t *testing.T) {
		count, err := s.CountActiveReports(ctx, moderation.UserTarget("u2"))
		require.NoError(t, err)
		assert.EqualValues(t, 1, count, "inactive reports do not count")

		count, err = s.CountActiveReports(ctx, moderation.PinTarget("p1"))
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("delete single", func(t *testing.T) {
		require.NoError(t, s.DeleteReport(ctx, "r1"))
		_, err := s.GetReport(ctx, "r1")
		assert.ErrorIs(t, err, moderation.ErrNotFound)
	})

	t.Run("delete by pin id list", func(t *testing.T) {
		require.NoError(t, s.DeleteReportsForPins(ctx, []string{"p1", "p2"}))
		all, err := s.ListReports(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1) // only r3 remains

		require.NoError(t, s.DeleteReportsForPins(ctx, nil))
	})

	t.Run("delete by user target", func(t *testing.T) {
		require.NoError(t, s.DeleteReportsForUser(ctx, "u2"))
		all, err := s.ListReports(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestDeleteReportsForUserOrPin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	reports := []models.Report{
		{ID: "r1", ProfileID: "x", Text: "t", ReportedUserID: "owner", Active: true},
		{ID: "r2", ProfileID: "x", Text: "t", ReportedPinID: "p1", Active: true},
		{ID: "r3", ProfileID: "x", Text: "t", ReportedPinID: "p9", Active: true},
	}
	for i := range reports {
		require.NoError(t, s.InsertReport(ctx, &reports[i]))
	}

	require.NoError(t, s.DeleteReportsForUserOrPin(ctx, "owner", "p1"))

	all, err := s.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "r3", all[0].ID)
}
