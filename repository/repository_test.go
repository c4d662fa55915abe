package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lms/apperrors"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services/content"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestAccountsCreateDuplicateEmail(t *testing.T) {
	accounts := NewAccounts(setupDB(t))

	first := &models.User{Email: "dup@example.com", Password: "x"}
	require.NoError(t, accounts.Create(first))

	second := &models.User{Email: "dup@example.com", Password: "y"}
	err := accounts.Create(second)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)
}

func TestAccountsConsumeResetGrant(t *testing.T) {
	accounts := NewAccounts(setupDB(t))

	user := &models.User{Email: "reset@example.com", Password: "x"}
	require.NoError(t, accounts.Create(user))

	now := time.Now()
	require.NoError(t, accounts.GrantPasswordReset("reset@example.com", "grant-1", now.Add(15*time.Minute)))

	got, err := accounts.ConsumeResetGrant("reset@example.com", "grant-1", now)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)

	// Consumed once; a replay finds nothing.
	again, err := accounts.ConsumeResetGrant("reset@example.com", "grant-1", now)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestAccountsConsumeExpiredGrant(t *testing.T) {
	accounts := NewAccounts(setupDB(t))

	require.NoError(t, accounts.Create(&models.User{Email: "late@example.com", Password: "x"}))

	now := time.Now()
	require.NoError(t, accounts.GrantPasswordReset("late@example.com", "grant-2", now.Add(-time.Minute)))

	got, err := accounts.ConsumeResetGrant("late@example.com", "grant-2", now)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOTPUpsertReplacesLiveCode(t *testing.T) {
	otps := NewOTPs(setupDB(t))

	now := time.Now()
	require.NoError(t, otps.Upsert(&models.OTP{
		Email: "u@example.com", Purpose: models.PurposeRegistration, Code: "111111", ExpiresAt: now.Add(5 * time.Minute),
	}))
	require.NoError(t, otps.Upsert(&models.OTP{
		Email: "u@example.com", Purpose: models.PurposeRegistration, Code: "222222", ExpiresAt: now.Add(5 * time.Minute),
	}))

	rec, err := otps.Find("u@example.com", models.PurposeRegistration)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "222222", rec.Code)
}

func TestOTPDeleteIsHard(t *testing.T) {
	otps := NewOTPs(setupDB(t))

	now := time.Now()
	require.NoError(t, otps.Upsert(&models.OTP{
		Email: "u@example.com", Purpose: models.PurposeRegistration, Code: "111111", ExpiresAt: now.Add(5 * time.Minute),
	}))
	require.NoError(t, otps.Delete("u@example.com", models.PurposeRegistration))

	// A fresh insert under the unique index must succeed.
	require.NoError(t, otps.Upsert(&models.OTP{
		Email: "u@example.com", Purpose: models.PurposeRegistration, Code: "333333", ExpiresAt: now.Add(5 * time.Minute),
	}))
}

func TestOTPPurgeExpired(t *testing.T) {
	otps := NewOTPs(setupDB(t))

	now := time.Now()
	require.NoError(t, otps.Upsert(&models.OTP{
		Email: "old@example.com", Purpose: models.PurposeRegistration, Code: "111111", ExpiresAt: now.Add(-time.Minute),
	}))
	require.NoError(t, otps.Upsert(&models.OTP{
		Email: "new@example.com", Purpose: models.PurposeRegistration, Code: "222222", ExpiresAt: now.Add(5 * time.Minute),
	}))

	purged, err := otps.PurgeExpired(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	rec, err := otps.Find("new@example.com", models.PurposeRegistration)
	require.NoError(t, err)
	assert.NotNil(t, rec)
}

func TestEnrollmentsUniquePerUserAndCourse(t *testing.T) {
	enrollments := NewEnrollments(setupDB(t))

	require.NoError(t, enrollments.Create(&courseModels.Enrollment{
		UserID: 1, CourseID: 2, AmountPaid: 100, Status: courseModels.EnrollmentCompleted,
	}))

	err := enrollments.Create(&courseModels.Enrollment{
		UserID: 1, CourseID: 2, AmountPaid: 100, Status: courseModels.EnrollmentCompleted,
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	// A different course for the same user is fine.
	require.NoError(t, enrollments.Create(&courseModels.Enrollment{
		UserID: 1, CourseID: 3, AmountPaid: 100, Status: courseModels.EnrollmentCompleted,
	}))

	list, err := enrollments.ListByUser(1)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestProgressUpsertKeepsSingleRow(t *testing.T) {
	db := setupDB(t)
	progress := NewProgress(db)

	first := time.Now().Add(-time.Hour)
	require.NoError(t, progress.Upsert(&courseModels.LectureProgress{
		UserID: 1, LectureID: 2, ModuleID: 3, CourseID: 4, CompletedAt: first,
	}))

	second := time.Now()
	require.NoError(t, progress.Upsert(&courseModels.LectureProgress{
		UserID: 1, LectureID: 2, ModuleID: 3, CourseID: 4, CompletedAt: second,
	}))

	var count int64
	require.NoError(t, db.Model(&courseModels.LectureProgress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	done, err := progress.CompletedLectureIDs(1, 4)
	require.NoError(t, err)
	assert.True(t, done[2])
}

func TestContentReorderPersists(t *testing.T) {
	db := setupDB(t)
	repo := NewContent(db)

	course := &courseModels.Course{InstructorID: 1, Title: "T"}
	require.NoError(t, repo.CreateCourse(course))

	var ids []uint
	for i := 1; i <= 3; i++ {
		mod := &courseModels.Module{CourseID: course.ID, Title: "M", OrderIndex: i}
		require.NoError(t, repo.CreateModule(mod))
		ids = append(ids, mod.ID)
	}

	require.NoError(t, repo.SetModuleOrders(course.ID, []content.OrderUpdate{
		{ID: ids[2], OrderIndex: 1},
		{ID: ids[0], OrderIndex: 2},
		{ID: ids[1], OrderIndex: 3},
	}))

	mods, err := repo.ModulesByCourse(course.ID)
	require.NoError(t, err)
	require.Len(t, mods, 3)
	assert.Equal(t, []uint{ids[2], ids[0], ids[1]}, []uint{mods[0].ID, mods[1].ID, mods[2].ID})
}

func TestContentMaxOrderIgnoresDeleted(t *testing.T) {
	repo := NewContent(setupDB(t))

	course := &courseModels.Course{InstructorID: 1, Title: "T"}
	require.NoError(t, repo.CreateCourse(course))

	m1 := &courseModels.Module{CourseID: course.ID, OrderIndex: 1}
	m2 := &courseModels.Module{CourseID: course.ID, OrderIndex: 2}
	require.NoError(t, repo.CreateModule(m1))
	require.NoError(t, repo.CreateModule(m2))

	m2.IsDeleted = true
	require.NoError(t, repo.SaveModule(m2))

	max, err := repo.MaxModuleOrder(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, max)
}

func TestContentListPublishedHidesDrafts(t *testing.T) {
	repo := NewContent(setupDB(t))

	published := &courseModels.Course{InstructorID: 1, Title: "Live", IsPublished: true}
	draft := &courseModels.Course{InstructorID: 1, Title: "Draft"}
	require.NoError(t, repo.CreateCourse(published))
	require.NoError(t, repo.CreateCourse(draft))

	list, err := repo.ListPublished()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Live", list[0].Title)
}
