package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	courseModels "lms/models/course"
)

// Progress persists lecture completion records under the
// (user, lecture) unique constraint.
type Progress struct {
	db *gorm.DB
}

func NewProgress(db *gorm.DB) *Progress {
	return &Progress{db: db}
}

// Upsert records completion idempotently: a second mark for the same
// (user, lecture) refreshes completed_at instead of inserting a row.
// Two concurrent marks therefore cannot produce two records.
func (r *Progress) Upsert(p *courseModels.LectureProgress) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lecture_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed_at", "updated_at"}),
	}).Create(p).Error
}

func (r *Progress) CompletedLectureIDs(userID, courseID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.db.Model(&courseModels.LectureProgress{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Pluck("lecture_id", &ids).Error
	if err != nil {
		return nil, err
	}

	done := make(map[uint]bool, len(ids))
	for _, id := range ids {
		done[id] = true
	}
	return done, nil
}
