package repository

import (
	"errors"

	"gorm.io/gorm"

	courseModels "lms/models/course"
	"lms/services/content"
)

// Content is the gorm-backed course/module/lecture store serving the
// hierarchy manager and the progression engine.
type Content struct {
	db *gorm.DB
}

func NewContent(db *gorm.DB) *Content {
	return &Content{db: db}
}

func (r *Content) CourseByID(id uint) (*courseModels.Course, error) {
	var c courseModels.Course
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Content) ModuleByID(id uint) (*courseModels.Module, error) {
	var m courseModels.Module
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Content) LectureByID(id uint) (*courseModels.Lecture, error) {
	var l courseModels.Lecture
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Content) CreateCourse(c *courseModels.Course) error { return r.db.Create(c).Error }
func (r *Content) SaveCourse(c *courseModels.Course) error   { return r.db.Save(c).Error }
func (r *Content) CreateModule(m *courseModels.Module) error { return r.db.Create(m).Error }
func (r *Content) SaveModule(m *courseModels.Module) error   { return r.db.Save(m).Error }
func (r *Content) CreateLecture(l *courseModels.Lecture) error {
	return r.db.Create(l).Error
}
func (r *Content) SaveLecture(l *courseModels.Lecture) error { return r.db.Save(l).Error }

func (r *Content) MaxModuleOrder(courseID uint) (int, error) {
	var maxOrder int
	err := r.db.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder).Error
	return maxOrder, err
}

func (r *Content) MaxLectureOrder(moduleID uint) (int, error) {
	var maxOrder int
	err := r.db.Model(&courseModels.Lecture{}).
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder).Error
	return maxOrder, err
}

func (r *Content) ModulesByCourse(courseID uint) ([]courseModels.Module, error) {
	var modules []courseModels.Module
	err := r.db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error
	return modules, err
}

func (r *Content) LecturesByModule(moduleID uint) ([]courseModels.Lecture, error) {
	var lectures []courseModels.Lecture
	err := r.db.Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("order_index asc").Find(&lectures).Error
	return lectures, err
}

// ListPublished returns the public course catalogue.
func (r *Content) ListPublished() ([]courseModels.Course, error) {
	var courses []courseModels.Course
	err := r.db.Where("is_published = ? AND is_deleted = ?", true, false).
		Order("created_at desc").Find(&courses).Error
	return courses, err
}

// ListByInstructor returns an instructor's own courses, published or not.
func (r *Content) ListByInstructor(instructorID uint) ([]courseModels.Course, error) {
	var courses []courseModels.Course
	err := r.db.Where("instructor_id = ? AND is_deleted = ?", instructorID, false).
		Order("created_at desc").Find(&courses).Error
	return courses, err
}

// SetModuleOrders applies a full reorder inside one transaction so a
// partial order update can never be observed.
func (r *Content) SetModuleOrders(courseID uint, updates []content.OrderUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			err := tx.Model(&courseModels.Module{}).
				Where("id = ? AND course_id = ?", u.ID, courseID).
				Update("order_index", u.OrderIndex).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Content) SetLectureOrders(moduleID uint, updates []content.OrderUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			err := tx.Model(&courseModels.Lecture{}).
				Where("id = ? AND module_id = ?", u.ID, moduleID).
				Update("order_index", u.OrderIndex).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
