package content

import (
	"lms/apperrors"
	courseModels "lms/models/course"
)

var (
	ErrParentNotFound    = apperrors.New(apperrors.KindNotFound, "ParentNotFound", "Parent course or module not found!")
	ErrCourseNotFound    = apperrors.New(apperrors.KindNotFound, "CourseNotFound", "Course not found!")
	ErrModuleNotFound    = apperrors.New(apperrors.KindNotFound, "ModuleNotFound", "Module not found!")
	ErrLectureNotFound   = apperrors.New(apperrors.KindNotFound, "LectureNotFound", "Lecture not found!")
	ErrNotCourseOwner    = apperrors.New(apperrors.KindAuthorization, "NotCourseOwner", "Course belongs to another instructor!")
	ErrInvalidReorderSet = apperrors.New(apperrors.KindConflict, "InvalidReorderSet", "Reorder list must be a permutation of the current children!")
)

// OrderUpdate pairs a child id with its new order value.
type OrderUpdate struct {
	ID         uint
	OrderIndex int
}

// Store is the persistence surface of the hierarchy manager. The two
// SetOrders methods must apply all updates as a single logical unit.
type Store interface {
	CourseByID(id uint) (*courseModels.Course, error)
	ModuleByID(id uint) (*courseModels.Module, error)
	LectureByID(id uint) (*courseModels.Lecture, error)

	CreateCourse(c *courseModels.Course) error
	SaveCourse(c *courseModels.Course) error
	CreateModule(m *courseModels.Module) error
	SaveModule(m *courseModels.Module) error
	CreateLecture(l *courseModels.Lecture) error
	SaveLecture(l *courseModels.Lecture) error

	MaxModuleOrder(courseID uint) (int, error)
	MaxLectureOrder(moduleID uint) (int, error)

	ModulesByCourse(courseID uint) ([]courseModels.Module, error)
	LecturesByModule(moduleID uint) ([]courseModels.Lecture, error)

	SetModuleOrders(courseID uint, updates []OrderUpdate) error
	SetLectureOrders(moduleID uint, updates []OrderUpdate) error
}

// Manager maintains the course -> module -> lecture hierarchy and its
// order invariant: sibling order values strictly increase and are used
// only for relative sort, never for their absolute value.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// CourseInput carries the caller-editable course fields.
type CourseInput struct {
	Title        string
	Description  string
	Price        int64
	Currency     string
	ThumbnailURL string
}

func (m *Manager) CreateCourse(instructorID uint, in CourseInput) (*courseModels.Course, error) {
	currency := in.Currency
	if currency == "" {
		currency = "INR"
	}
	c := &courseModels.Course{
		InstructorID: instructorID,
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		Currency:     currency,
		ThumbnailURL: in.ThumbnailURL,
	}
	if err := m.store.CreateCourse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (m *Manager) UpdateCourse(courseID, instructorID uint, in CourseInput, publish *bool) (*courseModels.Course, error) {
	c, err := m.ownedCourse(courseID, instructorID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		c.Title = in.Title
	}
	if in.Description != "" {
		c.Description = in.Description
	}
	if in.Price > 0 {
		c.Price = in.Price
	}
	if in.Currency != "" {
		c.Currency = in.Currency
	}
	if in.ThumbnailURL != "" {
		c.ThumbnailURL = in.ThumbnailURL
	}
	if publish != nil {
		c.IsPublished = *publish
	}

	if err := m.store.SaveCourse(c); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateModule appends a module to the course, assigning the next order
// value (current max among live siblings + 1).
func (m *Manager) CreateModule(courseID, instructorID uint, title, description string) (*courseModels.Module, error) {
	if _, err := m.ownedCourse(courseID, instructorID); err != nil {
		if err == ErrCourseNotFound {
			return nil, ErrParentNotFound
		}
		return nil, err
	}

	maxOrder, err := m.store.MaxModuleOrder(courseID)
	if err != nil {
		return nil, err
	}

	mod := &courseModels.Module{
		CourseID:    courseID,
		Title:       title,
		Description: description,
		OrderIndex:  maxOrder + 1,
	}
	if err := m.store.CreateModule(mod); err != nil {
		return nil, err
	}
	return mod, nil
}

func (m *Manager) UpdateModule(moduleID, instructorID uint, title, description string) (*courseModels.Module, error) {
	mod, err := m.ownedModule(moduleID, instructorID)
	if err != nil {
		return nil, err
	}

	if title != "" {
		mod.Title = title
	}
	if description != "" {
		mod.Description = description
	}

	if err := m.store.SaveModule(mod); err != nil {
		return nil, err
	}
	return mod, nil
}

// DeleteModule soft deletes a module. Remaining siblings keep their
// order values; gaps are fine because only relative order matters.
func (m *Manager) DeleteModule(moduleID, instructorID uint) error {
	mod, err := m.ownedModule(moduleID, instructorID)
	if err != nil {
		return err
	}
	mod.IsDeleted = true
	return m.store.SaveModule(mod)
}

// CreateLecture appends a lecture to the module with the next order value.
func (m *Manager) CreateLecture(moduleID, instructorID uint, title, videoURL string) (*courseModels.Lecture, error) {
	mod, err := m.ownedModule(moduleID, instructorID)
	if err != nil {
		if err == ErrModuleNotFound {
			return nil, ErrParentNotFound
		}
		return nil, err
	}

	maxOrder, err := m.store.MaxLectureOrder(moduleID)
	if err != nil {
		return nil, err
	}

	lec := &courseModels.Lecture{
		ModuleID:   moduleID,
		CourseID:   mod.CourseID,
		Title:      title,
		VideoURL:   videoURL,
		OrderIndex: maxOrder + 1,
	}
	if err := m.store.CreateLecture(lec); err != nil {
		return nil, err
	}
	return lec, nil
}

func (m *Manager) UpdateLecture(lectureID, instructorID uint, title, videoURL string) (*courseModels.Lecture, error) {
	lec, err := m.ownedLecture(lectureID, instructorID)
	if err != nil {
		return nil, err
	}

	if title != "" {
		lec.Title = title
	}
	if videoURL != "" {
		lec.VideoURL = videoURL
	}

	if err := m.store.SaveLecture(lec); err != nil {
		return nil, err
	}
	return lec, nil
}

func (m *Manager) DeleteLecture(lectureID, instructorID uint) error {
	lec, err := m.ownedLecture(lectureID, instructorID)
	if err != nil {
		return err
	}
	lec.IsDeleted = true
	return m.store.SaveLecture(lec)
}

func (m *Manager) ListModules(courseID uint) ([]courseModels.Module, error) {
	if course, err := m.store.CourseByID(courseID); err != nil {
		return nil, err
	} else if course == nil {
		return nil, ErrCourseNotFound
	}
	return m.store.ModulesByCourse(courseID)
}

func (m *Manager) ListLectures(moduleID uint) ([]courseModels.Lecture, error) {
	if mod, err := m.store.ModuleByID(moduleID); err != nil {
		return nil, err
	} else if mod == nil {
		return nil, ErrModuleNotFound
	}
	return m.store.LecturesByModule(moduleID)
}

// ReorderModules applies a caller-supplied full permutation of the
// course's module ids, assigning order = index+1. A list that is not an
// exact permutation of the current sibling set (missing id, foreign id,
// duplicate) is rejected whole: a partial reorder would break the
// progression engine's sequencing.
func (m *Manager) ReorderModules(courseID, instructorID uint, orderedIDs []uint) error {
	if _, err := m.ownedCourse(courseID, instructorID); err != nil {
		return err
	}

	siblings, err := m.store.ModulesByCourse(courseID)
	if err != nil {
		return err
	}
	current := make([]uint, len(siblings))
	for i, s := range siblings {
		current[i] = s.ID
	}

	updates, err := permutationUpdates(current, orderedIDs)
	if err != nil {
		return err
	}
	return m.store.SetModuleOrders(courseID, updates)
}

// ReorderLectures is ReorderModules for a module's lectures.
func (m *Manager) ReorderLectures(moduleID, instructorID uint, orderedIDs []uint) error {
	if _, err := m.ownedModule(moduleID, instructorID); err != nil {
		return err
	}

	siblings, err := m.store.LecturesByModule(moduleID)
	if err != nil {
		return err
	}
	current := make([]uint, len(siblings))
	for i, s := range siblings {
		current[i] = s.ID
	}

	updates, err := permutationUpdates(current, orderedIDs)
	if err != nil {
		return err
	}
	return m.store.SetLectureOrders(moduleID, updates)
}

// permutationUpdates validates that submitted is an exact permutation of
// current and maps it to order assignments.
func permutationUpdates(current, submitted []uint) ([]OrderUpdate, error) {
	if len(submitted) != len(current) {
		return nil, ErrInvalidReorderSet
	}

	currentSet := make(map[uint]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}

	seen := make(map[uint]bool, len(submitted))
	updates := make([]OrderUpdate, len(submitted))
	for i, id := range submitted {
		if !currentSet[id] || seen[id] {
			return nil, ErrInvalidReorderSet
		}
		seen[id] = true
		updates[i] = OrderUpdate{ID: id, OrderIndex: i + 1}
	}
	return updates, nil
}

func (m *Manager) ownedCourse(courseID, instructorID uint) (*courseModels.Course, error) {
	c, err := m.store.CourseByID(courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCourseNotFound
	}
	if c.InstructorID != instructorID {
		return nil, ErrNotCourseOwner
	}
	return c, nil
}

func (m *Manager) ownedModule(moduleID, instructorID uint) (*courseModels.Module, error) {
	mod, err := m.store.ModuleByID(moduleID)
	if err != nil {
		return nil, err
	}
	if mod == nil {
		return nil, ErrModuleNotFound
	}
	if _, err := m.ownedCourse(mod.CourseID, instructorID); err != nil {
		return nil, err
	}
	return mod, nil
}

func (m *Manager) ownedLecture(lectureID, instructorID uint) (*courseModels.Lecture, error) {
	lec, err := m.store.LectureByID(lectureID)
	if err != nil {
		return nil, err
	}
	if lec == nil {
		return nil, ErrLectureNotFound
	}
	if _, err := m.ownedCourse(lec.CourseID, instructorID); err != nil {
		return nil, err
	}
	return lec, nil
}
