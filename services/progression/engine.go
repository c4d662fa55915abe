package progression

import (
	"lms/apperrors"
	courseModels "lms/models/course"
	"lms/services/token"
)

var (
	ErrCourseNotFound  = apperrors.New(apperrors.KindNotFound, "CourseNotFound", "Course not found!")
	ErrModuleNotFound  = apperrors.New(apperrors.KindNotFound, "ModuleNotFound", "Module not found!")
	ErrLectureNotFound = apperrors.New(apperrors.KindNotFound, "LectureNotFound", "Lecture not found!")
	ErrNotEnrolled     = apperrors.New(apperrors.KindAuthorization, "NotEnrolled", "Enroll in this course first!")
	ErrModuleLocked    = apperrors.New(apperrors.KindAuthorization, "ModuleLocked", "Complete the previous module first!")
)

// ContentStore is the read-only hierarchy surface the engine consumes.
// Modules and lectures come back sorted by order.
type ContentStore interface {
	CourseByID(id uint) (*courseModels.Course, error)
	ModuleByID(id uint) (*courseModels.Module, error)
	LectureByID(id uint) (*courseModels.Lecture, error)
	ModulesByCourse(courseID uint) ([]courseModels.Module, error)
	LecturesByModule(moduleID uint) ([]courseModels.Lecture, error)
}

type EnrollmentStore interface {
	ByUserAndCourse(userID, courseID uint) (*courseModels.Enrollment, error)
}

// ProgressStore persists completion records under the (user, lecture)
// unique constraint; Upsert refreshes the timestamp, never duplicates.
type ProgressStore interface {
	Upsert(p *courseModels.LectureProgress) error
	CompletedLectureIDs(userID, courseID uint) (map[uint]bool, error)
}

// ModuleState is a module plus the learner's unlock/completion view.
type ModuleState struct {
	Module    courseModels.Module `json:"module"`
	Unlocked  bool                `json:"unlocked"`
	Completed bool                `json:"completed"`
}

// LectureState is a lecture plus the learner's completion flag.
type LectureState struct {
	Lecture   courseModels.Lecture `json:"lecture"`
	Completed bool                 `json:"completed"`
}

// Engine computes per-learner unlock and completion state from the
// hierarchy, enrollments and completion records.
type Engine struct {
	content     ContentStore
	enrollments EnrollmentStore
	progress    ProgressStore
	clock       token.Clock
}

func NewEngine(content ContentStore, enrollments EnrollmentStore, progress ProgressStore, clock token.Clock) *Engine {
	return &Engine{content: content, enrollments: enrollments, progress: progress, clock: clock}
}

// GetModulesForCourse returns the course's modules in order with the
// learner's unlock and completion state. The first module is always
// unlocked; each later module unlocks only when every module before it
// is completed. Paid courses require a completed enrollment.
func (e *Engine) GetModulesForCourse(courseID, userID uint) ([]ModuleState, error) {
	course, err := e.content.CourseByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	if err := e.requireAccess(course, userID); err != nil {
		return nil, err
	}

	return e.moduleStates(courseID, userID)
}

// GetLecturesForModule returns the module's lectures in order with the
// learner's completion flags. Module-level unlock is not re-checked
// here; the course-level call is the gate ("visible" vs "allowed").
func (e *Engine) GetLecturesForModule(moduleID, userID uint) ([]LectureState, error) {
	module, err := e.content.ModuleByID(moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, ErrModuleNotFound
	}

	lectures, err := e.content.LecturesByModule(moduleID)
	if err != nil {
		return nil, err
	}

	done, err := e.progress.CompletedLectureIDs(userID, module.CourseID)
	if err != nil {
		return nil, err
	}

	states := make([]LectureState, len(lectures))
	for i, lec := range lectures {
		states[i] = LectureState{Lecture: lec, Completed: done[lec.ID]}
	}
	return states, nil
}

// CompleteLecture records that the learner finished a lecture. The
// owning module's unlock state is re-checked server-side: a learner who
// guesses a lecture id inside a locked module is rejected rather than
// allowed to complete out of order. Completing twice is a no-op that
// refreshes the timestamp.
func (e *Engine) CompleteLecture(userID, moduleID, lectureID uint) error {
	lecture, err := e.content.LectureByID(lectureID)
	if err != nil {
		return err
	}
	if lecture == nil || lecture.ModuleID != moduleID {
		return ErrLectureNotFound
	}

	course, err := e.content.CourseByID(lecture.CourseID)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrCourseNotFound
	}
	if err := e.requireAccess(course, userID); err != nil {
		return err
	}

	states, err := e.moduleStates(lecture.CourseID, userID)
	if err != nil {
		return err
	}
	unlocked := false
	for _, st := range states {
		if st.Module.ID == moduleID {
			unlocked = st.Unlocked
			break
		}
	}
	if !unlocked {
		return ErrModuleLocked
	}

	return e.progress.Upsert(&courseModels.LectureProgress{
		UserID:      userID,
		LectureID:   lectureID,
		ModuleID:    moduleID,
		CourseID:    lecture.CourseID,
		CompletedAt: e.clock.Now(),
	})
}

// requireAccess admits free courses and completed enrollments.
func (e *Engine) requireAccess(course *courseModels.Course, userID uint) error {
	if course.Price == 0 {
		return nil
	}
	enrollment, err := e.enrollments.ByUserAndCourse(userID, course.ID)
	if err != nil {
		return err
	}
	if enrollment == nil || enrollment.Status != courseModels.EnrollmentCompleted {
		return ErrNotEnrolled
	}
	return nil
}

func (e *Engine) moduleStates(courseID, userID uint) ([]ModuleState, error) {
	modules, err := e.content.ModulesByCourse(courseID)
	if err != nil {
		return nil, err
	}

	done, err := e.progress.CompletedLectureIDs(userID, courseID)
	if err != nil {
		return nil, err
	}

	states := make([]ModuleState, len(modules))
	for i, mod := range modules {
		lectures, err := e.content.LecturesByModule(mod.ID)
		if err != nil {
			return nil, err
		}

		// Vacuously complete when the module has no lectures yet, so an
		// empty module never blocks progression.
		completed := true
		for _, lec := range lectures {
			if !done[lec.ID] {
				completed = false
				break
			}
		}

		unlocked := i == 0 || (states[i-1].Unlocked && states[i-1].Completed)
		states[i] = ModuleState{Module: mod, Unlocked: unlocked, Completed: completed}
	}
	return states, nil
}
