package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"
)

// SetupCourseRoutes wires the learner-facing course surface.
func SetupCourseRoutes(app *fiber.App, auth *middleware.Auth, ctl *controllers.Controller) {
	courseGroup := app.Group("/course")

	// Catalogue browsing is public; progression views need a login.
	courseGroup.Get("/list", ctl.ListCourses)
	courseGroup.Get("/:id/modules", auth.RequireAuth, validators.CourseID(), ctl.GetCourseModules)
	courseGroup.Get("/module/:id/lectures", auth.RequireAuth, validators.ModuleID(), ctl.GetModuleLectures)
	courseGroup.Post("/module/:module_id/lecture/:lecture_id/complete", auth.RequireAuth, validators.CompleteLecture(), ctl.CompleteLecture)
	courseGroup.Get("/:id", validators.CourseID(), ctl.GetCourse)

	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", auth.RequireAuth, ctl.MyEnrollments)
}

// SetupInstructorRoutes wires the authoring surface. The lifecycle
// gate inside each handler enforces verified + approved before writes.
func SetupInstructorRoutes(app *fiber.App, auth *middleware.Auth, ctl *controllers.InstructorController) {
	group := app.Group("/instructor", auth.RequireAuth)

	group.Post("/apply", ctl.Apply)

	group.Get("/courses", ctl.MyCourses)
	group.Post("/course", validators.Course(), ctl.CreateCourse)
	group.Put("/course/:id", validators.CourseID(), validators.CourseUpdate(), ctl.UpdateCourse)

	group.Post("/course/:id/module", validators.CourseID(), validators.Module(), ctl.CreateModule)
	group.Patch("/course/:id/modules/reorder", validators.CourseID(), validators.Reorder(), ctl.ReorderModules)
	group.Put("/module/:id", validators.ModuleID(), validators.Module(), ctl.UpdateModule)
	group.Delete("/module/:id", validators.ModuleID(), ctl.DeleteModule)

	group.Post("/module/:id/lecture", validators.ModuleID(), validators.Lecture(), ctl.CreateLecture)
	group.Patch("/module/:id/lectures/reorder", validators.ModuleID(), validators.Reorder(), ctl.ReorderLectures)
	group.Put("/lecture/:lecture_id", validators.LectureID(), validators.Lecture(), ctl.UpdateLecture)
	group.Delete("/lecture/:lecture_id", validators.LectureID(), ctl.DeleteLecture)
}
