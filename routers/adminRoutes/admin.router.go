package adminRoutes

import (
	"github.com/gofiber/fiber/v2"

	adminController "lms/controllers/admin"
	"lms/middleware"
	"lms/models"
	adminValidator "lms/validators/admin"
)

func SetupAdminRoutes(app *fiber.App, auth *middleware.Auth, ctl *adminController.Controller) {
	group := app.Group("/admin", auth.RequireAuth, auth.RequireRole(models.RoleAdmin))

	group.Get("/instructors/pending", ctl.ListPending)
	group.Patch("/instructor/:id/approve", adminValidator.InstructorID(), ctl.Approve)
	group.Patch("/instructor/:id/reject", adminValidator.InstructorID(), ctl.Reject)
	group.Patch("/instructor/:id/block", adminValidator.InstructorID(), ctl.Block)
	group.Patch("/instructor/:id/unblock", adminValidator.InstructorID(), ctl.Unblock)
}
