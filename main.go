package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"lms/config"
	adminController "lms/controllers/admin"
	authController "lms/controllers/auth"
	courseController "lms/controllers/course"
	paymentController "lms/controllers/payment"
	"lms/database"
	"lms/mailer"
	"lms/middleware"
	"lms/payment/razorpay"
	"lms/repository"
	"lms/routers/adminRoutes"
	"lms/routers/authRoutes"
	"lms/routers/courseRoutes"
	"lms/routers/paymentRoutes"
	contentService "lms/services/content"
	instructorService "lms/services/instructor"
	otpService "lms/services/otp"
	paymentService "lms/services/payment"
	progressionService "lms/services/progression"
	tokenService "lms/services/token"
	"lms/utils"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	clock := tokenService.SystemClock()

	accounts := repository.NewAccounts(db)
	otps := repository.NewOTPs(db)
	content := repository.NewContent(db)
	enrollments := repository.NewEnrollments(db)
	progress := repository.NewProgress(db)

	tokens := tokenService.NewService(cfg.JWTKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, accounts, clock)
	otpFlow := otpService.NewWorkflow(otps, accounts, mailer.NewSendGrid(cfg.SendGridApiKey, cfg.EmailSender), clock, cfg.OTPTTL)
	lifecycle := instructorService.NewLifecycle(accounts)
	hierarchy := contentService.NewManager(content)
	gateway := paymentService.NewGateway(
		razorpay.NewClient(cfg.PaymentApiURL, cfg.PaymentApiKey, cfg.PaymentSecretKey),
		content, enrollments, cfg.PaymentSecretKey, clock,
	)
	engine := progressionService.NewEngine(content, enrollments, progress, clock)

	auth := middleware.NewAuth(tokens)

	authCtl := authController.NewController(accounts, otpFlow, tokens, clock, cfg.SaltRound)
	courseCtl := courseController.NewController(content, engine, gateway)
	instructorCtl := courseController.NewInstructorController(lifecycle, hierarchy, content)
	adminCtl := adminController.NewController(lifecycle)
	paymentCtl := paymentController.NewController(gateway, content)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app, authCtl)
	courseRoutes.SetupCourseRoutes(app, auth, courseCtl)
	courseRoutes.SetupInstructorRoutes(app, auth, instructorCtl)
	adminRoutes.SetupAdminRoutes(app, auth, adminCtl)
	paymentRoutes.SetupPaymentRoutes(app, auth, paymentCtl)

	utils.InitializeOTPScheduler(otps)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
