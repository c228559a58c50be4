package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roleready/roleready-api/internal/email"
	"github.com/roleready/roleready-api/internal/handlers"
	"github.com/roleready/roleready-api/internal/middleware"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/pkg/metrics"
)

const (
	avatarRoute    = "/api/profile/avatar"
	bulkEmailRoute = "/api/admin/emails/bulk"
)

// multipartOverhead leaves room for form fields next to an uploaded file
const multipartOverhead = 256 * 1024

// routeBodyLimits overrides the default body cap for upload routes
var routeBodyLimits = map[string]int64{
	avatarRoute:    6 * 1024 * 1024,
	bulkEmailRoute: email.MaxRecipientFileBytes + multipartOverhead,
}

type apiHandlers struct {
	health        *handlers.HealthHandler
	logs          *handlers.LogsHandler
	auth          *handlers.AuthHandler
	profile       *handlers.ProfileHandler
	skills        *handlers.SkillHandler
	validations   *handlers.ValidationHandler
	mentors       *handlers.MentorHandler
	applications  *handlers.ApplicationHandler
	readiness     *handlers.ReadinessHandler
	roles         *handlers.RoleHandler
	jobs          *handlers.ListingHandler
	internships   *handlers.ListingHandler
	users         *handlers.UserAdminHandler
	tickets       *handlers.TicketHandler
	notifications *handlers.NotificationHandler
	bulkEmail     *handlers.BulkEmailHandler
}

type rateLimiters struct {
	general *middleware.RateLimiter
	auth    *middleware.RateLimiter
	mail    *middleware.RateLimiter
}

// registerRoutes mounts every API route. SessionMiddleware must already be
// installed on router. accounts refreshes role and activation per request.
func registerRoutes(router *gin.Engine, h apiHandlers, rl rateLimiters, accounts middleware.AccountStatus) {
	api := router.Group("/api")
	signedIn := []gin.HandlerFunc{middleware.RequireAuth(), middleware.RequireActiveAccount(accounts)}

	// Operational endpoints
	api.GET("/healthcheck", h.health.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	api.POST("/logs", rl.general.Middleware(), h.logs.ReceiveFrontendLogs)

	// Public
	public := api.Group("", rl.general.Middleware())
	public.GET("/jobs", h.jobs.ListPublic)
	public.GET("/jobs/:slug", h.jobs.GetPublic)
	public.GET("/internships", h.internships.ListPublic)
	public.GET("/internships/:slug", h.internships.GetPublic)

	auth := api.Group("/auth")
	auth.POST("/register", rl.auth.Middleware(), h.auth.Register)
	auth.POST("/login", rl.auth.Middleware(), h.auth.Login)
	auth.POST("/logout", h.auth.Logout)
	auth.GET("/session", append(signedIn, h.auth.Session)...)

	// Any signed-in user
	user := api.Group("", rl.general.Middleware())
	user.Use(signedIn...)
	user.GET("/profile", h.profile.Get)
	user.PUT("/profile", h.profile.Update)
	user.PUT("/profile/target-role", h.profile.SetTargetRole)
	user.POST("/profile/avatar", h.profile.UploadAvatar)

	user.GET("/skills", h.skills.ListCatalog)
	user.GET("/me/skills", h.skills.ListMine)
	user.POST("/me/skills", h.skills.AddMine)
	user.PUT("/me/skills/:id", h.skills.UpdateMine)
	user.DELETE("/me/skills/:id", h.skills.RemoveMine)
	user.POST("/me/skills/:id/validation", h.skills.RequestValidation)

	user.GET("/roles", h.roles.ListActive)
	user.GET("/roles/:id", h.roles.Get)
	user.GET("/readiness", h.readiness.Get)
	user.POST("/readiness/email", rl.mail.Middleware(), h.readiness.EmailReport)

	user.GET("/mentor-application", h.applications.GetMine)
	user.PUT("/mentor-application", h.applications.SaveDraft)
	user.POST("/mentor-application/consent", h.applications.Consent)
	user.POST("/mentor-application/submit", h.applications.Submit)

	user.GET("/tickets", h.tickets.ListOwn)
	user.POST("/tickets", h.tickets.Create)
	user.GET("/tickets/:id", h.tickets.Get)
	user.POST("/tickets/:id/messages", h.tickets.PostMessage)
	user.POST("/tickets/:id/close", h.tickets.Close)

	user.GET("/notifications", h.notifications.List)
	user.POST("/notifications/read-all", h.notifications.MarkAllRead)
	user.POST("/notifications/:id/read", h.notifications.MarkRead)
	user.DELETE("/notifications/:id", h.notifications.Delete)

	// Mentors and admins
	mentor := api.Group("/mentor", rl.general.Middleware())
	mentor.Use(signedIn...)
	mentor.Use(middleware.RequireRole(models.RoleMentor, models.RoleAdmin))
	mentor.GET("/validations", h.validations.Queue)
	mentor.GET("/validations/stats", h.validations.Stats)
	mentor.POST("/validations/:id/approve", h.validations.Approve)
	mentor.POST("/validations/:id/reject", h.validations.Reject)
	mentor.GET("/students", h.mentors.Students)

	// Admins
	admin := api.Group("/admin", rl.general.Middleware())
	admin.Use(signedIn...)
	admin.Use(middleware.RequireRole(models.RoleAdmin))

	admin.GET("/users", h.users.List)
	admin.POST("/users/bulk", h.users.Bulk)
	admin.GET("/users/:id", h.users.Get)
	admin.PUT("/users/:id", h.users.Update)
	admin.DELETE("/users/:id", h.users.Delete)
	admin.POST("/users/:id/mentor", h.mentors.Assign)
	admin.GET("/mentors/workload", h.mentors.Workloads)

	admin.POST("/skills", h.skills.Create)
	admin.PUT("/skills/:id", h.skills.Update)
	admin.DELETE("/skills/:id", h.skills.Delete)

	admin.GET("/roles", h.roles.ListAll)
	admin.POST("/roles", h.roles.Create)
	admin.PUT("/roles/:id", h.roles.Update)
	admin.PUT("/roles/:id/benchmarks", h.roles.ReplaceBenchmarks)
	admin.DELETE("/roles/:id", h.roles.Delete)

	admin.GET("/mentor-applications", h.applications.List)
	admin.GET("/mentor-applications/:id", h.applications.Get)
	admin.POST("/mentor-applications/:id/approve", h.applications.Approve)
	admin.POST("/mentor-applications/:id/reject", h.applications.Reject)

	registerListingRoutes(admin.Group("/jobs"), h.jobs)
	registerListingRoutes(admin.Group("/internships"), h.internships)

	admin.GET("/tickets", h.tickets.List)
	admin.GET("/tickets/:id", h.tickets.Get)
	admin.PUT("/tickets/:id", h.tickets.Update)
	admin.POST("/tickets/:id/messages", h.tickets.Reply)

	admin.POST("/emails/bulk", rl.mail.Middleware(), h.bulkEmail.Send)
}

func registerListingRoutes(group *gin.RouterGroup, h *handlers.ListingHandler) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.POST("/bulk", h.Bulk)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}
