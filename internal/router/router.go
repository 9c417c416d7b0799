package router

import (
	"github.com/gin-gonic/gin"

	"github.com/medihire/medihire/internal/auth"
	"github.com/medihire/medihire/internal/handlers"
	"github.com/medihire/medihire/internal/middleware"
)

// Deps carries everything the route table needs.
type Deps struct {
	Tokens  *auth.TokenIssuer
	Auth    *handlers.AuthHandler
	Jobs    *handlers.JobHandler
	Me      *handlers.MeHandler
	Biz     *handlers.BizHandler
	Billing *handlers.BillingHandler
	Admin   *handlers.AdminHandler
}

// Register mounts every route under /api/v1.
func Register(r *gin.Engine, d Deps) {
	r.GET("/health", handlers.Health)

	api := r.Group("/api/v1")
	authed := middleware.AuthRequired(d.Tokens)

	// Authentication
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", d.Auth.Signup)
		authGroup.POST("/login", d.Auth.Login)
		authGroup.POST("/refresh", d.Auth.Refresh)
		authGroup.POST("/logout", authed, d.Auth.Logout)
	}

	// Public job board
	jobs := api.Group("/jobs")
	{
		jobs.GET("", d.Jobs.Search)
		jobs.GET("/sitemap", d.Jobs.Sitemap)
		jobs.GET("/:id", d.Jobs.Detail)
		jobs.POST("/:id/apply", authed, middleware.RequirePerson(), d.Jobs.Apply)
	}

	// Candidate surface
	me := api.Group("/me", authed)
	{
		me.GET("/notifications", d.Me.ListNotifications)
		me.POST("/notifications/read-all", d.Me.ReadAllNotifications)
		me.POST("/notifications/:id/read", d.Me.ReadNotification)

		person := me.Group("", middleware.RequirePerson())
		{
			person.GET("/resumes", d.Me.ListResumes)
			person.POST("/resumes", d.Me.CreateResume)
			person.GET("/resumes/:id", d.Me.GetResume)
			person.PATCH("/resumes/:id", d.Me.UpdateResume)
			person.PATCH("/resumes/:id/visibility", d.Me.SetResumeVisibility)

			person.GET("/applications", d.Me.ListApplications)
			person.GET("/applications/:id", d.Me.GetApplication)

			person.GET("/scouts", d.Me.ListScouts)
			person.GET("/scouts/:id", d.Me.GetScout)
			person.POST("/scouts/:id/respond", d.Me.RespondScout)

			person.GET("/favorites", d.Me.ListFavorites)
			person.POST("/favorites/:job_id", d.Me.ToggleFavorite)
			person.DELETE("/favorites/:job_id", d.Me.RemoveFavorite)
		}
	}

	// Company surface. Report submission only needs authentication.
	biz := api.Group("/biz", authed)
	{
		biz.POST("/reports", d.Biz.CreateReport)

		company := biz.Group("", middleware.RequireCompany())
		{
			company.GET("/jobs", d.Biz.ListJobs)
			company.POST("/jobs", d.Biz.CreateJob)
			company.PATCH("/jobs/:id", d.Biz.UpdateJob)
			company.POST("/jobs/:id/publish", d.Biz.PublishJob)
			company.POST("/jobs/:id/close", d.Biz.CloseJob)

			company.GET("/applicants", d.Biz.ListApplicants)
			company.GET("/applicants/:id", d.Biz.GetApplicant)
			company.PATCH("/applicants/:id/status", d.Biz.ChangeApplicantStatus)
			company.POST("/applicants/:id/notes", d.Biz.AddApplicantNote)

			company.GET("/talents", d.Biz.SearchTalents)
			company.POST("/scouts", d.Biz.SendScout)
			company.GET("/scouts", d.Biz.ListScouts)

			company.POST("/verify", d.Biz.SubmitVerification)
			company.GET("/verify", d.Biz.VerificationStatus)
		}
	}

	// Billing. The gateway webhook is unauthenticated.
	billing := api.Group("/billing")
	{
		billing.POST("/webhook", d.Billing.Webhook)

		company := billing.Group("", authed, middleware.RequireCompany())
		{
			company.GET("/products", d.Billing.ListProducts)
			company.POST("/orders", d.Billing.CreateOrder)
			company.GET("/orders", d.Billing.ListOrders)
			company.GET("/payments", d.Billing.ListPayments)
			company.GET("/entitlements", d.Billing.ListEntitlements)
			company.POST("/invoices", d.Billing.RequestInvoice)
			company.GET("/invoices", d.Billing.ListInvoices)
		}
	}

	// Back office
	admin := api.Group("/admin", authed, middleware.RequireAdmin())
	{
		admin.GET("/dashboard", d.Admin.Dashboard)
		admin.GET("/verifications", d.Admin.ListVerifications)
		admin.POST("/verifications/:id/review", d.Admin.ReviewVerification)
		admin.GET("/reports", d.Admin.ListReports)
		admin.POST("/reports/:id/process", d.Admin.ProcessReport)
		admin.GET("/jobs", d.Admin.ModerationJobs)
		admin.POST("/jobs/:id/blind", d.Admin.BlindJob)
		admin.POST("/jobs/:id/unblind", d.Admin.UnblindJob)
		admin.GET("/users", d.Admin.ListUsers)
		admin.PATCH("/users/:id/status", d.Admin.SetUserStatus)
		admin.GET("/logs", d.Admin.Logs)
	}
}
