package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/versecrew/versecrew-backend-go/internal/config"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/middleware"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/jwt"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	User         UserHandler
	Organization OrganizationHandler
	Member       MemberHandler
	Application  ApplicationHandler
	Onboarding   OnboardingHandler
	Performance  PerformanceHandler
	Comment      CommentHandler
	Document     DocumentHandler
	Verification VerificationHandler
	Notification NotificationHandler
	HRStats      HRStatsHandler
}

func NewRouter(cfg *config.Config, db *database.DB, jwtService jwt.Service, memberRepo member.MemberRepository, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "versecrew-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// SSE stream authenticates with a token in the query string.
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Post("/sync", h.User.SyncAccount)
				r.Get("/me", h.User.Me)
				r.Patch("/me", h.User.UpdateProfile)
				r.Get("/{handle}", h.User.GetByHandle)
			})

			r.Route("/verification", func(r chi.Router) {
				r.Post("/start", h.Verification.Start)
				r.Post("/confirm", h.Verification.Confirm)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/mark-read", h.Notification.MarkAsRead)
				r.Post("/mark-all-read", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
				r.Get("/preferences", h.Notification.GetPreferences)
				r.Put("/preferences", h.Notification.UpdatePreference)
				r.Post("/sse-token", h.Notification.GetSSEToken)
			})

			// My cross-org views
			r.Get("/applications/mine", h.Application.ListMine)
			r.Get("/onboarding/mine", h.Onboarding.ListMyProgress)
			r.Get("/reviews/mine", h.Performance.ListMyReviews)

			r.Route("/organizations", func(r chi.Router) {
				r.Get("/", h.Organization.List)
				r.Post("/", h.Organization.Create)
				r.Get("/sid/{sid}", h.Organization.GetBySID)

				r.Route("/{orgID}", func(r chi.Router) {
					r.Get("/", h.Organization.Get)
					r.Get("/comments", h.Comment.List)

					// Applicants are outsiders; no membership required.
					r.Post("/applications", h.Application.Submit)
					r.Post("/comments", h.Comment.Post)
					r.Put("/comments/{commentID}", h.Comment.Update)
					r.Delete("/comments/{commentID}", h.Comment.Delete)

					// Member-scoped routes
					r.Group(func(r chi.Router) {
						r.Use(middleware.OrgMember(memberRepo))

						r.Post("/leave", h.Member.Leave)

						r.Route("/members", func(r chi.Router) {
							r.Get("/", h.Member.List)
							r.Get("/{memberID}", h.Member.Get)

							r.Group(func(r chi.Router) {
								r.Use(middleware.RequirePermission(member.PermissionMembersManage))
								r.Put("/{memberID}/role", h.Member.UpdateRole)
								r.Put("/{memberID}/notes", h.Member.UpdateNotes)
								r.Delete("/{memberID}", h.Member.Remove)
							})
						})

						r.Group(func(r chi.Router) {
							r.Use(middleware.RequirePermission(member.PermissionOrgManage))
							r.Put("/", h.Organization.Update)
							r.Delete("/", h.Organization.Archive)
							r.Post("/logo", h.Organization.UploadLogo)
						})

						r.Route("/applications", func(r chi.Router) {
							r.Use(middleware.RequirePermission(member.PermissionApplicationsReview))
							r.Get("/", h.Application.ListByOrganization)
							r.Get("/{applicationID}", h.Application.Get)
							r.Post("/{applicationID}/start-review", h.Application.StartReview)
							r.Post("/{applicationID}/schedule-interview", h.Application.ScheduleInterview)
							r.Post("/{applicationID}/return-to-review", h.Application.ReturnToReview)
							r.Post("/{applicationID}/approve", h.Application.Approve)
							r.Post("/{applicationID}/reject", h.Application.Reject)
							r.Put("/{applicationID}/notes", h.Application.SaveReviewNotes)
						})

						r.Route("/onboarding", func(r chi.Router) {
							r.Route("/templates", func(r chi.Router) {
								r.Use(middleware.RequirePermission(member.PermissionOnboardingManage))
								r.Get("/", h.Onboarding.ListTemplates)
								r.Post("/", h.Onboarding.CreateTemplate)
								r.Get("/{templateID}", h.Onboarding.GetTemplate)
								r.Put("/{templateID}", h.Onboarding.UpdateTemplate)
								r.Delete("/{templateID}", h.Onboarding.DeactivateTemplate)
							})

							r.Route("/progress", func(r chi.Router) {
								r.Get("/{progressID}", h.Onboarding.GetProgress)
								r.Put("/{progressID}/tasks", h.Onboarding.SetTaskCompletion)

								r.Group(func(r chi.Router) {
									r.Use(middleware.RequirePermission(member.PermissionOnboardingViewAll))
									r.Get("/", h.Onboarding.ListOrgProgress)
								})
								r.Group(func(r chi.Router) {
									r.Use(middleware.RequirePermission(member.PermissionOnboardingManage))
									r.Post("/", h.Onboarding.Assign)
								})
							})
						})

						r.Route("/reviews", func(r chi.Router) {
							r.Get("/{reviewID}", h.Performance.GetReview)
							r.Post("/{reviewID}/acknowledge", h.Performance.AcknowledgeReview)
							r.Get("/{reviewID}/goals", h.Performance.ListReviewGoals)

							r.Group(func(r chi.Router) {
								r.Use(middleware.RequirePermission(member.PermissionReviewsManage))
								r.Post("/", h.Performance.CreateReview)
								r.Put("/{reviewID}", h.Performance.UpdateReview)
								r.Post("/{reviewID}/submit", h.Performance.SubmitReview)
								r.Get("/{reviewID}/export", h.Performance.ExportReviewPDF)
							})
							r.Group(func(r chi.Router) {
								r.Use(middleware.RequirePermission(member.PermissionReviewsViewAll))
								r.Get("/", h.Performance.ListOrgReviews)
							})
						})

						r.Route("/goals", func(r chi.Router) {
							r.Get("/", h.Performance.ListUserGoals)
							r.Get("/{goalID}", h.Performance.GetGoal)
							r.Put("/{goalID}/progress", h.Performance.UpdateGoalProgress)

							r.Group(func(r chi.Router) {
								r.Use(middleware.RequirePermission(member.PermissionReviewsManage))
								r.Post("/", h.Performance.CreateGoal)
								r.Post("/{goalID}/cancel", h.Performance.CancelGoal)
							})
						})

						r.Route("/documents", func(r chi.Router) {
							r.Get("/", h.Document.List)
							r.Get("/{documentID}", h.Document.Get)
							r.Get("/{documentID}/file", h.Document.DownloadFile)
							r.Post("/{documentID}/acknowledge", h.Document.Acknowledge)

							r.Group(func(r chi.Router) {
								r.Use(middleware.RequirePermission(member.PermissionDocumentsManage))
								r.Post("/", h.Document.Create)
								r.Put("/{documentID}", h.Document.Update)
								r.Post("/{documentID}/publish", h.Document.Publish)
								r.Delete("/{documentID}", h.Document.Delete)
								r.Post("/{documentID}/file", h.Document.AttachFile)
								r.Get("/{documentID}/acknowledgments", h.Document.ListAcknowledgments)
							})
						})

						r.Route("/stats", func(r chi.Router) {
							r.Use(middleware.RequirePermission(member.PermissionStatsView))
							r.Get("/dashboard", h.HRStats.Dashboard)
							r.Get("/recruitment-funnel", h.HRStats.RecruitmentFunnel)
							r.Get("/onboarding", h.HRStats.OnboardingStats)
							r.Get("/performance", h.HRStats.PerformanceStats)
						})
					})
				})
			})
		})
	})
	return r
}
