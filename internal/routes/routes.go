package routes

import (
	"net/http"

	"github.com/desperadoclub/desperado/internal/app"
	"github.com/desperadoclub/desperado/internal/handler"
	"github.com/desperadoclub/desperado/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	household := handler.NewHouseholdHandler(app.HouseholdService)
	lookup := handler.NewLookupHandler(app.LookupService, app.UserService)
	habit := handler.NewHabitHandler(app.HabitService, app.LookupService)
	goal := handler.NewGoalHandler(app.GoalService, app.LookupService)
	gamification := handler.NewGamificationHandler(app.GamificationService, app.HouseholdService)
	feedback := handler.NewFeedbackHandler(app.FeedbackService)
	pipeline := handler.NewPipelineHandler(app.FeedbackService)
	cron := handler.NewCronHandler(app.HabitService)
	shopping := handler.NewShoppingHandler(app.ShoppingService)
	task := handler.NewTaskHandler(app.TaskService)
	finance := handler.NewFinanceHandler(app.FinanceService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// AUTHENTICATED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /me", middleware.RequireAuth(auth.Me))

	// Lookups and user directory
	mux.HandleFunc("GET /lookups", middleware.RequireAuth(lookup.List))
	mux.HandleFunc("GET /users", middleware.RequireAuth(lookup.Users))

	// Household
	mux.HandleFunc("POST /household", middleware.RequireAuth(household.Create))
	mux.HandleFunc("GET /household", middleware.RequireMembership(household.Get))
	mux.HandleFunc("POST /household/invite", middleware.RequireMembership(household.CreateInvite))
	mux.HandleFunc("GET /household/invites", middleware.RequireMembership(household.Invites))
	mux.HandleFunc("POST /household/invite/redeem", middleware.RequireAuth(household.Redeem))
	mux.HandleFunc("POST /household/leave", middleware.RequireMembership(household.Leave))

	// Habits
	mux.HandleFunc("GET /habits", middleware.RequireAuth(habit.List))
	mux.HandleFunc("POST /habits", middleware.RequireAuth(habit.Create))
	mux.HandleFunc("GET /habits/{id}", middleware.RequireAuth(habit.Get))
	mux.HandleFunc("PUT /habits/{id}", middleware.RequireAuth(habit.Update))
	mux.HandleFunc("PATCH /habits/{id}/archive", middleware.RequireAuth(habit.Archive))
	mux.HandleFunc("DELETE /habits/{id}", middleware.RequireAuth(habit.Delete))
	mux.HandleFunc("POST /habits/{id}/checkin", middleware.RequireAuth(habit.CheckIn))

	// Goals
	mux.HandleFunc("GET /goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /goals/{id}", middleware.RequireAuth(goal.Get))
	mux.HandleFunc("PUT /goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("PATCH /goals/{id}/progress", middleware.RequireAuth(goal.UpdateProgress))
	mux.HandleFunc("DELETE /goals/{id}", middleware.RequireAuth(goal.Delete))

	// Gamification
	mux.HandleFunc("GET /gamification/party-goals", middleware.RequireAuth(gamification.PartyGoals))
	mux.HandleFunc("POST /gamification/party-goals", middleware.RequireAuth(gamification.UpsertPartyGoal))
	mux.HandleFunc("DELETE /gamification/party-goals/{goalID}", middleware.RequireAuth(gamification.DeletePartyGoal))
	mux.HandleFunc("GET /gamification/leaderboard", middleware.RequireMembership(gamification.Leaderboard))

	// Feedback
	mux.HandleFunc("GET /feedback", middleware.RequireAuth(feedback.List))
	mux.HandleFunc("POST /feedback", middleware.RequireAuth(feedback.Create))
	mux.HandleFunc("PATCH /feedback/{id}/status", middleware.RequireAuth(feedback.SetStatus))
	mux.HandleFunc("POST /feedback/{id}/vote", middleware.RequireAuth(feedback.ToggleVote))

	// Shopping
	mux.HandleFunc("GET /shopping/lists", middleware.RequireMembership(shopping.Lists))
	mux.HandleFunc("POST /shopping/lists", middleware.RequireMembership(shopping.CreateList))
	mux.HandleFunc("DELETE /shopping/lists/{id}", middleware.RequireMembership(shopping.DeleteList))
	mux.HandleFunc("GET /shopping/lists/{id}/items", middleware.RequireMembership(shopping.Items))
	mux.HandleFunc("POST /shopping/lists/{id}/items", middleware.RequireMembership(shopping.AddItem))
	mux.HandleFunc("PATCH /shopping/items/{itemID}", middleware.RequireMembership(shopping.CheckItem))
	mux.HandleFunc("DELETE /shopping/items/{itemID}", middleware.RequireMembership(shopping.DeleteItem))

	// Tasks
	mux.HandleFunc("GET /tasks", middleware.RequireMembership(task.List))
	mux.HandleFunc("POST /tasks", middleware.RequireMembership(task.Create))
	mux.HandleFunc("PUT /tasks/{id}", middleware.RequireMembership(task.Update))
	mux.HandleFunc("DELETE /tasks/{id}", middleware.RequireMembership(task.Delete))

	// Finance
	mux.HandleFunc("POST /finance/link-token", middleware.RequireAuth(finance.LinkToken))
	mux.HandleFunc("POST /finance/exchange", middleware.RequireAuth(finance.Exchange))
	mux.HandleFunc("GET /finance/accounts", middleware.RequireAuth(finance.Accounts))
	mux.HandleFunc("GET /finance/transactions", middleware.RequireAuth(finance.Transactions))

	// ============================================================================
	// MACHINE ROUTES (shared secret, no user auth)
	// ============================================================================

	cronGuard := middleware.RequireSecret(app.Cfg.CronSecret)
	pipelineGuard := middleware.RequireSecret(app.Cfg.PipelineSecret)

	mux.HandleFunc("GET /cron/streak-check", cronGuard(cron.StreakCheck))
	mux.HandleFunc("GET /pipeline/queue", pipelineGuard(pipeline.Queue))

	// ============================================================================
	// WEBHOOKS
	// ============================================================================

	mux.HandleFunc("POST /webhooks/plaid", finance.Webhook)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Recover,
		middleware.Config(app.Cfg),
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserService, app.HouseholdService),
	)

	return handler
}
