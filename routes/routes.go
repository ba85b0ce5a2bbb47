package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/torneolink/backend/handlers"
	"github.com/torneolink/backend/middleware"
	"github.com/torneolink/backend/models"
)

// SetupRoutes wires every endpoint onto the router. Public routes first,
// then authenticated groups guarded by role.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	teamHandler *handlers.TeamHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	inviteHandler *handlers.InviteHandler,
	notificationHandler *handlers.NotificationHandler,
	venueHandler *handlers.VenueHandler,
	paymentHandler *handlers.PaymentHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Public
	router.Post("/auth/login", authHandler.Login)
	router.Post("/auth/register/captain", authHandler.RegisterCaptain)
	router.Post("/auth/register/player", authHandler.RegisterPlayer)
	router.Post("/auth/register/referee", authHandler.RegisterReferee)
	router.Get("/invites/validate", inviteHandler.ValidateToken)

	router.Get("/tournaments", tournamentHandler.ListActive)
	router.Get("/tournaments/{tournamentID}", tournamentHandler.GetTournament)
	router.Get("/tournaments/{tournamentID}/standings", tournamentHandler.GetStandings)
	router.Get("/tournaments/{tournamentID}/scorers", tournamentHandler.GetScorers)
	router.Get("/tournaments/{tournamentID}/matches", matchHandler.ListByTournament)
	router.Get("/teams", teamHandler.ListTeams)
	router.Get("/teams/{teamID}", teamHandler.GetTeam)
	router.Get("/teams/{teamID}/players", teamHandler.ListPlayers)
	router.Get("/venues", venueHandler.ListVenues)
	router.Get("/venues/{venueID}", venueHandler.GetVenue)
	router.Get("/matches/{matchID}", matchHandler.GetMatch)
	router.Get("/matches/{matchID}/events", matchHandler.ListEvents)

	// Authenticated
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/me", userHandler.GetProfile)
		r.Put("/me", userHandler.UpdateProfile)
		r.Put("/me/password", userHandler.ChangePassword)

		r.Get("/me/notifications", notificationHandler.ListMine)
		r.Put("/me/notifications/read", notificationHandler.MarkAllRead)
		r.Put("/me/notifications/{notificationID}/read", notificationHandler.MarkRead)

		r.Get("/me/payments", paymentHandler.ListMine)

		r.Get("/matches/{matchID}/squads", matchHandler.GetSquads)

		// Captain
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleCaptain, models.RoleAdministrator))

			r.Put("/teams/{teamID}", teamHandler.UpdateTeam)
			r.Post("/teams/{teamID}/logo", teamHandler.UploadLogo)
			r.Post("/teams/{teamID}/invites/player", inviteHandler.GeneratePlayerToken)
			r.Get("/teams/{teamID}/invites/player/qr", inviteHandler.GeneratePlayerQR)
			r.Post("/tournaments/{tournamentID}/enroll", tournamentHandler.EnrollTeam)
			r.Get("/me/matches", matchHandler.ListMyTeamMatches)
		})

		// Referee
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleReferee))

			r.Get("/me/assignments", matchHandler.ListMyAssignments)
			r.Get("/me/referee-stats", matchHandler.GetRefereeStats)
			r.Put("/matches/{matchID}/start", matchHandler.StartMatch)
			r.Put("/matches/{matchID}/finish", matchHandler.FinishMatch)
			r.Post("/matches/{matchID}/events", matchHandler.RecordEvent)
			r.Delete("/events/{eventID}", matchHandler.DeleteEvent)
			r.Post("/matches/{matchID}/incidents", matchHandler.ReportIncident)
		})

		// Administrator
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdministrator))

			r.Post("/tournaments", tournamentHandler.CreateTournament)
			r.Put("/tournaments/{tournamentID}", tournamentHandler.UpdateTournament)
			r.Get("/tournaments/{tournamentID}/rules", tournamentHandler.GetRules)
			r.Put("/tournaments/{tournamentID}/rules", tournamentHandler.UpdateRules)
			r.Get("/tournaments/{tournamentID}/enrollments", tournamentHandler.ListEnrollments)
			r.Get("/tournaments/{tournamentID}/teams", tournamentHandler.ListEnrolledTeams)
			r.Put("/enrollments/{enrollmentID}/paid", tournamentHandler.MarkEnrollmentPaid)

			r.Post("/matches", matchHandler.CreateMatch)
			r.Get("/matches/{matchID}/incidents", matchHandler.ListIncidents)

			r.Post("/teams/{teamID}/players", teamHandler.AddPlayer)
			r.Put("/players/{playerID}", teamHandler.UpdatePlayer)
			r.Delete("/players/{playerID}", teamHandler.RemovePlayer)
			r.Put("/sanctions/{sanctionID}/clear", teamHandler.ClearSuspension)

			r.Post("/invites", inviteHandler.GenerateToken)
			r.Get("/invites/qr", inviteHandler.GenerateQR)

			r.Post("/venues", venueHandler.CreateVenue)
			r.Put("/venues/{venueID}", venueHandler.UpdateVenue)

			r.Post("/payments", paymentHandler.RecordPayment)
			r.Get("/tournaments/{tournamentID}/payments", paymentHandler.ListByTournament)
		})
	})
}
