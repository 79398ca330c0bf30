package internal

import (
	"net/http"

	"rankd/internal/controllers"
	"rankd/internal/providers"
	"rankd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, adminController *controllers.AdminController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.PostAuth("/submit", http.HandlerFunc(apiController.SubmitResult))

	routers.Get("/best", http.HandlerFunc(apiController.GetBest))
	routers.Get("/total", http.HandlerFunc(apiController.GetTotal))
	routers.Get("/streak", http.HandlerFunc(apiController.GetStreak))
	routers.Get("/leaderboard/daily", http.HandlerFunc(apiController.GetDailyLeaderboard))
	routers.Get("/leaderboard/alltime", http.HandlerFunc(apiController.GetAllTimeLeaderboard))
	routers.Get("/points/daily", http.HandlerFunc(apiController.GetDailyPoints))
	routers.Get("/epoch", http.HandlerFunc(apiController.GetEpoch))
	routers.Get("/paused", http.HandlerFunc(apiController.GetPaused))
	routers.Get("/seed", http.HandlerFunc(apiController.GetDailySeed))

	routers.PostAuth("/admin/pause", http.HandlerFunc(adminController.SetPaused))
	routers.PostAuth("/admin/epoch/reset", http.HandlerFunc(adminController.ResetEpoch))
	routers.PostAuth("/admin/owner", http.HandlerFunc(adminController.SetOwner))
	routers.PostAuth("/admin/seed", http.HandlerFunc(adminController.SetDailySeed))
	routers.PostAuth("/admin/migrate", http.HandlerFunc(adminController.Migrate))

	return routers
}
