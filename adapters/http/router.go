package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/khoahotran/portfolio/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio/internal/domain/i18n"
	"github.com/khoahotran/portfolio/internal/domain/media"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/broadcast"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// RouterDeps carries everything the API routes need.
type RouterDeps struct {
	Gate         *authUC.Gate
	JWT          *auth.JWTService
	SecureCookie bool
	Languages    *broadcast.Bus[i18n.Changed]
	Logger       logger.Logger

	Auth    *AuthHandler
	Events  *EventHandler
	Profile *ProfileHandler
	Socials *SocialHandler
	Media   *MediaHandler
	RSS     *RSSHandler
	// Backup is optional; the route is not registered without it.
	Backup *BackupHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	// Multipart bodies beyond this spill to disk; the image limit is enforced
	// while encoding.
	router.MaxMultipartMemory = 4 * media.MaxImageBytes

	api := router.Group("/api")
	api.Use(ErrorMiddleware(d.Logger), LanguageMiddleware(d.Languages, d.SecureCookie))
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.GET("/events", d.Events.ListEvents)
		api.GET("/events/:id", d.Events.GetEvent)
		api.GET("/profile", d.Profile.GetProfile)
		api.GET("/profile/:category/:id", d.Profile.GetItem)
		api.GET("/socials", d.Socials.GetLinks)
		api.GET("/feed.xml", d.RSS.GenerateRSS)

		admin := api.Group("/admin")
		{
			adminAuth := admin.Group("/auth")
			adminAuth.POST("/login", d.Auth.Login)
			adminAuth.POST("/logout", d.Auth.Logout)
			adminAuth.GET("/session", d.Auth.Session)

			private := admin.Group("")
			private.Use(AuthMiddleware(d.Gate, d.JWT, d.SecureCookie))
			{
				events := private.Group("/events")
				{
					events.POST("", d.Events.CreateEvent)
					events.PUT("/:id", d.Events.UpdateEvent)
					events.DELETE("/:id", d.Events.DeleteEvent)
					events.POST("/:id/images", d.Media.AttachEventImage)
				}

				prof := private.Group("/profile")
				{
					prof.PUT("", d.Profile.UpdateProfile)
					prof.POST("/photo", d.Media.SetProfilePhoto)
					prof.POST("/:category", d.Profile.SaveItem)
					prof.DELETE("/:category/:id", d.Profile.DeleteItem)
				}

				private.PUT("/socials", d.Socials.SaveLinks)
				private.POST("/uploads", d.Media.Upload)
				if d.Backup != nil {
					private.POST("/backup", d.Backup.TriggerBackup)
				}
			}
		}
	}

	return router
}
