package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"topthought/config"
	"topthought/handler"
	"topthought/store"
	"topthought/suggest"
	"topthought/web"
	"topthought/youtube"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/acme/autocert"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Loading configuration: %v", err)
	}

	log.Println("Running database schema migrations...")
	s, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Opening store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if cfg.AdminPassword != "" {
		if err := s.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Fatalf("Bootstrapping admin user: %v", err)
		}
	} else {
		log.Println("ADMIN_PASSWORD not set, skipping admin bootstrap")
	}

	h := &handler.Handler{
		Store:     s,
		JWTSecret: cfg.JWTSecret,
	}
	if cfg.GeminiAPIKey != "" {
		suggester, err := suggest.NewGemini(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Initializing suggestion provider: %v", err)
		}
		h.Suggester = suggester
	}
	if cfg.YouTubeAPIKey != "" && cfg.YouTubeChannelID != "" {
		h.YouTube = youtube.NewClient(cfg.YouTubeAPIKey, cfg.YouTubeChannelID, cfg.YouTubeAccessToken)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))
	e.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		Skipper: func(c echo.Context) bool {
			// Reads are public; only API writes carry a token.
			if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodOptions {
				return true
			}
			return c.Path() == "/api/auth/login"
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
			}
			return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token")
		},
	}))

	// JSON API
	api := e.Group("/api")
	api.POST("/auth/login", h.Login)
	api.GET("/posts", h.GetPosts)
	api.GET("/posts/:id", h.GetPostByID)
	api.POST("/posts", h.CreatePost)
	api.PUT("/posts/:id", h.UpdatePost)
	api.DELETE("/posts/:id", h.DeletePost)
	api.GET("/health", h.Health)
	if h.Suggester != nil {
		api.POST("/ai/suggest", h.Suggest)
	}
	if h.YouTube != nil {
		api.GET("/youtube/stats", h.ChannelStats)
	}

	// Public pages
	w := web.NewHandler(s)
	e.GET("/", w.Home)
	e.GET("/posts/:id", w.ViewPost)
	e.Static("/static", "assets")

	e.HTTPErrorHandler = httpErrorHandler

	if cfg.Address != "" {
		e.Logger.Fatal(e.Start(cfg.Address))
	} else {
		// Cache certificates to avoid issues with rate limits (https://letsencrypt.org/docs/rate-limits)
		e.AutoTLSManager.Cache = autocert.DirCache("/var/www/.cache")
		if cfg.WhitelistHost != "" {
			e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(cfg.WhitelistHost)
		}
		e.Pre(middleware.HTTPSRedirect())
		e.Logger.Fatal(e.StartAutoTLS(":443"))
	}
}

// httpErrorHandler keeps the two surfaces apart: API paths answer with the
// JSON message shape, everything else gets an HTML error page.
func httpErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	if c.Response().Committed {
		return
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api") {
		if err := c.JSON(code, map[string]string{"message": message}); err != nil {
			c.Logger().Error(err)
		}
		return
	}
	if err := web.RenderError(c, code); err != nil {
		c.Logger().Error(err)
	}
}
