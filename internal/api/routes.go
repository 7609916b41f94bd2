package api

import (
	"fmt"                         // Error wrapping
	"islands/internal/config"     // Application configuration
	"islands/internal/middleware" // Session and user middleware
	"islands/internal/service"    // Account and island operations
	"islands/internal/storage"    // Image file store
	"islands/internal/validation" // Binding rules
	"islands/web"                 // Embedded views
	"net/http"                    // HTTP status codes
	"os"                          // File lookup for static serving
	"path"                        // URL path cleanup
	"path/filepath"               // Filesystem paths

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Deps are the collaborators shared by every handler
type Deps struct {
	Config  *config.Config      // Application configuration
	DB      *gorm.DB            // Database handle
	Redis   *redis.Client       // Optional cache, nil disables caching
	Session *middleware.Session // Session cookie handling
}

// NewRouter builds the gin engine with views, public routes, authenticated routes
// and static file serving.
func NewRouter(d Deps) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, fmt.Errorf("validation rules: %w", err)
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.Default() // Gin router instance
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	accounts := service.NewAccounts(d.DB)
	islands := service.NewIslands(d.DB, storage.NewImages(d.Config.PublicDir))

	// Public routes
	r.GET("/", IndexHandler())                            // Landing page
	r.GET("/signup", ShowSignupHandler())                 // Signup form
	r.GET("/login", ShowLoginHandler())                   // Login form
	r.POST("/signup", SignupHandler(accounts, d.Session)) // Create account
	r.POST("/login", LoginHandler(accounts, d.Session))   // Authenticate

	// Authenticated routes
	auth := r.Group("")
	auth.Use(d.Session.RequireAuth(), middleware.LoadUser(d.DB, d.Session))
	auth.GET("/settings", ShowSettingsHandler())                                          // Show settings
	auth.POST("/settings", UpdateSettingsHandler(accounts))                               // Update settings
	auth.POST("/delete", DeleteAccountHandler(accounts, d.Session))                       // Delete account
	auth.GET("/logout", LogoutHandler(d.Session))                                         // Clear session
	auth.GET("/dashboard", ShowDashboardHandler(islands, d.Redis, d.Config.GoogleAPIKey)) // List islands
	auth.GET("/create", ShowCreateHandler(islands))                                       // Add island form
	auth.POST("/create", CreateIslandHandler(islands, d.Redis))                           // Create island
	auth.GET("/edit/:id", ShowEditHandler(islands))                                       // Edit island form
	auth.POST("/edit", UpdateIslandHandler(islands, d.Redis))                             // Update island
	auth.POST("/delete/:id", DeleteIslandHandler(islands, d.Redis))                       // Delete island

	r.NoRoute(StaticHandler(d.Config.PublicDir)) // Everything else is a static file
	return r, nil
}

// StaticHandler serves regular files below publicDir. Directories and missing
// files fall through to the default 404.
func StaticHandler(publicDir string) gin.HandlerFunc {
	files := http.FileServer(gin.Dir(publicDir, false))
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			return
		}
		name := filepath.Join(publicDir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
		info, err := os.Stat(name)
		if err != nil || info.IsDir() {
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}
