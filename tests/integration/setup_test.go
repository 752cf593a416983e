package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskdeck/internal/config"
	"taskdeck/internal/handlers"
	"taskdeck/internal/logger"
	"taskdeck/internal/middleware"
	"taskdeck/internal/models"
	"taskdeck/internal/services"
	"taskdeck/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Config *config.Config
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Session{},
		&models.Category{},
		&models.Task{},
		&models.Option{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite, wired the same way as the server entrypoint.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	cfg := &config.Config{
		Port:              "8080",
		Env:               "test",
		SessionCookieName: "taskdeck_session",
		SessionTTL:        time.Hour,
		LoginURL:          "/login",
		AllowedOrigins:    []string{"http://localhost:5173"},
	}

	// Services
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(db, cfg.SessionTTL)
	taskService := services.NewTaskService(db)
	categoryService := services.NewCategoryService(db)
	optionService := services.NewOptionService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, sessionService, cfg)
	taskHandler := handlers.NewTaskHandler(taskService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	optionHandler := handlers.NewOptionHandler(optionService)
	userHandler := handlers.NewUserHandler(userService)

	// Router
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg))

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"status": "error", "message": "Method Not Allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Not found"})
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	protected := api.Group("/")
	protected.Use(middleware.RequireSession(sessionService, cfg))

	protected.GET("/auth/me", authHandler.Me)

	tasks := protected.Group("/tasks")
	tasks.GET("", taskHandler.List)
	tasks.POST("/create", taskHandler.Create)
	tasks.POST("/update", taskHandler.Update)
	tasks.POST("/delete", taskHandler.Delete)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/detail", categoryHandler.Detail)
	categories.POST("/create", categoryHandler.Create)
	categories.POST("/update", categoryHandler.Update)
	categories.POST("/delete", categoryHandler.Delete)

	options := protected.Group("/options")
	options.GET("", optionHandler.Get)
	options.POST("/update", optionHandler.Update)

	users := protected.Group("/users")
	users.POST("/update", userHandler.Update)

	return &testApp{DB: db, Router: router, Config: cfg}
}

// request makes an HTTP request to the test router with an optional session
// cookie and returns the recorder.
func (app *testApp) request(method, path, body, session string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: app.Config.SessionCookieName, Value: session})
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// jsonNumber formats a decoded JSON number back into an integer literal for
// request bodies.
func jsonNumber(v float64) string {
	return strconv.FormatInt(int64(v), 10)
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// sessionCookie extracts the session cookie value from a response.
func (app *testApp) sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == app.Config.SessionCookieName {
			return cookie.Value
		}
	}
	t.Fatalf("no %s cookie in response", app.Config.SessionCookieName)
	return ""
}

// registerUser registers a new user account.
func (app *testApp) registerUser(t *testing.T, email, password string) {
	t.Helper()
	body := fmt.Sprintf(`{"firstName":"Test","lastName":"User","email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
}

// loginUser logs in and returns the session cookie value.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return app.sessionCookie(t, rec)
}

// newSession registers a fresh user and logs them in.
func (app *testApp) newSession(t *testing.T, email string) string {
	t.Helper()
	app.registerUser(t, email, "password123")
	return app.loginUser(t, email, "password123")
}
