package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/taskplatform/task-platform-api/internal/database"
	"github.com/taskplatform/task-platform-api/internal/middleware"
	"github.com/taskplatform/task-platform-api/internal/models"
	"github.com/taskplatform/task-platform-api/internal/notify"
	"github.com/taskplatform/task-platform-api/internal/repository"
	"github.com/taskplatform/task-platform-api/internal/services"
	"github.com/taskplatform/task-platform-api/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

// recordingNotifier captures enqueued assignments instead of sending mail.
type recordingNotifier struct {
	sent []notify.Assignment
}

func (n *recordingNotifier) Enqueue(a notify.Assignment) {
	n.sent = append(n.sent, a)
}

type testEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	notifier *recordingNotifier

	authService *services.AuthService
	userRepo    repository.UserRepository
	taskRepo    repository.TaskRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Comment{},
		&models.File{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	fileRepo := repository.NewFileRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	localStore, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	notifier := &recordingNotifier{}

	authService := services.NewAuthService(userRepo, testJWTSecret, time.Hour)
	taskService := services.NewTaskService(taskRepo, userRepo, notifier)
	commentService := services.NewCommentService(commentRepo, taskRepo)
	fileService := services.NewFileService(fileRepo, taskRepo, localStore, nil)
	userService := services.NewUserService(userRepo)
	analyticsService := services.NewAnalyticsService(analyticsRepo)

	authHandler := NewAuthHandler(authService)
	taskHandler := NewTaskHandler(taskService)
	commentHandler := NewCommentHandler(commentService)
	fileHandler := NewFileHandler(fileService)
	userHandler := NewUserHandler(userService)
	analyticsHandler := NewAnalyticsHandler(analyticsService)

	r := gin.New()
	auth := r.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.RequireAuth(testJWTSecret), authHandler.Me)

	protected := r.Group("/api")
	protected.Use(middleware.RequireAuth(testJWTSecret))
	protected.GET("/tasks", taskHandler.List)
	protected.POST("/tasks", taskHandler.Create)
	protected.POST("/tasks/bulk", taskHandler.BulkCreate)
	protected.GET("/tasks/:id", taskHandler.Get)
	protected.GET("/tasks/:id/full", taskHandler.GetFull)
	protected.PUT("/tasks/:id", taskHandler.Update)
	protected.DELETE("/tasks/:id", taskHandler.Delete)
	protected.POST("/comments", commentHandler.Create)
	protected.GET("/comments/task/:taskId", commentHandler.ListByTask)
	protected.PUT("/comments/:id", commentHandler.Update)
	protected.DELETE("/comments/:id", commentHandler.Delete)
	protected.POST("/files/upload", fileHandler.Upload)
	protected.GET("/files/task/:taskId", fileHandler.ListByTask)
	protected.GET("/files/:id/url", fileHandler.GetURL)
	protected.GET("/files/:id/download", fileHandler.Download)
	protected.DELETE("/files/:id", fileHandler.Delete)
	protected.GET("/users", userHandler.List)
	protected.PATCH("/users/:id/role", userHandler.UpdateRole)
	protected.GET("/analytics/summary", analyticsHandler.Summary)
	protected.GET("/analytics/trends", analyticsHandler.Trends)
	protected.GET("/analytics/export", analyticsHandler.Export)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return &testEnv{
		db:          db,
		router:      r,
		notifier:    notifier,
		authService: authService,
		userRepo:    userRepo,
		taskRepo:    taskRepo,
	}
}

// createUser registers a user directly and returns it with a bearer token.
func (env *testEnv) createUser(t *testing.T, name string, role models.Role) (*models.User, string) {
	t.Helper()
	user, token, err := env.authService.Register(services.RegisterInput{
		Name:     name,
		Email:    name + "@example.com",
		Password: "password123",
		Role:     role,
	})
	require.NoError(t, err)
	return user, token
}

// createTask stores a task directly through the repository.
func (env *testEnv) createTask(t *testing.T, creatorID uuid.UUID, title string, assigneeIDs ...uuid.UUID) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:     title,
		Status:    models.TaskStatusTodo,
		Priority:  models.TaskPriorityMedium,
		CreatorID: creatorID,
	}
	for _, id := range assigneeIDs {
		task.Assignments = append(task.Assignments, models.TaskAssignment{UserID: id})
	}
	require.NoError(t, env.taskRepo.Create(task))
	return task
}

func (env *testEnv) request(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Meta    *struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Pages int   `json:"pages"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, out))
}
