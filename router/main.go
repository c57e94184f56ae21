package router

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/edugenai/paper-analyzer/database"
	"github.com/edugenai/paper-analyzer/handlers"
	frequency_handlers "github.com/edugenai/paper-analyzer/handlers/frequency"
	mocktest_handlers "github.com/edugenai/paper-analyzer/handlers/mocktest"
	paper_handlers "github.com/edugenai/paper-analyzer/handlers/paper"
	question_handlers "github.com/edugenai/paper-analyzer/handlers/question"
	subject_handlers "github.com/edugenai/paper-analyzer/handlers/subject"
	"github.com/edugenai/paper-analyzer/services"
	"github.com/edugenai/paper-analyzer/utils/cache"
)

// Services bundles the wired service layer so the app can share it with the
// cron manager.
type Services struct {
	Subjects  *services.SubjectService
	Papers    *services.PaperService
	Questions *services.QuestionService
	Frequency *services.FrequencyService
	TestGen   *services.TestGenService
	Cache     *cache.RedisCache
}

// BuildServices wires the service layer against the store
func BuildServices(store database.Storage) (*Services, error) {
	db := store.GetDB()

	// Redis is optional: a missing cache degrades report reads to
	// recomputation instead of failing startup.
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Report caching disabled.", err)
		redisCache = nil
	}

	frequencyService, err := services.NewFrequencyService(db, redisCache)
	if err != nil {
		return nil, err
	}
	testGenService, err := services.NewTestGenService(db, frequencyService)
	if err != nil {
		return nil, err
	}

	return &Services{
		Subjects:  services.NewSubjectService(db),
		Papers:    services.NewPaperService(db),
		Questions: services.NewQuestionService(db),
		Frequency: frequencyService,
		TestGen:   testGenService,
		Cache:     redisCache,
	}, nil
}

// SetupRoutes registers all HTTP routes
func SetupRoutes(app *fiber.App, store database.Storage, svcs *Services) {
	healthHandler := handlers.NewHealthHandler(store, svcs.Cache)
	subjectHandler := subject_handlers.NewSubjectHandler(svcs.Subjects)
	paperHandler := paper_handlers.NewPaperHandler(svcs.Papers, svcs.Frequency)
	questionHandler := question_handlers.NewQuestionHandler(svcs.Questions, svcs.Frequency)
	frequencyHandler := frequency_handlers.NewFrequencyHandler(svcs.Frequency)
	testHandler := mocktest_handlers.NewTestHandler(svcs.TestGen)

	// Health check endpoint (public)
	app.Get("/ping", healthHandler.Check)

	// API v1 group
	api := app.Group("/api/v1")

	// Subject routes
	subjects := api.Group("/subjects")
	subjects.Post("/", subjectHandler.CreateSubject)
	subjects.Get("/", subjectHandler.ListSubjects)
	subjects.Get("/:subject_id", subjectHandler.GetSubject)
	subjects.Patch("/:subject_id", subjectHandler.UpdateSubject)
	subjects.Delete("/:subject_id", subjectHandler.DeleteSubject)

	// Paper ingestion routes
	subjects.Post("/:subject_id/papers", paperHandler.UploadPaper)
	subjects.Get("/:subject_id/papers", paperHandler.ListPapers)
	api.Get("/papers/:document_uid", paperHandler.GetPaper)
	api.Delete("/papers/:document_uid", paperHandler.DeletePaper)

	// Question bank routes
	subjects.Get("/:subject_id/questions", questionHandler.ListQuestions)
	subjects.Post("/:subject_id/questions", questionHandler.AddQuestion)
	api.Patch("/questions/:question_id/review", questionHandler.ReviewQuestion)
	api.Delete("/questions/:question_id", questionHandler.DeleteQuestion)

	// Frequency analysis routes
	subjects.Get("/:subject_id/frequency", frequencyHandler.GetReport)
	subjects.Get("/:subject_id/frequency/history", frequencyHandler.ListSnapshots)

	// Mock test routes
	subjects.Post("/:subject_id/tests", testHandler.GenerateTest)
	subjects.Get("/:subject_id/tests", testHandler.ListTests)
	api.Get("/tests/:test_uid", testHandler.GetTest)

	log.Println("Routes registered")
}
