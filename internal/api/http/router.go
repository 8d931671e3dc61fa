package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mind-engage/spellquest/internal/auth"
	authmw "github.com/mind-engage/spellquest/internal/auth/middleware"
	"github.com/mind-engage/spellquest/internal/content"
	"github.com/mind-engage/spellquest/internal/grading"
	"github.com/mind-engage/spellquest/internal/observe"
	"github.com/mind-engage/spellquest/internal/rbac"
	"github.com/mind-engage/spellquest/internal/session"
	"github.com/mind-engage/spellquest/internal/stats"
	"github.com/mind-engage/spellquest/internal/storage"
	"github.com/mind-engage/spellquest/internal/words"
)

// Deps is everything the HTTP surface needs. Metrics and MetricsHandler may
// be nil.
type Deps struct {
	Words    words.Store
	Stats    stats.Store
	Sessions *session.Manager
	Content  *content.Service
	Eval     grading.Evaluator
	Blobs    storage.BlobStore
	Auth     *authmw.AuthService
	Pins     *auth.PinService

	Metrics        *observe.Metrics
	MetricsHandler http.Handler

	CORSOrigins  []string
	WordsPerGame int
	Timeout      time.Duration
}

func NewRouter(d Deps) http.Handler {
	if d.Timeout <= 0 {
		d.Timeout = 60 * time.Second
	}
	if d.WordsPerGame <= 0 {
		d.WordsPerGame = 10
	}
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(d.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(observe.Middleware(d.Metrics))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	if d.MetricsHandler != nil {
		r.Handle("/metrics", d.MetricsHandler)
	}

	r.Post("/auth/pin", auth.PinLoginHandler(d.Auth, d.Pins))
	r.Post("/evaluate", EvaluateHandler(d.Eval, d.Metrics))
	r.Route("/assets", func(ar chi.Router) {
		MountAssets(ar, d.Blobs)
	})

	// Learner flow is open; the device is shared with the tutor.
	r.Route("/play", func(pr chi.Router) {
		pr.Post("/sessions", StartSessionHandler(d.Sessions, d.WordsPerGame))
		pr.Get("/sessions/{id}", GetSessionHandler(d.Sessions))
		pr.Post("/sessions/{id}/answers", SubmitAnswerHandler(d.Sessions))
		pr.Post("/sessions/{id}/skip", SessionActionHandler(d.Sessions.Skip))
		pr.Post("/sessions/{id}/previous", SessionActionHandler(d.Sessions.Previous))
		pr.Post("/sessions/{id}/finish", SessionActionHandler(d.Sessions.Finish))
		pr.Get("/words/{id}/content", WordContentHandler(d.Words, d.Content))
	})

	// Tutor API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(d.Auth))

		pr.With(rbac.Require(rbac.PermPinChange)).
			Post("/auth/pin/change", auth.ChangePinHandler(d.Pins))

		pr.With(rbac.Require(rbac.PermWordsView)).
			Get("/words", ListWordsHandler(d.Words))
		pr.With(rbac.Require(rbac.PermWordsView)).
			Get("/words/{id}", GetWordHandler(d.Words))
		pr.With(rbac.Require(rbac.PermWordsEdit)).
			Post("/words", CreateWordHandler(d.Words))
		pr.With(rbac.Require(rbac.PermWordsEdit)).
			Patch("/words/{id}", UpdateWordHandler(d.Words))
		pr.With(rbac.Require(rbac.PermWordsEdit)).
			Delete("/words/{id}", DeleteWordHandler(d.Words))
		pr.With(rbac.Require(rbac.PermWordsEdit)).
			Post("/words/{id}/image", UploadWordImageHandler(d.Words, d.Blobs))
		pr.With(rbac.Require(rbac.PermWordsImport)).
			Post("/words/import", ImportWordsHandler(d.Words))

		pr.With(rbac.Require(rbac.PermStatsView)).
			Get("/stats", StatsSummaryHandler(d.Stats))
		pr.With(rbac.Require(rbac.PermStatsView)).
			Get("/stats/attempts", ListAttemptsHandler(d.Stats))
		pr.With(rbac.Require(rbac.PermStatsClear)).
			Delete("/stats", ClearStatsHandler(d.Stats))

		pr.With(rbac.Require(rbac.PermContentMake)).
			Post("/content/image", GenerateImageHandler(d.Content))
		pr.With(rbac.Require(rbac.PermContentMake)).
			Post("/content/translate", TranslateHandler(d.Content))
		pr.With(rbac.Require(rbac.PermContentMake)).
			Post("/content/sentence", GenerateSentenceHandler(d.Content))
	})

	return r
}
