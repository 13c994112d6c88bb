package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/checklistia/checklistia/internal/ai"
	"github.com/checklistia/checklistia/internal/aisle"
	"github.com/checklistia/checklistia/internal/backup"
	"github.com/checklistia/checklistia/internal/handler"
	"github.com/checklistia/checklistia/internal/middleware"
	"github.com/checklistia/checklistia/internal/push"
	"github.com/checklistia/checklistia/internal/store"
	ws "github.com/checklistia/checklistia/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	authH         *handler.AuthHandler
	itemH         *handler.ItemHandler
	listH         *handler.ListHandler
	purchaseH     *handler.PurchaseHandler
	recipeH       *handler.RecipeHandler
	offerH        *handler.OfferHandler
	shareH        *handler.ShareHandler
	pushH         *handler.PushHandler
	backupH       *handler.BackupHandler
	sessionStore  *store.SessionStore
	userStore     *store.UserStore
	listStore     *store.ListStore
	pushStore     *store.PushStore
	rateLimiter   *middleware.RateLimiter
	backupManager *backup.Manager
	logger        *slog.Logger
}

func New(db *sql.DB, aiClient *ai.Client, backupCfg backup.Config, pushCfg push.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	listStore := store.NewListStore(db)
	itemStore := store.NewItemStore(db)
	purchaseStore := store.NewPurchaseStore(db)
	recipeStore := store.NewRecipeStore(db)
	offerStore := store.NewOfferStore(db)
	shareStore := store.NewShareStore(db)
	settingsStore := store.NewSettingsStore(db)
	pushStore := store.NewPushStore(db)
	backupStore := store.NewBackupStore(db)

	// The aisle assigner falls back to keyword matching when no
	// generative client is configured.
	var categorizer aisle.Categorizer
	if aiClient != nil {
		categorizer = aiClient
	}
	assigner := aisle.NewAssigner(categorizer, logger.With("component", "aisle"))

	var backupMgr *backup.Manager
	if backupCfg.S3.Bucket != "" {
		backupMgr = backup.NewManager(backupCfg, db, backupStore, settingsStore, func(s backup.Status) {
			hub.Broadcast(ws.Message{
				Type:   "backup_status",
				Entity: "backup",
				Action: string(s.State),
				Extra: map[string]any{
					"in_progress": s.InProgress,
					"error":       s.Error,
				},
			})
		}, logger.With("component", "backup"))
	}

	// The handler answers 503 on its own when no VAPID keys are set;
	// only the outbound notifier needs the configured service.
	var notifier *push.Notifier
	if pushCfg.VAPIDPublicKey != "" && pushCfg.VAPIDPrivateKey != "" {
		pushSvc := push.NewService(pushCfg.VAPIDPublicKey, pushCfg.VAPIDPrivateKey)
		notifier = push.NewNotifier(pushSvc, pushStore, listStore, logger.With("component", "push"))
	}
	pushH := handler.NewPushHandler(pushStore, pushCfg.VAPIDPublicKey, logger.With("component", "push_handler"))

	// A nil *ai.Client must stay nil as an interface value too.
	var synth handler.Synthesizer
	if aiClient != nil {
		synth = aiClient
	}

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(userStore, sessionStore, listStore, logger.With("component", "auth")),
		itemH:         handler.NewItemHandler(itemStore, listStore, purchaseStore, userStore, assigner, hub, logger.With("component", "item")),
		listH:         handler.NewListHandler(listStore, itemStore, hub, logger.With("component", "list")),
		purchaseH:     handler.NewPurchaseHandler(purchaseStore, itemStore, userStore, assigner, hub, notifier, logger.With("component", "purchase")),
		recipeH:       handler.NewRecipeHandler(recipeStore, itemStore, synth, hub, logger.With("component", "recipe")),
		offerH:        handler.NewOfferHandler(offerStore, logger.With("component", "offer")),
		shareH:        handler.NewShareHandler(shareStore, itemStore, userStore, hub, notifier, logger.With("component", "share")),
		pushH:         pushH,
		backupH:       handler.NewBackupHandler(backupMgr, backupStore, settingsStore, logger.With("component", "backup_handler")),
		sessionStore:  sessionStore,
		userStore:     userStore,
		listStore:     listStore,
		pushStore:     pushStore,
		rateLimiter:   middleware.NewRateLimiter(),
		backupManager: backupMgr,
		logger:        logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// BackupManager returns the backup manager, nil when not configured.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /api/shares/{token}", s.shareH.Get)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes behind RequireAuth
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.userStore, s.listStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/me", s.authH.Me)
	mux.HandleFunc("PUT /api/me", s.authH.UpdateMe)
	mux.HandleFunc("DELETE /api/me", s.authH.DeleteMe)

	// Active list
	mux.HandleFunc("GET /api/list", s.listH.Get)
	mux.HandleFunc("GET /api/list/totals", s.listH.Totals)
	mux.HandleFunc("PUT /api/list/budget", s.listH.SetBudget)

	// Items
	mux.HandleFunc("GET /api/items", s.itemH.List)
	mux.HandleFunc("POST /api/items", s.itemH.Create)
	mux.HandleFunc("PUT /api/items/{id}", s.itemH.Update)
	mux.HandleFunc("DELETE /api/items/{id}", s.itemH.Delete)
	mux.HandleFunc("POST /api/items/{id}/toggle", s.itemH.Toggle)
	mux.HandleFunc("GET /api/items/{id}/history", s.itemH.History)
	mux.HandleFunc("POST /api/items/import", s.itemH.Import)
	mux.HandleFunc("DELETE /api/items/recipe", s.itemH.DeleteRecipeGroup)
	mux.HandleFunc("GET /api/groups", s.itemH.Groups)

	// Purchases
	mux.HandleFunc("POST /api/purchases", s.purchaseH.Finalize)
	mux.HandleFunc("POST /api/list/discard", s.purchaseH.Discard)
	mux.HandleFunc("GET /api/purchases", s.purchaseH.List)
	mux.HandleFunc("GET /api/purchases/{id}", s.purchaseH.Get)
	mux.HandleFunc("DELETE /api/purchases/{id}", s.purchaseH.Delete)
	mux.HandleFunc("POST /api/purchases/{id}/repeat", s.purchaseH.Repeat)

	// Recipes
	mux.HandleFunc("GET /api/recipes", s.recipeH.List)
	mux.HandleFunc("GET /api/recipes/{id}", s.recipeH.Get)
	mux.HandleFunc("POST /api/recipes/synthesize", s.recipeH.Synthesize)
	mux.HandleFunc("POST /api/recipes/{id}/expand", s.recipeH.Expand)

	// Offers
	mux.HandleFunc("GET /api/offers", s.offerH.List)

	// Shares
	mux.HandleFunc("POST /api/shares", s.shareH.Create)
	mux.HandleFunc("POST /api/shares/{token}/merge", s.shareH.Merge)
	mux.HandleFunc("DELETE /api/shares/{token}", s.shareH.Delete)

	// Push notifications
	mux.HandleFunc("GET /api/push/vapid-key", s.pushH.VAPIDKey)
	mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
	mux.HandleFunc("GET /api/push/subscriptions", s.pushH.List)
	mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)

	// Admin routes
	adminMiddleware := middleware.RequireAdmin(s.logger.With("component", "admin"))
	admin := func(h http.HandlerFunc) http.Handler {
		return adminMiddleware(h)
	}
	mux.Handle("POST /api/recipes", admin(s.recipeH.Create))
	mux.Handle("DELETE /api/recipes/{id}", admin(s.recipeH.Delete))
	mux.Handle("POST /api/recipes/populate", admin(s.recipeH.Populate))
	mux.Handle("POST /api/offers", admin(s.offerH.Create))
	mux.Handle("PUT /api/offers/{id}", admin(s.offerH.Update))
	mux.Handle("DELETE /api/offers/{id}", admin(s.offerH.Delete))
	mux.Handle("GET /api/backups", admin(s.backupH.List))
	mux.Handle("GET /api/backups/status", admin(s.backupH.Status))
	mux.Handle("POST /api/backups/run", admin(s.backupH.RunNow))
	mux.Handle("GET /api/backups/{id}/download", admin(s.backupH.Download))
	mux.Handle("GET /api/backups/settings", admin(s.backupH.GetSettings))
	mux.Handle("PUT /api/backups/settings", admin(s.backupH.UpdateSettings))

	// Live updates
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
}
