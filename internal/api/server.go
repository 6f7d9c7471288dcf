package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/qr-tracker/internal/logging"
	"github.com/qr-tracker/internal/models"
	"github.com/qr-tracker/internal/service"
)

// AuthService defines the authentication operations the API depends on
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (int64, error)
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)
}

// FolderService defines the folder operations the API depends on
type FolderService interface {
	Create(ctx context.Context, userID int64, name string) (*models.Folder, error)
	List(ctx context.Context, userID int64) ([]*models.Folder, error)
}

// QRCodeService defines the QR code operations the API depends on
type QRCodeService interface {
	Create(ctx context.Context, input *service.CreateQRCodeInput) (*models.QRCode, error)
	Get(ctx context.Context, id, userID int64) (*models.QRCode, error)
	List(ctx context.Context, userID int64) ([]*models.QRCode, error)
	Update(ctx context.Context, id, userID int64, input *service.UpdateQRCodeInput) (*models.QRCode, error)
	MoveToFolder(ctx context.Context, id, userID int64, folderID *int64) (*models.QRCode, error)
	Delete(ctx context.Context, id, userID int64) error
}

// ScanService defines the scan resolution operation the API depends on
type ScanService interface {
	Resolve(ctx context.Context, input *service.ResolveInput) (*service.Resolution, error)
}

// AnalyticsService defines the scan history operations the API depends on
type AnalyticsService interface {
	GetScans(ctx context.Context, qrID, userID int64) ([]*models.Scan, error)
	GetSummary(ctx context.Context, qrID, userID int64) (*service.ScanSummary, error)
}

// Server represents the HTTP API server
type Server struct {
	router    *mux.Router
	server    *http.Server
	logger    *logging.Logger
	authSvc   AuthService
	folderSvc FolderService
	qrSvc     QRCodeService
	scanSvc   ScanService
	statsSvc  AnalyticsService
}

// NewServer creates a new API server
func NewServer(
	host, port string,
	authSvc AuthService,
	folderSvc FolderService,
	qrSvc QRCodeService,
	scanSvc ScanService,
	statsSvc AnalyticsService,
) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		logger:    logging.GetGlobalLogger().WithField("component", "api"),
		authSvc:   authSvc,
		folderSvc: folderSvc,
		qrSvc:     qrSvc,
		scanSvc:   scanSvc,
		statsSvc:  statsSvc,
	}

	s.setupRoutes()
	s.setupMiddleware()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Public routes: account bootstrap and the scan endpoint that QR
	// codes in the wild point at. The scan route takes no credentials.
	public := s.router.PathPrefix("/api").Subrouter()
	public.HandleFunc("/auth/register", s.handleRegister).Methods("POST")
	public.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	public.HandleFunc("/qrcodes/{id}/scan", s.handleScan).Methods("GET")

	// Everything else requires a session.
	protected := s.router.PathPrefix("/api").Subrouter()
	protected.Use(s.requireAuth)
	protected.HandleFunc("/auth/logout", s.handleLogout).Methods("POST")
	protected.HandleFunc("/auth/me", s.handleMe).Methods("GET")
	protected.HandleFunc("/folders", s.handleCreateFolder).Methods("POST")
	protected.HandleFunc("/folders", s.handleListFolders).Methods("GET")
	protected.HandleFunc("/qrcodes", s.handleCreateQRCode).Methods("POST")
	protected.HandleFunc("/qrcodes", s.handleListQRCodes).Methods("GET")
	protected.HandleFunc("/qrcodes/{id}", s.handleGetQRCode).Methods("GET")
	protected.HandleFunc("/qrcodes/{id}", s.handleUpdateQRCode).Methods("PATCH")
	protected.HandleFunc("/qrcodes/{id}", s.handleDeleteQRCode).Methods("DELETE")
	protected.HandleFunc("/qrcodes/{id}/folder", s.handleMoveQRCode).Methods("PUT")
	protected.HandleFunc("/qrcodes/{id}/scans", s.handleListScans).Methods("GET")
	protected.HandleFunc("/qrcodes/{id}/scans/summary", s.handleScanSummary).Methods("GET")
}

// setupMiddleware configures middleware chain
func (s *Server) setupMiddleware() {
	s.router.Use(LoggingMiddleware)
	s.router.Use(RecoveryMiddleware)
	s.router.Use(CORSMiddleware)
	s.router.Use(CompressionMiddleware)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithField("addr", s.server.Addr).Info("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the configured handler, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// handleHealth returns service health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
