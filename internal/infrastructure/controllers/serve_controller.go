package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/updaterisk/internal/domain/commands"
	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

var githubURLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/[^/]+/[^/]+`)

// analyzeRequest is the POST /api/analyze payload.
type analyzeRequest struct {
	RepoURL  string `json:"repoUrl" binding:"required"`
	Branch   string `json:"branch"`
	Mode     string `json:"mode"`
	UseCache *bool  `json:"useCache"`
}

// ServeController handles the "serve" subcommand (HTTP API mode).
type ServeController struct {
	command  commands.Analyze
	settings *entities.Settings
	cache    *resultCache
}

// NewServeController creates a new ServeController.
func NewServeController(command commands.Analyze, settings *entities.Settings) *ServeController {
	ttl := time.Duration(settings.Server.CacheTTLMinutes) * time.Minute
	return &ServeController{
		command:  command,
		settings: settings,
		cache:    newResultCache(ttl),
	}
}

// GetBind returns the Cobra command metadata for the serve controller.
func (it *ServeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "serve",
		Short: "Run the analysis engine as an HTTP API",
		Long: `Expose the analysis pipeline over HTTP.

POST /api/analyze accepts {"repoUrl": "...", "branch": "...", "mode": "..."}
and returns the per-dependency report with the aggregated summary.
Results are cached per repository and branch for a configurable TTL.`,
	}
}

// Execute starts the HTTP server and shuts it down when the command
// context is cancelled.
func (it *ServeController) Execute(cmd *cobra.Command, _ []string) {
	port := it.settings.Server.Port
	if flagPort, err := cmd.Flags().GetInt("port"); err == nil && flagPort != 0 {
		port = flagPort
	}

	//nolint:exhaustruct // Minimal Server initialization with required fields only
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           it.BuildRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-cmd.Context().Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("Server shutdown: %v", err)
		}
	}()

	logger.Infof("Listening on :%d", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("Server stopped: %v", err)
	}
}

// AddFlags adds the serve-specific flags to the given Cobra command.
func (it *ServeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Int("port", 0, "Port to listen on (overrides the configured port)")
}

// BuildRouter assembles the Gin engine with all API routes.
func (it *ServeController) BuildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/api/analyze", it.handleAnalyze)

	return router
}

func (it *ServeController) handleAnalyze(c *gin.Context) {
	var request analyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "repoUrl is required"})
		return
	}
	if !githubURLPattern.MatchString(request.RepoURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "repoUrl must be a GitHub repository URL"})
		return
	}

	mode, err := commands.ParseAnalysisMode(request.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	useCache := request.UseCache == nil || *request.UseCache
	cacheKey := request.RepoURL + ":" + request.Branch

	runID := uuid.NewString()
	logger.Infof("[%s] Analyzing %s", runID, request.RepoURL)

	if useCache {
		if entry, found := it.cache.get(cacheKey); found {
			logger.Infof("[%s] Serving cached result", runID)
			c.JSON(http.StatusOK, gin.H{
				"runId":        runID,
				"cached":       true,
				"dependencies": entry.items,
				"summary":      entry.summary,
			})
			return
		}
	}

	items, err := it.command.Execute(c.Request.Context(), commands.AnalyzeOptions{
		RepoURL: request.RepoURL,
		Branch:  request.Branch,
		Mode:    mode,
	})
	if err != nil {
		logger.Errorf("[%s] Analysis failed: %v", runID, err)
		if errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "analysis timed out"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	summary := entities.AggregateRisk(items)
	it.cache.put(cacheKey, items, summary)

	c.JSON(http.StatusOK, gin.H{
		"runId":        runID,
		"cached":       false,
		"dependencies": items,
		"summary":      summary,
	})
}
