package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"restorer-go/internal/config"
	"restorer-go/internal/model/restorer"
	"restorer-go/internal/parallel"
	"restorer-go/internal/service"
)

// RestoreController exposes the space restorer over HTTP
type RestoreController struct {
	svc         *service.RestorerService
	persistence *service.Persistence
	cfg         *config.Config
	logger      *zap.Logger
}

func NewRestoreController(svc *service.RestorerService, persistence *service.Persistence, cfg *config.Config, logger *zap.Logger) *RestoreController {
	return &RestoreController{
		svc:         svc,
		persistence: persistence,
		cfg:         cfg,
		logger:      logger,
	}
}

// Service returns the service currently backing the controller
func (rc *RestoreController) Service() *service.RestorerService {
	return rc.svc
}

type TrainRequest struct {
	Documents       []string `json:"documents" binding:"required"`
	MaxOrder        int      `json:"max_order"`
	CaseFold        *bool    `json:"case_fold"`
	UnknownFunction string   `json:"unknown_function"`
}

func (rc *RestoreController) Train(c *gin.Context) {
	var request TrainRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		rc.logger.Error("Invalid request payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	opts := service.TrainOptions{
		MaxOrder:        request.MaxOrder,
		CaseFold:        rc.cfg.Model.CaseFold,
		UnknownFunction: request.UnknownFunction,
	}
	if opts.MaxOrder == 0 {
		opts.MaxOrder = rc.cfg.Model.MaxOrder
	}
	if request.CaseFold != nil {
		opts.CaseFold = *request.CaseFold
	}
	if opts.UnknownFunction == "" {
		opts.UnknownFunction = rc.cfg.Model.UnknownFunction
	}

	rc.logger.Info("Training model",
		zap.Int("documents", len(request.Documents)),
		zap.Int("max_order", opts.MaxOrder))

	if err := rc.svc.Train(request.Documents, opts); err != nil {
		rc.fail(c, "Failed to train model", err)
		return
	}

	stats, err := rc.svc.Stats()
	if err != nil {
		rc.fail(c, "Failed to read model statistics", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type RestoreRequest struct {
	Texts  []string `json:"texts" binding:"required"`
	L      int      `json:"l"`
	Lambda float64  `json:"lambda"`
}

type RestoreResponse struct {
	Restored []string `json:"restored"`
}

func (rc *RestoreController) Restore(c *gin.Context) {
	var request RestoreRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		rc.logger.Error("Invalid request payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	var (
		restored []string
		err      error
	)
	if request.L != 0 || request.Lambda != 0 {
		// Per-call override; the active hyperparameters stay untouched.
		hp := rc.svc.Hyperparams()
		if request.L != 0 {
			hp.L = request.L
		}
		if request.Lambda != 0 {
			hp.Lambda = request.Lambda
		}
		restored = make([]string, len(request.Texts))
		for i, text := range request.Texts {
			restored[i], err = rc.svc.RestoreWith(text, hp)
			if err != nil {
				break
			}
		}
	} else {
		restored, err = rc.svc.RestoreBatch(request.Texts)
	}
	if err != nil {
		rc.fail(c, "Failed to restore spaces", err)
		return
	}
	c.JSON(http.StatusOK, RestoreResponse{Restored: restored})
}

type GridSearchRequest struct {
	Name         string    `json:"name" binding:"required"`
	LValues      []int     `json:"l_values" binding:"required"`
	LambdaValues []float64 `json:"lambda_values" binding:"required"`
	Ref          []string  `json:"ref" binding:"required"`
	Input        []string  `json:"input" binding:"required"`
}

func (rc *RestoreController) AddGridSearch(c *gin.Context) {
	var request GridSearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		rc.logger.Error("Invalid request payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	search, err := rc.svc.AddGridSearchWithOptions(
		request.Name, request.LValues, request.LambdaValues,
		request.Ref, request.Input,
		service.GridSearchOptions{Beta: rc.cfg.GridSearch.Beta, Parallel: ptr(parallel.DefaultConfig())},
	)
	if err != nil {
		rc.fail(c, "Grid search failed", err)
		return
	}
	c.JSON(http.StatusOK, search)
}

type LoadGridSearchRequest struct {
	Name string `json:"name" binding:"required"`
}

func (rc *RestoreController) LoadGridSearch(c *gin.Context) {
	var request LoadGridSearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	if err := rc.svc.LoadGridSearch(request.Name); err != nil {
		rc.fail(c, "Failed to select grid search", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"current": request.Name})
}

type OptimalParamsRequest struct {
	Metric    string `json:"metric" binding:"required"`
	Direction string `json:"direction" binding:"required"`
}

func (rc *RestoreController) ShowOptimalParams(c *gin.Context) {
	var request OptimalParamsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	row, err := rc.svc.ShowOptimalParams(request.Metric, request.Direction)
	if err != nil {
		rc.fail(c, "Failed to find optimal parameters", err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (rc *RestoreController) SetOptimalParams(c *gin.Context) {
	var request OptimalParamsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	if err := rc.svc.SetOptimalParams(request.Metric, request.Direction); err != nil {
		rc.fail(c, "Failed to set optimal parameters", err)
		return
	}
	c.JSON(http.StatusOK, rc.svc.Hyperparams())
}

func (rc *RestoreController) Stats(c *gin.Context) {
	stats, err := rc.svc.Stats()
	if err != nil {
		rc.fail(c, "Failed to read model statistics", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"model":         stats,
		"hyperparams":   rc.svc.Hyperparams(),
		"grid_searches": rc.svc.GridSearchNames(),
	})
}

type SaveModelRequest struct {
	Name string `json:"name" binding:"required"`
}

func (rc *RestoreController) SaveModel(c *gin.Context) {
	var request SaveModelRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	if err := rc.persistence.Save(rc.svc, request.Name); err != nil {
		rc.fail(c, "Failed to save model", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": rc.persistence.ModelPath(request.Name)})
}

// fail maps the error taxonomy to HTTP status codes: contract violations are
// client errors, missing model state is a conflict, the rest is internal.
func (rc *RestoreController) fail(c *gin.Context, message string, err error) {
	rc.logger.Error(message, zap.Error(err))
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, restorer.ErrConfiguration), errors.Is(err, restorer.ErrShapeMismatch):
		status = http.StatusBadRequest
	case errors.Is(err, restorer.ErrEmptyModel), errors.Is(err, restorer.ErrNoGridSearchSelected):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

func ptr[T any](v T) *T { return &v }
