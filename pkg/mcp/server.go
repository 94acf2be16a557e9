package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"restorer-go/internal/config"
	"restorer-go/internal/model/restorer"
	"restorer-go/internal/service"
	"restorer-go/pkg/tamil"
)

// RestorerServer exposes the space restorer as MCP tools
type RestorerServer struct {
	server  *mcp.Server
	svc     *service.RestorerService
	config  *config.Config
	logger  *zap.Logger
	handler *mcp.StreamableHTTPHandler
}

type RestoreSpacesParams struct {
	Text   string  `json:"text" jsonschema:"the unsegmented text to restore spaces to"`
	Tamil  bool    `json:"tamil,omitempty" jsonschema:"whether the text is Tamil script that needs remapping"`
	L      int     `json:"l,omitempty" jsonschema:"maximum candidate word length, overrides the active value"`
	Lambda float64 `json:"lambda,omitempty" jsonschema:"unknown-word smoothing weight, overrides the active value"`
}

type OptimalParamsParams struct {
	Metric    string `json:"metric" jsonschema:"the metric to optimize: precision, recall or f_score"`
	Direction string `json:"direction" jsonschema:"minimize or maximize"`
}

func NewRestorerServer(svc *service.RestorerService, cfg *config.Config, logger *zap.Logger) *RestorerServer {
	server := &RestorerServer{
		svc:    svc,
		config: cfg,
		logger: logger,
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "SpaceRestorer",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "restoreSpaces",
		Description: "Restore word boundaries to an unsegmented text using the trained statistical model. Returns the text with spaces restored",
	}, server.handleRestoreSpaces)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "showOptimalParams",
		Description: "Show the best hyperparameter combination of the current grid search for a given metric and direction",
	}, server.handleShowOptimalParams)

	server.handler = mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	server.server = mcpServer
	return server
}

func (s *RestorerServer) handleRestoreSpaces(ctx context.Context, req *mcp.CallToolRequest, args RestoreSpacesParams) (*mcp.CallToolResult, any, error) {
	s.logger.Info("Handling restoreSpaces request",
		zap.Int("chars", len(args.Text)),
		zap.Bool("tamil", args.Tamil))

	text := args.Text
	if args.Tamil {
		text = tamil.Map(text)
	}

	var (
		restored string
		err      error
	)
	if args.L != 0 || args.Lambda != 0 {
		hp := s.svc.Hyperparams()
		if args.L != 0 {
			hp.L = args.L
		}
		if args.Lambda != 0 {
			hp.Lambda = args.Lambda
		}
		restored, err = s.svc.RestoreWith(text, hp)
	} else {
		restored, err = s.svc.Restore(text)
	}
	if err != nil {
		s.logger.Error("Failed to restore spaces", zap.Error(err))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Failed to restore spaces: %v", err)}},
		}, nil, nil
	}

	if args.Tamil {
		restored = tamil.Unmap(restored)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: restored}},
	}, nil, nil
}

func (s *RestorerServer) handleShowOptimalParams(ctx context.Context, req *mcp.CallToolRequest, args OptimalParamsParams) (*mcp.CallToolResult, any, error) {
	s.logger.Info("Handling showOptimalParams request",
		zap.String("metric", args.Metric),
		zap.String("direction", args.Direction))

	row, err := s.svc.ShowOptimalParams(args.Metric, args.Direction)
	if err != nil {
		s.logger.Error("Failed to find optimal parameters", zap.Error(err))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Failed to find optimal parameters: %v", err)}},
		}, nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: formatRow(row)}},
	}, nil, nil
}

func formatRow(row restorer.GridRow) string {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Sprintf("L=%d lambda=%g precision=%.4f recall=%.4f f_score=%.4f",
			row.L, row.Lambda, row.Precision, row.Recall, row.FScore)
	}
	return string(data)
}

func (s *RestorerServer) SetupHTTPRoutes(router *gin.Engine) {
	go func() {
		address := s.config.GetMcpAddress()
		log.Printf("MCP Server going to listen on %s", address)
		if err := http.ListenAndServe(address, s.handler); err != nil {
			log.Fatalf("MCP Server failed: %v", err)
		}
	}()
}
