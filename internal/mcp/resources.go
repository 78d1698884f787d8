// ABOUTME: MCP resource implementations for the training pipeline.
// ABOUTME: Provides the train://metrics dictionary resource.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mediulus/train-together/internal/models"
)

func (s *Server) registerResources() {
	// train://metrics - the tracked metric dictionary
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "train://metrics",
		Name:        "Tracked Metrics",
		Description: "The closed set of tracked training metrics with units",
		MIMEType:    "application/json",
	}, s.handleMetricsResource)
}

func (s *Server) handleMetricsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	type metricInfo struct {
		Name string `json:"name"`
		Unit string `json:"unit"`
	}

	infos := make([]metricInfo, 0, len(models.AllMetrics))
	for _, m := range models.AllMetrics {
		infos = append(infos, metricInfo{Name: string(m), Unit: models.MetricUnits[m]})
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal metrics: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "train://metrics",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
