package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bxxf/flight-schema/internal/config"
	"github.com/bxxf/flight-schema/internal/mapper"
	"go.uber.org/zap"
)

type DiscordService struct {
	logger     *zap.Logger
	client     *http.Client
	webhookURL string
}

func NewDiscordService(logger *zap.Logger, config config.Config) *DiscordService {
	return &DiscordService{
		logger:     logger,
		client:     &http.Client{Timeout: 10 * time.Second},
		webhookURL: config.WebhookURL,
	}
}

// NotifyDrift posts an embed describing a stored capture that no longer
// decodes. It is a no-op when no webhook is configured.
func (s *DiscordService) NotifyDrift(ctx context.Context, key string, cause error) error {
	if s.webhookURL == "" {
		return nil
	}

	fields := []map[string]interface{}{
		{
			"name":   "Capture",
			"value":  key,
			"inline": false,
		},
	}

	var schemaErr *mapper.SchemaError
	var syntaxErr *mapper.SyntaxError
	switch {
	case errors.As(cause, &schemaErr):
		path := schemaErr.Path
		if path == "" {
			path = "(root)"
		}
		fields = append(fields,
			map[string]interface{}{"name": "Path", "value": path, "inline": false},
			map[string]interface{}{"name": "Expected", "value": schemaErr.Expected, "inline": true},
			map[string]interface{}{"name": "Actual", "value": schemaErr.Actual, "inline": true},
		)
	case errors.As(cause, &syntaxErr):
		fields = append(fields,
			map[string]interface{}{"name": "Offset", "value": fmt.Sprintf("%d", syntaxErr.Offset), "inline": true},
		)
	}

	payload := map[string]interface{}{
		"content": "",
		"embeds": []map[string]interface{}{
			{
				"title":       "Stored capture no longer matches the models",
				"description": cause.Error(),
				"color":       15158332,
				"fields":      fields,
				"footer": map[string]interface{}{
					"text": fmt.Sprintf("Checked at %s", time.Now().UTC().Format(time.RFC3339)),
				},
			},
		},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(jsonPayload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("Failed to send Discord notification", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		s.logger.Error("Failed to send Discord notification", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}
	return nil
}
