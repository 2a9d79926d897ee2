package ws

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"powermonitor/backend/services/monitor-service/internal/models"
	"powermonitor/backend/services/monitor-service/internal/service"
)

// ReadingRecorder stores a reading pushed by a meter.
type ReadingRecorder interface {
	Record(ctx context.Context, source string, input service.ReadingInput) (models.Reading, error)
}

// Reply frame types.
const (
	FrameAck   = "ack"
	FrameError = "error"
)

// Reply is the frame sent back for every inbound reading.
type Reply struct {
	Type    string          `json:"type"`
	Reading *models.Reading `json:"reading,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadingProcessor decodes reading frames and records them.
type ReadingProcessor struct {
	recorder ReadingRecorder
	logger   *zap.Logger
}

// NewReadingProcessor builds processor.
func NewReadingProcessor(recorder ReadingRecorder, logger *zap.Logger) *ReadingProcessor {
	return &ReadingProcessor{
		recorder: recorder,
		logger:   logger,
	}
}

// Process records one {voltage, current, power} frame and acknowledges it
// with the stored reading.
func (p *ReadingProcessor) Process(ctx context.Context, deviceID string, raw []byte) ([]byte, error) {
	var input service.ReadingInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return json.Marshal(Reply{Type: FrameError, Error: "invalid json"})
	}

	reading, err := p.recorder.Record(ctx, service.SourceWebSocket, input)
	if errors.Is(err, service.ErrInvalidReading) {
		return json.Marshal(Reply{Type: FrameError, Error: err.Error()})
	}
	if err != nil {
		p.logger.Error("failed to record meter reading", zap.String("device_id", deviceID), zap.Error(err))
		return json.Marshal(Reply{Type: FrameError, Error: "failed to record reading"})
	}

	return json.Marshal(Reply{Type: FrameAck, Reading: &reading})
}
