package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Status is the lifecycle state of a training run as shown in the remote
// database's status column.
type Status string

const (
	StatusNotStarted Status = "시작전"
	StatusInProgress Status = "진행중"
	StatusComplete   Status = "완료"
)

// DefaultStatus is applied when a record has no status or an unknown one.
const DefaultStatus = StatusInProgress

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

// TrainingRun is one experiment's metadata and results before it is shaped
// for the remote schema. Nil fields are absent and receive defaults during
// normalization. JSON keys match the remote column names.
type TrainingRun struct {
	Status     *string      `json:"상태,omitempty"`
	Title      *string      `json:"Title,omitempty"`
	Model      []string     `json:"Model,omitempty"`
	LossA      *float64     `json:"Loss_A,omitempty"`
	LossB      *float64     `json:"Loss_B,omitempty"`
	LossC      *float64     `json:"Loss_C,omitempty"`
	WeightPath *string      `json:"weight_pth,omitempty"`
	CreateDate *string      `json:"Create Date,omitempty"`
	Lr         *float64     `json:"Lr,omitempty"`
	Steps      *NumericText `json:"steps,omitempty"`
	BatchSize  *NumericText `json:"batch_size,omitempty"`
	Epoch      *int         `json:"Epoch,omitempty"`
	InChannel  *int         `json:"In_channel,omitempty"`
	OutChannel *int         `json:"out_channel,omitempty"`
	AP         *float64     `json:"AP,omitempty"`
	StartTime  *string      `json:"start_time,omitempty"`
	EndTime    *string      `json:"end_time,omitempty"`
}

// NumericText holds a numeric-looking value as text. It decodes from either
// a JSON string or a JSON number.
type NumericText string

func (n NumericText) String() string { return string(n) }

func (n NumericText) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}

func (n *NumericText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericText(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("numeric text must be a string or number: %w", err)
	}
	// Integer literals are kept digit for digit.
	if !strings.ContainsAny(num.String(), ".eE") {
		*n = NumericText(num.String())
		return nil
	}
	// Integral floats like 32.0 read as "32".
	if f, err := num.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		*n = NumericText(strconv.FormatInt(int64(f), 10))
		return nil
	}
	*n = NumericText(num.String())
	return nil
}

// DecodeTrainingRun parses a JSON record. Unknown keys are ignored.
func DecodeTrainingRun(data []byte) (*TrainingRun, error) {
	var run TrainingRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to parse training run: %w", err)
	}
	return &run, nil
}

// ExampleRun returns a fully populated record for a finished run.
func ExampleRun(createDate string) *TrainingRun {
	str := func(s string) *string { return &s }
	num := func(f float64) *float64 { return &f }
	integer := func(i int) *int { return &i }
	text := func(s string) *NumericText { t := NumericText(s); return &t }

	return &TrainingRun{
		Status:     str(string(StatusComplete)),
		Title:      str("AI 모델 학습 결과"),
		Model:      []string{"ResNet50", "Mobile0.25"},
		LossA:      num(0.023),
		LossB:      num(0.045),
		LossC:      num(0.012),
		WeightPath: str("/path/to/weights.pth"),
		CreateDate: str(createDate),
		Lr:         num(0.001),
		Steps:      text("10000"),
		BatchSize:  text("32"),
		Epoch:      integer(50),
		InChannel:  integer(3),
		OutChannel: integer(1),
		AP:         num(0.87),
		StartTime:  str("2024-03-18 14:00"),
		EndTime:    str("2024-03-18 17:00"),
	}
}
