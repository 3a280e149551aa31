package domain

import (
	"fmt"
	"time"
)

// Column names of the remote database, in submission order.
const (
	ColumnCreateDate = "Create Date"
	ColumnStatus     = "상태"
	ColumnTitle      = "Title"
	ColumnModel      = "Model"
	ColumnLossA      = "Loss_A"
	ColumnLossB      = "Loss_B"
	ColumnLossC      = "Loss_C"
	ColumnWeightPath = "weight_pth"
	ColumnRunDate    = "Run Date"
	ColumnLr         = "Lr"
	ColumnSteps      = "steps"
	ColumnBatchSize  = "batch_size"
	ColumnEpoch      = "Epoch"
	ColumnInChannel  = "In_channel"
	ColumnOutChannel = "out_channel"
	ColumnAP         = "AP"
)

const (
	DefaultLr         = 0.001
	DefaultEpoch      = 1
	DefaultInChannel  = 3
	DefaultOutChannel = 1
)

// RunTimeLayout is the accepted format of start_time and end_time.
const RunTimeLayout = "2006-01-02 15:04"

// InstantLayout renders UTC instants with a "+00:00" offset.
const InstantLayout = "2006-01-02T15:04:05.999999-07:00"

// ResolveStatus returns the status to submit and whether the given value was
// replaced by DefaultStatus. An absent status is not reported as replaced.
func ResolveStatus(s *string) (Status, bool) {
	if s == nil {
		return DefaultStatus, false
	}
	if st := Status(*s); st.Valid() {
		return st, false
	}
	return DefaultStatus, true
}

// ParseRunTime parses a local "YYYY-MM-DD HH:MM" time and labels it UTC.
func ParseRunTime(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(RunTimeLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q, want YYYY-MM-DD HH:MM", ErrInvalidTimestampFormat, field, value)
	}
	return t, nil
}

// FormatInstant renders t in UTC as ISO-8601.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(InstantLayout)
}

// Normalize shapes run into the remote schema. now is used for every absent
// timestamp. run is not modified.
func Normalize(run *TrainingRun, now time.Time) (Properties, error) {
	if run == nil || run.Title == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequiredField, ColumnTitle)
	}

	nowISO := FormatInstant(now)

	start, err := runTime("start_time", run.StartTime, nowISO)
	if err != nil {
		return nil, err
	}
	end, err := runTime("end_time", run.EndTime, nowISO)
	if err != nil {
		return nil, err
	}

	status, _ := ResolveStatus(run.Status)

	tags := make([]string, len(run.Model))
	copy(tags, run.Model)

	return Properties{
		{ColumnCreateDate, DateValue{Start: stringOr(run.CreateDate, nowISO)}},
		{ColumnStatus, StatusValue{Name: string(status)}},
		{ColumnTitle, TitleValue{Content: *run.Title}},
		{ColumnModel, MultiSelectValue{Names: tags}},
		{ColumnLossA, NumberValue{Number: floatOr(run.LossA, 0)}},
		{ColumnLossB, NumberValue{Number: floatOr(run.LossB, 0)}},
		{ColumnLossC, NumberValue{Number: floatOr(run.LossC, 0)}},
		{ColumnWeightPath, RichTextValue{Content: stringOr(run.WeightPath, "")}},
		{ColumnRunDate, DateValue{Start: start, End: &end}},
		{ColumnLr, NumberValue{Number: floatOr(run.Lr, DefaultLr)}},
		{ColumnSteps, RichTextValue{Content: textOr(run.Steps)}},
		{ColumnBatchSize, RichTextValue{Content: textOr(run.BatchSize)}},
		{ColumnEpoch, NumberValue{Number: float64(intOr(run.Epoch, DefaultEpoch))}},
		{ColumnInChannel, NumberValue{Number: float64(intOr(run.InChannel, DefaultInChannel))}},
		{ColumnOutChannel, NumberValue{Number: float64(intOr(run.OutChannel, DefaultOutChannel))}},
		{ColumnAP, NumberValue{Number: floatOr(run.AP, 0)}},
	}, nil
}

func runTime(field string, value *string, fallback string) (string, error) {
	if value == nil {
		return fallback, nil
	}
	t, err := ParseRunTime(field, *value)
	if err != nil {
		return "", err
	}
	return FormatInstant(t), nil
}

func stringOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

func floatOr(f *float64, def float64) float64 {
	if f == nil {
		return def
	}
	return *f
}

func intOr(i *int, def int) int {
	if i == nil {
		return def
	}
	return *i
}

func textOr(t *NumericText) string {
	if t == nil {
		return ""
	}
	return t.String()
}
