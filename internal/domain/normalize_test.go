package domain

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestNormalize_StatusValuesPassThrough(t *testing.T) {
	for _, st := range []Status{StatusNotStarted, StatusInProgress, StatusComplete} {
		t.Run(string(st), func(t *testing.T) {
			run := &TrainingRun{Title: strPtr("t"), Status: strPtr(string(st))}
			props, err := Normalize(run, fixedNow)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			v, _ := props.Get(ColumnStatus)
			if got := v.(StatusValue).Name; got != string(st) {
				t.Errorf("status = %q, want %q", got, st)
			}
		})
	}
}

func TestNormalize_InvalidOrMissingStatusDefaults(t *testing.T) {
	tests := []struct {
		name   string
		status *string
	}{
		{"missing", nil},
		{"english", strPtr("complete")},
		{"empty", strPtr("")},
		{"garbage", strPtr("끝남")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props, err := Normalize(&TrainingRun{Title: strPtr("t"), Status: tt.status}, fixedNow)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			v, _ := props.Get(ColumnStatus)
			if got := v.(StatusValue).Name; got != string(StatusInProgress) {
				t.Errorf("status = %q, want %q", got, StatusInProgress)
			}
		})
	}
}

func TestResolveStatus_ReportsSubstitution(t *testing.T) {
	if _, replaced := ResolveStatus(nil); replaced {
		t.Error("absent status should not be reported as replaced")
	}
	if _, replaced := ResolveStatus(strPtr("완료")); replaced {
		t.Error("valid status should not be reported as replaced")
	}
	if st, replaced := ResolveStatus(strPtr("done")); !replaced || st != DefaultStatus {
		t.Errorf("ResolveStatus(done) = %q, %v", st, replaced)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	props, err := Normalize(&TrainingRun{Title: strPtr("only title")}, fixedNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	nowISO := "2025-01-02T03:04:05+00:00"
	want := map[string]PropertyValue{
		ColumnCreateDate: DateValue{Start: nowISO},
		ColumnModel:      MultiSelectValue{Names: []string{}},
		ColumnLossA:      NumberValue{Number: 0},
		ColumnLossB:      NumberValue{Number: 0},
		ColumnLossC:      NumberValue{Number: 0},
		ColumnWeightPath: RichTextValue{Content: ""},
		ColumnRunDate:    DateValue{Start: nowISO, End: strPtr(nowISO)},
		ColumnLr:         NumberValue{Number: 0.001},
		ColumnSteps:      RichTextValue{Content: ""},
		ColumnBatchSize:  RichTextValue{Content: ""},
		ColumnEpoch:      NumberValue{Number: 1},
		ColumnInChannel:  NumberValue{Number: 3},
		ColumnOutChannel: NumberValue{Number: 1},
		ColumnAP:         NumberValue{Number: 0},
	}
	for name, w := range want {
		got, ok := props.Get(name)
		if !ok {
			t.Errorf("missing column %q", name)
			continue
		}
		if !reflect.DeepEqual(got, w) {
			t.Errorf("%s = %#v, want %#v", name, got, w)
		}
	}
}

func TestNormalize_ColumnOrder(t *testing.T) {
	props, err := Normalize(ExampleRun("2024-03-18T00:00:00+00:00"), fixedNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := []string{
		"Create Date", "상태", "Title", "Model", "Loss_A", "Loss_B", "Loss_C",
		"weight_pth", "Run Date", "Lr", "steps", "batch_size", "Epoch",
		"In_channel", "out_channel", "AP",
	}
	if got := props.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}
}

func TestNormalize_RunTimes(t *testing.T) {
	run := &TrainingRun{
		Title:     strPtr("t"),
		StartTime: strPtr("2024-03-18 14:00"),
		EndTime:   strPtr("2024-03-18 17:00"),
	}
	props, err := Normalize(run, fixedNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	v, _ := props.Get(ColumnRunDate)
	date := v.(DateValue)
	if date.Start != "2024-03-18T14:00:00+00:00" {
		t.Errorf("start = %q", date.Start)
	}
	if date.End == nil || *date.End != "2024-03-18T17:00:00+00:00" {
		t.Errorf("end = %v", date.End)
	}
}

func TestNormalize_InvalidRunTime(t *testing.T) {
	tests := []struct {
		name string
		run  TrainingRun
	}{
		{"start slashes", TrainingRun{Title: strPtr("t"), StartTime: strPtr("03/18/2024")}},
		{"end seconds", TrainingRun{Title: strPtr("t"), EndTime: strPtr("2024-03-18 17:00:00")}},
		{"start iso", TrainingRun{Title: strPtr("t"), StartTime: strPtr("2024-03-18T14:00:00Z")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(&tt.run, fixedNow)
			if !errors.Is(err, ErrInvalidTimestampFormat) {
				t.Errorf("err = %v, want ErrInvalidTimestampFormat", err)
			}
		})
	}
}

func TestNormalize_MissingTitle(t *testing.T) {
	_, err := Normalize(&TrainingRun{Status: strPtr("완료")}, fixedNow)
	if !errors.Is(err, ErrMissingRequiredField) {
		t.Errorf("err = %v, want ErrMissingRequiredField", err)
	}
	if _, err := Normalize(nil, fixedNow); !errors.Is(err, ErrMissingRequiredField) {
		t.Errorf("nil run: err = %v", err)
	}
}

func TestNormalize_EmptyTitleIsPresent(t *testing.T) {
	if _, err := Normalize(&TrainingRun{Title: strPtr("")}, fixedNow); err != nil {
		t.Errorf("empty title should normalize, got %v", err)
	}
}

func TestNormalize_ExampleRun(t *testing.T) {
	run := ExampleRun("2024-03-18T12:00:00+00:00")
	props, err := Normalize(run, fixedNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	title, _ := props.Get(ColumnTitle)
	if got := title.(TitleValue).Content; got != "AI 모델 학습 결과" {
		t.Errorf("title = %q", got)
	}
	model, _ := props.Get(ColumnModel)
	if got := model.(MultiSelectValue).Names; !reflect.DeepEqual(got, []string{"ResNet50", "Mobile0.25"}) {
		t.Errorf("model = %v", got)
	}
	created, _ := props.Get(ColumnCreateDate)
	if got := created.(DateValue).Start; got != "2024-03-18T12:00:00+00:00" {
		t.Errorf("create date = %q, want passthrough", got)
	}
	steps, _ := props.Get(ColumnSteps)
	if got := steps.(RichTextValue).Content; got != "10000" {
		t.Errorf("steps = %q", got)
	}
	epoch, _ := props.Get(ColumnEpoch)
	if got := epoch.(NumberValue).Number; got != 50 {
		t.Errorf("epoch = %v", got)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	run := ExampleRun("2024-03-18T12:00:00+00:00")
	run.Status = strPtr("unknown")
	before := *run
	beforeModel := append([]string(nil), run.Model...)

	props, err := Normalize(run, fixedNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	model, _ := props.Get(ColumnModel)
	model.(MultiSelectValue).Names[0] = "changed"

	if !reflect.DeepEqual(*run, before) || !reflect.DeepEqual(run.Model, beforeModel) {
		t.Error("Normalize modified its input")
	}
	if *run.Status != "unknown" {
		t.Errorf("status mutated to %q", *run.Status)
	}
}

func TestFormatInstant_ConvertsToUTC(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)
	in := time.Date(2024, 3, 18, 23, 0, 0, 0, kst)
	if got := FormatInstant(in); got != "2024-03-18T14:00:00+00:00" {
		t.Errorf("FormatInstant = %q", got)
	}
}
