package cli

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	apperrors "github.com/julianstephens/habitkit/internal/errors"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T) *Context {
	t.Helper()
	ctx := NewContext(storage.NewMemoryStore(), t.TempDir())
	ctx.Clock = func() time.Time { return testNow }
	t.Cleanup(func() {
		if err := ctx.Close(); err != nil {
			t.Errorf("failed to close context: %v", err)
		}
	})
	return ctx
}

func TestStoreIsLoadedOnce(t *testing.T) {
	ctx := setupTestContext(t)
	s := ctx.Store()
	if s != ctx.Store() {
		t.Error("expected the same store on every call")
	}
	if !s.Now().Equal(testNow) {
		t.Errorf("store clock = %v, want %v", s.Now(), testNow)
	}
}

func TestFindHabit(t *testing.T) {
	ctx := setupTestContext(t)
	s := ctx.Store()
	cat := s.Categories()[0].ID

	read := models.NewHabit("Read", cat)
	read.ID = "aaaa1111-0000"
	run := models.NewHabit("Run", cat)
	run.ID = "aaaa2222-0000"
	dup1 := models.NewHabit("Stretch", cat)
	dup1.ID = "bbbb1111-0000"
	dup2 := models.NewHabit("stretch", cat)
	dup2.ID = "cccc1111-0000"
	for _, h := range []models.Habit{read, run, dup1, dup2} {
		s.AddHabit(h)
	}

	tests := []struct {
		name    string
		query   string
		wantID  string
		wantErr bool
	}{
		{name: "exact ID", query: "aaaa2222-0000", wantID: run.ID},
		{name: "unique prefix", query: "aaaa1", wantID: read.ID},
		{name: "title ignores case", query: "READ", wantID: read.ID},
		{name: "ambiguous prefix", query: "aaaa", wantErr: true},
		{name: "ambiguous title", query: "Stretch", wantErr: true},
		{name: "empty", query: "  ", wantErr: true},
		{name: "missing", query: "Swim", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := FindHabit(s, tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindHabit(%q) error = %v, wantErr %v", tt.query, err, tt.wantErr)
			}
			if !tt.wantErr && h.ID != tt.wantID {
				t.Errorf("FindHabit(%q) = %s, want %s", tt.query, h.ID, tt.wantID)
			}
		})
	}

	if _, err := FindHabit(s, "Swim"); !errors.Is(err, apperrors.ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestFindCategory(t *testing.T) {
	ctx := setupTestContext(t)
	s := ctx.Store()
	first := s.Categories()[0]

	if c, err := FindCategory(s, first.ID); err != nil || c.ID != first.ID {
		t.Errorf("FindCategory(id) = %v, %v", c, err)
	}
	if c, err := FindCategory(s, first.Name); err != nil || c.ID != first.ID {
		t.Errorf("FindCategory(name) = %v, %v", c, err)
	}
	if _, err := FindCategory(s, "Nope"); !errors.Is(err, apperrors.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestValidateHabitInput(t *testing.T) {
	tests := []struct {
		name    string
		in      HabitInput
		wantErr bool
	}{
		{name: "minimal", in: HabitInput{Title: "Read", Frequency: "Daily"}},
		{name: "lowercase frequency", in: HabitInput{Title: "Read", Frequency: "weekends"}},
		{name: "custom with days", in: HabitInput{Title: "Gym", Frequency: "Custom", Days: "mon,wed"}},
		{name: "everything", in: HabitInput{Title: "Gym", Frequency: "Daily", Reminder: "06:45", Color: "#a1B2c3"}},
		{name: "blank title", in: HabitInput{Title: " ", Frequency: "Daily"}, wantErr: true},
		{name: "unknown frequency", in: HabitInput{Title: "Read", Frequency: "Hourly"}, wantErr: true},
		{name: "custom without days", in: HabitInput{Title: "Gym", Frequency: "Custom"}, wantErr: true},
		{name: "bad days", in: HabitInput{Title: "Gym", Frequency: "Custom", Days: "funday"}, wantErr: true},
		{name: "bad reminder", in: HabitInput{Title: "Read", Frequency: "Daily", Reminder: "25:99"}, wantErr: true},
		{name: "bad color", in: HabitInput{Title: "Read", Frequency: "Daily", Color: "red"}, wantErr: true},
		{name: "short color", in: HabitInput{Title: "Read", Frequency: "Daily", Color: "#fff"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHabitInput(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHabitInput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "mon,wed,fri", want: []int{2, 4, 6}},
		{in: "Saturday, sun", want: []int{1, 7}},
		{in: "3,1,3", want: []int{1, 3}},
		{in: "tue,3", want: []int{3}},
		{in: "8", wantErr: true},
		{in: "mon,,fri", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekdays(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekdays(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseWeekdays(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatFrequency(t *testing.T) {
	tests := []struct {
		habit models.Habit
		want  string
	}{
		{models.NewHabit("x", "c"), "daily"},
		{models.NewHabit("x", "c", models.WithFrequency(models.FrequencyWeekdays)), "weekdays"},
		{models.NewHabit("x", "c", models.WithFrequency(models.FrequencyCustom), models.WithCustomDays(2, 6)), "custom on Mon,Fri"},
		{models.NewHabit("x", "c", models.WithFrequency(models.FrequencyCustom)), "custom (no days)"},
	}
	for _, tt := range tests {
		if got := FormatFrequency(tt.habit); got != tt.want {
			t.Errorf("FormatFrequency() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("", testNow)
	if err != nil || !got.Equal(testNow) {
		t.Errorf("ParseDate(\"\") = %v, %v", got, err)
	}
	got, err = ParseDate("2026-10-01", testNow)
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if want := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ParseDate() = %v, want %v", got, want)
	}
	if _, err := ParseDate("10/01/2026", testNow); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("ShortID() = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID() = %q", got)
	}
}

func TestConfirm(t *testing.T) {
	orig := Stdin
	defer func() { Stdin = orig }()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		Stdin = strings.NewReader(tt.input)
		if got := Confirm("Proceed?"); got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPerformAutomaticBackup(t *testing.T) {
	ctx := setupTestContext(t)
	ctx.Store()
	ctx.PerformAutomaticBackup()

	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}
