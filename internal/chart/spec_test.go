package chart

import (
	"errors"
	"testing"

	"github.com/3-lines-studio/chartmount/internal/formatter"
)

func TestDefaultSpecAlignment(t *testing.T) {
	s := Default()

	categories := s.Categories()
	values := s.Values()
	if len(categories) != 7 || len(values) != 7 {
		t.Fatalf("expected 7 categories and 7 values, got %d and %d", len(categories), len(values))
	}
	if categories[0] != "Mon" || categories[6] != "Sun" {
		t.Errorf("unexpected categories %v", categories)
	}
	if values[0] != 150 || values[6] != 260 {
		t.Errorf("unexpected values %v", values)
	}
	if s.ContainerID() != "main" || s.ContainerClass() != "chart" {
		t.Errorf("unexpected container %q.%q", s.ContainerID(), s.ContainerClass())
	}
	if s.Width() != 600 || s.Height() != 600 {
		t.Errorf("unexpected size %dx%d", s.Width(), s.Height())
	}
}

func TestNewValidation(t *testing.T) {
	tooltip := formatter.DataSuffix(" x")

	tests := []struct {
		name       string
		categories []string
		values     []int
		opts       []Option
		wantErr    error
		wantAnyErr bool
	}{
		{name: "aligned", categories: []string{"a", "b"}, values: []int{1, 2}},
		{name: "misaligned", categories: []string{"a", "b"}, values: []int{1}, wantErr: ErrMisaligned},
		{name: "empty", categories: nil, values: nil, wantErr: ErrEmpty},
		{name: "zero size", categories: []string{"a"}, values: []int{1}, opts: []Option{WithSize(0, 600)}, wantAnyErr: true},
		{name: "empty container", categories: []string{"a"}, values: []int{1}, opts: []Option{WithContainer("", "chart")}, wantAnyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.categories, tt.values, tooltip, tt.opts...)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantAnyErr:
				if err == nil {
					t.Error("New() expected error")
				}
			default:
				if err != nil {
					t.Errorf("New() unexpected error %v", err)
				}
			}
		})
	}
}

func TestSpecIsImmutable(t *testing.T) {
	categories := []string{"a", "b"}
	values := []int{1, 2}
	s, err := New(categories, values, nil)
	if err != nil {
		t.Fatal(err)
	}

	categories[0] = "changed"
	values[0] = 99
	s.Categories()[1] = "changed"
	s.Values()[1] = 99

	if got := s.Categories(); got[0] != "a" || got[1] != "b" {
		t.Errorf("categories mutated: %v", got)
	}
	if got := s.Values(); got[0] != 1 || got[1] != 2 {
		t.Errorf("values mutated: %v", got)
	}
}
