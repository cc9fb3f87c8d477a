// Package chart builds the line chart shown on the home page.
//
// A Spec is built once per page load and never mutated. It renders to an
// ECharts option through go-echarts, either with the tooltip formatter inlined
// as JavaScript (ScriptOption) or as plain data for clients that attach the
// formatter themselves (DataOption).
package chart

import (
	"errors"
	"fmt"
	"slices"

	"github.com/3-lines-studio/chartmount/internal/formatter"
)

var (
	ErrEmpty      = errors.New("chart: no data points")
	ErrMisaligned = errors.New("chart: categories and values differ in length")
)

const (
	DefaultContainerID    = "main"
	DefaultContainerClass = "chart"
	DefaultWidth          = 600
	DefaultHeight         = 600
	DefaultSeriesName     = "values"
	DefaultSuffix         = " Charming"
)

func DefaultCategories() []string {
	return []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
}

func DefaultValues() []int {
	return []int{150, 230, 224, 218, 135, 147, 260}
}

func DefaultTooltip() formatter.Tooltip {
	return formatter.DataSuffix(DefaultSuffix)
}

type Spec struct {
	categories     []string
	values         []int
	seriesName     string
	tooltip        formatter.Tooltip
	containerID    string
	containerClass string
	width          int
	height         int
}

type Option func(*Spec)

func WithContainer(id, class string) Option {
	return func(s *Spec) {
		s.containerID = id
		s.containerClass = class
	}
}

func WithSize(width, height int) Option {
	return func(s *Spec) {
		s.width = width
		s.height = height
	}
}

func WithSeriesName(name string) Option {
	return func(s *Spec) {
		s.seriesName = name
	}
}

// New validates and copies its inputs. Values are positionally aligned with
// categories. A nil tooltip leaves the chart without a formatter.
func New(categories []string, values []int, tooltip formatter.Tooltip, opts ...Option) (*Spec, error) {
	if len(categories) == 0 || len(values) == 0 {
		return nil, ErrEmpty
	}
	if len(categories) != len(values) {
		return nil, fmt.Errorf("%w: %d categories, %d values", ErrMisaligned, len(categories), len(values))
	}

	s := &Spec{
		categories:     slices.Clone(categories),
		values:         slices.Clone(values),
		seriesName:     DefaultSeriesName,
		tooltip:        tooltip,
		containerID:    DefaultContainerID,
		containerClass: DefaultContainerClass,
		width:          DefaultWidth,
		height:         DefaultHeight,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.containerID == "" {
		return nil, fmt.Errorf("chart: empty container id")
	}
	if s.width <= 0 || s.height <= 0 {
		return nil, fmt.Errorf("chart: invalid size %dx%d", s.width, s.height)
	}
	return s, nil
}

// Default is the week chart with the " Charming" tooltip, rendered into #main
// at 600x600.
func Default() *Spec {
	s, err := New(DefaultCategories(), DefaultValues(), DefaultTooltip())
	if err != nil {
		panic(fmt.Sprintf("chart: default spec is invalid: %v", err))
	}
	return s
}

func (s *Spec) Categories() []string       { return slices.Clone(s.categories) }
func (s *Spec) Values() []int              { return slices.Clone(s.values) }
func (s *Spec) SeriesName() string         { return s.seriesName }
func (s *Spec) Tooltip() formatter.Tooltip { return s.tooltip }
func (s *Spec) ContainerID() string        { return s.containerID }
func (s *Spec) ContainerClass() string     { return s.containerClass }
func (s *Spec) Width() int                 { return s.width }
func (s *Spec) Height() int                { return s.height }
