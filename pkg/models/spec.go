package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// HardwareSpec is the compute specification being priced
type HardwareSpec struct {
	CPUCores  int `json:"cpu" yaml:"cpu"`
	MemoryGB  int `json:"memory" yaml:"memory"`
	StorageGB int `json:"storage" yaml:"storage"`
}

// DefaultSpec returns the starting specification: 4 cores, 16 GB, 500 GB
func DefaultSpec() HardwareSpec {
	return HardwareSpec{
		CPUCores:  4,
		MemoryGB:  16,
		StorageGB: 500,
	}
}

// Bound is an inclusive input range offered by presentation layers.
// The estimators themselves accept any value >= 1.
type Bound struct {
	Min int
	Max int
}

// Bounds are the input limits offered to interactive clients. They are advisory.
var Bounds = map[Field]Bound{
	FieldCPU:     {Min: 1, Max: 128},
	FieldMemory:  {Min: 1, Max: 1024},
	FieldStorage: {Min: 1, Max: 10000},
}

// OutOfBounds lists the fields whose value falls outside Bounds
func (s HardwareSpec) OutOfBounds() []Field {
	var out []Field
	for _, field := range Fields {
		b := Bounds[field]
		if v := s.Get(field); v < b.Min || v > b.Max {
			out = append(out, field)
		}
	}
	return out
}

// Validate checks every field is a positive integer
func (s HardwareSpec) Validate() error {
	if s.CPUCores < 1 {
		return fmt.Errorf("cpu must be at least 1, got %d", s.CPUCores)
	}
	if s.MemoryGB < 1 {
		return fmt.Errorf("memory must be at least 1, got %d", s.MemoryGB)
	}
	if s.StorageGB < 1 {
		return fmt.Errorf("storage must be at least 1, got %d", s.StorageGB)
	}
	return nil
}

// Clamped returns a copy with every field raised to at least 1
func (s HardwareSpec) Clamped() HardwareSpec {
	return HardwareSpec{
		CPUCores:  clampPositive(s.CPUCores),
		MemoryGB:  clampPositive(s.MemoryGB),
		StorageGB: clampPositive(s.StorageGB),
	}
}

func (s HardwareSpec) String() string {
	return fmt.Sprintf("%d CPU, %d GB memory, %d GB storage", s.CPUCores, s.MemoryGB, s.StorageGB)
}

// Get returns the value of a single field
func (s HardwareSpec) Get(field Field) int {
	switch field {
	case FieldCPU:
		return s.CPUCores
	case FieldMemory:
		return s.MemoryGB
	case FieldStorage:
		return s.StorageGB
	default:
		return 0
	}
}

// Field names one editable attribute of a HardwareSpec
type Field string

const (
	FieldCPU     Field = "cpu"
	FieldMemory  Field = "memory"
	FieldStorage Field = "storage"
)

// Fields lists the editable fields in form order
var Fields = []Field{FieldCPU, FieldMemory, FieldStorage}

// ParseField resolves a field name, case-insensitively
func ParseField(name string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(name))) {
	case FieldCPU:
		return FieldCPU, nil
	case FieldMemory:
		return FieldMemory, nil
	case FieldStorage:
		return FieldStorage, nil
	default:
		return "", fmt.Errorf("unknown field %q: must be one of cpu, memory, storage", name)
	}
}

// UpdateField returns a copy of current with one field replaced by the parsed
// raw value. Unparseable input and values below 1 become 1. There is no upper clamp.
func UpdateField(current HardwareSpec, field Field, raw string) HardwareSpec {
	value := ParseQuantity(raw)

	next := current
	switch field {
	case FieldCPU:
		next.CPUCores = value
	case FieldMemory:
		next.MemoryGB = value
	case FieldStorage:
		next.StorageGB = value
	}
	return next
}

// ParseQuantity reads the leading integer of raw ("12", " 7 ", "64GB", "-3").
// Anything without leading digits, or below 1, yields 1.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}

	// Atoi saturates on overflow and reports ErrRange; the saturated value is kept.
	value, err := strconv.Atoi(s[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 1
	}
	return clampPositive(value)
}

func clampPositive(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
