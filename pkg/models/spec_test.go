package models

import (
	"strings"
	"testing"
)

func TestDefaultSpec(t *testing.T) {
	spec := DefaultSpec()

	if spec.CPUCores != 4 {
		t.Errorf("Expected default CPU 4, got %d", spec.CPUCores)
	}
	if spec.MemoryGB != 16 {
		t.Errorf("Expected default memory 16, got %d", spec.MemoryGB)
	}
	if spec.StorageGB != 500 {
		t.Errorf("Expected default storage 500, got %d", spec.StorageGB)
	}
	if err := spec.Validate(); err != nil {
		t.Errorf("Default spec should be valid, got: %v", err)
	}
}

func TestUpdateFieldClamps(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		raw   string
		want  int
	}{
		{name: "zero", field: FieldCPU, raw: "0", want: 1},
		{name: "negative", field: FieldCPU, raw: "-5", want: 1},
		{name: "negative three", field: FieldCPU, raw: "-3", want: 1},
		{name: "not a number", field: FieldMemory, raw: "abc", want: 1},
		{name: "empty", field: FieldStorage, raw: "", want: 1},
		{name: "whitespace", field: FieldStorage, raw: "   ", want: 1},
		{name: "plain", field: FieldCPU, raw: "8", want: 8},
		{name: "padded", field: FieldMemory, raw: " 32 ", want: 32},
		{name: "leading digits", field: FieldStorage, raw: "2000GB", want: 2000},
		{name: "decimal truncates", field: FieldCPU, raw: "3.7", want: 3},
		{name: "explicit plus", field: FieldCPU, raw: "+12", want: 12},
		{name: "no upper clamp", field: FieldCPU, raw: "4096", want: 4096},
		{name: "sign only", field: FieldMemory, raw: "-", want: 1},
		{name: "huge negative", field: FieldMemory, raw: "-99999999999999999999999", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpdateField(DefaultSpec(), tt.field, tt.raw)
			if got.Get(tt.field) != tt.want {
				t.Errorf("UpdateField(%s, %q) = %d, expected %d", tt.field, tt.raw, got.Get(tt.field), tt.want)
			}
		})
	}
}

func TestUpdateFieldLeavesOtherFields(t *testing.T) {
	current := HardwareSpec{CPUCores: 6, MemoryGB: 48, StorageGB: 1200}

	for _, field := range Fields {
		got := UpdateField(current, field, "-3")
		for _, other := range Fields {
			if other == field {
				if got.Get(other) != 1 {
					t.Errorf("Expected %s clamped to 1, got %d", other, got.Get(other))
				}
				continue
			}
			if got.Get(other) != current.Get(other) {
				t.Errorf("Updating %s changed %s: %d -> %d", field, other, current.Get(other), got.Get(other))
			}
		}
	}

	if current.CPUCores != 6 {
		t.Error("UpdateField must not mutate its input")
	}
}

func TestUpdateFieldOverflowSaturates(t *testing.T) {
	got := UpdateField(DefaultSpec(), FieldStorage, "99999999999999999999999")
	if got.StorageGB < 1<<31-1 {
		t.Errorf("Expected saturated storage, got %d", got.StorageGB)
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		input   string
		want    Field
		wantErr bool
	}{
		{input: "cpu", want: FieldCPU},
		{input: "CPU", want: FieldCPU},
		{input: " memory ", want: FieldMemory},
		{input: "storage", want: FieldStorage},
		{input: "disk", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseField(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseField(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseField(%q): unexpected error %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseField(%q) = %s, expected %s", tt.input, got, tt.want)
		}
	}
}

func TestValidateAndClamp(t *testing.T) {
	bad := HardwareSpec{CPUCores: 0, MemoryGB: -2, StorageGB: 10}

	err := bad.Validate()
	if err == nil {
		t.Fatal("Expected validation error for zero CPU")
	}
	if !strings.Contains(err.Error(), "cpu") {
		t.Errorf("Expected error about cpu, got %v", err)
	}

	clamped := bad.Clamped()
	if clamped != (HardwareSpec{CPUCores: 1, MemoryGB: 1, StorageGB: 10}) {
		t.Errorf("Unexpected clamped spec: %+v", clamped)
	}
	if err := clamped.Validate(); err != nil {
		t.Errorf("Clamped spec should validate, got %v", err)
	}
}

func TestOutOfBounds(t *testing.T) {
	if got := DefaultSpec().OutOfBounds(); len(got) != 0 {
		t.Errorf("Default spec should be in bounds, got %v", got)
	}

	got := HardwareSpec{CPUCores: 512, MemoryGB: 16, StorageGB: 20000}.OutOfBounds()
	if len(got) != 2 || got[0] != FieldCPU || got[1] != FieldStorage {
		t.Errorf("Expected [cpu storage], got %v", got)
	}
}
