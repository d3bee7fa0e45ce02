package decomp

import (
	"testing"
)

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"IntEqual", IntValue(4), IntValue(4), true},
		{"IntDiffer", IntValue(4), IntValue(5), false},
		{"KindDiffer", IntValue(4), StringValue("4"), false},
		{"StringEqual", StringValue("bag"), StringValue("bag"), true},
		{"VertexSetOrderIgnored", VertexSetValue(3, 1, 2), VertexSetValue(1, 2, 3), true},
		{"VertexSetDiffer", VertexSetValue(1, 2), VertexSetValue(1, 3), false},
		{"EdgeSetDedup", EdgeSetValue(2, 2, 1), EdgeSetValue(1, 2), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{IntValue(7), "7"},
		{StringValue("note"), "note"},
		{VertexSetValue(3, 1), "{1,3}"},
		{EdgeSetValue(), "{}"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValue_Clone(t *testing.T) {
	v := VertexSetValue(1, 2, 3)
	clone := v.Clone()

	if !v.Equal(clone) {
		t.Error("Clone() must be equal to the original")
	}
	vs, _ := clone.VertexSet()
	vs[0] = 9
	orig, _ := v.VertexSet()
	if orig[0] == 9 {
		t.Error("mutating the clone must not affect the original")
	}
}

func TestValue_Hash(t *testing.T) {
	if VertexSetValue(1, 2).Hash() != VertexSetValue(2, 1).Hash() {
		t.Error("equal values must hash equally")
	}
	if IntValue(1).Hash() == StringValue("1").Hash() {
		t.Error("values of different kinds should hash differently")
	}
}
