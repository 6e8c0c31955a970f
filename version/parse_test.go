package version

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		parts []Part
	}{
		{"1", []Part{{KindFirst, "1"}}},
		{"1.2.3", []Part{{KindFirst, "1"}, {KindPrimary, "2"}, {KindPrimary, "3"}}},
		{"1a", []Part{{KindFirst, "1"}, {KindCharacter, "a"}}},
		{"2.0b", []Part{{KindFirst, "2"}, {KindPrimary, "0"}, {KindCharacter, "b"}}},
		{"1.0_p", []Part{{KindFirst, "1"}, {KindPrimary, "0"}, {KindPatch, ""}}},
		{"1.0_pre", []Part{{KindFirst, "1"}, {KindPrimary, "0"}, {KindPre, ""}}},
		{"0.9_alpha3_p20", []Part{{KindFirst, "0"}, {KindPrimary, "9"}, {KindAlpha, "3"}, {KindPatch, "20"}}},
		{"4.1_rc2-r1", []Part{{KindFirst, "4"}, {KindPrimary, "1"}, {KindRc, "2"}, {KindRevision, "1"}}},
		{"5_beta-r12.3", []Part{{KindFirst, "5"}, {KindBeta, ""}, {KindRevision, "12"}, {KindInterRevision, "3"}}},
		{"3.3.5.20050130-r1", []Part{
			{KindFirst, "3"}, {KindPrimary, "3"}, {KindPrimary, "5"}, {KindPrimary, "20050130"}, {KindRevision, "1"},
		}},
		{"007.010", []Part{{KindFirst, "007"}, {KindPrimary, "010"}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, res, err := Parse(tt.input, false)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if res != ResultOk {
				t.Errorf("Parse(%q) result = %v, want %v", tt.input, res, ResultOk)
			}
			if !reflect.DeepEqual(v.Parts(), tt.parts) {
				t.Errorf("Parse(%q) parts = %v, want %v", tt.input, v.Parts(), tt.parts)
			}
			if v.String() != tt.input {
				t.Errorf("String() = %q, want %q", v.String(), tt.input)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input  string
		err    error
		offset int
		parts  []Part
	}{
		{"", ErrUnparseable, 0, []Part{{KindGarbage, ""}}},
		{"abc", ErrUnparseable, 0, []Part{{KindGarbage, "abc"}}},
		{"-1.0", ErrUnparseable, 0, []Part{{KindGarbage, "-1.0"}}},
		{"1..2", ErrMalformed, 1, []Part{{KindFirst, "1"}, {KindGarbage, "..2"}}},
		{"1.", ErrMalformed, 1, []Part{{KindFirst, "1"}, {KindGarbage, "."}}},
		{"1.0_xyz", ErrMalformed, 3, []Part{{KindFirst, "1"}, {KindPrimary, "0"}, {KindGarbage, "_xyz"}}},
		{"1.0-r", ErrMalformed, 3, []Part{{KindFirst, "1"}, {KindPrimary, "0"}, {KindGarbage, "-r"}}},
		{"1.0-rc1", ErrMalformed, 3, []Part{{KindFirst, "1"}, {KindPrimary, "0"}, {KindGarbage, "-rc1"}}},
		{"1.0-r1.", ErrMalformed, 6, []Part{
			{KindFirst, "1"}, {KindPrimary, "0"}, {KindRevision, "1"}, {KindGarbage, "."},
		}},
		{"1.0foo", ErrTrailingGarbage, 4, []Part{
			{KindFirst, "1"}, {KindPrimary, "0"}, {KindCharacter, "f"}, {KindGarbage, "oo"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, res, err := Parse(tt.input, false)
			if res != ResultError {
				t.Errorf("Parse(%q) result = %v, want %v", tt.input, res, ResultError)
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("Parse(%q) error = %v, want %v", tt.input, err, tt.err)
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error should be a *ParseError, got %T", err)
			}
			if pe.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", pe.Offset, tt.offset)
			}
			if pe.Input != tt.input {
				t.Errorf("Input = %q, want %q", pe.Input, tt.input)
			}
			if !reflect.DeepEqual(v.Parts(), tt.parts) {
				t.Errorf("partial parts = %v, want %v", v.Parts(), tt.parts)
			}
			if v.String() != tt.input {
				t.Errorf("partial String() = %q, want %q", v.String(), tt.input)
			}
		})
	}
}

func TestParse_AcceptGarbage(t *testing.T) {
	p := Parser{AcceptGarbage: true}

	v, res, err := p.Parse("1.0-foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != ResultGarbage {
		t.Errorf("result = %v, want %v", res, ResultGarbage)
	}
	if !v.HasGarbage() {
		t.Error("version should end in a garbage part")
	}
	if got := v.Part(v.Len() - 1); got != (Part{KindGarbage, "-foo"}) {
		t.Errorf("garbage part = %v", got)
	}

	// Broken components stay errors even when garbage is accepted
	if _, res, err := p.Parse("1.0_xyz"); res != ResultError || !errors.Is(err, ErrMalformed) {
		t.Errorf("Parse(1.0_xyz) = %v, %v; want error result", res, err)
	}
	if _, res, err := p.Parse("x1"); res != ResultError || !errors.Is(err, ErrUnparseable) {
		t.Errorf("Parse(x1) = %v, %v; want error result", res, err)
	}
}

func TestVersion_Accessors(t *testing.T) {
	v := MustParse("1.2_rc3-r4.5")

	if v.Revision() != "4" {
		t.Errorf("Revision() = %q, want 4", v.Revision())
	}
	if v.Base() != "1.2_rc3" {
		t.Errorf("Base() = %q, want 1.2_rc3", v.Base())
	}
	if v.HasGarbage() {
		t.Error("clean version reports garbage")
	}

	var zero Version
	if !zero.IsZero() || zero.String() != "" {
		t.Error("zero Version should be empty")
	}

	// Parts returns a copy
	parts := v.Parts()
	parts[0].Content = "9"
	if v.Part(0).Content != "1" {
		t.Error("Parts() must not alias internal state")
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("not-a-version")
}

func TestKind_String(t *testing.T) {
	if KindInterRevision.String() != "inter-revision" {
		t.Errorf("KindInterRevision.String() = %q", KindInterRevision.String())
	}
	if Kind(42).Valid() {
		t.Error("Kind(42) should be invalid")
	}
	if Kind(42).String() != "kind(42)" {
		t.Errorf("Kind(42).String() = %q", Kind(42).String())
	}
}
