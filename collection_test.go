package fieldmap_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zoobzio/fieldmap"
	fieldmaptest "github.com/zoobzio/fieldmap/testing"
)

func newStudentMapper(t *testing.T, opts ...fieldmap.Option) *fieldmap.Mapper[fieldmaptest.Student, fieldmaptest.Man] {
	t.Helper()
	m, err := fieldmap.NewMapper[fieldmaptest.Student, fieldmaptest.Man](opts...)
	if err != nil {
		t.Fatalf("NewMapper() error: %v", err)
	}
	return m
}

func TestMapSlice_PreservesOrderAndDuplicates(t *testing.T) {
	m := newStudentMapper(t)
	students := fieldmaptest.Students()

	men, err := m.MapSlice(context.Background(), students, fieldmaptest.GenderFromSex, fieldmaptest.AgeToText)
	if err != nil {
		t.Fatalf("MapSlice() error: %v", err)
	}

	if len(men) != len(students) {
		t.Fatalf("MapSlice() length = %d, want %d", len(men), len(students))
	}
	for i, man := range men {
		if man.UserName != students[i].UserName {
			t.Errorf("men[%d].UserName = %q, want %q", i, man.UserName, students[i].UserName)
		}
		if man.Gender != "男" {
			t.Errorf("men[%d].Gender = %q, want %q", i, man.Gender, "男")
		}
	}
	if men[0] != men[2] {
		t.Errorf("duplicate inputs should map to equal outputs: %+v vs %+v", men[0], men[2])
	}
}

func TestMapSlice_Empty(t *testing.T) {
	m := newStudentMapper(t)

	for _, in := range [][]fieldmaptest.Student{nil, {}} {
		men, err := m.MapSlice(context.Background(), in)
		if err != nil {
			t.Fatalf("MapSlice() error: %v", err)
		}
		if men == nil || len(men) != 0 {
			t.Errorf("MapSlice(%v) = %v, want empty non-nil slice", in, men)
		}
	}
}

func TestMapSet_CollapsesDuplicates(t *testing.T) {
	m := newStudentMapper(t)

	set, err := m.MapSet(context.Background(), fieldmaptest.Students(), fieldmaptest.GenderFromSex, fieldmaptest.AgeToText)
	if err != nil {
		t.Fatalf("MapSet() error: %v", err)
	}

	if set.Len() != 2 {
		t.Fatalf("MapSet() size = %d, want 2", set.Len())
	}

	kobe := fieldmaptest.Man{UserName: "kobe", Age: "28", Gender: "男", LocalDateTime: fieldmaptest.FixedTime}
	james := fieldmaptest.Man{UserName: "james", Age: "18", Gender: "男", LocalDateTime: fieldmaptest.FixedTime}
	if !set.Contains(kobe) || !set.Contains(james) {
		t.Errorf("MapSet() = %+v, want kobe and james", set.Values())
	}
}

func TestSet_Values_ReturnsCopy(t *testing.T) {
	m := newStudentMapper(t)

	set, err := m.MapSet(context.Background(), fieldmaptest.Students())
	if err != nil {
		t.Fatalf("MapSet() error: %v", err)
	}

	values := set.Values()
	values[0].UserName = "changed"
	if set.Contains(values[0]) {
		t.Error("modifying Values() should not affect the set")
	}
	if set.Add(set.Values()[0]) {
		t.Error("Add() of an existing value should report false")
	}
}

type tagged struct {
	UserName string
	Labels   []string
}

func (t tagged) Identity() any { return t.UserName }

type untagged struct {
	UserName string
	Labels   []string
}

func TestMapSet_Identifier(t *testing.T) {
	set, err := fieldmap.MapSet[tagged](context.Background(), fieldmaptest.Students())
	if err != nil {
		t.Fatalf("MapSet() error: %v", err)
	}
	if set.Len() != 2 {
		t.Errorf("MapSet() size = %d, want 2", set.Len())
	}
}

func TestMapSet_NotComparable(t *testing.T) {
	set, err := fieldmap.MapSet[untagged](context.Background(), fieldmaptest.Students())
	if !errors.Is(err, fieldmap.ErrNotComparable) {
		t.Errorf("MapSet() error = %v, want ErrNotComparable", err)
	}
	if set != nil {
		t.Errorf("MapSet() = %+v, want nil", set)
	}
}

type indexed struct {
	UserName string
	Age      int
}

func indexedInputs() []indexed {
	return []indexed{
		{UserName: "a", Age: 0},
		{UserName: "b", Age: 1},
		{UserName: "c", Age: 2},
		{UserName: "d", Age: 3},
		{UserName: "e", Age: 4},
	}
}

func ages(out []fieldmaptest.Student) []int {
	got := make([]int, len(out))
	for i, s := range out {
		got[i] = s.Age
	}
	return got
}

func TestMapRange(t *testing.T) {
	m, err := fieldmap.NewMapper[indexed, fieldmaptest.Student]()
	if err != nil {
		t.Fatalf("NewMapper() error: %v", err)
	}

	tests := []struct {
		name  string
		skip  int
		limit int
		want  []int
	}{
		{name: "inner window", skip: 1, limit: 3, want: []int{1, 2}},
		{name: "whole input", skip: 0, limit: 5, want: []int{0, 1, 2, 3, 4}},
		{name: "limit past end", skip: 3, limit: 50, want: []int{3, 4}},
		{name: "zero width", skip: 0, limit: 0, want: []int{}},
		{name: "skip past end", skip: 10, limit: 20, want: []int{}},
		{name: "negative limit", skip: 0, limit: -1, want: []int{}},
		{name: "limit before skip", skip: 4, limit: 2, want: []int{}},
		{name: "skip at end", skip: 5, limit: 6, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := m.MapRange(context.Background(), indexedInputs(), tt.skip, tt.limit)
			if err != nil {
				t.Fatalf("MapRange() error: %v", err)
			}
			if out == nil {
				t.Fatal("MapRange() returned nil, want empty slice")
			}
			got := ages(out)
			if len(got) != len(tt.want) {
				t.Fatalf("MapRange(%d, %d) = %v, want %v", tt.skip, tt.limit, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MapRange(%d, %d) = %v, want %v", tt.skip, tt.limit, got, tt.want)
					break
				}
			}
		})
	}
}

func TestMapRange_EmptyInput(t *testing.T) {
	out, err := fieldmap.MapRange[fieldmaptest.Student, indexed](context.Background(), nil, 0, 1)
	if err != nil {
		t.Fatalf("MapRange() error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("MapRange(nil) = %v, want empty", out)
	}
}

func TestMapFrom(t *testing.T) {
	out, err := fieldmap.MapFrom[fieldmaptest.Student](context.Background(), indexedInputs(), 3)
	if err != nil {
		t.Fatalf("MapFrom() error: %v", err)
	}
	got := ages(out)
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("MapFrom(3) = %v, want [3 4]", got)
	}

	out, err = fieldmap.MapFrom[fieldmaptest.Student](context.Background(), indexedInputs(), 9)
	if err != nil {
		t.Fatalf("MapFrom() error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("MapFrom(9) = %v, want empty", out)
	}
}

func studentPointers() []*fieldmaptest.Student {
	kobe := fieldmaptest.NewStudent("kobe", 28, "男")
	james := fieldmaptest.NewStudent("james", 18, "男")
	curry := fieldmaptest.NewStudent("curry", 30, "男")
	return []*fieldmaptest.Student{&kobe, nil, &james, &curry}
}

func TestMapSlice_FailFast(t *testing.T) {
	m, err := fieldmap.NewMapper[*fieldmaptest.Student, fieldmaptest.Man]()
	if err != nil {
		t.Fatalf("NewMapper() error: %v", err)
	}

	out, err := m.MapSlice(context.Background(), studentPointers())
	if out != nil {
		t.Errorf("MapSlice() = %v, want nil on failure", out)
	}

	var ee *fieldmap.ElementError
	if !errors.As(err, &ee) {
		t.Fatalf("MapSlice() error = %v, want *ElementError", err)
	}
	if ee.Index != 1 {
		t.Errorf("Index = %d, want 1", ee.Index)
	}
	if !errors.Is(err, fieldmap.ErrInvalidArgument) {
		t.Errorf("error should wrap ErrInvalidArgument, got %v", err)
	}
}

func TestMapSlice_SkipFailed(t *testing.T) {
	m, err := fieldmap.NewMapper[*fieldmaptest.Student, fieldmaptest.Man](
		fieldmap.WithBatch(fieldmap.BatchSkipFailed),
	)
	if err != nil {
		t.Fatalf("NewMapper() error: %v", err)
	}

	out, err := m.MapSlice(context.Background(), studentPointers())
	if err != nil {
		t.Fatalf("MapSlice() error: %v", err)
	}

	want := []string{"kobe", "james", "curry"}
	if len(out) != len(want) {
		t.Fatalf("MapSlice() length = %d, want %d", len(out), len(want))
	}
	for i, name := range want {
		if out[i].UserName != name {
			t.Errorf("out[%d].UserName = %q, want %q", i, out[i].UserName, name)
		}
	}
}

func TestMapRange_ElementIndexIsAbsolute(t *testing.T) {
	m, err := fieldmap.NewMapper[*fieldmaptest.Student, fieldmaptest.Man]()
	if err != nil {
		t.Fatalf("NewMapper() error: %v", err)
	}

	inputs := studentPointers()
	inputs[1] = inputs[0]
	inputs[2] = nil

	_, err = m.MapRange(context.Background(), inputs, 1, 4)
	var ee *fieldmap.ElementError
	if !errors.As(err, &ee) {
		t.Fatalf("MapRange() error = %v, want *ElementError", err)
	}
	if ee.Index != 2 {
		t.Errorf("Index = %d, want 2 (position in the full input)", ee.Index)
	}
}

func TestMapSet_SkipFailed(t *testing.T) {
	m, err := fieldmap.NewMapper[*fieldmaptest.Student, fieldmaptest.Man](
		fieldmap.WithBatch(fieldmap.BatchSkipFailed),
	)
	if err != nil {
		t.Fatalf("NewMapper() error: %v", err)
	}

	inputs := studentPointers()
	inputs = append(inputs, inputs[0], nil)

	set, err := m.MapSet(context.Background(), inputs)
	if err != nil {
		t.Fatalf("MapSet() error: %v", err)
	}
	if set.Len() != 3 {
		t.Errorf("MapSet() size = %d, want 3", set.Len())
	}
}

type payload struct {
	Name  string
	Value any
}

type payloadView struct {
	Name  string
	Value any
}

func TestMapSet_UnhashableDynamicValue(t *testing.T) {
	srcs := []payload{{Name: "a", Value: []int{1}}, {Name: "b", Value: 2}}

	set, err := fieldmap.MapSet[payloadView](context.Background(), srcs)
	if !errors.Is(err, fieldmap.ErrNotComparable) {
		t.Fatalf("MapSet() error = %v, want ErrNotComparable", err)
	}
	if set != nil {
		t.Errorf("MapSet() = %+v, want nil", set)
	}
}

func TestMapSet_HashableDynamicValues(t *testing.T) {
	srcs := []payload{{Name: "a", Value: 1}, {Name: "a", Value: 1}, {Name: "b", Value: "x"}, {Name: "c"}}

	set, err := fieldmap.MapSet[payloadView](context.Background(), srcs)
	if err != nil {
		t.Fatalf("MapSet() error: %v", err)
	}
	if set.Len() != 3 {
		t.Errorf("MapSet() size = %d, want 3", set.Len())
	}
	if set.Contains(payloadView{Name: "m", Value: map[string]int{}}) {
		t.Error("Contains() should report false for an unhashable value")
	}
	if set.Add(payloadView{Name: "s", Value: []string{"x"}}) {
		t.Error("Add() should refuse an unhashable value")
	}
	if set.Len() != 3 {
		t.Errorf("size after refused Add = %d, want 3", set.Len())
	}
}
