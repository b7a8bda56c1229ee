package benchmarks

import (
	"context"
	"reflect"
	"testing"

	"github.com/zoobzio/fieldmap"
	"github.com/zoobzio/fieldmap/json"
	fieldmaptest "github.com/zoobzio/fieldmap/testing"
)

func BenchmarkMapper_Map(b *testing.B) {
	m, _ := fieldmap.NewMapper[fieldmaptest.Student, fieldmaptest.Man]()
	student := fieldmaptest.NewStudent("kobe", 28, "男")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Map(context.Background(), student)
	}
}

func BenchmarkMapper_Map_WithCorrections(b *testing.B) {
	m, _ := fieldmap.NewMapper[fieldmaptest.Student, fieldmaptest.Man]()
	student := fieldmaptest.NewStudent("kobe", 28, "男")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Map(context.Background(), student, fieldmaptest.GenderFromSex, fieldmaptest.AgeToText)
	}
}

func BenchmarkMapper_Map_Interface(b *testing.B) {
	m, _ := fieldmap.NewMapper[any, fieldmaptest.Man]()
	student := fieldmaptest.NewStudent("kobe", 28, "男")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Map(context.Background(), student)
	}
}

func BenchmarkMapTo(b *testing.B) {
	target := reflect.TypeOf(fieldmaptest.Man{})
	student := fieldmaptest.NewStudent("kobe", 28, "男")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = fieldmap.MapTo(context.Background(), student, target, nil)
	}
}

func BenchmarkMap_Registry(b *testing.B) {
	student := fieldmaptest.NewStudent("kobe", 28, "男")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = fieldmap.Map[fieldmaptest.Man](context.Background(), student)
	}
}

func benchmarkStudents(n int) []fieldmaptest.Student {
	out := make([]fieldmaptest.Student, n)
	for i := range out {
		out[i] = fieldmaptest.NewStudent("student", i%50, "男")
	}
	return out
}

func BenchmarkMapper_MapSlice_1000(b *testing.B) {
	m, _ := fieldmap.NewMapper[fieldmaptest.Student, fieldmaptest.Man]()
	students := benchmarkStudents(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.MapSlice(context.Background(), students, fieldmaptest.AgeToText)
	}
}

func BenchmarkMapper_MapSet_1000(b *testing.B) {
	m, _ := fieldmap.NewMapper[fieldmaptest.Student, fieldmaptest.Man]()
	students := benchmarkStudents(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.MapSet(context.Background(), students, fieldmaptest.AgeToText)
	}
}

func BenchmarkEncoder_MapSlice_JSON(b *testing.B) {
	m, _ := fieldmap.NewMapper[fieldmaptest.Student, fieldmaptest.Man]()
	enc := fieldmap.NewEncoder(m, json.New())
	students := benchmarkStudents(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = enc.MapSlice(context.Background(), students)
	}
}
