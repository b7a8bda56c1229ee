// Package testing provides fixtures for fieldmap tests.
package testing

import (
	"strconv"
	"time"
)

// FixedTime is the timestamp carried by every fixture.
var FixedTime = time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)

// Student is a source type. Age is an int, which keeps it from being copied
// into Man.Age automatically.
type Student struct {
	UserName      string    `json:"userName" yaml:"userName" xml:"userName" msgpack:"userName" bson:"userName"`
	Age           int       `json:"age" yaml:"age" xml:"age" msgpack:"age" bson:"age"`
	Sex           string    `json:"sex" yaml:"sex" xml:"sex" msgpack:"sex" bson:"sex"`
	LocalDateTime time.Time `json:"localDateTime" yaml:"localDateTime" xml:"localDateTime" msgpack:"localDateTime" bson:"localDateTime"`
}

// Man is a target type sharing UserName and LocalDateTime with Student.
type Man struct {
	UserName      string    `json:"userName" yaml:"userName" xml:"userName" msgpack:"userName" bson:"userName"`
	Age           string    `json:"age" yaml:"age" xml:"age" msgpack:"age" bson:"age"`
	Gender        string    `json:"gender" yaml:"gender" xml:"gender" msgpack:"gender" bson:"gender"`
	LocalDateTime time.Time `json:"localDateTime" yaml:"localDateTime" xml:"localDateTime" msgpack:"localDateTime" bson:"localDateTime"`
}

// NewStudent returns a Student stamped with FixedTime.
func NewStudent(name string, age int, sex string) Student {
	return Student{UserName: name, Age: age, Sex: sex, LocalDateTime: FixedTime}
}

// Students returns kobe (28), james (18) and kobe (28) again, in that order.
func Students() []Student {
	return []Student{
		NewStudent("kobe", 28, "男"),
		NewStudent("james", 18, "男"),
		NewStudent("kobe", 28, "男"),
	}
}

// GenderFromSex copies Student.Sex into Man.Gender.
func GenderFromSex(s Student, m *Man) {
	m.Gender = s.Sex
}

// AgeToText renders Student.Age into Man.Age.
func AgeToText(s Student, m *Man) {
	m.Age = strconv.Itoa(s.Age)
}
