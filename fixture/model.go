// Package fixture holds a small domain model used to exercise placeholders
// end to end. Its stand-ins are generated by standin-generator.
package fixture

import (
	"fmt"
	"strconv"
	"time"
)

//go:generate go run invocation-capture/cmd/standin-generator -config standin.yaml

// Person is the root of most recorded chains.
type Person interface {
	Name() string
	Age() int
	Address() Address
	Status() Status
	Friend(name string) Person
	Birthday() time.Time
	Lookup(key string, fallback ...string) (string, error)
	Visit(at Address) bool
}

type Address interface {
	Street() string
	City() string
	Zip() ZipCode
	Location() Point
	fmt.Stringer
}

// Registry finds persons by their identifier.
type Registry interface {
	Find(id int64) (Person, bool)
	All() []Person
	Close() error
}

// Status is a closed set of values.
type Status int

const (
	StatusActive Status = iota + 1
	StatusSuspended
	StatusDeleted
)

// Values lists every Status in declaration order.
func (Status) Values() []Status {
	return []Status{StatusActive, StatusSuspended, StatusDeleted}
}

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusSuspended:
		return "suspended"
	case StatusDeleted:
		return "deleted"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// ZipCode is built from text.
type ZipCode struct {
	code string
}

func (z ZipCode) String() string {
	return z.code
}

func (z *ZipCode) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		return fmt.Errorf("empty zip code")
	}

	z.code = string(text)

	return nil
}

// Point has no textual form and needs a custom creator to be told apart.
type Point struct {
	X, Y float64
}

// Predicate is a named func type.
type Predicate func(p Person) bool
