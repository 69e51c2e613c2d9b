package main

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"member-binder/binder"
	"member-binder/people"
	"member-binder/resolve"
)

// sample is a type the CLI can inspect and map, with a populated source value.
type sample struct {
	typ reflect.Type
	new func() any
}

var samples = map[string]sample{
	"Person": {reflect.TypeFor[people.Person](), func() any {
		p := people.NewPerson("Ann", 30)
		p.SetMetersTravelled(12.5)
		_ = p.SetBirthday(time.Date(1994, time.May, 17, 0, 0, 0, 0, time.UTC))

		return p
	}},
	"Employee": {reflect.TypeFor[people.Employee](), func() any {
		e := people.NewEmployee(7, "Eve")
		e.Title = "engineer"
		e.Walk(3)

		return e
	}},
	"PersonStruct": {reflect.TypeFor[people.PersonStruct](), func() any {
		return &people.PersonStruct{Name: "Bob", Age: 41, MetersTravelled: 3.25}
	}},
	"Visitor": {reflect.TypeFor[people.Visitor](), func() any {
		return &people.Visitor{Name: "Flo", Age: 22, MetersTravelled: 1}
	}},
	"Badge": {reflect.TypeFor[people.Badge](), func() any {
		return people.NewBadge("Gus", 55, 8)
	}},
}

func lookupSample(name string) (sample, error) {
	s, ok := samples[name]
	if !ok {
		return sample{}, fmt.Errorf("unknown type %q, expected one of %s", name, sampleNames())
	}

	return s, nil
}

func sampleNames() string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}

	slices.Sort(names)

	return strings.Join(names, ", ")
}

// newEngine returns an engine that knows the registered people members.
func newEngine() (*binder.Engine, error) {
	reg := resolve.NewRegistry()
	if err := people.Register(reg); err != nil {
		return nil, fmt.Errorf("register people: %w", err)
	}

	return binder.New(binder.WithRegistry(reg)), nil
}
