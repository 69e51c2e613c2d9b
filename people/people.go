// Package people is a small object model exercised by the binder tests and the
// command line demo: a person, an employee embedding it, and a value-typed twin.
package people

import (
	"fmt"
	"sync"
	"time"
)

// Named is implemented by everyone who can be befriended.
type Named interface {
	Name() string
}

// Swimmer is implemented by Employee through a registered, interface-qualified
// member "Swimmer.Swim" rather than a Go method.
type Swimmer interface {
	Swim(meters float64)
}

var (
	countMu sync.Mutex
	// totalPeopleCreated is also registered as a static field. Access through
	// that field is not synchronized with construction.
	totalPeopleCreated int
)

// countPerson records a construction and returns its sequence number.
func countPerson() int {
	countMu.Lock()
	defer countMu.Unlock()

	totalPeopleCreated++

	return totalPeopleCreated
}

// Person keeps its state unexported; properties expose part of it.
type Person struct {
	id              int
	birthday        time.Time
	name            string
	age             int
	metersTravelled float64
	friends         []Named
	password        string

	Nickname *string
	Tags     []string
}

// NewPerson is registered as a Person constructor.
func NewPerson(name string, age int) *Person {
	return &Person{id: countPerson(), name: name, age: age}
}

// newAnonymous is registered as a non-public constructor.
func newAnonymous() *Person {
	return &Person{name: "anonymous"}
}

func (p *Person) Name() string { return p.name }
func (p *Person) SetName(name string) { p.name = name }
func (p *Person) Age() int { return p.age }
func (p *Person) SetAge(age int) { p.age = age }
func (p *Person) GetID() int { return p.id }
func (p *Person) MetersTravelled() float64 {
	return p.metersTravelled
}

func (p *Person) SetMetersTravelled(meters float64) {
	p.metersTravelled = meters
}

// SetBirthday refuses dates in the future.
func (p *Person) SetBirthday(birthday time.Time) error {
	if birthday.After(time.Now()) {
		return fmt.Errorf("birthday %s is in the future", birthday.Format(time.DateOnly))
	}

	p.birthday = birthday

	return nil
}

func (p *Person) Birthday() time.Time { return p.birthday }

// SetPassword is write-only.
func (p *Person) SetPassword(password string) { p.password = password }

// Walk adds meters to the distance travelled.
func (p *Person) Walk(meters float64) {
	p.metersTravelled += meters
}

// AddFriend returns the friend it was given.
func (p *Person) AddFriend(friend Named) Named {
	p.friends = append(p.friends, friend)
	return friend
}

func (p *Person) Friends() []Named { return p.friends }

// Rename returns the previous name and fails on an empty one.
func (p *Person) Rename(name string) (string, error) {
	if name == "" {
		return p.name, fmt.Errorf("rename %q: empty name", p.name)
	}

	old := p.name
	p.name = name

	return old, nil
}

// Greet formats a greeting for each name.
func (p *Person) Greet(names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = p.name + " greets " + n
	}

	return out
}

// walkAndReport is registered as an overload of Walk reporting the total
// distance through its by-reference parameter.
func walkAndReport(p *Person, meters float64, total *float64) {
	p.Walk(meters)
	*total = p.metersTravelled
}

// stroll is registered as a non-public instance method.
func stroll(p *Person, meters float64) {
	p.Walk(meters / 2)
}

// Employee extends Person.
type Employee struct {
	Person

	employeeID int
	Title      string
}

// NewEmployee is registered as an Employee constructor.
func NewEmployee(id int, name string) *Employee {
	return &Employee{Person: Person{id: countPerson(), name: name}, employeeID: id}
}

func (e *Employee) EmployeeID() int { return e.employeeID }
func (e *Employee) SetEmployeeID(id int) { e.employeeID = id }

// Walk shadows Person.Walk: employees walk twice as far on the clock.
func (e *Employee) Walk(meters float64) {
	e.Person.Walk(meters * 2)
}

// swim backs the registered "Swimmer.Swim" member.
func swim(e *Employee, meters float64) {
	e.metersTravelled += meters
}

// PersonStruct mirrors Person as a plain value with exported fields.
type PersonStruct struct {
	Name            string
	Age             int
	MetersTravelled float64
	Birthday        time.Time
	Nickname        *string
}

// Visitor carries the same fields as Person, all exported, with no methods.
type Visitor struct {
	Name            string
	Age             int
	MetersTravelled float64
}

// Badge exposes the Person properties through Get-accessors only.
type Badge struct {
	name   string
	age    int
	meters float64
}

func NewBadge(name string, age int, meters float64) *Badge {
	return &Badge{name: name, age: age, meters: meters}
}

func (b *Badge) GetName() string { return b.name }
func (b *Badge) GetAge() int { return b.age }
func (b *Badge) GetMetersTravelled() float64 { return b.meters }

func TotalPeopleCreated() int {
	countMu.Lock()
	defer countMu.Unlock()

	return totalPeopleCreated
}
