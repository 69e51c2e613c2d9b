package people

import (
	"errors"
	"reflect"

	"member-binder/resolve"
)

// Register adds the members of this package that reflection cannot see: the
// static people counter, constructors, and functions bound as methods.
func Register(reg *resolve.Registry) error {
	person := reflect.TypeFor[Person]()
	employee := reflect.TypeFor[Employee]()

	return errors.Join(
		reg.RegisterStaticField(person, "totalPeopleCreated", &totalPeopleCreated),
		reg.RegisterStaticMethod(person, "GetTotalPeopleCreated", TotalPeopleCreated),
		reg.RegisterStaticProperty(person, "TotalPeopleCreated", TotalPeopleCreated, nil),
		reg.RegisterConstructor(person, "NewPerson", NewPerson),
		reg.RegisterConstructor(person, "newAnonymous", newAnonymous),
		reg.RegisterMethod(person, "Walk", walkAndReport),
		reg.RegisterMethod(person, "stroll", stroll),
		reg.RegisterConstructor(employee, "NewEmployee", NewEmployee),
		reg.RegisterMethod(employee, "Swimmer.Swim", swim),
	)
}
