// Package member describes resolved type members and the errors reported while
// resolving and accessing them.
//
// A member is one of:
//   - Field: a struct field, promoted fields of embedded structs included
//   - Property: a getter/setter method pair such as Name()/SetName(v)
//   - Method: a method of *T or a registered function
//   - Constructor: the zero-value constructor or a registered factory function
package member
