// Package valueobject contains the immutable, self-validating values shared by
// the aggregates. Each type is built through a New* constructor that returns a
// validation error instead of an invalid value, and round-trips through SQL
// and JSON as its canonical string form.
package valueobject
