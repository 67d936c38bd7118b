package playground

import "fmt"

// Handle panics if err is not nil. It is used for failures the
// render loop can not recover from.
func Handle(err error, desc string, args ...any) {
	if err != nil {
		text := fmt.Sprintf(desc, args...)
		panic(text + ": " + err.Error())
	}
}
