// z_asserter_test.go -- small test assertion helper shared by this package's tests
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package kvdb

import "testing"

// newAsserter returns a closure that fails the test (with t.Fatalf) if cond
// is false, formatting the message the same way t.Fatalf would.
func newAsserter(t *testing.T) func(cond bool, f string, v ...interface{}) {
	t.Helper()
	return func(cond bool, f string, v ...interface{}) {
		if !cond {
			t.Helper()
			t.Fatalf(f, v...)
		}
	}
}
