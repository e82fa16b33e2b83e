package testutil

import "os"

// Set sets *p to v for the duration of a test.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}

// Setenv sets an environment variable for the duration of a test, restoring
// or unsetting it afterwards. It returns value.
func Setenv(c Cleanuper, name, value string) string {
	old, existed := os.LookupEnv(name)
	if existed {
		c.Cleanup(func() { os.Setenv(name, old) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
	os.Setenv(name, value)
	return value
}
