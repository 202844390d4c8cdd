package util

func AssertPanic(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
