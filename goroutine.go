package ioc

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
)

var stackHeader = []byte("goroutine ")

// currentGoroutine identifies the calling goroutine for lock ownership.
// It panics if the runtime stack header cannot be parsed, since a wrong
// owner would let two goroutines share the container lock.
func currentGoroutine() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	id, err := parseGoroutineID(buf[:n])
	if err != nil {
		panic(fmt.Sprintf("ioc: cannot determine goroutine id: %v", err))
	}
	return id
}

// parseGoroutineID reads the id from a stack header such as
// "goroutine 18 [running]:".
func parseGoroutineID(stack []byte) (int64, error) {
	rest, ok := bytes.CutPrefix(stack, stackHeader)
	if !ok {
		return 0, fmt.Errorf("unexpected stack header %q", stack)
	}
	if end := bytes.IndexByte(rest, ' '); end >= 0 {
		rest = rest[:end]
	}
	id, err := strconv.ParseInt(string(rest), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("non-positive goroutine id %d", id)
	}
	return id, nil
}
