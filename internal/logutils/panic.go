package logutils

import (
	"bytes"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/maruel/panicparse/stack"
	"github.com/rs/zerolog/log"
	"github.com/thoas/go-funk"
)

// PanicError is a recovered panic with the stack of the panicking goroutine.
type PanicError struct {
	Reason string
	Stack  string

	GoroutineBuckets []*stack.Bucket
}

func (pe PanicError) Error() string {
	return pe.Reason
}

func (pe PanicError) Pretty() string {
	return fmt.Sprintf("%s\n\n%s", pe.Reason, pe.Stack)
}

// WrapRecover converts the value of recover() into a PanicError. It returns nil if r is nil.
// It must be called in the deferred function which recovered, so that the panicking stack is still there.
func WrapRecover(r interface{}) *PanicError {
	if r == nil {
		return nil
	}
	reason := fmt.Sprintf("panic: %v", r)

	st := make([]byte, 4096)
	for {
		n := runtime.Stack(st, false)
		if n < len(st) {
			st = st[:n]
			break
		}
		st = make([]byte, 2*len(st))
	}
	c, err := stack.ParseDump(bytes.NewReader(st), io.Discard, true)
	if err != nil || c == nil {
		log.Warn().Err(err).Msg("unable to parse panic stacktrace")
		return &PanicError{
			Reason: reason,
			Stack:  string(st),
		}
	}
	buckets := stack.Aggregate(c.Goroutines, stack.AnyValue)

	srcLen := 0
	for _, bucket := range buckets {
		for _, call := range bucket.Signature.Stack.Calls {
			if l := len(call.SrcLine()); l > srcLen {
				srcLen = l
			}
		}
	}

	var sb strings.Builder
	for _, bucket := range buckets {
		calls := bucket.Stack.Calls
		index, _ := funk.FindKey(calls, func(call stack.Call) bool {
			return call.Func.Name() == "panic"
		})
		if index != nil {
			// frames above the panic are the recovering ones
			calls = calls[index.(int)+1:]
		}
		sb.WriteString(fmt.Sprintf("goroutine %v: %s\n", bucket.IDs, bucket.State))
		for _, call := range calls {
			sb.WriteString(fmt.Sprintf("    %-*s  %s(%s)\n", srcLen, call.SrcLine(), call.Func.PkgDotName(), &call.Args))
		}
		if bucket.Stack.Elided {
			sb.WriteString("    (...)\n")
		}
	}
	return &PanicError{
		Reason:           reason,
		Stack:            sb.String(),
		GoroutineBuckets: buckets,
	}
}
