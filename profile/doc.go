// Package profile provides optional runtime profiling for reap.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag. Without the tag every [Profiler] is a no-op and [Modes]
// is empty.
//
// # Modes
//
// With the tag enabled the supported modes are allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread and trace. Profile data is written to
// [Profiler.Path] as <mode>.pprof:
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/reap"}
//	defer p.Start().Stop()
//
// Long evaluations are the usual reason to profile, for example a deeply
// recursive script run through the eval command:
//
//	go build -tags pprof -o reap .
//	./reap --pprof-mode=cpu eval fib.reap
//	go tool pprof ./reap ~/.cache/reap/pprof/cpu.pprof
//
// The pprof build also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
