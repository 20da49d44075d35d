package script

import (
	"fmt"
	"sync"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/fluentql/pkg/dialect"
)

// Rendered is one emitted statement: the name the script gave it and the
// compiled SQL.
type Rendered struct {
	Name string
	SQL  string
}

// Context owns the globals and collected output of script execution. One
// context may run several scripts; emits append under a mutex so scripts
// can render concurrently against a shared context.
type Context struct {
	dialectName string
	opts        []dialect.Option

	mu      sync.Mutex
	results []Rendered
}

// NewContext creates an execution context. The dialect name is the default
// for ql.emit; rendering options apply to every emit.
func NewContext(dialectName string, opts ...dialect.Option) *Context {
	if dialectName == "" {
		dialectName = "ansi"
	}
	return &Context{dialectName: dialectName, opts: opts}
}

// Dialect returns the context's default dialect name.
func (c *Context) Dialect() string { return c.dialectName }

func (c *Context) record(r Rendered) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
}

// Results returns the emitted statements in emit order.
func (c *Context) Results() []Rendered {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Rendered, len(c.results))
	copy(out, c.results)
	return out
}

// Globals returns the predeclared globals for script execution.
func (c *Context) Globals() starlark.StringDict {
	return starlark.StringDict{"ql": c.Module()}
}

// NewThread creates an execution thread. Script prints go nowhere by
// default; callers wanting them set thread.Print afterwards.
func (c *Context) NewThread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name:  name,
		Print: func(_ *starlark.Thread, _ string) {},
	}
}

// RunFile executes a script file against this context.
func (c *Context) RunFile(filename string) error {
	return c.run(filename, nil)
}

// RunSource executes in-memory script source against this context. name is
// used for error reporting only.
func (c *Context) RunSource(name string, src string) error {
	return c.run(name, src)
}

func (c *Context) run(filename string, src any) error {
	thread := c.NewThread(filename)
	if _, err := starlark.ExecFile(thread, filename, src, c.Globals()); err != nil {
		return &ScriptError{File: filename, Err: err}
	}
	return nil
}

// ScriptError wraps a script execution failure with the script name.
type ScriptError struct {
	File string
	Err  error
}

func (e *ScriptError) Error() string {
	if evalErr, ok := e.Err.(*starlark.EvalError); ok {
		return fmt.Sprintf("%s: %s", e.File, evalErr.Backtrace())
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }
