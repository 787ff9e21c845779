// Package binding exposes capture protection to JavaScript running in an
// embedded otto VM. Handles cross into scripts as arrays of byte values, the
// way Electron hands out getNativeWindowHandle() buffers.
package binding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/Miuzarte/CaptureShield/affinity"
	"github.com/robertkrimen/otto"
	"github.com/rs/zerolog"
)

// argumentShape is the TypeError text for calls with the wrong argument types.
const argumentShape = "Expected Buffer, Boolean"

// maxBuffer bounds how many elements are read from a script array.
const maxBuffer = 64

// Finder resolves windows on behalf of scripts.
type Finder interface {
	Foreground() affinity.Handle
	Find(title string) (affinity.Handle, error)
}

type Binding struct {
	setter *affinity.Setter
	finder Finder
	log    zerolog.Logger
}

type Option func(*Binding)

func WithFinder(f Finder) Option {
	return func(b *Binding) {
		b.finder = f
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(b *Binding) {
		b.log = l
	}
}

func New(setter *affinity.Setter, opts ...Option) *Binding {
	b := &Binding{setter: setter, log: zerolog.Nop()}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Install defines the binding functions as globals of vm.
func (b *Binding) Install(vm *otto.Otto) error {
	funcs := map[string]func(otto.FunctionCall) otto.Value{
		"setProtection":        b.setProtection,
		"setCaptureProtection": b.setProtection,
		"getProtection":        b.getProtection,
		"windowHandle":         b.windowHandle,
	}
	if b.finder != nil {
		funcs["foregroundWindow"] = b.foregroundWindow
		funcs["findWindow"] = b.findWindow
	}
	for name, f := range funcs {
		if err := vm.Set(name, f); err != nil {
			return fmt.Errorf("install %s: %w", name, err)
		}
	}
	return nil
}

var errHalt = errors.New("script halted")

// Run executes src in a fresh VM with the binding installed. The script is
// interrupted once ctx is done. The VM only checks for interrupts between
// evaluations, so an empty-bodied for (;;) {} cannot be stopped.
func (b *Binding) Run(ctx context.Context, name, src string) (err error) {
	vm := otto.New()
	if err := b.Install(vm); err != nil {
		return err
	}

	script, err := vm.Compile(name, src)
	if err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}

	vm.Interrupt = make(chan func(), 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt <- func() {
				panic(errHalt)
			}
		case <-done:
		}
	}()

	defer func() {
		if caught := recover(); caught != nil {
			if caught == errHalt {
				err = fmt.Errorf("%s: %w", name, context.Cause(ctx))
				return
			}
			panic(caught)
		}
	}()

	b.log.Debug().Str("script", name).Msg("running")
	if _, err := vm.Run(script); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// setProtection(buffer, enable) -> boolean
func (b *Binding) setProtection(call otto.FunctionCall) otto.Value {
	if len(call.ArgumentList) < 2 || !call.Argument(1).IsBoolean() {
		panic(call.Otto.MakeTypeError(argumentShape))
	}
	buf, err := toBytes(call.Argument(0))
	if err != nil {
		panic(call.Otto.MakeTypeError(argumentShape))
	}
	enable, _ := call.Argument(1).ToBoolean()

	ok, err := b.setter.SetCaptureProtection(buf, enable)
	if err != nil {
		panic(call.Otto.MakeTypeError(argumentShape + ": " + err.Error()))
	}
	if !ok {
		b.log.Warn().Bool("enable", enable).Msg("setProtection returned false")
	}
	return boolValue(ok)
}

// getProtection(buffer) -> number | null
func (b *Binding) getProtection(call otto.FunctionCall) otto.Value {
	buf, err := toBytes(call.Argument(0))
	if err != nil {
		panic(call.Otto.MakeTypeError("Expected Buffer"))
	}
	h, err := affinity.DecodeHandle(buf)
	if err != nil {
		panic(call.Otto.MakeTypeError("Expected Buffer: " + err.Error()))
	}
	a, err := b.setter.Get(h)
	if err != nil {
		return otto.NullValue()
	}
	v, _ := call.Otto.ToValue(a)
	return v
}

// windowHandle(number | string) -> buffer
func (b *Binding) windowHandle(call otto.FunctionCall) otto.Value {
	arg := call.Argument(0)
	var h affinity.Handle
	switch {
	case arg.IsNumber():
		f, _ := arg.ToFloat()
		if f < 0 || f != math.Trunc(f) || f >= math.Ldexp(1, 8*affinity.HandleSize) {
			panic(call.Otto.MakeRangeError("window handle out of range"))
		}
		h = affinity.Handle(uint64(f))
	case arg.IsString():
		s, _ := arg.ToString()
		parsed, err := affinity.ParseHandle(s)
		if err != nil {
			panic(call.Otto.MakeTypeError(err.Error()))
		}
		h = parsed
	default:
		panic(call.Otto.MakeTypeError("Expected Number or String"))
	}
	return b.handleValue(call.Otto, h)
}

// foregroundWindow() -> buffer | null
func (b *Binding) foregroundWindow(call otto.FunctionCall) otto.Value {
	h := b.finder.Foreground()
	if h == 0 {
		return otto.NullValue()
	}
	return b.handleValue(call.Otto, h)
}

// findWindow(title) -> buffer | null
func (b *Binding) findWindow(call otto.FunctionCall) otto.Value {
	if !call.Argument(0).IsString() {
		panic(call.Otto.MakeTypeError("Expected String"))
	}
	title, _ := call.Argument(0).ToString()
	h, err := b.finder.Find(title)
	if err != nil {
		b.log.Debug().Str("title", title).Err(err).Msg("findWindow")
		return otto.NullValue()
	}
	return b.handleValue(call.Otto, h)
}

func (b *Binding) handleValue(vm *otto.Otto, h affinity.Handle) otto.Value {
	arr, err := vm.Object("[]")
	if err != nil {
		panic(vm.MakeCustomError("Error", err.Error()))
	}
	for _, c := range h.Bytes() {
		if _, err := arr.Call("push", int(c)); err != nil {
			panic(vm.MakeCustomError("Error", err.Error()))
		}
	}
	return arr.Value()
}

// toBytes reads an array-like of integers in [0, 255].
func toBytes(v otto.Value) ([]byte, error) {
	if !v.IsObject() {
		return nil, errors.New("not an object")
	}
	obj := v.Object()
	if obj.Class() == "String" || obj.Class() == "Function" {
		return nil, fmt.Errorf("%s is not a buffer", obj.Class())
	}

	lv, err := obj.Get("length")
	if err != nil || !lv.IsNumber() {
		return nil, errors.New("no length")
	}
	n, err := lv.ToInteger()
	if err != nil || n < 0 || n > maxBuffer {
		return nil, fmt.Errorf("bad length %v", lv)
	}

	buf := make([]byte, n)
	for i := range buf {
		ev, err := obj.Get(strconv.Itoa(i))
		if err != nil || !ev.IsNumber() {
			return nil, fmt.Errorf("element %d is not a number", i)
		}
		f, _ := ev.ToFloat()
		if f < 0 || f > 255 || f != math.Trunc(f) {
			return nil, fmt.Errorf("element %d out of byte range", i)
		}
		buf[i] = byte(f)
	}
	return buf, nil
}

func boolValue(ok bool) otto.Value {
	if ok {
		return otto.TrueValue()
	}
	return otto.FalseValue()
}
