package store

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
)

// SharedBuffer is a single text buffer guarded by a mutex.
// Every operation, including an open [BufferView], holds the lock.
type SharedBuffer struct {
	mu       sync.Mutex
	buffer   bytes.Buffer
	poisoned bool
}

// NewSharedBuffer returns a SharedBuffer with size bytes preallocated.
func NewSharedBuffer(size int) *SharedBuffer {
	b := &SharedBuffer{}
	if size > 0 {
		b.buffer.Grow(size)
	}

	return b
}

// Accept appends line and a line break.
func (b *SharedBuffer) Accept(line string) {
	b.with(func(buffer *bytes.Buffer) {
		buffer.WriteString(line)
		buffer.WriteByte('\n')
	})
}

// Read locks the buffer and returns a view over its contents.
// Logging blocks until [BufferView.Release] is called.
func (b *SharedBuffer) Read() *BufferView {
	b.lock()

	return &BufferView{buffer: b}
}

// View calls fn with the current contents while holding the lock.
// A panic inside fn poisons the buffer.
func (b *SharedBuffer) View(fn func(contents string)) {
	b.with(func(buffer *bytes.Buffer) {
		fn(buffer.String())
	})
}

// Dump writes the contents to w, then clears the buffer. If writing fails,
// the buffer is left untouched and the error of w is returned.
func (b *SharedBuffer) Dump(w io.Writer) error {
	if err := b.tryLock(); err != nil {
		return err
	}

	var err error

	b.guarded(func(buffer *bytes.Buffer) {
		if _, err = w.Write(buffer.Bytes()); err == nil {
			buffer.Reset()
		}
	})

	return err //nolint:wrapcheck
}

// Clear empties the buffer.
func (b *SharedBuffer) Clear() {
	b.with(func(buffer *bytes.Buffer) {
		buffer.Reset()
	})
}

// Len returns the number of buffered bytes.
func (b *SharedBuffer) Len() int {
	var n int

	b.with(func(buffer *bytes.Buffer) {
		n = buffer.Len()
	})

	return n
}

// with runs fn under the lock.
func (b *SharedBuffer) with(fn func(buffer *bytes.Buffer)) {
	b.lock()
	b.guarded(fn)
}

// guarded runs fn and releases the already held lock afterwards.
// The buffer is poisoned if fn panics.
func (b *SharedBuffer) guarded(fn func(buffer *bytes.Buffer)) {
	ok := false

	defer func() {
		if !ok {
			b.poisoned = true
		}

		b.mu.Unlock()
	}()

	fn(&b.buffer)

	ok = true
}

func (b *SharedBuffer) lock() {
	if err := b.tryLock(); err != nil {
		panic(err)
	}
}

func (b *SharedBuffer) tryLock() error {
	b.mu.Lock()

	if b.poisoned {
		b.mu.Unlock()

		return ErrLockPoisoned
	}

	return nil
}

// BufferView is a read-only view over a [SharedBuffer].
// The buffer stays locked until Release is called.
type BufferView struct {
	buffer   *SharedBuffer
	released bool
	once     sync.Once
}

// String returns a copy of the buffered contents.
func (v *BufferView) String() string {
	return v.contents().String()
}

// Bytes returns the buffered contents. The slice is only valid until Release.
func (v *BufferView) Bytes() []byte {
	return v.contents().Bytes()
}

// Len returns the number of buffered bytes.
func (v *BufferView) Len() int {
	return v.contents().Len()
}

// Contains reports whether substr is within the buffered contents.
func (v *BufferView) Contains(substr string) bool {
	return bytes.Contains(v.contents().Bytes(), []byte(substr))
}

// Lines returns the buffered lines without their line breaks.
func (v *BufferView) Lines() []string {
	contents := v.contents().String()
	if contents == "" {
		return []string{}
	}

	return strings.Split(strings.TrimSuffix(contents, "\n"), "\n")
}

// Release unlocks the buffer. Calling Release more than once is a no-op.
func (v *BufferView) Release() {
	v.once.Do(func() {
		v.released = true
		v.buffer.mu.Unlock()
	})
}

func (v *BufferView) contents() *bytes.Buffer {
	if v.released {
		panic(fmt.Sprintf("memory logger: %T used after Release", v))
	}

	return &v.buffer.buffer
}
