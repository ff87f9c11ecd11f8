package store_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jkroepke/memory-logger/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWrite = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

type panickingWriter struct{}

func (panickingWriter) Write([]byte) (int, error) {
	panic("writer exploded")
}

func TestSharedBuffer(t *testing.T) {
	t.Parallel()

	buffer := store.NewSharedBuffer(1024)
	buffer.Accept("[mod] INFO  | msg1")
	buffer.Accept("[mod] WARN  | msg2")

	view := buffer.Read()
	assert.Equal(t, "[mod] INFO  | msg1\n[mod] WARN  | msg2\n", view.String())
	assert.Equal(t, []string{"[mod] INFO  | msg1", "[mod] WARN  | msg2"}, view.Lines())
	assert.True(t, view.Contains("msg2"))
	assert.Equal(t, 38, view.Len())
	view.Release()
	view.Release()

	assert.Equal(t, 38, buffer.Len())

	buffer.Clear()

	view = buffer.Read()
	assert.Empty(t, view.String())
	assert.Equal(t, []string{}, view.Lines())
	view.Release()
}

func TestSharedBufferViewAfterRelease(t *testing.T) {
	t.Parallel()

	buffer := store.NewSharedBuffer(0)
	view := buffer.Read()
	view.Release()

	assert.Panics(t, func() {
		_ = view.String()
	})
}

func TestSharedBufferDump(t *testing.T) {
	t.Parallel()

	buffer := store.NewSharedBuffer(0)
	buffer.Accept("a")
	buffer.Accept("b")

	var out bytes.Buffer

	require.NoError(t, buffer.Dump(&out))
	assert.Equal(t, "a\nb\n", out.String())

	out.Reset()

	require.NoError(t, buffer.Dump(&out))
	assert.Empty(t, out.String())
	assert.Equal(t, 0, buffer.Len())
}

func TestSharedBufferDumpError(t *testing.T) {
	t.Parallel()

	buffer := store.NewSharedBuffer(0)
	buffer.Accept("a")

	require.ErrorIs(t, buffer.Dump(failingWriter{}), errWrite)

	// the buffer is not cleared and still usable
	buffer.Accept("b")

	var out bytes.Buffer

	require.NoError(t, buffer.Dump(&out))
	assert.Equal(t, "a\nb\n", out.String())
}

func TestSharedBufferReadBlocksAccept(t *testing.T) {
	t.Parallel()

	buffer := store.NewSharedBuffer(0)
	view := buffer.Read()

	accepted := make(chan struct{})

	go func() {
		buffer.Accept("late")
		close(accepted)
	}()

	select {
	case <-accepted:
		t.Fatal("accept did not block while the view was held")
	case <-time.After(50 * time.Millisecond):
	}

	assert.Empty(t, view.String())
	view.Release()

	select {
	case <-accepted:
	case <-time.After(5 * time.Second):
		t.Fatal("accept did not resume after release")
	}

	buffer.View(func(contents string) {
		assert.Equal(t, "late\n", contents)
	})
}

func TestSharedBufferPoisoned(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name   string
		poison func(buffer *store.SharedBuffer)
	}{
		{
			"view",
			func(buffer *store.SharedBuffer) {
				buffer.View(func(string) {
					panic("reader exploded")
				})
			},
		},
		{
			"dump",
			func(buffer *store.SharedBuffer) {
				_ = buffer.Dump(panickingWriter{})
			},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buffer := store.NewSharedBuffer(0)
			buffer.Accept("a")

			require.Panics(t, func() {
				tt.poison(buffer)
			})

			require.PanicsWithError(t, store.ErrLockPoisoned.Error(), func() {
				buffer.Accept("b")
			})
			require.PanicsWithError(t, store.ErrLockPoisoned.Error(), func() {
				buffer.Read()
			})
			require.PanicsWithError(t, store.ErrLockPoisoned.Error(), buffer.Clear)
			require.ErrorIs(t, buffer.Dump(&bytes.Buffer{}), store.ErrLockPoisoned)
		})
	}
}

func TestSharedBufferConcurrentAccept(t *testing.T) {
	t.Parallel()

	const (
		writers = 8
		lines   = 500
	)

	buffer := store.NewSharedBuffer(0)

	var wg sync.WaitGroup

	for w := range writers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range lines {
				buffer.Accept(fmt.Sprintf("[writer-%d] INFO  | line %d %s", w, i, strings.Repeat("x", 64)))
			}
		}()
	}

	wg.Wait()

	view := buffer.Read()
	defer view.Release()

	got := view.Lines()
	require.Len(t, got, writers*lines)

	next := make(map[int]int, writers)

	for _, line := range got {
		var (
			w, i int
			pad  string
		)

		_, err := fmt.Sscanf(line, "[writer-%d] INFO  | line %d %s", &w, &i, &pad)
		require.NoError(t, err, line)
		require.Len(t, pad, 64, line)

		assert.Equal(t, next[w], i, "lines of one writer must keep their order")
		next[w] = i + 1
	}
}
