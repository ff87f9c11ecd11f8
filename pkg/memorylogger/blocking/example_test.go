package blocking_test

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/jkroepke/memory-logger/pkg/memorylogger"
	"github.com/jkroepke/memory-logger/pkg/memorylogger/blocking"
)

func Example() {
	logger, err := blocking.Setup(slog.LevelInfo, &memorylogger.Options{
		Target: regexp.MustCompile("^mycrate::my_module"), // optional
	})
	if err != nil {
		panic(err)
	}

	slog.Info("This is a info.", memorylogger.TargetKey, "mycrate::my_module")
	slog.Warn("This is a warning.", memorylogger.TargetKey, "mycrate::my_module")
	slog.Info("This is filtered.", memorylogger.TargetKey, "othercrate")
	slog.Debug("This is filtered, too.", memorylogger.TargetKey, "mycrate::my_module")

	contents := logger.Read()
	fmt.Print(contents.String())
	contents.Release()

	_, err = blocking.Setup(slog.LevelDebug, nil)
	fmt.Println(errors.Is(err, memorylogger.ErrAlreadyInstalled))

	installed, _ := blocking.Installed()
	fmt.Println(installed == logger)

	if err := logger.Dump(os.Stdout); err != nil {
		panic(err)
	}

	// Output:
	// [mycrate::my_module] INFO  | This is a info.
	// [mycrate::my_module] WARN  | This is a warning.
	// true
	// true
	// [mycrate::my_module] INFO  | This is a info.
	// [mycrate::my_module] WARN  | This is a warning.
}
