package consolehandler_test

import (
	"os"

	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/formatter"
	"github.com/philipp01105/plog/handler/consolehandler"
)

// Create a synchronous console handler writing plain text.
func ExampleNewConsoleHandler() {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    os.Stdout,
		Formatter: formatter.NewTextFormatter(formatter.Config{OmitTime: true}),
	})
	defer h.Close()

	_ = h.Handle(&core.Entry{Level: core.InfoLevel, Event: "ready", Path: []string{"app"}})
	// Output:
	// [INFO] app ready
}

// Create an async console handler with a custom buffer size.
func ExampleNewConsoleHandler_async() {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:     os.Stdout,
		Async:      true,
		BufferSize: 4096,
		Formatter:  formatter.NewJSONFormatter(formatter.Config{OmitTime: true}),
	})

	_ = h.Handle(&core.Entry{Level: core.ErrorLevel, Event: "failed"})
	h.Close()
	// Output:
	// {"level":5,"event":"failed"}
}
