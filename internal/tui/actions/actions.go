package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const loadTimeout = 10 * time.Second

type Loader interface {
	LoadBytes(ctx context.Context) ([]byte, error)
}

// LoadSuccessMsg carries a raw document. Decoding happens in Update so the
// controller is only ever touched from the program loop.
type LoadSuccessMsg struct {
	Data     []byte
	Duration time.Duration
	Trigger  string
}

type LoadErrorMsg struct {
	Err      error
	Duration time.Duration
	Trigger  string
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

func LoadCmd(loader Loader, trigger string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		start := time.Now()

		data, err := loader.LoadBytes(ctx)
		if err != nil {
			return LoadErrorMsg{Err: err, Duration: time.Since(start), Trigger: trigger}
		}
		return LoadSuccessMsg{Data: data, Duration: time.Since(start), Trigger: trigger}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened image in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, image URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Image URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}
