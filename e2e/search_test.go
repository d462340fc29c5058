//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWithStub(t *testing.T, debounceMs int, args ...string) (*TUITestFramework, *stubServer) {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)

	server := newStubServer(t)
	cfgPath, err := tf.WriteConfig(server, debounceMs)
	require.NoError(t, err)

	require.NoError(t, tf.StartApp(append([]string{"--config", cfgPath}, args...)...))
	require.True(t, tf.Ready(), "Should show the search prompt")
	return tf, server
}

func TestTypingIssuesOneDebouncedSearch(t *testing.T) {
	t.Parallel()
	tf, server := startWithStub(t, 300)

	require.NoError(t, tf.Type("bubble", 20*time.Millisecond))

	require.NoError(t, tf.WaitForE(func(s string) bool {
		plain := ansiRe.ReplaceAllString(s, "")
		return strings.Contains(plain, "bubble-one") && strings.Contains(plain, "bubble-two")
	}, 5*time.Second, "results for the typed query should be listed"))

	assert.Equal(t, []string{"bubble"}, server.Queries(), "keystrokes inside the window collapse into one search")
	assert.True(t, tf.OutputContains("https://github.com/octo/bubble-one", time.Second), "results link to their html_url")
}

func TestNewQueryReplacesResults(t *testing.T) {
	t.Parallel()
	tf, server := startWithStub(t, 100)

	require.NoError(t, tf.Type("ab", 10*time.Millisecond))
	require.True(t, tf.OutputContainsPlain("ab-one", 5*time.Second))

	require.NoError(t, tf.SendKeys(KeyBackspace))
	require.NoError(t, tf.WaitForE(func(s string) bool {
		return len(server.Queries()) == 2
	}, 5*time.Second, "clearing one character should search again"))
	assert.Equal(t, []string{"ab", "a"}, server.Queries())
	require.True(t, tf.OutputContainsPlain("a-one", 5*time.Second))
}

func TestBackgroundRequestsAreTakenTwice(t *testing.T) {
	t.Parallel()
	tf, server := startWithStub(t, 100)

	require.NoError(t, tf.WaitForE(func(string) bool {
		return server.Pings() == 2
	}, 5*time.Second, "two background requests should be issued"))

	// Several more intervals pass without a third request
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 2, server.Pings())
	assert.Empty(t, server.Queries(), "background responses never trigger a search")
	assert.False(t, strings.Contains(tf.SnapshotPlain(), "pong"), "background responses are not rendered")
}

func TestInitialQueryFromArgs(t *testing.T) {
	t.Parallel()
	tf, server := startWithStub(t, 50, "hello", "world")

	require.True(t, tf.OutputContainsPlain("hello world-one", 5*time.Second))
	assert.Equal(t, []string{"hello world"}, server.Queries())
}

func TestNoBackgroundFlag(t *testing.T) {
	t.Parallel()
	tf, server := startWithStub(t, 50, "--no-background")

	require.NoError(t, tf.Type("x", 0))
	require.True(t, tf.OutputContainsPlain("x-one", 5*time.Second))
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, server.Pings())
}

func TestNavigationMovesHighlight(t *testing.T) {
	t.Parallel()
	tf, _ := startWithStub(t, 50)

	require.NoError(t, tf.Type("nav", 0))
	require.True(t, tf.SeePlain("> nav-one"), "the first result is highlighted")

	require.NoError(t, tf.Down())
	if !tf.SeePlain("> nav-two") {
		tf.DumpTailOnFail(t, "navigation-failure", 4096)
		t.Fatal("down should highlight the second result")
	}
}

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf, _ := startWithStub(t, 50)

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	t.Logf("Sending Esc to quit application...")
	tf.Quit()

	select {
	case exitErr := <-done:
		if exitErr != nil {
			t.Logf("Process exited with Esc (exit code: %v)", exitErr)
		}
		return
	case <-time.After(1500 * time.Millisecond):
		// If Esc didn't work within 1.5 seconds, use Ctrl+C
		t.Logf("Esc didn't work within 1.5 seconds, using Ctrl+C")
		tf.SendCtrlC()
	}

	select {
	case exitErr := <-done:
		t.Logf("Process exited with Ctrl+C (exit code: %v)", exitErr)
	case <-time.After(750 * time.Millisecond):
		t.Error("Application did not exit within total timeout")
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		tf.SendCtrlC()
	}
}
