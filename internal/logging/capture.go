package logging

import (
	"bufio"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// OutputCapture redirects process stdout/stderr into the logger. The
// rendering engines write plenty of raw chatter to both streams from C
// code, so the redirection happens at fd level, not just os.Stdout.
//
// The logger passed to NewOutputCapture must have been constructed
// before Start so its writer still points at the real stderr.
type OutputCapture struct {
	originalStdout *os.File
	originalStderr *os.File
	stdoutRead     *os.File
	stdoutWrite    *os.File
	stderrRead     *os.File
	stderrWrite    *os.File
	logger         zerolog.Logger
	stopChan       chan struct{}
	started        bool
}

func NewOutputCapture(logger zerolog.Logger) *OutputCapture {
	return &OutputCapture{
		originalStdout: os.Stdout,
		originalStderr: os.Stderr,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

func (c *OutputCapture) Start() error {
	if c.started {
		return nil
	}

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return err
	}

	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		closeAll(stdoutR, stdoutW)
		return err
	}

	c.stdoutRead = stdoutR
	c.stdoutWrite = stdoutW
	c.stderrRead = stderrR
	c.stderrWrite = stderrW

	os.Stdout = stdoutW
	os.Stderr = stderrW

	// Redirect file descriptors at syscall level for C code
	if err := unix.Dup3(int(stdoutW.Fd()), 1, 0); err != nil {
		c.logger.Warn().Err(err).Msg("failed to redirect stdout fd")
	}
	if err := unix.Dup3(int(stderrW.Fd()), 2, 0); err != nil {
		c.logger.Warn().Err(err).Msg("failed to redirect stderr fd")
	}

	go c.pipeToLogger(stdoutR, "stdout")
	go c.pipeToLogger(stderrR, "stderr")

	c.started = true
	return nil
}

func (c *OutputCapture) Stop() {
	if !c.started {
		return
	}

	close(c.stopChan)

	os.Stdout = c.originalStdout
	os.Stderr = c.originalStderr

	if err := unix.Dup3(int(c.originalStdout.Fd()), 1, 0); err != nil {
		c.logger.Warn().Err(err).Msg("failed to restore stdout fd")
	}
	if err := unix.Dup3(int(c.originalStderr.Fd()), 2, 0); err != nil {
		c.logger.Warn().Err(err).Msg("failed to restore stderr fd")
	}

	closeAll(c.stdoutWrite, c.stderrWrite, c.stdoutRead, c.stderrRead)
	c.started = false
}

func (c *OutputCapture) pipeToLogger(r io.Reader, stream string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case <-c.stopChan:
			return
		default:
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		c.logger.Debug().Str("stream", stream).Msg(line)
	}
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		if f != nil {
			_ = f.Close()
		}
	}
}
