package encoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/videokit-ai/mixdown/pkg/audio"
	"github.com/videokit-ai/mixdown/pkg/util"
)

// ErrFinalized is returned when a block is committed to a sink that has
// already been closed.
var ErrFinalized = errors.New("encoder: sink already finalized")

const (
	wavHeaderSize = 44

	// Writes are buffered; after this long without a commit the buffer is
	// flushed so the file stays inspectable while a session is idle.
	wavFlushIdle = 200 * time.Millisecond
)

// WAVWriter encodes mixed float PCM blocks into a 16-bit PCM WAV file.
// The RIFF header is patched with the final sizes on Close.
type WAVWriter struct {
	logger     *zap.Logger
	sampleRate int
	channels   int

	mu        sync.Mutex
	file      *os.File
	buffered  *bytes.Buffer
	dataBytes uint32
	finalized bool

	flusher *util.Debouncer
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewWAVWriter creates the output file and reserves space for the header.
func NewWAVWriter(logger *zap.Logger, path string, sampleRate, channels int) (*WAVWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create wav file: %w", err)
	}
	if _, err := file.Write(wavHeader(sampleRate, channels, 0)); err != nil {
		file.Close()
		return nil, fmt.Errorf("write wav header: %w", err)
	}

	w := &WAVWriter{
		logger:     logger,
		sampleRate: sampleRate,
		channels:   channels,
		file:       file,
		buffered:   &bytes.Buffer{},
		flusher:    util.NewDebouncer(wavFlushIdle),
		done:       make(chan struct{}),
	}
	w.wg.Add(1)
	go w.flushLoop()

	logger.Info("Created WAV sink",
		zap.String("path", path),
		zap.Int("sample_rate", sampleRate),
		zap.Int("channels", channels))

	return w, nil
}

// CommitSamples appends one mix block. The block timestamp is not encoded;
// WAV carries timing implicitly through the sample count.
func (w *WAVWriter) CommitSamples(samples []float32, _ int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finalized {
		return ErrFinalized
	}

	pcm := audio.PCMInt16ToLE(audio.PCMFloat32ToInt16(samples))
	w.buffered.Write(pcm)
	w.dataBytes += uint32(len(pcm))
	w.flusher.Reset()
	return nil
}

// flushLoop drains buffered audio to disk whenever commits go quiet.
func (w *WAVWriter) flushLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case <-w.flusher.C():
			w.mu.Lock()
			if !w.finalized {
				if err := w.flush(); err != nil {
					w.logger.Warn("Failed to flush WAV sink", zap.Error(err))
				}
			}
			w.mu.Unlock()
		}
	}
}

// flush writes buffered audio through to the file. Caller must hold w.mu.
func (w *WAVWriter) flush() error {
	if w.buffered.Len() == 0 {
		return nil
	}
	_, err := w.buffered.WriteTo(w.file)
	return err
}

// Close flushes remaining audio, patches the header sizes and closes the
// file. Idempotent.
func (w *WAVWriter) Close() error {
	w.mu.Lock()
	if w.finalized {
		w.mu.Unlock()
		return nil
	}
	w.finalized = true
	close(w.done)
	w.flusher.Stop()
	w.mu.Unlock()

	// Let an in-flight idle flush finish before taking over the file.
	w.wg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("flush wav data: %w", err)
	}
	if _, err := w.file.WriteAt(wavHeader(w.sampleRate, w.channels, w.dataBytes), 0); err != nil {
		w.file.Close()
		return fmt.Errorf("patch wav header: %w", err)
	}

	w.logger.Info("Finalized WAV sink", zap.Uint32("data_bytes", w.dataBytes))
	return w.file.Close()
}

// wavHeader builds the canonical 44-byte RIFF/WAVE header for 16-bit PCM.
func wavHeader(sampleRate, channels int, dataBytes uint32) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize))
	le := binary.LittleEndian

	buf.WriteString("RIFF")
	_ = binary.Write(buf, le, uint32(36)+dataBytes)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, le, uint32(16))
	_ = binary.Write(buf, le, uint16(1)) // PCM
	_ = binary.Write(buf, le, uint16(channels))
	_ = binary.Write(buf, le, uint32(sampleRate))
	_ = binary.Write(buf, le, uint32(sampleRate*channels*2)) // byte rate
	_ = binary.Write(buf, le, uint16(channels*2))            // block align
	_ = binary.Write(buf, le, uint16(16))                    // bits per sample

	buf.WriteString("data")
	_ = binary.Write(buf, le, dataBytes)

	return buf.Bytes()
}
