package hal

import "bytes"

// LogWriter adapts a Logger to io.Writer, one log line per newline-terminated
// chunk. Text after the last newline is buffered until the next Write.
type LogWriter struct {
	L Logger

	pending []byte
}

func (w *LogWriter) Write(p []byte) (int, error) {
	n := len(p)
	if len(w.pending) > 0 {
		p = append(w.pending, p...)
		w.pending = nil
	}
	for {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			break
		}
		w.L.WriteLineBytes(bytes.TrimSuffix(p[:i], []byte{'\r'}))
		p = p[i+1:]
	}
	if len(p) > 0 {
		w.pending = append([]byte(nil), p...)
	}
	return n, nil
}
