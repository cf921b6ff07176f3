package server

import (
	"bytes"
	"net/http"
)

// auditBodyLimit caps how much of a response body an audit entry captures.
// Item and booking listings can be large; the audit log only needs a prefix.
const auditBodyLimit = 64 << 10

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
	buffer     bytes.Buffer
}

func newResponseWriterWrapper(w http.ResponseWriter) *responseWriterWrapper {
	return &responseWriterWrapper{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(b []byte) (int, error) {
	if remain := auditBodyLimit - w.buffer.Len(); remain > 0 {
		if len(b) > remain {
			w.buffer.Write(b[:remain])
		} else {
			w.buffer.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriterWrapper) GetStatusCode() int {
	return w.statusCode
}

func (w *responseWriterWrapper) GetBody() []byte {
	return w.buffer.Bytes()
}
