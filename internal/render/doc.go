// Package render turns a route plan into something a person or another
// program can look at.
//
// A Request carries the whole current area plus the highlighted route. It is
// the payload handed to every Sink: the console printer, the socket.io
// publisher that feeds an external graph viewer, and the HCL exporter that
// lets a run be replayed later.
package render
