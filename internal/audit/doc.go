// Package audit defines the audit event model, sink interfaces, and the
// asynchronous dispatcher used by the famtask engine.
//
// Events are emitted off the caller's hot path through a buffered channel;
// a slow sink can either backpressure emitters or drop events, depending on
// dispatcher configuration.
package audit
