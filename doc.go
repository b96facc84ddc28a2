// Package httpclient provides a small HTTP request library with a
// retrying, asynchronous execution core.
//
// The central type is [Client], which executes immutable [Request]
// descriptors either synchronously ([Client.Do], [Client.Execute]) or
// asynchronously through a pluggable [ExecutorFactory]
// ([Client.ExecuteAsync]). Transport failures classified as timeouts are
// retried with exponential backoff applied to the connect timeout; all
// other failures are surfaced immediately. Responses are read fully into
// memory and returned as immutable [Response] values.
package httpclient
