// Package transporttest provides a scripted transport.Transport that replays
// canned responses and records every request, without network activity.
//
//	tr := transporttest.New(
//	    transporttest.Reply(200, "ok", "Set-Cookie", "sid=1"),
//	)
//	s, _ := session.New("http://example.com", session.WithTransport(tr))
//	s.Get(ctx, "/")
//	tr.Last().Header // what the session sent
package transporttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/webclient/errors"
	"github.com/kbukum/webclient/header"
	"github.com/kbukum/webclient/transport"
)

type step struct {
	resp *transport.Response
	err  error
}

// Scripted replays queued responses in order.
type Scripted struct {
	mu       sync.Mutex
	steps    []step
	requests []*transport.Request
}

var _ transport.Transport = (*Scripted)(nil)

// New creates a Scripted transport with the given responses queued.
func New(responses ...*transport.Response) *Scripted {
	s := &Scripted{}
	for _, r := range responses {
		s.Push(r)
	}
	return s
}

// Push queues a response.
func (s *Scripted) Push(resp *transport.Response) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, step{resp: resp})
	return s
}

// PushError queues a failure.
func (s *Scripted) PushError(err error) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, step{err: err})
	return s
}

// Send records req and returns the next queued step. An empty queue is a
// transport error.
func (s *Scripted) Send(_ context.Context, req *transport.Request) (*transport.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recorded := *req
	recorded.Header = append([]header.Field(nil), req.Header...)
	recorded.Body = append([]byte(nil), req.Body...)
	if req.Body == nil {
		recorded.Body = nil
	}
	s.requests = append(s.requests, &recorded)

	if len(s.steps) == 0 {
		return nil, errors.Transport(fmt.Errorf("transporttest: no scripted response for %s %s", req.Method, req.Target))
	}
	next := s.steps[0]
	s.steps = s.steps[1:]
	return next.resp, next.err
}

// Requests returns every recorded request in send order.
func (s *Scripted) Requests() []*transport.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*transport.Request(nil), s.requests...)
}

// Last returns the most recent request, or nil.
func (s *Scripted) Last() *transport.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

// Pending returns the number of queued steps not yet consumed.
func (s *Scripted) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}

// Reply builds a response from a status, a body and alternating header
// name/value pairs.
func Reply(status int, body string, kv ...string) *transport.Response {
	resp := &transport.Response{StatusCode: status, Body: []byte(body)}
	for i := 0; i+1 < len(kv); i += 2 {
		resp.Header = append(resp.Header, header.Field{Name: kv[i], Value: kv[i+1]})
	}
	return resp
}

// HeaderValue returns the value of name in req, case-insensitively.
func HeaderValue(req *transport.Request, name string) (string, bool) {
	values := header.Values(req.Header, name)
	if len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}
