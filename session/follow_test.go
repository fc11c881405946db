package session

import (
	"context"
	"net/url"
	"strconv"
	"testing"

	"github.com/kbukum/webclient/errors"
	"github.com/kbukum/webclient/transport/transporttest"
)

func TestFollow_MethodPerStatus(t *testing.T) {
	tests := []struct {
		status     int
		wantMethod string
		wantBody   string
	}{
		{207, "GET", ""},
		{301, "GET", ""},
		{302, "GET", ""},
		{303, "GET", ""},
		{307, "POST", "name=bob"},
	}
	for _, tc := range tests {
		t.Run(strconv.Itoa(tc.status), func(t *testing.T) {
			s, tr := newScripted(t, "http://example.com")
			tr.Push(transporttest.Reply(tc.status, "", "Location", "/next"))
			tr.Push(transporttest.Reply(200, "done"))

			ctx := context.Background()
			mustDo(t)(s.Post(ctx, "/submit", WithForm(url.Values{"name": {"bob"}})))
			status := mustDo(t)(s.Follow(ctx))

			if status != 200 {
				t.Errorf("expected 200, got %d", status)
			}
			req := tr.Last()
			if req.Method != tc.wantMethod {
				t.Errorf("expected %s, got %s", tc.wantMethod, req.Method)
			}
			if string(req.Body) != tc.wantBody {
				t.Errorf("expected body %q, got %q", tc.wantBody, req.Body)
			}
			if req.Target != "/next" {
				t.Errorf("expected /next, got %s", req.Target)
			}
			if tc.wantBody == "" {
				if _, ok := transporttest.HeaderValue(req, "Content-Type"); ok {
					t.Error("a bodiless GET must not carry Content-Type")
				}
			}
		})
	}
}

func TestFollow_307KeepsGetQuery(t *testing.T) {
	s, tr := newScripted(t, "http://example.com")
	tr.Push(transporttest.Reply(307, "", "Location", "/moved?q=a+b"))
	tr.Push(transporttest.Reply(200, ""))

	ctx := context.Background()
	mustDo(t)(s.Get(ctx, "/search", WithQuery(url.Values{"q": {"a b"}})))
	mustDo(t)(s.Follow(ctx))

	req := tr.Last()
	if req.Method != "GET" || req.Target != "/moved?q=a+b" {
		t.Errorf("unexpected follow request %s %s", req.Method, req.Target)
	}
}

func TestFollow_RelativeLocation(t *testing.T) {
	s, tr := newScripted(t, "http://example.com/app/")
	tr.Push(transporttest.Reply(302, "", "Location", "done"))
	tr.Push(transporttest.Reply(200, ""))

	ctx := context.Background()
	mustDo(t)(s.Get(ctx, "forms/submit"))
	mustDo(t)(s.Follow(ctx))

	if tr.Last().Target != "/app/forms/done" {
		t.Errorf("expected location resolved against the last request, got %s", tr.Last().Target)
	}
}

func TestFollow_AbsoluteSameOrigin(t *testing.T) {
	s, tr := newScripted(t, "http://example.com")
	tr.Push(transporttest.Reply(301, "", "Location", "http://example.com/new"))
	tr.Push(transporttest.Reply(200, ""))

	ctx := context.Background()
	mustDo(t)(s.Get(ctx, "/old"))
	mustDo(t)(s.Follow(ctx))

	if tr.Last().Target != "/new" {
		t.Errorf("expected /new, got %s", tr.Last().Target)
	}
}

func TestFollow_CarriesCookiesFromRedirect(t *testing.T) {
	s, tr := newScripted(t, "http://example.com")
	tr.Push(transporttest.Reply(303, "", "Location", "/home", "Set-Cookie", "sid=42"))
	tr.Push(transporttest.Reply(200, ""))

	ctx := context.Background()
	mustDo(t)(s.Post(ctx, "/login"))
	mustDo(t)(s.Follow(ctx))

	if got := sentHeader(t, tr.Last(), "Cookie"); got != "sid=42" {
		t.Errorf("expected cookie from redirect response, got %q", got)
	}
}

func TestFollow_Errors(t *testing.T) {
	tests := []struct {
		name string
		resp []string
		code int
	}{
		{"not a redirect", []string{"Location", "/x"}, 200},
		{"unsupported redirect", []string{"Location", "/x"}, 308},
		{"missing location", nil, 302},
		{"foreign origin", []string{"Location", "http://other.com/x"}, 302},
		{"scheme change", []string{"Location", "https://example.com/x"}, 301},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, tr := newScripted(t, "http://example.com")
			tr.Push(transporttest.Reply(tc.code, "", tc.resp...))

			ctx := context.Background()
			mustDo(t)(s.Get(ctx, "/"))
			_, err := s.Follow(ctx)
			if !errors.IsProtocol(err) {
				t.Errorf("expected protocol error, got %v", err)
			}
			if len(tr.Requests()) != 1 {
				t.Error("no request should be sent")
			}
		})
	}
}

func TestFollow_BeforeAnyRequest(t *testing.T) {
	s, _ := newScripted(t, "http://example.com")
	if _, err := s.Follow(context.Background()); !errors.IsProtocol(err) {
		t.Errorf("expected protocol error, got %v", err)
	}
}
